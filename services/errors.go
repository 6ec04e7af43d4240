package services

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	ErrMenuNotFound = errors.New("menu item not found")
	ErrMenuInUse    = errors.New("menu item is referenced by orders; deactivate it instead")

	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("order status transition not allowed")

	ErrVoucherNotFound       = errors.New("voucher code not found")
	ErrVoucherInactive       = errors.New("voucher is inactive")
	ErrVoucherExpired        = errors.New("voucher has expired")
	ErrVoucherExhausted      = errors.New("voucher usage limit reached")
	ErrVoucherCodeTaken      = errors.New("voucher code already exists")
	ErrVoucherAlreadyApplied = errors.New("a voucher was already applied to this order")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnauthenticated    = errors.New("not logged in")
)

func clockNow(now func() time.Time) time.Time {
	if now == nil {
		return time.Now().UTC()
	}
	return now().UTC()
}

// IsDomainError reports whether err wraps one of the sentinels above rather than a
// storage failure.
func IsDomainError(err error) bool {
	for _, target := range []error{
		ErrInvalidInput,
		ErrMenuNotFound, ErrMenuInUse,
		ErrOrderNotFound, ErrInvalidTransition,
		ErrVoucherNotFound, ErrVoucherInactive, ErrVoucherExpired, ErrVoucherExhausted,
		ErrVoucherCodeTaken, ErrVoucherAlreadyApplied,
		ErrInvalidCredentials, ErrUnauthenticated,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

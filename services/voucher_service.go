package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Xfhreall/armaso-pos/models"
	"github.com/Xfhreall/armaso-pos/utils"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VoucherLogLimit caps Logs.
const VoucherLogLimit = 100

type VoucherService struct {
	DB  *gorm.DB
	Now func() time.Time
}

func NewVoucherService(db *gorm.DB) *VoucherService {
	return &VoucherService{DB: db}
}

// NormalizeCode is applied to every code on write and on lookup.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

type VoucherInput struct {
	Code      string
	Discount  int64
	MaxUsage  *int
	ExpiresAt *time.Time
	IsActive  bool
}

func (in *VoucherInput) normalize() error {
	in.Code = NormalizeCode(in.Code)
	if in.Code == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidInput)
	}
	if in.Discount < 0 {
		return fmt.Errorf("%w: discount must not be negative", ErrInvalidInput)
	}
	// zero or negative means no cap
	if in.MaxUsage != nil && *in.MaxUsage <= 0 {
		in.MaxUsage = nil
	}
	if in.ExpiresAt != nil {
		t := in.ExpiresAt.UTC()
		in.ExpiresAt = &t
	}
	return nil
}

// VoucherSummary is a voucher with the number of redemptions logged against it.
type VoucherSummary struct {
	models.Voucher
	UsageLogCount int64 `json:"usage_log_count"`
}

type VoucherInfo struct {
	ID       uint   `json:"id"`
	Code     string `json:"code"`
	Discount int64  `json:"discount"`
}

// VoucherValidation is the answer shown at the till. Reason is the sentinel error
// behind Error and is nil when Valid.
type VoucherValidation struct {
	Valid   bool         `json:"valid"`
	Voucher *VoucherInfo `json:"voucher,omitempty"`
	Error   string       `json:"error,omitempty"`
	Reason  error        `json:"-"`
}

func (s *VoucherService) List(ctx context.Context) ([]VoucherSummary, error) {
	db := s.DB.WithContext(ctx)

	var vouchers []models.Voucher
	if err := db.Order("created_at desc, id desc").Find(&vouchers).Error; err != nil {
		utils.ErrorLogger.WithError(err).Error("error fetching vouchers")
		return nil, err
	}

	var counts []struct {
		VoucherID uint
		Total     int64
	}
	if err := db.Model(&models.VoucherUsageLog{}).
		Select("voucher_id, COUNT(*) AS total").
		Group("voucher_id").
		Scan(&counts).Error; err != nil {
		utils.ErrorLogger.WithError(err).Error("error counting voucher usage")
		return nil, err
	}
	byVoucher := make(map[uint]int64, len(counts))
	for _, c := range counts {
		byVoucher[c.VoucherID] = c.Total
	}

	out := make([]VoucherSummary, len(vouchers))
	for i, v := range vouchers {
		out[i] = VoucherSummary{Voucher: v, UsageLogCount: byVoucher[v.ID]}
	}
	return out, nil
}

func (s *VoucherService) Create(ctx context.Context, in VoucherInput) (*models.Voucher, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	v := models.Voucher{
		Code:      in.Code,
		Discount:  in.Discount,
		MaxUsage:  in.MaxUsage,
		ExpiresAt: in.ExpiresAt,
		IsActive:  true,
	}
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureCodeFree(tx, v.Code, 0); err != nil {
			return err
		}
		return tx.Create(&v).Error
	})
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{"voucher_id": v.ID, "code": v.Code}).Info("voucher created")
	return &v, nil
}

func (s *VoucherService) Update(ctx context.Context, id uint, in VoucherInput) (*models.Voucher, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}
	var v models.Voucher
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&v, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrVoucherNotFound
			}
			return err
		}
		if err := ensureCodeFree(tx, in.Code, v.ID); err != nil {
			return err
		}
		if in.MaxUsage != nil && *in.MaxUsage < v.UsageCount {
			return fmt.Errorf("%w: max usage %d is below current usage %d", ErrInvalidInput, *in.MaxUsage, v.UsageCount)
		}
		v.Code = in.Code
		v.Discount = in.Discount
		v.IsActive = in.IsActive
		v.MaxUsage = in.MaxUsage
		v.ExpiresAt = in.ExpiresAt
		return tx.Save(&v).Error
	})
	if err != nil {
		return nil, err
	}
	utils.InfoLogger.WithFields(logrus.Fields{
		"voucher_id": v.ID,
		"code":       v.Code,
		"is_active":  v.IsActive,
	}).Info("voucher updated")
	return &v, nil
}

// Delete soft-deletes the voucher. Its logs stay readable and its code stays reserved.
func (s *VoucherService) Delete(ctx context.Context, id uint) error {
	res := s.DB.WithContext(ctx).Delete(&models.Voucher{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrVoucherNotFound
	}
	return nil
}

// Validate runs the till-side checks in order: not found, inactive, expired, exhausted.
// Only database failures are returned as error.
func (s *VoucherService) Validate(ctx context.Context, code string) (*VoucherValidation, error) {
	v, err := findVoucherByCode(s.DB.WithContext(ctx), code)
	if err == nil {
		err = checkRedeemable(v, clockNow(s.Now))
	}
	switch {
	case err == nil:
		return &VoucherValidation{
			Valid:   true,
			Voucher: &VoucherInfo{ID: v.ID, Code: v.Code, Discount: v.Discount},
		}, nil
	case isVoucherRejection(err):
		return &VoucherValidation{Valid: false, Error: err.Error(), Reason: err}, nil
	default:
		return nil, err
	}
}

// Redeem applies a voucher to an existing order: one usage log row plus one counter
// increment, both in a single transaction. The increment is conditional on the cap,
// so concurrent redemptions cannot push usage past max_usage. discount <= 0 records
// the voucher's own discount.
func (s *VoucherService) Redeem(ctx context.Context, code string, orderID uint, discount int64) (*models.VoucherUsageLog, error) {
	now := clockNow(s.Now)
	var entry *models.VoucherUsageLog
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		v, err := findVoucherByCode(tx, code)
		if err != nil {
			return err
		}
		if err := checkRedeemable(v, now); err != nil {
			return err
		}

		var orders int64
		if err := tx.Model(&models.Order{}).Where("id = ?", orderID).Count(&orders).Error; err != nil {
			return err
		}
		if orders == 0 {
			return ErrOrderNotFound
		}

		if discount <= 0 {
			discount = v.Discount
		}
		entry, err = redeemInTx(tx, v, orderID, discount, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// Logs returns the latest redemptions, newest first, with voucher and order summaries.
func (s *VoucherService) Logs(ctx context.Context) ([]models.VoucherUsageLog, error) {
	var logs []models.VoucherUsageLog
	err := s.DB.WithContext(ctx).
		Preload("Voucher", func(db *gorm.DB) *gorm.DB { return db.Unscoped() }).
		Preload("Order").
		Order("applied_at desc, id desc").
		Limit(VoucherLogLimit).
		Find(&logs).Error
	return logs, err
}

// redeemInTx writes the usage log, then bumps usage_count only while below the cap.
// A zero-row increment returns ErrVoucherExhausted so the caller's transaction rolls
// the log back.
func redeemInTx(tx *gorm.DB, v *models.Voucher, orderID uint, discount int64, now time.Time) (*models.VoucherUsageLog, error) {
	var prior int64
	if err := tx.Model(&models.VoucherUsageLog{}).Where("order_id = ?", orderID).Count(&prior).Error; err != nil {
		return nil, err
	}
	if prior > 0 {
		return nil, ErrVoucherAlreadyApplied
	}

	entry := models.VoucherUsageLog{
		VoucherID: v.ID,
		OrderID:   orderID,
		Discount:  discount,
		AppliedAt: now,
	}
	if err := tx.Omit(clause.Associations).Create(&entry).Error; err != nil {
		return nil, err
	}

	res := tx.Model(&models.Voucher{}).
		Where("id = ? AND (max_usage IS NULL OR usage_count < max_usage)", v.ID).
		Updates(map[string]interface{}{
			"usage_count": gorm.Expr("usage_count + ?", 1),
			"updated_at":  now,
		})
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrVoucherExhausted
	}

	utils.InfoLogger.WithFields(logrus.Fields{
		"voucher":  v.Code,
		"order_id": orderID,
		"discount": discount,
	}).Info("voucher redeemed")
	return &entry, nil
}

func findVoucherByCode(db *gorm.DB, code string) (*models.Voucher, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, ErrVoucherNotFound
	}
	var v models.Voucher
	if err := db.Where("code = ?", code).First(&v).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrVoucherNotFound
		}
		return nil, err
	}
	return &v, nil
}

func checkRedeemable(v *models.Voucher, now time.Time) error {
	switch {
	case !v.IsActive:
		return ErrVoucherInactive
	case v.Expired(now):
		return ErrVoucherExpired
	case v.Exhausted():
		return ErrVoucherExhausted
	}
	return nil
}

func isVoucherRejection(err error) bool {
	return errors.Is(err, ErrVoucherNotFound) ||
		errors.Is(err, ErrVoucherInactive) ||
		errors.Is(err, ErrVoucherExpired) ||
		errors.Is(err, ErrVoucherExhausted)
}

// ensureCodeFree also checks soft-deleted vouchers, whose codes are never reused.
func ensureCodeFree(tx *gorm.DB, code string, exceptID uint) error {
	q := tx.Unscoped().Model(&models.Voucher{}).Where("code = ?", code)
	if exceptID != 0 {
		q = q.Where("id <> ?", exceptID)
	}
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return err
	}
	if n > 0 {
		return ErrVoucherCodeTaken
	}
	return nil
}

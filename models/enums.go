package models

import "fmt"

// MenuCategory is the closed set of catalog sections.
type MenuCategory string

const (
	CategoryFood    MenuCategory = "FOOD"
	CategoryDrink   MenuCategory = "DRINK"
	CategoryPackage MenuCategory = "PACKAGE"
)

// MenuCategories lists every category in display order.
var MenuCategories = []MenuCategory{CategoryFood, CategoryDrink, CategoryPackage}

func (c MenuCategory) Valid() bool {
	switch c {
	case CategoryFood, CategoryDrink, CategoryPackage:
		return true
	}
	return false
}

// Label returns the name shown on receipts and reports.
func (c MenuCategory) Label() string {
	switch c {
	case CategoryFood:
		return "Makanan"
	case CategoryDrink:
		return "Minuman"
	case CategoryPackage:
		return "Paket"
	}
	panic(fmt.Sprintf("models: unknown menu category %q", string(c)))
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentQRIS PaymentMethod = "QRIS"
)

func (p PaymentMethod) Valid() bool {
	switch p {
	case PaymentCash, PaymentQRIS:
		return true
	}
	return false
}

// OrderStatus follows PAID -> SERVED and never goes back.
type OrderStatus string

const (
	OrderStatusPaid   OrderStatus = "PAID"
	OrderStatusServed OrderStatus = "SERVED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPaid, OrderStatusServed:
		return true
	}
	return false
}

// CanTransitionTo reports whether an order in status s may move to next.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPaid:
		return next == OrderStatusServed
	case OrderStatusServed:
		return false
	}
	return false
}

package models

import "time"

type Order struct {
	ID            uint          `gorm:"primaryKey" json:"id"`
	CustomerName  string        `gorm:"type:varchar(255);not null" json:"customer_name"`
	Subtotal      int64         `gorm:"not null;default:0" json:"subtotal"`
	Discount      int64         `gorm:"not null;default:0" json:"discount"`
	Total         int64         `gorm:"not null;default:0" json:"total"`
	VoucherCode   *string       `gorm:"type:varchar(50)" json:"voucher_code,omitempty"`
	PaymentMethod PaymentMethod `gorm:"type:varchar(10);not null" json:"payment_method"`
	Status        OrderStatus   `gorm:"type:varchar(10);not null;index" json:"status"`
	Notes         string        `gorm:"type:text" json:"notes"`
	CreatedAt     time.Time     `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time     `gorm:"not null" json:"updated_at"`
	Items         []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"items"`
}

// ItemCount returns the number of units across all lines.
func (o *Order) ItemCount() int {
	n := 0
	for _, it := range o.Items {
		n += it.Quantity
	}
	return n
}

// ComputeTotal applies discount to subtotal without going below zero.
func ComputeTotal(subtotal, discount int64) int64 {
	if discount >= subtotal {
		return 0
	}
	return subtotal - discount
}

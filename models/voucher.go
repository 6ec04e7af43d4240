package models

import (
	"time"

	"gorm.io/gorm"
)

type Voucher struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Code       string         `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"`
	Discount   int64          `gorm:"not null" json:"discount"`
	MaxUsage   *int           `json:"max_usage"`
	UsageCount int            `gorm:"not null;default:0" json:"usage_count"`
	ExpiresAt  *time.Time     `json:"expires_at"`
	IsActive   bool           `gorm:"not null" json:"is_active"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// Expired reports whether the voucher has an expiry and now is past it.
func (v *Voucher) Expired(now time.Time) bool {
	return v.ExpiresAt != nil && now.After(*v.ExpiresAt)
}

// Exhausted reports whether a usage cap is set and reached.
func (v *Voucher) Exhausted() bool {
	return v.MaxUsage != nil && v.UsageCount >= *v.MaxUsage
}

// VoucherUsageLog records one redemption. Discount is what the order actually got.
type VoucherUsageLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VoucherID uint      `gorm:"not null;index" json:"voucher_id"`
	Voucher   Voucher   `gorm:"foreignKey:VoucherID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"voucher"`
	OrderID   uint      `gorm:"not null;uniqueIndex" json:"order_id"`
	Order     Order     `gorm:"foreignKey:OrderID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"order"`
	Discount  int64     `gorm:"not null" json:"discount"`
	AppliedAt time.Time `gorm:"not null;index" json:"applied_at"`
}

package models

import "time"

// MenuItem is a sellable catalog entry. Price is in rupiah (minor unit, no decimals).
type MenuItem struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Name      string       `gorm:"type:varchar(255);not null" json:"name"`
	Price     int64        `gorm:"not null" json:"price"`
	Category  MenuCategory `gorm:"type:varchar(20);not null;index" json:"category"`
	IsActive  bool         `gorm:"not null;index" json:"is_active"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

func (MenuItem) TableName() string { return "menus" }

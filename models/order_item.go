package models

type OrderItem struct {
	ID      uint `gorm:"primaryKey" json:"id"`
	OrderID uint `gorm:"not null;index" json:"order_id"`
	MenuID  uint `gorm:"not null;index" json:"menu_id"`
	// Menu is the live catalog row, not a snapshot.
	Menu     MenuItem `gorm:"foreignKey:MenuID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"menu"`
	Quantity int      `gorm:"not null" json:"quantity"`
	// UnitPrice is the price the cashier charged for this line.
	UnitPrice int64 `gorm:"not null" json:"unit_price"`
}

// LineTotal is the charged amount for the line.
func (i OrderItem) LineTotal() int64 {
	return i.UnitPrice * int64(i.Quantity)
}

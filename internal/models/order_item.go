package models

import "time"

// OrderItem captures listing id, quantity and unit price at order time.
// ListingID carries no foreign key: the snapshot must survive deletion of
// the listing it was priced from.
type OrderItem struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"column:order_id;not null;index" json:"order_id"`
	Order      *Order    `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"-"`
	ListingID  uint      `gorm:"column:listing_id;not null;index" json:"listing_id"`
	Quantity   int       `gorm:"column:quantity;not null;check:quantity >= 1" json:"quantity"`
	UnitPrice  float64   `gorm:"column:unit_price;type:decimal(10,2);not null" json:"unit_price"`
	TotalPrice float64   `gorm:"column:total_price;type:decimal(10,2);not null" json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

func (OrderItem) TableName() string {
	return "order_items"
}

package models

import "time"

// CartItem is one (user, listing, quantity) line. The composite unique
// index makes repeated adds increment instead of duplicating the row.
type CartItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"column:user_id;not null;uniqueIndex:idx_cart_user_listing" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	ListingID uint      `gorm:"column:listing_id;not null;uniqueIndex:idx_cart_user_listing" json:"listing_id"`
	Quantity  int       `gorm:"column:quantity;not null;check:quantity >= 1" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CartItem) TableName() string {
	return "cart_items"
}

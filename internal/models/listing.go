package models

import (
	"time"

	"gorm.io/datatypes"
)

// Listing statuses. Only "active" listings are visible in the shop.
const (
	ListingActive   = "active"
	ListingSold     = "sold"
	ListingInactive = "inactive"
)

// Listing is a seller's marketplace item. Images is a JSON array of URL
// strings, never free text.
type Listing struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"column:user_id;not null;index" json:"user_id"`
	User          *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	Title         string         `gorm:"column:title;not null" json:"title"`
	Description   string         `gorm:"column:description;not null" json:"description"`
	Price         float64        `gorm:"column:price;type:decimal(10,2);not null" json:"price"`
	Category      string         `gorm:"column:category;not null;index" json:"category"`
	ConditionType string         `gorm:"column:condition_type;not null" json:"condition"`
	Location      string         `gorm:"column:location;not null" json:"location"`
	Images        datatypes.JSON `gorm:"column:images" json:"images"`
	Status        string         `gorm:"column:status;type:varchar(20);not null;default:'active'" json:"status"`
	Views         int            `gorm:"column:views;not null;default:0" json:"views"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

func (Listing) TableName() string {
	return "listings"
}

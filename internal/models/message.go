package models

import "time"

// Message is a sender→recipient note, optionally tied to a listing.
// Only the recipient may flip IsRead.
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	SenderID    uint      `gorm:"column:sender_id;not null;index" json:"sender_id"`
	Sender      *User     `gorm:"foreignKey:SenderID;constraint:OnDelete:CASCADE" json:"-"`
	RecipientID uint      `gorm:"column:recipient_id;not null;index" json:"recipient_id"`
	Recipient   *User     `gorm:"foreignKey:RecipientID;constraint:OnDelete:CASCADE" json:"-"`
	Subject     string    `gorm:"column:subject;not null" json:"subject"`
	Content     string    `gorm:"column:content;not null" json:"content"`
	ListingID   *uint     `gorm:"column:listing_id" json:"listing_id"`
	Listing     *Listing  `gorm:"foreignKey:ListingID;constraint:OnDelete:SET NULL" json:"-"`
	IsRead      bool      `gorm:"column:is_read;not null;default:false" json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Message) TableName() string {
	return "messages"
}

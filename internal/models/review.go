package models

import "time"

// Review is a buyer's rating of a seller after a transaction. One review
// per (reviewer, listing) pair, enforced by the composite unique index.
type Review struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	ReviewerID uint      `gorm:"column:reviewer_id;not null;uniqueIndex:idx_review_reviewer_listing" json:"reviewer_id"`
	Reviewer   *User     `gorm:"foreignKey:ReviewerID;constraint:OnDelete:CASCADE" json:"-"`
	RevieweeID uint      `gorm:"column:reviewee_id;not null;index" json:"reviewee_id"`
	Reviewee   *User     `gorm:"foreignKey:RevieweeID;constraint:OnDelete:CASCADE" json:"-"`
	ListingID  uint      `gorm:"column:listing_id;not null;uniqueIndex:idx_review_reviewer_listing" json:"listing_id"`
	Listing    *Listing  `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE" json:"-"`
	Rating     int       `gorm:"column:rating;not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string    `gorm:"column:comment" json:"comment"`
	CreatedAt  time.Time `json:"created_at"`
}

func (Review) TableName() string {
	return "reviews"
}

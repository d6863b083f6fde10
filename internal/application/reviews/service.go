package reviews

import (
	"context"
	"errors"
	"strings"

	"secondmarket-backend/internal/models"
	"secondmarket-backend/internal/pkg/validation"

	"gorm.io/gorm"
)

// Service persists buyer→seller reviews tied to completed transactions.
type Service struct {
	DB *gorm.DB
}

// Create records a rating of the listing's seller. The reviewer must have
// an order containing the listing, and may review it only once.
func (s *Service) Create(ctx context.Context, reviewerID, listingID uint, rating int, comment string) (*models.Review, error) {
	if !validation.IsValidRating(rating) {
		return nil, ErrBadRating
	}

	var listing models.Listing
	if err := s.DB.WithContext(ctx).First(&listing, listingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrListingNotFound
		}
		return nil, err
	}

	var orders int64
	err := s.DB.WithContext(ctx).Model(&models.OrderItem{}).
		Joins("JOIN orders ON orders.id = order_items.order_id").
		Where("order_items.listing_id = ? AND orders.user_id = ?", listingID, reviewerID).
		Count(&orders).Error
	if err != nil {
		return nil, err
	}
	if orders == 0 {
		return nil, ErrNoPriorOrder
	}

	var existing int64
	if err := s.DB.WithContext(ctx).Model(&models.Review{}).
		Where("reviewer_id = ? AND listing_id = ?", reviewerID, listingID).
		Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, ErrDuplicateReview
	}

	review := &models.Review{
		ReviewerID: reviewerID,
		RevieweeID: listing.UserID,
		ListingID:  listingID,
		Rating:     rating,
		Comment:    comment,
	}
	if err := s.DB.WithContext(ctx).Create(review).Error; err != nil {
		// Composite unique index backstops a concurrent duplicate.
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(strings.ToLower(err.Error()), "unique") {
			return nil, ErrDuplicateReview
		}
		return nil, err
	}
	return review, nil
}

// View is a review joined with counterpart name and listing title.
type View struct {
	ID           uint   `json:"id"`
	Rating       int    `json:"rating"`
	Comment      string `json:"comment"`
	CreatedAt    string `json:"created_at"`
	Counterpart  string `json:"counterpart_name"`
	ListingTitle string `json:"listing_title"`
}

// Received returns reviews of the user, newest-first.
func (s *Service) Received(ctx context.Context, userID uint) ([]View, error) {
	return s.list(ctx, "reviews.reviewee_id", "reviews.reviewer_id", userID)
}

// Given returns reviews written by the user, newest-first.
func (s *Service) Given(ctx context.Context, userID uint) ([]View, error) {
	return s.list(ctx, "reviews.reviewer_id", "reviews.reviewee_id", userID)
}

func (s *Service) list(ctx context.Context, ownCol, otherCol string, userID uint) ([]View, error) {
	var views []View
	err := s.DB.WithContext(ctx).Model(&models.Review{}).
		Select(`reviews.id, reviews.rating, reviews.comment, reviews.created_at,
			users.name AS counterpart, listings.title AS listing_title`).
		Joins("JOIN users ON users.id = "+otherCol).
		Joins("JOIN listings ON listings.id = reviews.listing_id").
		Where(ownCol+" = ?", userID).
		Order("reviews.created_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

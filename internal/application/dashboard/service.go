package dashboard

import (
	"context"
	"math"

	"secondmarket-backend/internal/models"

	"gorm.io/gorm"
)

// Service aggregates per-user counts for the dashboard page.
type Service struct {
	DB *gorm.DB
}

// Stats is the dashboard payload. SalesCount counts orders that contain at
// least one of the user's listings; AverageRating is rounded to 2dp, 0
// when no review exists.
type Stats struct {
	ListingsCount  int64   `json:"listings_count"`
	UnreadMessages int64   `json:"unread_messages"`
	OrdersCount    int64   `json:"orders_count"`
	SalesCount     int64   `json:"sales_count"`
	AverageRating  float64 `json:"average_rating"`
}

func (s *Service) Stats(ctx context.Context, userID uint) (*Stats, error) {
	var out Stats
	db := s.DB.WithContext(ctx)

	if err := db.Model(&models.Listing{}).Where("user_id = ?", userID).
		Count(&out.ListingsCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Message{}).
		Where("recipient_id = ? AND is_read = ?", userID, false).
		Count(&out.UnreadMessages).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Order{}).Where("user_id = ?", userID).
		Count(&out.OrdersCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.OrderItem{}).
		Joins("JOIN listings ON listings.id = order_items.listing_id").
		Where("listings.user_id = ?", userID).
		Distinct("order_items.order_id").
		Count(&out.SalesCount).Error; err != nil {
		return nil, err
	}

	var avg *float64
	if err := db.Model(&models.Review{}).
		Select("AVG(rating)").Where("reviewee_id = ?", userID).
		Scan(&avg).Error; err != nil {
		return nil, err
	}
	if avg != nil {
		out.AverageRating = math.Round(*avg*100) / 100
	}
	return &out, nil
}

package cart

import (
	"context"
	"encoding/json"
	"errors"

	"secondmarket-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrBadQuantity     = errors.New("Quantity must be a positive integer")
	ErrListingNotFound = errors.New("Listing not found")
)

// Service manages the per-user cart: one row per (user, listing).
type Service struct {
	DB *gorm.DB
}

// Line is a cart row joined with live listing data for display. A listing
// that has been deleted or deactivated degrades to placeholders instead of
// failing the read.
type Line struct {
	ID         uint    `json:"id"`
	ProductID  uint    `json:"product_id"`
	Quantity   int     `json:"quantity"`
	Title      string  `json:"title"`
	Price      float64 `json:"price"`
	Image      *string `json:"image"`
	SellerName string  `json:"seller_name"`
}

// Summary carries the live totals, recomputed on every read.
type Summary struct {
	TotalItems int     `json:"total_items"`
	TotalPrice float64 `json:"total_price"`
}

type cartRow struct {
	ID          uint
	ListingID   uint
	Quantity    int
	Title       *string
	Price       *float64
	Images      *string
	SellerName  *string
	ListStatus  *string
}

// Get returns every cart line with current listing title/price/first
// image/seller name, plus derived totals.
func (s *Service) Get(ctx context.Context, userID uint) ([]Line, Summary, error) {
	var rows []cartRow
	err := s.DB.WithContext(ctx).Model(&models.CartItem{}).
		Select(`cart_items.id, cart_items.listing_id, cart_items.quantity,
			listings.title AS title, listings.price AS price, listings.images AS images,
			listings.status AS list_status, users.name AS seller_name`).
		Joins("LEFT JOIN listings ON listings.id = cart_items.listing_id").
		Joins("LEFT JOIN users ON users.id = listings.user_id").
		Where("cart_items.user_id = ?", userID).
		Order("cart_items.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, Summary{}, err
	}

	lines := make([]Line, 0, len(rows))
	var summary Summary
	for _, r := range rows {
		line := Line{
			ID:         r.ID,
			ProductID:  r.ListingID,
			Quantity:   r.Quantity,
			Title:      "Unknown Product",
			SellerName: "Unknown Seller",
		}
		if r.Title != nil && r.ListStatus != nil && *r.ListStatus == models.ListingActive {
			line.Title = *r.Title
			if r.Price != nil {
				line.Price = *r.Price
			}
			if r.SellerName != nil {
				line.SellerName = *r.SellerName
			}
			line.Image = firstImage(r.Images)
		}
		summary.TotalItems += line.Quantity
		summary.TotalPrice += line.Price * float64(line.Quantity)
		lines = append(lines, line)
	}
	return lines, summary, nil
}

// Count returns the summed quantity across all lines.
func (s *Service) Count(ctx context.Context, userID uint) (int, error) {
	var total *int
	err := s.DB.WithContext(ctx).Model(&models.CartItem{}).
		Select("SUM(quantity)").Where("user_id = ?", userID).Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// Add increments an existing line by qty, or inserts a new one. The
// listing must exist and be active; no stock-limit check is performed.
func (s *Service) Add(ctx context.Context, userID, listingID uint, qty int) error {
	if qty < 1 {
		return ErrBadQuantity
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.Listing{}).
		Where("id = ? AND status = ?", listingID, models.ListingActive).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrListingNotFound
	}

	var line models.CartItem
	err := s.DB.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		First(&line).Error
	switch {
	case err == nil:
		return s.DB.WithContext(ctx).Model(&line).
			UpdateColumn("quantity", gorm.Expr("quantity + ?", qty)).Error
	case errors.Is(err, gorm.ErrRecordNotFound):
		return s.DB.WithContext(ctx).Create(&models.CartItem{
			UserID:    userID,
			ListingID: listingID,
			Quantity:  qty,
		}).Error
	default:
		return err
	}
}

// Update sets the quantity exactly; qty <= 0 deletes the line.
func (s *Service) Update(ctx context.Context, userID, listingID uint, qty int) error {
	if qty <= 0 {
		return s.Remove(ctx, userID, listingID)
	}
	return s.DB.WithContext(ctx).Model(&models.CartItem{}).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Update("quantity", qty).Error
}

// Remove deletes one line. Absence is not an error.
func (s *Service) Remove(ctx context.Context, userID, listingID uint) error {
	return s.DB.WithContext(ctx).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Delete(&models.CartItem{}).Error
}

// Clear deletes every line for the user. Idempotent.
func (s *Service) Clear(ctx context.Context, userID uint) error {
	return s.DB.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.CartItem{}).Error
}

func firstImage(raw *string) *string {
	if raw == nil || *raw == "" {
		return nil
	}
	var arr []string
	if err := json.Unmarshal([]byte(*raw), &arr); err != nil || len(arr) == 0 {
		return nil
	}
	return &arr[0]
}

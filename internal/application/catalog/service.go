package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"secondmarket-backend/internal/models"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Service implements the listings catalog: browse/search plus owner CRUD.
type Service struct {
	DB *gorm.DB
}

// ListFilters narrows the shop page query. Category is an exact match
// ("All" disables it); Search is a case-insensitive substring match over
// title, description and location.
type ListFilters struct {
	Category string
	Search   string
	Limit    int
	Offset   int
}

// ListingView is a listing joined with its seller for read endpoints.
type ListingView struct {
	models.Listing
	SellerName  string `json:"seller_name"`
	SellerEmail string `json:"seller_email"`
}

// ListPage is one page of active listings plus the total for the same
// filters ignoring limit/offset.
type ListPage struct {
	Listings []ListingView `json:"listings"`
	Total    int64         `json:"total"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

func (s *Service) List(ctx context.Context, f ListFilters) (*ListPage, error) {
	if f.Limit <= 0 || f.Limit > 100 {
		f.Limit = 50
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	base := s.DB.WithContext(ctx).Model(&models.Listing{}).
		Where("listings.status = ?", models.ListingActive)
	if f.Category != "" && f.Category != "All" {
		base = base.Where("listings.category = ?", f.Category)
	}
	if f.Search != "" {
		term := "%" + strings.ToLower(f.Search) + "%"
		base = base.Where(
			"LOWER(listings.title) LIKE ? OR LOWER(listings.description) LIKE ? OR LOWER(listings.location) LIKE ?",
			term, term, term,
		)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, err
	}

	var rows []ListingView
	err := base.Session(&gorm.Session{}).
		Select("listings.*, users.name AS seller_name, users.email AS seller_email").
		Joins("JOIN users ON users.id = listings.user_id").
		Order("listings.created_at DESC").
		Limit(f.Limit).Offset(f.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for i := range rows {
		rows[i].Images = normalizeImages(rows[i].Images)
	}
	return &ListPage{Listings: rows, Total: total, Limit: f.Limit, Offset: f.Offset}, nil
}

// CreateInput carries the fields a seller provides for a new listing.
type CreateInput struct {
	Title       string
	Description string
	Price       float64
	Category    string
	Condition   string
	Location    string
	Images      []string
}

func (s *Service) Create(ctx context.Context, ownerID uint, in CreateInput) (*models.Listing, error) {
	if in.Title == "" || in.Price < 0 {
		return nil, ErrBadInput
	}
	if in.Images == nil {
		in.Images = []string{}
	}
	imgs, err := json.Marshal(in.Images)
	if err != nil {
		return nil, ErrBadInput
	}
	listing := &models.Listing{
		UserID:        ownerID,
		Title:         in.Title,
		Description:   in.Description,
		Price:         in.Price,
		Category:      in.Category,
		ConditionType: in.Condition,
		Location:      in.Location,
		Images:        datatypes.JSON(imgs),
		Status:        models.ListingActive,
	}
	if err := s.DB.WithContext(ctx).Create(listing).Error; err != nil {
		return nil, err
	}
	return listing, nil
}

// GetMine returns the owner's listings newest-first, regardless of status.
func (s *Service) GetMine(ctx context.Context, ownerID uint) ([]models.Listing, error) {
	var listings []models.Listing
	if err := s.DB.WithContext(ctx).Where("user_id = ?", ownerID).
		Order("created_at DESC").Find(&listings).Error; err != nil {
		return nil, err
	}
	for i := range listings {
		listings[i].Images = normalizeImages(listings[i].Images)
	}
	return listings, nil
}

// Get returns one active listing with seller info and bumps its view
// counter. The increment is fire-and-forget relative to the read.
func (s *Service) Get(ctx context.Context, id uint) (*ListingView, error) {
	var row ListingView
	err := s.DB.WithContext(ctx).Model(&models.Listing{}).
		Select("listings.*, users.name AS seller_name, users.email AS seller_email").
		Joins("JOIN users ON users.id = listings.user_id").
		Where("listings.id = ? AND listings.status = ?", id, models.ListingActive).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	if row.ID == 0 {
		return nil, ErrNotFound
	}
	s.DB.WithContext(ctx).Model(&models.Listing{}).Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1"))
	row.Views++
	row.Images = normalizeImages(row.Images)
	return &row, nil
}

// UpdateInput holds partial-update fields; nil means "leave untouched".
type UpdateInput struct {
	Title       *string
	Description *string
	Price       *float64
	Category    *string
	Condition   *string
	Location    *string
	Images      []string
	Status      *string
}

func (s *Service) Update(ctx context.Context, ownerID, id uint, in UpdateInput) error {
	var listing models.Listing
	if err := s.DB.WithContext(ctx).First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if listing.UserID != ownerID {
		return ErrForbidden
	}

	updates := map[string]interface{}{}
	if in.Title != nil {
		updates["title"] = *in.Title
	}
	if in.Description != nil {
		updates["description"] = *in.Description
	}
	if in.Price != nil {
		if *in.Price < 0 {
			return ErrBadInput
		}
		updates["price"] = *in.Price
	}
	if in.Category != nil {
		updates["category"] = *in.Category
	}
	if in.Condition != nil {
		updates["condition_type"] = *in.Condition
	}
	if in.Location != nil {
		updates["location"] = *in.Location
	}
	if in.Images != nil {
		imgs, err := json.Marshal(in.Images)
		if err != nil {
			return ErrBadInput
		}
		updates["images"] = datatypes.JSON(imgs)
	}
	if in.Status != nil {
		switch *in.Status {
		case models.ListingActive, models.ListingSold, models.ListingInactive:
			updates["status"] = *in.Status
		default:
			return ErrBadInput
		}
	}
	if len(updates) == 0 {
		return ErrNoFields
	}
	updates["updated_at"] = time.Now()
	return s.DB.WithContext(ctx).Model(&listing).Updates(updates).Error
}

func (s *Service) Delete(ctx context.Context, ownerID, id uint) error {
	var listing models.Listing
	if err := s.DB.WithContext(ctx).First(&listing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if listing.UserID != ownerID {
		return ErrForbidden
	}
	// Order-line history is decoupled from listings, so a hard delete
	// never orphans a snapshot.
	return s.DB.WithContext(ctx).Delete(&listing).Error
}

// normalizeImages guarantees the wire format is a JSON array.
func normalizeImages(raw datatypes.JSON) datatypes.JSON {
	if len(raw) == 0 {
		return datatypes.JSON([]byte("[]"))
	}
	var arr []string
	if err := json.Unmarshal(raw, &arr); err != nil {
		return datatypes.JSON([]byte("[]"))
	}
	return raw
}

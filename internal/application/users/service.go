package users

import (
	"context"
	"errors"

	"secondmarket-backend/internal/models"
	"secondmarket-backend/internal/pkg/validation"

	"gorm.io/gorm"
)

var (
	ErrEmailTaken   = errors.New("Email already taken by another user")
	ErrInvalidInput = errors.New("Invalid name or email")
)

// Service covers profile maintenance and user directory reads.
type Service struct {
	DB *gorm.DB
}

// UpdateProfile changes name and email. The email must not belong to any
// other user.
func (s *Service) UpdateProfile(ctx context.Context, userID uint, name, email string) (*models.User, error) {
	if !validation.IsValidName(name) || !validation.IsValidEmail(email) {
		return nil, ErrInvalidInput
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("email = ? AND id != ?", email, userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", userID).
		Updates(map[string]interface{}{"name": name, "email": email}).Error; err != nil {
		return nil, err
	}
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Delete removes the account. Listings, cart rows, orders, messages and
// reviews cascade at the store level.
func (s *Service) Delete(ctx context.Context, userID uint) error {
	return s.DB.WithContext(ctx).Delete(&models.User{}, userID).Error
}

// ListActive returns active users newest-first.
func (s *Service) ListActive(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := s.DB.WithContext(ctx).Where("is_active = ?", true).
		Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountActive returns the number of active users.
func (s *Service) CountActive(ctx context.Context) (int64, error) {
	var count int64
	err := s.DB.WithContext(ctx).Model(&models.User{}).Where("is_active = ?", true).Count(&count).Error
	return count, err
}

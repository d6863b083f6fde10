package auth

import (
	"context"
	"errors"
	"time"

	"secondmarket-backend/internal/models"
	"secondmarket-backend/internal/pkg/validation"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// Service implements registration, login and token resolution.
type Service struct {
	DB       *gorm.DB
	Secret   []byte
	TokenTTL time.Duration
}

// Token is the login response body shape.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Register hashes the password and persists a new active user. The
// duplicate-email check is an exact match against stored emails.
func (s *Service) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	if !validation.IsValidName(name) || !validation.IsValidEmail(email) || !validation.IsValidPassword(password) {
		return nil, ErrInvalidInput
	}

	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
	}
	if err := s.DB.WithContext(ctx).Create(user).Error; err != nil {
		// The unique index catches a concurrent register with the
		// same email.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and issues a signed, time-limited bearer
// token identifying the user by email.
func (s *Service) Login(ctx context.Context, email, password string) (*Token, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ? AND is_active = ?", email, true).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.Email,
		"iat": now.Unix(),
		"exp": now.Add(s.TokenTTL).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
	if err != nil {
		return nil, err
	}
	return &Token{AccessToken: signed, TokenType: "bearer"}, nil
}

// Authenticate resolves a bearer token to the full user record. Fails if
// the token is malformed, expired or signature-invalid, or if the user no
// longer exists or is inactive.
func (s *Service) Authenticate(raw string) (*models.User, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.Secret, nil
	})
	if err != nil || token == nil || !token.Valid {
		return nil, ErrUnauthenticated
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrUnauthenticated
	}
	email, _ := claims["sub"].(string)
	if email == "" {
		return nil, ErrUnauthenticated
	}

	var user models.User
	if err := s.DB.Where("email = ? AND is_active = ?", email, true).First(&user).Error; err != nil {
		return nil, ErrUnauthenticated
	}
	return &user, nil
}

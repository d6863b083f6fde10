package messaging

import (
	"context"
	"errors"

	"secondmarket-backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRecipientNotFound = errors.New("Recipient not found")
	ErrBadInput          = errors.New("Subject and content are required")
)

// Service persists user-to-user messages with read state.
type Service struct {
	DB *gorm.DB
}

// Send stores a message from sender to recipient, optionally tied to a
// listing.
func (s *Service) Send(ctx context.Context, senderID, recipientID uint, subject, content string, listingID *uint) (*models.Message, error) {
	if subject == "" || content == "" {
		return nil, ErrBadInput
	}
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND is_active = ?", recipientID, true).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrRecipientNotFound
	}

	msg := &models.Message{
		SenderID:    senderID,
		RecipientID: recipientID,
		Subject:     subject,
		Content:     content,
		ListingID:   listingID,
	}
	if err := s.DB.WithContext(ctx).Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// View is a message joined with the counterpart's name/email and the
// referenced listing title, shaped for inbox/sent reads.
type View struct {
	ID           uint   `json:"id"`
	Subject      string `json:"subject"`
	Content      string `json:"content"`
	IsRead       bool   `json:"is_read"`
	CreatedAt    string `json:"created_at"`
	Counterpart  string `json:"counterpart_name"`
	Email        string `json:"counterpart_email"`
	ListingTitle *string `json:"listing_title"`
}

// Inbox returns received messages newest-first.
func (s *Service) Inbox(ctx context.Context, userID uint) ([]View, error) {
	return s.list(ctx, "messages.recipient_id", "messages.sender_id", userID)
}

// Sent returns sent messages newest-first.
func (s *Service) Sent(ctx context.Context, userID uint) ([]View, error) {
	return s.list(ctx, "messages.sender_id", "messages.recipient_id", userID)
}

func (s *Service) list(ctx context.Context, ownCol, otherCol string, userID uint) ([]View, error) {
	var views []View
	err := s.DB.WithContext(ctx).Model(&models.Message{}).
		Select(`messages.id, messages.subject, messages.content, messages.is_read,
			messages.created_at,
			users.name AS counterpart, users.email AS email,
			listings.title AS listing_title`).
		Joins("JOIN users ON users.id = "+otherCol).
		Joins("LEFT JOIN listings ON listings.id = messages.listing_id").
		Where(ownCol+" = ?", userID).
		Order("messages.created_at DESC").
		Scan(&views).Error
	if err != nil {
		return nil, err
	}
	return views, nil
}

// MarkRead flips is_read on a message the caller received. Rows the caller
// does not own are untouched; that case is not an error.
func (s *Service) MarkRead(ctx context.Context, userID, messageID uint) error {
	return s.DB.WithContext(ctx).Model(&models.Message{}).
		Where("id = ? AND recipient_id = ?", messageID, userID).
		Update("is_read", true).Error
}

package messages

import (
	"errors"
	"strconv"

	"secondmarket-backend/internal/application/messaging"
	"secondmarket-backend/internal/middleware"
	"secondmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *messaging.Service
}

// POST /api/messages
func (h *Handlers) Send(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	var body struct {
		RecipientID uint   `json:"recipient_id"`
		Subject     string `json:"subject"`
		Content     string `json:"content"`
		ListingID   *uint  `json:"listing_id"`
	}
	if err := c.BodyParser(&body); err != nil || body.RecipientID == 0 {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	msg, err := h.Service.Send(c.Context(), user.ID, body.RecipientID, body.Subject, body.Content, body.ListingID)
	if err != nil {
		switch {
		case errors.Is(err, messaging.ErrBadInput):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, messaging.ErrRecipientNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Message sent successfully", msg, nil)
}

// GET /api/messages/inbox
func (h *Handlers) Inbox(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	msgs, err := h.Service.Inbox(c.Context(), user.ID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Inbox fetched successfully", msgs, nil)
}

// GET /api/messages/sent
func (h *Handlers) Sent(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	msgs, err := h.Service.Sent(c.Context(), user.ID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Sent messages fetched successfully", msgs, nil)
}

// PUT /api/messages/:id/read
func (h *Handlers) MarkRead(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	id, err := strconv.ParseUint(c.Params("id"), 10, 64)
	if err != nil || id == 0 {
		return response.Error(c, "Invalid message id", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.MarkRead(c.Context(), user.ID, uint(id)); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Message marked as read", fiber.Map{"id": id}, nil)
}

package reviews

import (
	"errors"

	reviewsvc "secondmarket-backend/internal/application/reviews"
	"secondmarket-backend/internal/middleware"
	"secondmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *reviewsvc.Service
}

// POST /api/reviews
func (h *Handlers) Create(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	var body struct {
		ListingID uint   `json:"listing_id"`
		Rating    int    `json:"rating"`
		Comment   string `json:"comment"`
	}
	if err := c.BodyParser(&body); err != nil || body.ListingID == 0 {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	review, err := h.Service.Create(c.Context(), user.ID, body.ListingID, body.Rating, body.Comment)
	if err != nil {
		switch {
		case errors.Is(err, reviewsvc.ErrBadRating), errors.Is(err, reviewsvc.ErrNoPriorOrder):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, reviewsvc.ErrListingNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case errors.Is(err, reviewsvc.ErrDuplicateReview):
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Review submitted successfully", review, nil)
}

// GET /api/reviews/received
func (h *Handlers) Received(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	views, err := h.Service.Received(c.Context(), user.ID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Reviews fetched successfully", views, nil)
}

// GET /api/reviews/given
func (h *Handlers) Given(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	views, err := h.Service.Given(c.Context(), user.ID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Reviews fetched successfully", views, nil)
}

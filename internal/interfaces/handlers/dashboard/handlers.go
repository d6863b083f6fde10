package dashboard

import (
	dashsvc "secondmarket-backend/internal/application/dashboard"
	"secondmarket-backend/internal/middleware"
	"secondmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *dashsvc.Service
}

// GET /api/dashboard/stats
func (h *Handlers) Stats(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	stats, err := h.Service.Stats(c.Context(), user.ID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Dashboard stats fetched", stats, nil)
}

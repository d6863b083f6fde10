package health

import (
	"context"

	healthsvc "secondmarket-backend/internal/health"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Rdb *redis.Client
	DB  healthsvc.DBPinger
}

// GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := healthsvc.Collect(context.Background(), h.Rdb, h.DB)
	return c.JSON(fiber.Map{
		"service":      "secondmarket-api",
		"status":       result.Status,
		"runtime":      result.Runtime,
		"traffic":      result.Traffic,
		"dependencies": result.Dependencies,
	})
}

// GET / — welcome banner
func Welcome(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"message": "Welcome to the SecondMarket API",
		"docs":    "/health/json",
	})
}

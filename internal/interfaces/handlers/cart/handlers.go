package cart

import (
	"errors"

	cartsvc "secondmarket-backend/internal/application/cart"
	"secondmarket-backend/internal/middleware"
	"secondmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *cartsvc.Service
}

// GET /api/cart — lines plus live totals
func (h *Handlers) Get(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	lines, summary, err := h.Service.Get(c.Context(), user.ID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Cart fetched successfully", fiber.Map{
		"cart_items": lines,
		"summary":    summary,
	}, nil)
}

// GET /api/cart/count
func (h *Handlers) Count(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	count, err := h.Service.Count(c.Context(), user.ID)
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Cart count fetched", fiber.Map{"count": count}, nil)
}

type lineBody struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

// POST /api/cart/add — increments an existing line
func (h *Handlers) Add(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	var body lineBody
	if err := c.BodyParser(&body); err != nil || body.ProductID == 0 {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if body.Quantity == 0 {
		body.Quantity = 1
	}

	if err := h.Service.Add(c.Context(), user.ID, body.ProductID, body.Quantity); err != nil {
		switch {
		case errors.Is(err, cartsvc.ErrBadQuantity):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, cartsvc.ErrListingNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Item added to cart", fiber.Map{"product_id": body.ProductID}, nil)
}

// PUT /api/cart/update — sets quantity exactly; zero or less removes
func (h *Handlers) Update(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	var body lineBody
	if err := c.BodyParser(&body); err != nil || body.ProductID == 0 {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Update(c.Context(), user.ID, body.ProductID, body.Quantity); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Cart updated", fiber.Map{"product_id": body.ProductID}, nil)
}

// DELETE /api/cart/remove
func (h *Handlers) Remove(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	var body lineBody
	if err := c.BodyParser(&body); err != nil || body.ProductID == 0 {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if err := h.Service.Remove(c.Context(), user.ID, body.ProductID); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Item removed from cart", fiber.Map{"product_id": body.ProductID}, nil)
}

// DELETE /api/cart/clear
func (h *Handlers) Clear(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.Service.Clear(c.Context(), user.ID); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Cart cleared", fiber.Map{"cleared": true}, nil)
}

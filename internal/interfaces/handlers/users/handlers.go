package users

import (
	"errors"

	usersvc "secondmarket-backend/internal/application/users"
	"secondmarket-backend/internal/middleware"
	"secondmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *usersvc.Service
}

// GET /api/profile
func (h *Handlers) Profile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	return response.Success(c, "Profile fetched successfully", user.Public(), nil)
}

// PUT /api/profile
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	var body struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	updated, err := h.Service.UpdateProfile(c.Context(), user.ID, body.Name, body.Email)
	if err != nil {
		switch {
		case errors.Is(err, usersvc.ErrInvalidInput):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, usersvc.ErrEmailTaken):
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Profile updated successfully", updated.Public(), nil)
}

// DELETE /api/profile
func (h *Handlers) DeleteProfile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)
	if err := h.Service.Delete(c.Context(), user.ID); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Account deleted successfully", fiber.Map{"deleted": true}, nil)
}

// GET /api/users
func (h *Handlers) List(c *fiber.Ctx) error {
	users, err := h.Service.ListActive(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	out := make([]map[string]interface{}, 0, len(users))
	for i := range users {
		out = append(out, users[i].Public())
	}
	return response.Success(c, "Users fetched successfully", out, nil)
}

// GET /api/users/count
func (h *Handlers) Count(c *fiber.Ctx) error {
	count, err := h.Service.CountActive(c.Context())
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "User count fetched", fiber.Map{"count": count}, nil)
}

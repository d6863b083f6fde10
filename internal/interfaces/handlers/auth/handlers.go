package auth

import (
	"errors"

	authsvc "secondmarket-backend/internal/application/auth"
	"secondmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *authsvc.Service
}

// POST /api/register — 201 with the public user projection
func (h *Handlers) Register(c *fiber.Ctx) error {
	var body struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.Register(c.Context(), body.Name, body.Email, body.Password)
	if err != nil {
		switch {
		case errors.Is(err, authsvc.ErrInvalidInput):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, authsvc.ErrEmailTaken):
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "User registered successfully", user.Public(), nil)
}

// POST /api/login — bearer token on success, 401 with challenge otherwise
func (h *Handlers) Login(c *fiber.Ctx) error {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	token, err := h.Service.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, authsvc.ErrInvalidCredentials) {
			return response.Unauthorized(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Login successful", token, nil)
}

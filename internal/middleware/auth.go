package middleware

import (
	"strings"

	"secondmarket-backend/internal/models"
	"secondmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// Authenticator resolves a bearer token to a user record. Implemented by
// the auth service; an interface here so handler tests can stub it.
type Authenticator interface {
	Authenticate(token string) (*models.User, error)
}

// RequireAuth extracts the bearer token, resolves it to a user and stores
// the record in Locals. 401 with a WWW-Authenticate challenge on any
// failure: missing header, malformed token, bad signature, expiry, or a
// user that no longer exists or is inactive.
func RequireAuth(auth Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c.Get(fiber.HeaderAuthorization))
		if raw == "" {
			return response.Unauthorized(c, "Could not validate credentials")
		}
		user, err := auth.Authenticate(raw)
		if err != nil {
			return response.Unauthorized(c, "Could not validate credentials")
		}
		c.Locals(userLocal, user)
		return c.Next()
	}
}

// CurrentUser returns the authenticated user set by RequireAuth.
func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(userLocal).(*models.User)
	return u
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

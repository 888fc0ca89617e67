package auth

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/pinktech/kounty-api/internal/domain"
	"github.com/pinktech/kounty-api/pkg/errorutil"
)

const userKey = "auth_user"

// Middleware enforces bearer authentication on protected routes.
type Middleware struct {
	authenticator *Authenticator
}

// NewMiddleware constructs middleware around the session authenticator.
func NewMiddleware(authenticator *Authenticator) *Middleware {
	return &Middleware{authenticator: authenticator}
}

// Handle extracts the bearer token, authenticates it and stores the user for
// downstream handlers.
func (m *Middleware) Handle(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return errorutil.NewUnauthorized("El usuario no esta autenticado.")
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return errorutil.NewUnauthorized("El usuario no esta autenticado.")
	}

	user, err := m.authenticator.Authenticate(c.UserContext(), parts[1])
	if err != nil {
		return err
	}

	c.Locals(userKey, user)
	return c.Next()
}

// UserFromContext retrieves the authenticated user.
func UserFromContext(c *fiber.Ctx) (*domain.User, bool) {
	val := c.Locals(userKey)
	if val == nil {
		return nil, false
	}
	user, ok := val.(*domain.User)
	return user, ok
}

// APIKeyMiddleware verifies that the incoming request carries the shared
// x-api-key header identifying a known client.
func APIKeyMiddleware(apiKey string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		provided := c.Get("x-api-key")
		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(apiKey)) != 1 {
			return errorutil.NewUnauthorized("No autorizado, la llave de autenticación api no fue enviada.")
		}
		return c.Next()
	}
}

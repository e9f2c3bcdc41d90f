package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"pressroom/internal/auth"
)

// IdentityLocalKey is the key the authenticated caller is stored under in
// Fiber's context locals.
const IdentityLocalKey = "identity"

// TokenVerifier checks a bearer token and returns the caller it names.
type TokenVerifier interface {
	Verify(token string) (auth.Identity, error)
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(c *fiber.Ctx) (string, bool) {
	h := c.Get(fiber.HeaderAuthorization)
	scheme, token, found := strings.Cut(h, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticate rejects the request with 401 unless it carries a valid bearer
// token. On success the caller is available through IdentityFrom.
func Authenticate(v TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		id, err := v.Verify(token)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, auth.ErrInvalidToken.Error())
		}
		c.Locals(IdentityLocalKey, id)
		return c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is present and never
// rejects the request.
func OptionalAuth(v TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token, ok := bearerToken(c); ok {
			if id, err := v.Verify(token); err == nil {
				c.Locals(IdentityLocalKey, id)
			}
		}
		return c.Next()
	}
}

// RequireAdmin must run after Authenticate. Callers without the admin role
// get 403.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := IdentityFrom(c)
		if !ok {
			return fiber.NewError(fiber.StatusUnauthorized, "authentication required")
		}
		if !id.IsAdmin() {
			return fiber.NewError(fiber.StatusForbidden, "admin access required")
		}
		return c.Next()
	}
}

// IdentityFrom returns the caller stored by Authenticate or OptionalAuth.
func IdentityFrom(c *fiber.Ctx) (auth.Identity, bool) {
	id, ok := c.Locals(IdentityLocalKey).(auth.Identity)
	return id, ok
}

// Package middleware provides shared request processing for handlers:
// session authentication, role gating, response caching and rate limiting.
package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/Moha2000-dev/Flight-Management-Company/internal/model"
)

// TokenValidator resolves a bearer token to the authenticated user.  The
// auth service is the production implementation; tests supply a fake.
type TokenValidator interface {
	ValidateToken(ctx context.Context, token string) (model.User, error)
}

// BearerToken extracts the raw token from an Authorization header.  The
// empty string means the header was absent or not a Bearer scheme.
func BearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if !strings.HasPrefix(auth, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

// SessionAuth returns a middleware that validates the Bearer token against
// the session store and injects "user_id" and "role" into the request
// context.  Expired or deactivated sessions are rejected with 401; there is
// no grace period once a session row goes inactive.
func SessionAuth(tokens TokenValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := BearerToken(c)
			if token == "" {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
			defer cancel()
			u, err := tokens.ValidateToken(ctx, token)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
			}
			c.Set("user_id", u.ID)
			c.Set("role", string(u.Role))
			return next(c)
		}
	}
}

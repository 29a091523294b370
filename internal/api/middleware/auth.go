package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sirpyerre/blog-api/internal/core/domain"
)

// Context keys set by the auth middlewares.
const (
	UserKey  = "user"
	TokenKey = "token"
)

// SessionResolver turns a bearer token into the user it belongs to.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*domain.User, error)
}

// Auth requires a valid bearer token and injects the session user into context.
func Auth(sessions SessionResolver) echo.MiddlewareFunc {
	return authenticate(sessions, true)
}

// OptionalAuth resolves the session when a token is present and lets
// anonymous requests through. A token that is present but invalid is still
// rejected.
func OptionalAuth(sessions SessionResolver) echo.MiddlewareFunc {
	return authenticate(sessions, false)
}

func authenticate(sessions SessionResolver, required bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				if required {
					return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
				}
				return next(c)
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := sessions.ResolveSession(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrUnauthenticated) {
					return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
				}
				return err
			}

			c.Set(UserKey, user)
			c.Set(TokenKey, parts[1])

			return next(c)
		}
	}
}

// CurrentUser returns the session user or nil for anonymous requests.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(UserKey).(*domain.User)
	return user
}

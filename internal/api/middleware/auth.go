package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/displaydynamix/studio-api/internal/api/metrics"
	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
)

// UserContextKey is where the resolved identity lives in the echo context.
const UserContextKey = "current_user"

// Auth resolves the bearer token to the live identity and injects it into
// the context. Every protected request re-runs the full chain (token
// verification plus a fresh store lookup), so role and status changes take
// effect on the very next request. Nothing carries over between requests.
func Auth(auth ports.AuthService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get("Authorization"))
			if !ok {
				metrics.TokenResolutionsTotal.WithLabelValues("unauthenticated").Inc()
				return domain.ErrUnauthenticated
			}

			user, err := auth.CurrentUser(c.Request().Context(), token)
			if err != nil {
				metrics.TokenResolutionsTotal.WithLabelValues("unauthenticated").Inc()
				return err
			}

			metrics.TokenResolutionsTotal.WithLabelValues("success").Inc()
			c.Set(UserContextKey, user)
			return next(c)
		}
	}
}

// bearerToken extracts the credential from an "Authorization: Bearer <tok>"
// header. The scheme comparison is case-insensitive per RFC 6750.
func bearerToken(header string) (string, bool) {
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/displaydynamix/studio-api/internal/core/domain"
)

// RequireRoles enforces role-based access control on a route group. It must
// run after Auth; a request that reaches it without a resolved identity is
// treated as unauthenticated rather than forbidden.
func RequireRoles(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := c.Get(UserContextKey).(*domain.User)
			if !ok {
				return domain.ErrUnauthenticated
			}
			if !user.Role.In(allowed...) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

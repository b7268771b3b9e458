package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/displaydynamix/studio-api/internal/api/middleware"
	"github.com/displaydynamix/studio-api/internal/core/domain"
)

// currentUser extracts the identity resolved by the Auth middleware. Its
// absence means the middleware did not run or did not complete; either way
// the request is unauthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := c.Get(middleware.UserContextKey).(*domain.User)
	if !ok || user == nil {
		return nil, domain.ErrUnauthenticated
	}
	return user, nil
}

package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/displaydynamix/studio-api/internal/api/metrics"
	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
)

// AuthHandler exposes the authentication surface: registration, the two
// login variants, identity introspection and the password-change flow.
type AuthHandler struct {
	auth  ports.AuthService
	users ports.UserService
	// passwordMinLength comes from configuration; validator tags cannot
	// carry runtime values, so the length check lives here.
	passwordMinLength int
}

func NewAuthHandler(auth ports.AuthService, users ports.UserService, passwordMinLength int) *AuthHandler {
	return &AuthHandler{auth: auth, users: users, passwordMinLength: passwordMinLength}
}

func (h *AuthHandler) checkPasswordLength(password string) error {
	if len(password) < h.passwordMinLength {
		return echo.NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("password must be at least %d characters", h.passwordMinLength))
	}
	return nil
}

// Register creates a new account through the self-service path.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.checkPasswordLength(req.Password); err != nil {
		return err
	}

	user, err := h.users.Register(c.Request().Context(), ports.CreateUserInput{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Role:        domain.Role(req.Role),
		Permissions: req.Permissions,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Token is the OAuth2-style password grant: form-encoded credentials in,
// bare bearer token out. It shares authentication semantics with Login and
// differs only in request and response shape.
//
// @Summary      Exchange credentials for a bearer token (OAuth2 password form)
// @Tags         auth
// @Accept       x-www-form-urlencoded
// @Produce      json
// @Param        username  formData  string  true  "Username"
// @Param        password  formData  string  true  "Password"
// @Success      200  {object}  tokenResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/token [post]
func (h *AuthHandler) Token(c echo.Context) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	result, _, err := h.auth.Login(c.Request().Context(), username, password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
	})
}

// Login is the JSON variant of the credential exchange. On top of the token
// it echoes force_password_change so clients can route the user into the
// change-password flow immediately.
//
// @Summary      Login with JSON credentials
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  ports.LoginResult
// @Failure      401   {object}  errorResponse
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	result, _, err := h.auth.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
		}
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, result)
}

// Me returns the identity resolved from the bearer token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  userResponse
// @Failure      401  {object}  errorResponse
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// ChangePassword rotates the caller's password after re-verifying the
// current one. A wrong current password is a 400: the caller is already
// authenticated, so this is not an authentication failure.
//
// @Summary      Change the current user's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      changePasswordRequest  true  "Current and new password"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Router       /auth/change-password [post]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	user, err := currentUser(c)
	if err != nil {
		return err
	}

	var req changePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := h.checkPasswordLength(req.NewPassword); err != nil {
		return err
	}

	if err := h.auth.ChangePassword(c.Request().Context(), user, req.CurrentPassword, req.NewPassword); err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			metrics.PasswordChangesTotal.WithLabelValues("rejected").Inc()
		}
		return err
	}

	metrics.PasswordChangesTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "Password changed successfully"})
}

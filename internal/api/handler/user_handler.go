package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
)

// UserHandler exposes administrative account management. Every route is
// mounted behind the Auth and RequireRoles(Admin) middleware; the handlers
// themselves assume the role gate already ran.
type UserHandler struct {
	users             ports.UserService
	passwordMinLength int
}

func NewUserHandler(users ports.UserService, passwordMinLength int) *UserHandler {
	return &UserHandler{users: users, passwordMinLength: passwordMinLength}
}

func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func listBounds(c echo.Context) (skip, limit int64) {
	skip, _ = strconv.ParseInt(c.QueryParam("skip"), 10, 64)
	limit, err := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if err != nil || limit <= 0 {
		limit = 100
	}
	return skip, limit
}

// List returns all users.
//
// @Summary      List users (Admin only)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        skip   query  int  false  "Offset"
// @Param        limit  query  int  false  "Page size"
// @Success      200  {array}   userResponse
// @Failure      403  {object}  errorResponse
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	skip, limit := listBounds(c)
	users, err := h.users.List(c.Request().Context(), ports.UserFilter{Skip: skip, Limit: limit})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// ListActive returns all active users.
//
// @Summary      List active users (Admin only)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  userResponse
// @Router       /users/active [get]
func (h *UserHandler) ListActive(c echo.Context) error {
	users, err := h.users.List(c.Request().Context(), ports.UserFilter{ActiveOnly: true})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// ListByRole returns all users holding the given role.
//
// @Summary      List users by role (Admin only)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        role  path  string  true  "Role"  Enums(Admin, Editor, Viewer, Client)
// @Success      200  {array}   userResponse
// @Failure      400  {object}  errorResponse
// @Router       /users/role/{role} [get]
func (h *UserHandler) ListByRole(c echo.Context) error {
	role := domain.Role(c.Param("role"))
	users, err := h.users.List(c.Request().Context(), ports.UserFilter{Role: &role})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponses(users))
}

// Create adds an account through the administrative path: unlike
// self-registration, the force_password_change flag is taken from the
// payload as-is.
//
// @Summary      Create a user (Admin only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createUserRequest  true  "User details"
// @Success      200   {object}  userResponse
// @Failure      409   {object}  errorResponse
// @Router       /users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Password) < h.passwordMinLength {
		return echo.NewHTTPError(http.StatusBadRequest, "password too short")
	}

	user, err := h.users.Create(c.Request().Context(), ports.CreateUserInput{
		Username:            req.Username,
		Email:               req.Email,
		Password:            req.Password,
		Role:                domain.Role(req.Role),
		Permissions:         req.Permissions,
		ForcePasswordChange: req.ForcePasswordChange,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Get returns one user by id.
//
// @Summary      Get a user (Admin only)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update applies a sparse update to a user.
//
// @Summary      Update a user (Admin only)
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  int                true  "User id"
// @Param        body  body  updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      404   {object}  errorResponse
// @Router       /users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if req.Password != nil && len(*req.Password) < h.passwordMinLength {
		return echo.NewHTTPError(http.StatusBadRequest, "password too short")
	}

	user, err := h.users.Update(c.Request().Context(), id, req.toInput())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Delete removes a user.
//
// @Summary      Delete a user (Admin only)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// Activate re-enables an account.
//
// @Summary      Activate a user (Admin only)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id}/activate [post]
func (h *UserHandler) Activate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if _, err := h.users.Activate(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User activated successfully"})
}

// Deactivate disables an account. Outstanding tokens stay valid until
// expiry; the flag only changes what downstream consumers see.
//
// @Summary      Deactivate a user (Admin only)
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "User id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /users/{id}/deactivate [post]
func (h *UserHandler) Deactivate(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if _, err := h.users.Deactivate(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: "User deactivated successfully"})
}

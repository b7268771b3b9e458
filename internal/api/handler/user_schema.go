package handler

import (
	"time"

	"github.com/displaydynamix/studio-api/internal/core/domain"
	"github.com/displaydynamix/studio-api/internal/core/ports"
)

// messageResponse is the envelope for operations with nothing to return.
type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse documents the envelope the central error handler renders.
type errorResponse struct {
	Error string `json:"error"`
}

type registerRequest struct {
	Username    string         `json:"username" validate:"required"`
	Email       string         `json:"email"    validate:"required,email"`
	Password    string         `json:"password" validate:"required"`
	Role        string         `json:"role"     validate:"omitempty,oneof=Admin Editor Viewer Client"`
	Permissions map[string]any `json:"permissions"`
}

type createUserRequest struct {
	Username            string         `json:"username" validate:"required"`
	Email               string         `json:"email"    validate:"required,email"`
	Password            string         `json:"password" validate:"required"`
	Role                string         `json:"role"     validate:"omitempty,oneof=Admin Editor Viewer Client"`
	Permissions         map[string]any `json:"permissions"`
	ForcePasswordChange bool           `json:"force_password_change"`
}

type updateUserRequest struct {
	Username            *string         `json:"username"`
	Email               *string         `json:"email" validate:"omitempty,email"`
	Password            *string         `json:"password"`
	Role                *string         `json:"role"  validate:"omitempty,oneof=Admin Editor Viewer Client"`
	Permissions         *map[string]any `json:"permissions"`
	IsActive            *bool           `json:"is_active"`
	ForcePasswordChange *bool           `json:"force_password_change"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password"     validate:"required"`
}

// tokenResponse is the OAuth2-shaped body returned by the form endpoint.
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type userResponse struct {
	ID                  int64          `json:"id"`
	Username            string         `json:"username"`
	Email               string         `json:"email"`
	Role                string         `json:"role"`
	Permissions         map[string]any `json:"permissions"`
	IsActive            bool           `json:"is_active"`
	ForcePasswordChange bool           `json:"force_password_change"`
	CreatedAt           time.Time      `json:"created_at"`
	UpdatedAt           *time.Time     `json:"updated_at,omitempty"`
}

// toUserResponse maps an identity to its API shape. The password hash never
// appears in any response.
func toUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:                  u.ID,
		Username:            u.Username,
		Email:               u.Email,
		Role:                string(u.Role),
		Permissions:         u.Permissions,
		IsActive:            u.IsActive,
		ForcePasswordChange: u.ForcePasswordChange,
		CreatedAt:           u.CreatedAt,
		UpdatedAt:           u.UpdatedAt,
	}
}

func toUserResponses(users []domain.User) []userResponse {
	out := make([]userResponse, 0, len(users))
	for i := range users {
		out = append(out, toUserResponse(&users[i]))
	}
	return out
}

func (r updateUserRequest) toInput() ports.UpdateUserInput {
	input := ports.UpdateUserInput{
		Username:            r.Username,
		Email:               r.Email,
		Password:            r.Password,
		Permissions:         r.Permissions,
		IsActive:            r.IsActive,
		ForcePasswordChange: r.ForcePasswordChange,
	}
	if r.Role != nil {
		role := domain.Role(*r.Role)
		input.Role = &role
	}
	return input
}

package ports

import (
	"context"

	"github.com/displaydynamix/studio-api/internal/core/domain"
)

// CreateUserInput carries everything needed to create an account. Role
// defaults to Viewer when empty.
type CreateUserInput struct {
	Username    string
	Email       string
	Password    string
	Role        domain.Role
	Permissions map[string]any
	// ForcePasswordChange is honored only on the administrative creation
	// path; self-registration always forces it to true.
	ForcePasswordChange bool
}

// UpdateUserInput is a sparse administrative update. Nil fields are left
// untouched; a non-nil Password is rehashed before storage.
type UpdateUserInput struct {
	Username            *string
	Email               *string
	Password            *string
	Role                *domain.Role
	Permissions         *map[string]any
	IsActive            *bool
	ForcePasswordChange *bool
}

// UserService manages account records and their lifecycle transitions.
type UserService interface {
	// Register is the self-service creation path: force_password_change is
	// always set regardless of input.
	Register(ctx context.Context, input CreateUserInput) (*domain.User, error)
	// Create is the administrative path: the supplied
	// ForcePasswordChange value is passed through as-is.
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)
	Get(ctx context.Context, id int64) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)
	Update(ctx context.Context, id int64, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, id int64) error
	// Activate and Deactivate flip is_active. Both are idempotent and
	// succeed whenever the user exists.
	Activate(ctx context.Context, id int64) (*domain.User, error)
	Deactivate(ctx context.Context, id int64) (*domain.User, error)
}

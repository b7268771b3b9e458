package ports

import (
	"context"

	"github.com/displaydynamix/studio-api/internal/core/domain"
)

// UserPatch is the explicit whitelist of fields a repository update may
// touch. Pointer fields distinguish "leave alone" (nil) from "set to zero
// value". ID and CreatedAt are deliberately absent: they are immutable and
// cannot be smuggled in through a generic merge.
type UserPatch struct {
	Username            *string
	Email               *string
	PasswordHash        *string
	Role                *domain.Role
	Permissions         *map[string]any
	IsActive            *bool
	ForcePasswordChange *bool
}

// Empty reports whether the patch would change nothing.
func (p UserPatch) Empty() bool {
	return p.Username == nil && p.Email == nil && p.PasswordHash == nil &&
		p.Role == nil && p.Permissions == nil && p.IsActive == nil &&
		p.ForcePasswordChange == nil
}

// UserFilter narrows List results. Zero value lists everyone.
type UserFilter struct {
	Role       *domain.Role
	ActiveOnly bool
	Skip       int64
	Limit      int64
}

// UserRepository is the credential store consumed by the auth core. Lookups
// return domain.ErrUserNotFound when no record matches; Insert assigns the
// ID and CreatedAt and reports domain.ErrUsernameTaken / domain.ErrEmailTaken
// on uniqueness violations.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Insert(ctx context.Context, user *domain.User) (*domain.User, error)
	Update(ctx context.Context, id int64, patch UserPatch) (*domain.User, error)
	List(ctx context.Context, filter UserFilter) ([]domain.User, error)
	Delete(ctx context.Context, id int64) error
}

package ports

import (
	"context"

	"github.com/displaydynamix/studio-api/internal/core/domain"
)

// LoginResult is what a successful credential exchange yields.
type LoginResult struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	// ForcePasswordChange tells the client it should route the user into
	// the change-password flow before normal use.
	ForcePasswordChange bool `json:"force_password_change"`
}

// AuthService is the authentication core: credential checks, token issuance,
// bearer resolution and the password-change flow.
type AuthService interface {
	// Authenticate validates username+password against the store. Unknown
	// usernames and wrong passwords both return domain.ErrUnauthenticated;
	// a success returns the stored identity unmodified.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)

	// Login authenticates and mints a bearer token. Both the OAuth2 form
	// endpoint and the JSON endpoint call this; only the response shape
	// differs at the handler.
	Login(ctx context.Context, username, password string) (*LoginResult, *domain.User, error)

	// CurrentUser resolves a bearer token to the live identity: token
	// signature+expiry check, then a fresh store lookup by subject. Role
	// and status decisions downstream always see current values, never
	// ones embedded in the token.
	CurrentUser(ctx context.Context, token string) (*domain.User, error)

	// ChangePassword verifies current and replaces the stored hash with a
	// hash of next, clearing the force-password-change flag. A mismatched
	// current password returns domain.ErrInvalidCredentials and leaves the
	// stored hash untouched.
	ChangePassword(ctx context.Context, user *domain.User, current, next string) error
}

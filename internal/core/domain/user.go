package domain

import "time"

// User models a stored identity: credentials, role and account status.
type User struct {
	ID           int64          `json:"id"`
	Username     string         `json:"username"`
	Email        string         `json:"email"`
	PasswordHash string         `json:"-"`
	Role         Role           `json:"role"`
	Permissions  map[string]any `json:"permissions"`
	IsActive     bool           `json:"is_active"`
	// ForcePasswordChange marks accounts that must run the change-password
	// flow before normal use. Enforcement of that requirement is a client
	// responsibility; the API only carries the flag.
	ForcePasswordChange bool       `json:"force_password_change"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           *time.Time `json:"updated_at,omitempty"`
}

// CanModify reports whether u may mutate a resource created by ownerID.
// Owners and admins pass; everyone else is forbidden.
func (u *User) CanModify(ownerID int64) bool {
	return u.ID == ownerID || u.Role.IsAdmin()
}

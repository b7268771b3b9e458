package domain

// Role is the closed set of access levels a user can hold. It is the sole
// axis for coarse-grained authorization decisions.
type Role string

const (
	RoleAdmin  Role = "Admin"
	RoleEditor Role = "Editor"
	RoleViewer Role = "Viewer"
	RoleClient Role = "Client"
)

// DefaultRole is assigned when a creation request carries no role.
const DefaultRole = RoleViewer

// ParseRole maps a raw string to a Role, reporting whether it is one of the
// four known values.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleEditor, RoleViewer, RoleClient:
		return Role(s), true
	}
	return "", false
}

// Valid reports whether r is one of the enumerated roles.
func (r Role) Valid() bool {
	_, ok := ParseRole(string(r))
	return ok
}

// In reports whether r is contained in allowed. All role checks in the
// service and middleware layers go through this single predicate.
func (r Role) In(allowed ...Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}

// IsAdmin is shorthand for the admin-override checks used by ownership rules.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

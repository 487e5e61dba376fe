package domain

// Role is the closed set of privilege levels a user can hold.
type Role string

const (
	RoleUser       Role = "user"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "super_admin"
)

// ParseRole maps a stored or claimed role name onto the closed set. Unknown
// names yield ok=false rather than silently degrading to RoleUser.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return Role(s), true
	default:
		return "", false
	}
}

// IsAdmin reports whether the role carries admin privileges.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// IsSuperAdmin reports whether the role is exactly super_admin.
func (r Role) IsSuperAdmin() bool {
	return r == RoleSuperAdmin
}

func (r Role) String() string { return string(r) }

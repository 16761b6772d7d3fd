// Package authorization defines the account role enumeration and the
// account-state gate applied on every authentication and reissue path.
package authorization

// UserRole is the role snapshot carried inside issued tokens. BAD and EXIT
// are terminal moderation states: identities are never hard-deleted, they
// transition to EXIT instead.
type UserRole string

const (
	RoleUser  UserRole = "USER"
	RoleAdmin UserRole = "ADMIN"
	RoleBad   UserRole = "BAD"
	RoleExit  UserRole = "EXIT"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

// CanAuthenticate reports whether an account in this role may receive tokens.
// BAD and EXIT accounts fail the gate even with correct credentials.
func (r UserRole) CanAuthenticate() bool {
	return r == RoleUser || r == RoleAdmin
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleBad, RoleExit:
		return true
	}
	return false
}

// ParseUserRole maps a string to a UserRole, defaulting to USER for
// unknown input.
func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleUser
}

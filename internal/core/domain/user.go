package domain

// UserRole is the application-level role a principal selects for itself.
type UserRole string

const (
	RoleBusinessOwner UserRole = "businessOwner"
	RoleCustomer      UserRole = "customer"
)

// IsValid reports whether the role is a known UserRole.
func (r UserRole) IsValid() bool {
	switch r {
	case RoleBusinessOwner, RoleCustomer:
		return true
	}
	return false
}

// AdminRole is the administrative role axis, orthogonal to UserRole.
// Every principal has one; guest is the default for principals that
// were never granted anything.
type AdminRole string

const (
	AdminRoleAdmin AdminRole = "admin"
	AdminRoleUser  AdminRole = "user"
	AdminRoleGuest AdminRole = "guest"
)

// IsValid reports whether the role is a known AdminRole.
func (r AdminRole) IsValid() bool {
	switch r {
	case AdminRoleAdmin, AdminRoleUser, AdminRoleGuest:
		return true
	}
	return false
}

// UserProfile is the principal-keyed profile record. It is created on the
// first explicit save and never implicitly by queue operations.
type UserProfile struct {
	Principal string   `json:"principal"`
	Name      string   `json:"name"`
	Role      UserRole `json:"role"`
}

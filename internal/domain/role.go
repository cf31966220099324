package domain

// Role names carried in user records and JWT claims.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether name is a known role.
func ValidRole(name string) bool {
	return name == RoleAdmin || name == RoleUser
}

package user

import "time"

// Roles assignable to a user. Accounts default to RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an account synchronized from the identity provider.
// Optional fields (Username, Phone, Location, Image) hold the empty string
// when the provider did not supply them.
type User struct {
	ID        string
	ClerkID   string
	Username  string
	Name      string
	Email     string
	Phone     string
	Location  string
	Role      string
	Image     string
	CreatedAt time.Time
}

// ValidRole reports whether role is one of the recognised role values.
func ValidRole(role string) bool {
	return role == RoleUser || role == RoleAdmin
}

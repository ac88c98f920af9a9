package models

// Role values are the literal strings stored on the user row and copied
// into token claims at sign-in.
const (
	RoleAdmin = "ADMIN"
	RoleUser  = "USER"
)

// ValidRole reports whether role is one of the known role literals.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User is a registered account. Username and Role are immutable after creation.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // don’t expose hash
	Role         string `json:"role"`
}

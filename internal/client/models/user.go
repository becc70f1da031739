package models

// RoleAdmin is the role string that unlocks the admin workbench.
const RoleAdmin = "admin"

// User is the authenticated account as returned by the auth endpoints
// and cached between commands.
type User struct {
	ID    FlexID `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// IsAdmin is a plain role comparison; real authorization happens server-side.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

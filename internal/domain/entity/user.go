// Package entity contains the core business objects of the project.
package entity

// Role values as the backend reports them.
const (
	RoleUser  = "ROLE_USER"
	RoleAdmin = "ROLE_ADMIN"
)

// User is the locally cached profile of the signed-in account. It is a
// projection of the backend's profile resource and carries no secrets.
type User struct {
	FullName string `json:"fullName"` // The user's display name.
	Email    string `json:"email"`    // Login identifier.
	Phone    string `json:"phone"`    // Optional contact phone.
	Address  string `json:"address"`  // Optional shipping address.
	Role     string `json:"role"`     // Backend role, e.g. "ROLE_ADMIN".
}

// IsAdmin reports whether the account may use the admin surfaces.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

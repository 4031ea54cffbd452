// Package gateway defines the interfaces for the remote backend API.
// These interfaces act as a contract between the application layers and
// the HTTP infrastructure; the backend itself stays an opaque service.
package gateway

import (
	"context"

	"sweetshop/internal/domain/entity"
)

// AuthResult is what the backend returns from a successful login.
type AuthResult struct {
	Token string // The new bearer token.
	Email string // The authenticated account's email.
	Role  string // The backend role, e.g. "ROLE_ADMIN".
}

// ProfileUpdate carries the PATCH /auth/profile payload. Name is always
// sent; nil pointers mean "leave unchanged".
type ProfileUpdate struct {
	Name    string
	Phone   *string
	Address *string
}

// AuthGateway defines the authentication operations of the backend.
// Token refresh is intentionally absent: it belongs to the HTTP client
// itself so it can never pass through its own interceptor.
type AuthGateway interface {
	// Login exchanges credentials for a bearer token.
	Login(ctx context.Context, email, password string) (*AuthResult, error)

	// Register creates a new account. The backend does not return a
	// token; callers log in afterwards.
	Register(ctx context.Context, fullName, email, password string) error

	// Logout invalidates the current token server-side.
	Logout(ctx context.Context) error

	// Profile retrieves the signed-in account's profile.
	Profile(ctx context.Context) (*entity.User, error)

	// UpdateProfile patches the profile and returns the updated view.
	UpdateProfile(ctx context.Context, update ProfileUpdate) (*entity.User, error)
}

// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"sweetshop/internal/domain/entity"
	"sweetshop/internal/domain/service"
)

// LoginInput carries the login form fields.
type LoginInput struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// RegisterInput carries the registration form fields.
type RegisterInput struct {
	FullName string `validate:"required,min=2"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// UpdateProfileInput carries the profile form fields. Nil pointers mean
// "leave unchanged".
type UpdateProfileInput struct {
	Name    string  `validate:"required,min=2"`
	Phone   *string `validate:"omitempty,min=7"`
	Address *string `validate:"omitempty,min=5"`
}

// AuthUsecase defines the interface for account and session operations.
type AuthUsecase interface {
	// Login authenticates, stores the token and caches the profile.
	Login(ctx context.Context, input LoginInput) (*entity.User, error)

	// Register creates an account. It does not sign the user in.
	Register(ctx context.Context, input RegisterInput) error

	// Logout invalidates the token server-side and clears the session.
	// Local state is cleared even when the server call fails.
	Logout(ctx context.Context) error

	// Profile fetches a fresh profile and updates the cache.
	Profile(ctx context.Context) (*entity.User, error)

	// UpdateProfile validates and patches the profile.
	UpdateProfile(ctx context.Context, input UpdateProfileInput) (*entity.User, error)

	// CurrentUser returns the cached profile without a network call.
	CurrentUser() *entity.User

	// IsAuthenticated reports whether a session token is stored.
	IsAuthenticated() bool

	// SessionClaims returns the display claims of the stored token.
	SessionClaims() (*service.TokenClaims, error)
}

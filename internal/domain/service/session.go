// Package service defines interfaces for domain services whose concrete
// implementations live in the infrastructure layer.
package service

import (
	"sweetshop/internal/domain/entity"
)

// AuthListener is notified when the session crosses the authenticated /
// unauthenticated boundary. true means a token just became available,
// false means the session was cleared.
type AuthListener func(authenticated bool)

// Session is the explicit session-context object shared by the HTTP
// client and the stores. It owns the persisted token, cached user and
// cart snapshot; every write is a wholesale overwrite and Clear wipes
// everything at once.
type Session interface {
	// Token returns the stored bearer token, or "" when signed out.
	Token() string

	// SetToken overwrites the stored token. Setting a non-empty token
	// on an unauthenticated session fires listeners with true.
	SetToken(token string) error

	// User returns the cached profile, or nil when signed out.
	User() *entity.User

	// SetUser overwrites the cached profile.
	SetUser(user *entity.User) error

	// CartSnapshot returns the last persisted cart projection.
	CartSnapshot() []*entity.CartItem

	// SetCartSnapshot overwrites the persisted cart projection.
	SetCartSnapshot(items []*entity.CartItem) error

	// IsAuthenticated reports whether a token is currently stored.
	IsAuthenticated() bool

	// Clear wipes token, user and cart snapshot. Fires listeners with
	// false if the session was authenticated.
	Clear() error

	// Subscribe registers a listener for auth-state transitions. Used
	// by the cart store to sync on login and drop state on logout.
	Subscribe(listener AuthListener)
}

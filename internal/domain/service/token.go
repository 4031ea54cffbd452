// Package service defines interfaces for domain services.
package service

import "time"

// TokenClaims is the subset of bearer token claims the client displays.
// The client never verifies signatures; the backend is the authority.
type TokenClaims struct {
	Subject   string    // Account identifier, usually the email.
	Role      string    // Backend role claim.
	ExpiresAt time.Time // Token expiry, zero if the claim is absent.
}

// ExpiresWithin reports whether the claims expire within d. Tokens
// without an exp claim never report as expiring.
func (c *TokenClaims) ExpiresWithin(d time.Duration) bool {
	if c == nil || c.ExpiresAt.IsZero() {
		return false
	}

	return time.Until(c.ExpiresAt) <= d
}

// TokenInspector extracts display claims from an opaque bearer token.
type TokenInspector interface {
	// Claims parses the token without verifying it. Returns an error
	// for tokens that are not structurally valid JWTs.
	Claims(token string) (*TokenClaims, error)
}

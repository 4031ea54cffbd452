// Package gateway defines the interfaces for the remote backend API.
package gateway

import (
	"context"

	"sweetshop/internal/domain/entity"

	"github.com/google/uuid"
)

// CartGateway defines the server-side cart operations. The server is
// the single source of truth for cart contents; every mutation here is
// followed by a fresh Items read in the cart store.
type CartGateway interface {
	// Items retrieves the canonical cart contents.
	Items(ctx context.Context) ([]*entity.CartItem, error)

	// Add puts qty units of a sweet into the cart. If a line for the
	// sweet already exists the server increments it; the server also
	// clamps the resulting quantity to available stock.
	Add(ctx context.Context, sweetID uuid.UUID, qty int) (*entity.CartItem, error)

	// UpdateQuantity sets the absolute quantity of an existing cart
	// line, identified by its server-assigned line ID.
	UpdateQuantity(ctx context.Context, cartItemID uuid.UUID, qty int) error

	// Remove deletes a cart line by its server-assigned line ID.
	Remove(ctx context.Context, cartItemID uuid.UUID) error

	// Clear empties the whole cart.
	Clear(ctx context.Context) error
}

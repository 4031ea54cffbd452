// Package usecase contains the application-specific business rules.
package usecase

import (
	"context"

	"sweetshop/internal/domain/entity"

	"github.com/google/uuid"
)

// CartUsecase is the client-side cart store. Mutations are issued to
// the server and then reconciled by re-fetching the canonical cart, so
// the local view can never drift from server truth for longer than one
// round trip.
type CartUsecase interface {
	// Sync replaces local state with the server's canonical cart, or
	// clears it when unauthenticated. Best-effort: failures are logged,
	// prior state is kept, nothing is returned.
	Sync(ctx context.Context)

	// AddToCart adds one unit of a sweet. An existing line is
	// incremented server-side; the server clamps to available stock.
	AddToCart(ctx context.Context, sweetID uuid.UUID) error

	// RemoveFromCart deletes the line holding the given sweet. A sweet
	// absent locally skips the delete call but still re-syncs.
	RemoveFromCart(ctx context.Context, sweetID uuid.UUID) error

	// UpdateQuantity sets an absolute quantity. Quantities of zero or
	// less behave exactly like RemoveFromCart.
	UpdateQuantity(ctx context.Context, sweetID uuid.UUID, quantity int) error

	// ClearCart empties the server cart and re-syncs.
	ClearCart(ctx context.Context) error

	// Items returns the current local projection.
	Items() []*entity.CartItem

	// TotalPrice sums price times quantity over the local lines.
	TotalPrice() float64

	// TotalItems sums quantities over the local lines.
	TotalItems() int
}

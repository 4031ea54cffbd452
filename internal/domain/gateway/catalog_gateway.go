// Package gateway defines the interfaces for the remote backend API.
package gateway

import (
	"context"

	"sweetshop/internal/domain/entity"

	"github.com/google/uuid"
)

// CatalogGateway defines the product catalog operations of the backend.
// Create, Update, Delete and Restock require an admin token.
type CatalogGateway interface {
	// List retrieves all sweets matching the filter. A zero filter
	// returns the whole catalog.
	List(ctx context.Context, filter entity.SweetFilter) ([]*entity.Sweet, error)

	// Get retrieves a single sweet by its ID.
	Get(ctx context.Context, id uuid.UUID) (*entity.Sweet, error)

	// Create adds a new sweet to the catalog.
	Create(ctx context.Context, sweet *entity.Sweet) (*entity.Sweet, error)

	// Update replaces an existing sweet's fields.
	Update(ctx context.Context, sweet *entity.Sweet) (*entity.Sweet, error)

	// Delete removes a sweet from the catalog.
	Delete(ctx context.Context, id uuid.UUID) error

	// Purchase decrements stock directly, bypassing the cart.
	Purchase(ctx context.Context, id uuid.UUID, qty int) (*entity.Sweet, error)

	// Restock increments available stock.
	Restock(ctx context.Context, id uuid.UUID, qty int) (*entity.Sweet, error)
}

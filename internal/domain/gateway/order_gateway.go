// Package gateway defines the interfaces for the remote backend API.
package gateway

import (
	"context"

	"sweetshop/internal/domain/entity"

	"github.com/google/uuid"
)

// OrderGateway defines the order operations of the backend.
// UpdateStatus and UpdateTracking require an admin token.
type OrderGateway interface {
	// Checkout converts the server-side cart into an order. payment may
	// be nil for a plain checkout without the mocked payment form.
	Checkout(ctx context.Context, payment *entity.PaymentDetails) (*entity.Order, error)

	// List retrieves the signed-in account's order history.
	List(ctx context.Context) ([]*entity.Order, error)

	// Get retrieves a single order by ID.
	Get(ctx context.Context, id uuid.UUID) (*entity.Order, error)

	// UpdateStatus moves an order to a new lifecycle state.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error)

	// UpdateTracking attaches a carrier tracking number.
	UpdateTracking(ctx context.Context, id uuid.UUID, trackingNumber string) (*entity.Order, error)
}

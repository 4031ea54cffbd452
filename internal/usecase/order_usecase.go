package usecase

import (
	"context"

	"sweetshop/internal/domain/entity"

	"github.com/google/uuid"
)

// CheckoutInput carries the mocked payment form submitted at checkout.
type CheckoutInput struct {
	CardNumber      string `validate:"required,len=16,numeric"`
	CardHolder      string `validate:"required,min=2"`
	ExpiryMonth     int    `validate:"required,min=1,max=12"`
	ExpiryYear      int    `validate:"required,min=2024"`
	CVV             string `validate:"required,min=3,max=4,numeric"`
	ShippingAddress string `validate:"required,min=5"`
}

// OrderUsecase turns the server-side cart into orders and reads order
// history for the signed-in account.
type OrderUsecase interface {
	// Checkout validates the payment form and places an order from the
	// server-side cart, which the backend empties on success. A nil
	// input performs a plain checkout without the payment form.
	Checkout(ctx context.Context, input *CheckoutInput) (*entity.Order, error)

	// Orders lists the signed-in account's orders, newest first.
	Orders(ctx context.Context) ([]*entity.Order, error)

	// Order fetches a single order by id.
	Order(ctx context.Context, id uuid.UUID) (*entity.Order, error)
}

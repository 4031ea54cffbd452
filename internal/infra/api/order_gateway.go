package api

import (
	"context"
	"net/url"

	"sweetshop/internal/domain/entity"
	domainerrors "sweetshop/internal/domain/errors"
	"sweetshop/internal/domain/gateway"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// orderGateway implements gateway.OrderGateway over the shared Client.
type orderGateway struct {
	client *Client
}

// NewOrderGateway is the constructor for orderGateway.
func NewOrderGateway(client *Client) gateway.OrderGateway {
	return &orderGateway{client: client}
}

func (g *orderGateway) Checkout(ctx context.Context, payment *entity.PaymentDetails) (*entity.Order, error) {
	var dto orderDTO

	// nil payment stays a bodyless POST, matching the plain checkout.
	var body any
	if payment != nil {
		body = payment
	}

	if err := g.client.Post(ctx, "/orders/checkout", nil, body, &dto); err != nil {
		// Payment details are validated client-side and the cart is known
		// to be non-empty, so a 400 here is the backend declining payment.
		if IsBadRequest(err) {
			return nil, domainerrors.ErrPaymentDeclined
		}

		return nil, errors.Wrap(err, "checkout failed")
	}

	return dto.toEntity(), nil
}

func (g *orderGateway) List(ctx context.Context) ([]*entity.Order, error) {
	var dtos []orderDTO
	if err := g.client.Get(ctx, "/orders", nil, &dtos); err != nil {
		return nil, errors.Wrap(err, "list orders failed")
	}

	return ordersToEntities(dtos), nil
}

func (g *orderGateway) Get(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	var dto orderDTO
	if err := g.client.Get(ctx, "/orders/"+id.String(), nil, &dto); err != nil {
		if IsNotFound(err) {
			return nil, domainerrors.ErrOrderNotFound
		}

		return nil, errors.Wrap(err, "fetch order failed")
	}

	return dto.toEntity(), nil
}

func (g *orderGateway) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	query := url.Values{"status": []string{string(status)}}

	var dto orderDTO
	if err := g.client.Put(ctx, "/orders/"+id.String()+"/status", query, nil, &dto); err != nil {
		if IsNotFound(err) {
			return nil, domainerrors.ErrOrderNotFound
		}
		if IsForbidden(err) {
			return nil, domainerrors.ErrForbidden
		}

		return nil, errors.Wrap(err, "update order status failed")
	}

	return dto.toEntity(), nil
}

func (g *orderGateway) UpdateTracking(ctx context.Context, id uuid.UUID, trackingNumber string) (*entity.Order, error) {
	query := url.Values{"trackingNumber": []string{trackingNumber}}

	var dto orderDTO
	if err := g.client.Put(ctx, "/orders/"+id.String()+"/tracking", query, nil, &dto); err != nil {
		if IsNotFound(err) {
			return nil, domainerrors.ErrOrderNotFound
		}
		if IsForbidden(err) {
			return nil, domainerrors.ErrForbidden
		}

		return nil, errors.Wrap(err, "update order tracking failed")
	}

	return dto.toEntity(), nil
}

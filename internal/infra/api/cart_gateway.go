package api

import (
	"context"
	"net/url"
	"strconv"

	"sweetshop/internal/domain/entity"
	domainerrors "sweetshop/internal/domain/errors"
	"sweetshop/internal/domain/gateway"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// cartGateway implements gateway.CartGateway over the shared Client.
type cartGateway struct {
	client *Client
}

// NewCartGateway is the constructor for cartGateway.
func NewCartGateway(client *Client) gateway.CartGateway {
	return &cartGateway{client: client}
}

type addToCartRequest struct {
	SweetID  uuid.UUID `json:"sweetId"`
	Quantity int       `json:"quantity"`
}

func (g *cartGateway) Items(ctx context.Context) ([]*entity.CartItem, error) {
	var dtos []cartItemDTO
	if err := g.client.Get(ctx, "/cart", nil, &dtos); err != nil {
		return nil, errors.Wrap(err, "fetch cart failed")
	}

	items := make([]*entity.CartItem, 0, len(dtos))
	for i := range dtos {
		items = append(items, dtos[i].toEntity())
	}

	return items, nil
}

func (g *cartGateway) Add(ctx context.Context, sweetID uuid.UUID, qty int) (*entity.CartItem, error) {
	var dto cartItemDTO
	req := addToCartRequest{SweetID: sweetID, Quantity: qty}
	if err := g.client.Post(ctx, "/cart/add", nil, req, &dto); err != nil {
		if IsNotFound(err) {
			return nil, domainerrors.ErrSweetNotFound
		}
		// Adding more than the available stock is rejected with 400.
		if IsBadRequest(err) {
			return nil, domainerrors.ErrInsufficientStock
		}

		return nil, errors.Wrap(err, "add to cart failed")
	}

	return dto.toEntity(), nil
}

func (g *cartGateway) UpdateQuantity(ctx context.Context, cartItemID uuid.UUID, qty int) error {
	query := url.Values{"quantity": []string{strconv.Itoa(qty)}}
	if err := g.client.Put(ctx, "/cart/"+cartItemID.String(), query, nil, nil); err != nil {
		if IsNotFound(err) {
			return domainerrors.ErrCartItemNotFound
		}

		return errors.Wrap(err, "update cart quantity failed")
	}

	return nil
}

func (g *cartGateway) Remove(ctx context.Context, cartItemID uuid.UUID) error {
	if err := g.client.Delete(ctx, "/cart/"+cartItemID.String()); err != nil {
		if IsNotFound(err) {
			return domainerrors.ErrCartItemNotFound
		}

		return errors.Wrap(err, "remove cart item failed")
	}

	return nil
}

func (g *cartGateway) Clear(ctx context.Context) error {
	if err := g.client.Delete(ctx, "/cart/clear"); err != nil {
		return errors.Wrap(err, "clear cart failed")
	}

	return nil
}

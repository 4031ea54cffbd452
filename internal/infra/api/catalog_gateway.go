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

// catalogGateway implements gateway.CatalogGateway over the shared Client.
type catalogGateway struct {
	client *Client
}

// NewCatalogGateway is the constructor for catalogGateway.
func NewCatalogGateway(client *Client) gateway.CatalogGateway {
	return &catalogGateway{client: client}
}

func (g *catalogGateway) List(ctx context.Context, filter entity.SweetFilter) ([]*entity.Sweet, error) {
	query := url.Values{}
	if filter.Name != "" {
		query.Set("name", filter.Name)
	}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.MinPrice > 0 {
		query.Set("min", strconv.FormatFloat(filter.MinPrice, 'f', -1, 64))
	}
	if filter.MaxPrice > 0 {
		query.Set("max", strconv.FormatFloat(filter.MaxPrice, 'f', -1, 64))
	}

	var dtos []sweetDTO
	if err := g.client.Get(ctx, "/sweets", query, &dtos); err != nil {
		return nil, errors.Wrap(err, "list sweets failed")
	}

	sweets := make([]*entity.Sweet, 0, len(dtos))
	for i := range dtos {
		sweets = append(sweets, dtos[i].toEntity())
	}

	return sweets, nil
}

func (g *catalogGateway) Get(ctx context.Context, id uuid.UUID) (*entity.Sweet, error) {
	var dto sweetDTO
	if err := g.client.Get(ctx, "/sweets/"+id.String(), nil, &dto); err != nil {
		if IsNotFound(err) {
			return nil, domainerrors.ErrSweetNotFound
		}

		return nil, errors.Wrap(err, "fetch sweet failed")
	}

	return dto.toEntity(), nil
}

func (g *catalogGateway) Create(ctx context.Context, sweet *entity.Sweet) (*entity.Sweet, error) {
	var dto sweetDTO
	if err := g.client.Post(ctx, "/sweets", nil, sweetToDTO(sweet), &dto); err != nil {
		if IsForbidden(err) {
			return nil, domainerrors.ErrForbidden
		}

		return nil, errors.Wrap(err, "create sweet failed")
	}

	return dto.toEntity(), nil
}

func (g *catalogGateway) Update(ctx context.Context, sweet *entity.Sweet) (*entity.Sweet, error) {
	var dto sweetDTO
	if err := g.client.Put(ctx, "/sweets/"+sweet.ID.String(), nil, sweetToDTO(sweet), &dto); err != nil {
		if IsNotFound(err) {
			return nil, domainerrors.ErrSweetNotFound
		}
		if IsForbidden(err) {
			return nil, domainerrors.ErrForbidden
		}

		return nil, errors.Wrap(err, "update sweet failed")
	}

	return dto.toEntity(), nil
}

func (g *catalogGateway) Delete(ctx context.Context, id uuid.UUID) error {
	if err := g.client.Delete(ctx, "/sweets/"+id.String()); err != nil {
		if IsNotFound(err) {
			return domainerrors.ErrSweetNotFound
		}
		if IsForbidden(err) {
			return domainerrors.ErrForbidden
		}

		return errors.Wrap(err, "delete sweet failed")
	}

	return nil
}

func (g *catalogGateway) Purchase(ctx context.Context, id uuid.UUID, qty int) (*entity.Sweet, error) {
	query := url.Values{"qty": []string{strconv.Itoa(qty)}}

	var dto sweetDTO
	if err := g.client.Post(ctx, "/sweets/"+id.String()+"/purchase", query, nil, &dto); err != nil {
		if IsNotFound(err) {
			return nil, domainerrors.ErrSweetNotFound
		}
		// The backend rejects purchases beyond the available stock with 400.
		if IsBadRequest(err) {
			return nil, domainerrors.ErrInsufficientStock
		}

		return nil, errors.Wrap(err, "purchase sweet failed")
	}

	return dto.toEntity(), nil
}

func (g *catalogGateway) Restock(ctx context.Context, id uuid.UUID, qty int) (*entity.Sweet, error) {
	query := url.Values{"qty": []string{strconv.Itoa(qty)}}

	var dto sweetDTO
	if err := g.client.Post(ctx, "/sweets/"+id.String()+"/restock", query, nil, &dto); err != nil {
		if IsNotFound(err) {
			return nil, domainerrors.ErrSweetNotFound
		}
		if IsForbidden(err) {
			return nil, domainerrors.ErrForbidden
		}

		return nil, errors.Wrap(err, "restock sweet failed")
	}

	return dto.toEntity(), nil
}

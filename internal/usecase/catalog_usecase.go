package usecase

import (
	"context"

	"sweetshop/internal/domain/entity"

	"github.com/google/uuid"
)

// SortOrder controls client-side ordering of catalog listings.
type SortOrder string

const (
	SortNone         SortOrder = ""
	SortPriceAsc     SortOrder = "price_asc"
	SortPriceDesc    SortOrder = "price_desc"
	SortNameAsc      SortOrder = "name_asc"
	SortNameDesc     SortOrder = "name_desc"
	SortQuantityAsc  SortOrder = "quantity_asc"
	SortQuantityDesc SortOrder = "quantity_desc"
)

// CreateSweetInput carries the fields for a new catalog entry.
type CreateSweetInput struct {
	Name        string  `validate:"required,min=2"`
	Category    string  `validate:"required"`
	Price       float64 `validate:"required,gt=0"`
	Quantity    int     `validate:"gte=0"`
	Description string  `validate:"max=500"`
	Image       string  `validate:"omitempty,url"`
}

// UpdateSweetInput carries the fields for editing an existing entry.
type UpdateSweetInput struct {
	Name        string  `validate:"required,min=2"`
	Category    string  `validate:"required"`
	Price       float64 `validate:"required,gt=0"`
	Quantity    int     `validate:"gte=0"`
	Description string  `validate:"max=500"`
	Image       string  `validate:"omitempty,url"`
}

// CatalogUsecase exposes the sweet catalog. Browsing is public;
// Create, Update, Delete and Restock require an admin session.
type CatalogUsecase interface {
	// Browse lists sweets matching the filter, ordered client-side.
	Browse(ctx context.Context, filter entity.SweetFilter, order SortOrder) ([]*entity.Sweet, error)

	// Sweet fetches a single sweet by id.
	Sweet(ctx context.Context, id uuid.UUID) (*entity.Sweet, error)

	// Categories lists the distinct categories present in the catalog.
	Categories(ctx context.Context) ([]string, error)

	// Purchase buys a quantity directly, decrementing stock.
	Purchase(ctx context.Context, id uuid.UUID, quantity int) (*entity.Sweet, error)

	// Create adds a new sweet to the catalog.
	Create(ctx context.Context, input CreateSweetInput) (*entity.Sweet, error)

	// Update replaces an existing sweet's fields.
	Update(ctx context.Context, id uuid.UUID, input UpdateSweetInput) (*entity.Sweet, error)

	// Delete removes a sweet from the catalog.
	Delete(ctx context.Context, id uuid.UUID) error

	// Restock increases a sweet's stock by the given quantity.
	Restock(ctx context.Context, id uuid.UUID, quantity int) (*entity.Sweet, error)
}

package impl

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"sweetshop/internal/domain/entity"
	domainerrors "sweetshop/internal/domain/errors"
	"sweetshop/internal/domain/gateway"
	"sweetshop/internal/domain/service"
	"sweetshop/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// catalogService implements the CatalogUsecase interface. Filtering is
// delegated to the backend; ordering is applied client-side because the
// backend listing has no sort parameter.
type catalogService struct {
	catalogGW gateway.CatalogGateway
	session   service.Session
	validate  *validator.Validate
	logger    *slog.Logger
}

// NewCatalogService is the constructor for catalogService.
func NewCatalogService(
	catalogGW gateway.CatalogGateway,
	session service.Session,
	logger *slog.Logger,
) usecase.CatalogUsecase {
	return &catalogService{
		catalogGW: catalogGW,
		session:   session,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		logger:    logger,
	}
}

// Browse lists sweets matching the filter, ordered client-side.
func (srv *catalogService) Browse(ctx context.Context, filter entity.SweetFilter, order usecase.SortOrder) ([]*entity.Sweet, error) {
	sweets, err := srv.catalogGW.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list catalog")
	}

	switch order {
	case usecase.SortPriceAsc:
		sort.SliceStable(sweets, func(i, j int) bool { return sweets[i].Price < sweets[j].Price })
	case usecase.SortPriceDesc:
		sort.SliceStable(sweets, func(i, j int) bool { return sweets[i].Price > sweets[j].Price })
	case usecase.SortNameAsc:
		sort.SliceStable(sweets, func(i, j int) bool {
			return strings.ToLower(sweets[i].Name) < strings.ToLower(sweets[j].Name)
		})
	case usecase.SortNameDesc:
		sort.SliceStable(sweets, func(i, j int) bool {
			return strings.ToLower(sweets[i].Name) > strings.ToLower(sweets[j].Name)
		})
	case usecase.SortQuantityAsc:
		sort.SliceStable(sweets, func(i, j int) bool { return sweets[i].Quantity < sweets[j].Quantity })
	case usecase.SortQuantityDesc:
		sort.SliceStable(sweets, func(i, j int) bool { return sweets[i].Quantity > sweets[j].Quantity })
	}

	return sweets, nil
}

// Sweet fetches a single sweet by id.
func (srv *catalogService) Sweet(ctx context.Context, id uuid.UUID) (*entity.Sweet, error) {
	sweet, err := srv.catalogGW.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch sweet")
	}

	return sweet, nil
}

// Categories lists the distinct categories present in the catalog,
// sorted alphabetically. The backend has no dedicated endpoint, so the
// set is derived from a full listing.
func (srv *catalogService) Categories(ctx context.Context) ([]string, error) {
	sweets, err := srv.catalogGW.List(ctx, entity.SweetFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list catalog")
	}

	seen := make(map[string]struct{}, len(sweets))
	categories := make([]string, 0, len(sweets))
	for _, sweet := range sweets {
		if sweet.Category == "" {
			continue
		}
		if _, ok := seen[sweet.Category]; ok {
			continue
		}
		seen[sweet.Category] = struct{}{}
		categories = append(categories, sweet.Category)
	}
	sort.Strings(categories)

	return categories, nil
}

// Purchase buys a quantity directly, decrementing stock.
func (srv *catalogService) Purchase(ctx context.Context, id uuid.UUID, quantity int) (*entity.Sweet, error) {
	if !srv.session.IsAuthenticated() {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}
	if quantity < 1 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "purchase quantity must be at least 1")
	}

	sweet, err := srv.catalogGW.Purchase(ctx, id, quantity)
	if err != nil {
		return nil, errors.Wrap(err, "purchase failed")
	}
	srv.logger.Info("purchased", "sweetID", id, "quantity", quantity)

	return sweet, nil
}

// Create adds a new sweet to the catalog.
func (srv *catalogService) Create(ctx context.Context, input usecase.CreateSweetInput) (*entity.Sweet, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}
	if err := srv.validate.Struct(input); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	sweet, err := srv.catalogGW.Create(ctx, &entity.Sweet{
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Description: input.Description,
		Image:       input.Image,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create sweet")
	}
	srv.logger.Info("sweet created", "sweetID", sweet.ID, "name", sweet.Name)

	return sweet, nil
}

// Update replaces an existing sweet's fields.
func (srv *catalogService) Update(ctx context.Context, id uuid.UUID, input usecase.UpdateSweetInput) (*entity.Sweet, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}
	if err := srv.validate.Struct(input); err != nil {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
	}

	sweet, err := srv.catalogGW.Update(ctx, &entity.Sweet{
		ID:          id,
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Quantity:    input.Quantity,
		Description: input.Description,
		Image:       input.Image,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to update sweet")
	}

	return sweet, nil
}

// Delete removes a sweet from the catalog.
func (srv *catalogService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := srv.requireAdmin(); err != nil {
		return err
	}

	if err := srv.catalogGW.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "failed to delete sweet")
	}
	srv.logger.Info("sweet deleted", "sweetID", id)

	return nil
}

// Restock increases a sweet's stock by the given quantity.
func (srv *catalogService) Restock(ctx context.Context, id uuid.UUID, quantity int) (*entity.Sweet, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}
	if quantity < 1 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "restock quantity must be at least 1")
	}

	sweet, err := srv.catalogGW.Restock(ctx, id, quantity)
	if err != nil {
		return nil, errors.Wrap(err, "failed to restock sweet")
	}
	srv.logger.Info("restocked", "sweetID", id, "quantity", quantity, "stock", sweet.Quantity)

	return sweet, nil
}

func (srv *catalogService) requireAdmin() error {
	if !srv.session.IsAuthenticated() {
		return errors.WithStack(domainerrors.ErrNotAuthenticated)
	}
	if !srv.session.User().IsAdmin() {
		return errors.WithStack(domainerrors.ErrAdminOnly)
	}

	return nil
}

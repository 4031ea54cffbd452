package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"sweetshop/internal/domain/entity"
	domainerrors "sweetshop/internal/domain/errors"
	"sweetshop/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogServiceFixtures struct {
	service   usecase.CatalogUsecase
	catalogGW *fakeCatalogGateway
	session   *memSession
}

func createTestCatalogService(t *testing.T, session *memSession) catalogServiceFixtures {
	t.Helper()

	catalogGW := &fakeCatalogGateway{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	svc := NewCatalogService(catalogGW, session, logger)

	return catalogServiceFixtures{service: svc, catalogGW: catalogGW, session: session}
}

func testSweet(name, category string, price float64, stock int) *entity.Sweet {
	return &entity.Sweet{
		ID:       uuid.New(),
		Name:     name,
		Category: category,
		Price:    price,
		Quantity: stock,
	}
}

func TestCatalogService_Browse_SortsByPrice(t *testing.T) {
	fx := createTestCatalogService(t, &memSession{})
	fx.catalogGW.sweets = []*entity.Sweet{
		testSweet("Fudge", "chocolate", 3.5, 10),
		testSweet("Toffee", "caramel", 1.25, 5),
		testSweet("Nougat", "chewy", 2.0, 3),
	}

	sweets, err := fx.service.Browse(context.Background(), entity.SweetFilter{}, usecase.SortPriceAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Toffee", "Nougat", "Fudge"}, sweetNames(sweets))

	sweets, err = fx.service.Browse(context.Background(), entity.SweetFilter{}, usecase.SortPriceDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fudge", "Nougat", "Toffee"}, sweetNames(sweets))
}

func TestCatalogService_Browse_SortsByNameCaseInsensitive(t *testing.T) {
	fx := createTestCatalogService(t, &memSession{})
	fx.catalogGW.sweets = []*entity.Sweet{
		testSweet("toffee", "caramel", 1.25, 5),
		testSweet("Fudge", "chocolate", 3.5, 10),
	}

	sweets, err := fx.service.Browse(context.Background(), entity.SweetFilter{}, usecase.SortNameAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fudge", "toffee"}, sweetNames(sweets))

	sweets, err = fx.service.Browse(context.Background(), entity.SweetFilter{}, usecase.SortNameDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"toffee", "Fudge"}, sweetNames(sweets))
}

func TestCatalogService_Browse_SortsByStock(t *testing.T) {
	fx := createTestCatalogService(t, &memSession{})
	fx.catalogGW.sweets = []*entity.Sweet{
		testSweet("Fudge", "chocolate", 3.5, 10),
		testSweet("Toffee", "caramel", 1.25, 5),
		testSweet("Nougat", "chewy", 2.0, 3),
	}

	sweets, err := fx.service.Browse(context.Background(), entity.SweetFilter{}, usecase.SortQuantityAsc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Nougat", "Toffee", "Fudge"}, sweetNames(sweets))

	sweets, err = fx.service.Browse(context.Background(), entity.SweetFilter{}, usecase.SortQuantityDesc)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fudge", "Toffee", "Nougat"}, sweetNames(sweets))
}

func TestCatalogService_Browse_PreservesBackendOrderWithoutSort(t *testing.T) {
	fx := createTestCatalogService(t, &memSession{})
	fx.catalogGW.sweets = []*entity.Sweet{
		testSweet("Fudge", "chocolate", 3.5, 10),
		testSweet("Toffee", "caramel", 1.25, 5),
	}

	sweets, err := fx.service.Browse(context.Background(), entity.SweetFilter{}, usecase.SortNone)

	require.NoError(t, err)
	assert.Equal(t, []string{"Fudge", "Toffee"}, sweetNames(sweets))
}

func TestCatalogService_Categories_DedupesAndSorts(t *testing.T) {
	fx := createTestCatalogService(t, &memSession{})
	fx.catalogGW.sweets = []*entity.Sweet{
		testSweet("Fudge", "chocolate", 3.5, 10),
		testSweet("Truffle", "chocolate", 6.0, 2),
		testSweet("Toffee", "caramel", 1.25, 5),
		testSweet("Mystery", "", 1.0, 1),
	}

	categories, err := fx.service.Categories(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"caramel", "chocolate"}, categories)
}

func TestCatalogService_Purchase_RequiresAuthentication(t *testing.T) {
	fx := createTestCatalogService(t, &memSession{})

	_, err := fx.service.Purchase(context.Background(), uuid.New(), 1)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
}

func TestCatalogService_Purchase_RejectsNonPositiveQuantity(t *testing.T) {
	fx := createTestCatalogService(t, authedSession(entity.RoleUser))

	_, err := fx.service.Purchase(context.Background(), uuid.New(), 0)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCatalogService_Create_RequiresAdminRole(t *testing.T) {
	fx := createTestCatalogService(t, authedSession(entity.RoleUser))

	_, err := fx.service.Create(context.Background(), usecase.CreateSweetInput{
		Name:     "Fudge",
		Category: "chocolate",
		Price:    3.5,
		Quantity: 10,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrAdminOnly)
	assert.Nil(t, fx.catalogGW.created)
}

func TestCatalogService_Create_AsAdmin(t *testing.T) {
	fx := createTestCatalogService(t, authedSession(entity.RoleAdmin))

	sweet, err := fx.service.Create(context.Background(), usecase.CreateSweetInput{
		Name:     "Fudge",
		Category: "chocolate",
		Price:    3.5,
		Quantity: 10,
	})

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, sweet.ID)
	assert.Equal(t, "Fudge", fx.catalogGW.created.Name)
}

func TestCatalogService_Create_ValidatesInput(t *testing.T) {
	fx := createTestCatalogService(t, authedSession(entity.RoleAdmin))

	_, err := fx.service.Create(context.Background(), usecase.CreateSweetInput{
		Name:     "F",
		Category: "chocolate",
		Price:    -1,
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCatalogService_Restock_AsAdmin(t *testing.T) {
	fx := createTestCatalogService(t, authedSession(entity.RoleAdmin))
	sweet := testSweet("Fudge", "chocolate", 3.5, 2)
	fx.catalogGW.sweets = []*entity.Sweet{sweet}

	restocked, err := fx.service.Restock(context.Background(), sweet.ID, 8)

	require.NoError(t, err)
	assert.Equal(t, 10, restocked.Quantity)
}

func sweetNames(sweets []*entity.Sweet) []string {
	names := make([]string, len(sweets))
	for i, sweet := range sweets {
		names[i] = sweet.Name
	}

	return names
}

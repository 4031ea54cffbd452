package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"sweetshop/internal/domain/entity"
	domainerrors "sweetshop/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type cartStoreFixtures struct {
	store   *cartStore
	cartGW  *fakeCartGateway
	session *memSession
}

func createTestCartStore(t *testing.T, session *memSession) cartStoreFixtures {
	t.Helper()

	cartGW := &fakeCartGateway{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := NewCartStore(cartGW, session, logger).(*cartStore)

	return cartStoreFixtures{store: store, cartGW: cartGW, session: session}
}

func serverLine(name string, price float64, qty int) *entity.CartItem {
	return &entity.CartItem{
		CartItemID: uuid.New(),
		SweetID:    uuid.New(),
		Name:       name,
		Price:      price,
		Quantity:   qty,
	}
}

func TestCartStore_Sync_ReplacesLocalProjection(t *testing.T) {
	fx := createTestCartStore(t, authedSession(entity.RoleUser))
	fx.cartGW.serverItems = []*entity.CartItem{
		serverLine("fudge", 3.5, 2),
		serverLine("toffee", 1.25, 4),
	}

	fx.store.Sync(context.Background())

	items := fx.store.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "fudge", items[0].Name)
	assert.Equal(t, 4, items[1].Quantity)

	// The snapshot is persisted for the next session.
	assert.Len(t, fx.session.CartSnapshot(), 2)
}

func TestCartStore_Sync_UnauthenticatedClearsWithoutNetworkCall(t *testing.T) {
	fx := createTestCartStore(t, &memSession{})
	fx.store.items = []*entity.CartItem{serverLine("stale", 1, 1)}

	fx.store.Sync(context.Background())

	assert.Empty(t, fx.store.Items())
	assert.Zero(t, fx.cartGW.itemsCalls)
}

func TestCartStore_Sync_FetchFailureKeepsPreviousState(t *testing.T) {
	fx := createTestCartStore(t, authedSession(entity.RoleUser))
	fx.cartGW.serverItems = []*entity.CartItem{serverLine("fudge", 3.5, 1)}
	fx.store.Sync(context.Background())
	require.Len(t, fx.store.Items(), 1)

	fx.cartGW.itemsErr = errors.New("backend down")
	fx.store.Sync(context.Background())

	assert.Len(t, fx.store.Items(), 1)
}

func TestCartStore_AddToCart_MutatesThenSyncs(t *testing.T) {
	fx := createTestCartStore(t, authedSession(entity.RoleUser))
	sweetID := uuid.New()

	require.NoError(t, fx.store.AddToCart(context.Background(), sweetID))

	assert.Equal(t, 1, fx.cartGW.addCalls)
	assert.Equal(t, 1, fx.cartGW.itemsCalls)
	items := fx.store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, sweetID, items[0].SweetID)
	assert.Equal(t, 1, items[0].Quantity)
}

func TestCartStore_AddToCart_TwiceIncrementsServerLine(t *testing.T) {
	fx := createTestCartStore(t, authedSession(entity.RoleUser))
	sweetID := uuid.New()

	require.NoError(t, fx.store.AddToCart(context.Background(), sweetID))
	require.NoError(t, fx.store.AddToCart(context.Background(), sweetID))

	items := fx.store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 2, items[0].Quantity)
	assert.Equal(t, 2, fx.store.TotalItems())
}

func TestCartStore_AddToCart_FailureKeepsStateAndResyncs(t *testing.T) {
	fx := createTestCartStore(t, authedSession(entity.RoleUser))
	fx.cartGW.serverItems = []*entity.CartItem{serverLine("fudge", 3.5, 1)}
	fx.store.Sync(context.Background())
	require.Len(t, fx.store.Items(), 1)

	fx.cartGW.addErr = errors.New("rejected")
	err := fx.store.AddToCart(context.Background(), uuid.New())

	require.Error(t, err)
	// The local projection still matches the server: one line, untouched.
	items := fx.store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, "fudge", items[0].Name)
	// The failed mutation still triggers a server re-read.
	assert.Equal(t, 2, fx.cartGW.itemsCalls)
}

func TestCartStore_AddToCart_RequiresAuthentication(t *testing.T) {
	fx := createTestCartStore(t, &memSession{})

	err := fx.store.AddToCart(context.Background(), uuid.New())

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotAuthenticated)
	assert.Zero(t, fx.cartGW.addCalls)
}

func TestCartStore_UpdateQuantity_ZeroOrNegativeRemoves(t *testing.T) {
	for name, qty := range map[string]int{"zero": 0, "negative": -5} {
		t.Run(name, func(t *testing.T) {
			fx := createTestCartStore(t, authedSession(entity.RoleUser))
			line := serverLine("fudge", 3.5, 2)
			fx.cartGW.serverItems = []*entity.CartItem{line}
			fx.store.Sync(context.Background())

			require.NoError(t, fx.store.UpdateQuantity(context.Background(), line.SweetID, qty))

			assert.Equal(t, 1, fx.cartGW.removeCalls)
			assert.Zero(t, fx.cartGW.updateCalls)
			assert.Empty(t, fx.store.Items())
		})
	}
}

func TestCartStore_UpdateQuantity_SetsAbsoluteValue(t *testing.T) {
	fx := createTestCartStore(t, authedSession(entity.RoleUser))
	line := serverLine("fudge", 3.5, 2)
	fx.cartGW.serverItems = []*entity.CartItem{line}
	fx.store.Sync(context.Background())

	require.NoError(t, fx.store.UpdateQuantity(context.Background(), line.SweetID, 7))

	items := fx.store.Items()
	require.Len(t, items, 1)
	assert.Equal(t, 7, items[0].Quantity)
}

func TestCartStore_UpdateQuantity_UnknownSweet(t *testing.T) {
	fx := createTestCartStore(t, authedSession(entity.RoleUser))

	err := fx.store.UpdateQuantity(context.Background(), uuid.New(), 3)

	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrCartItemNotFound)
	assert.Zero(t, fx.cartGW.updateCalls)
}

func TestCartStore_RemoveFromCart_MissingSweetSkipsDeleteButSyncs(t *testing.T) {
	fx := createTestCartStore(t, authedSession(entity.RoleUser))
	fx.cartGW.serverItems = []*entity.CartItem{serverLine("fudge", 3.5, 1)}

	require.NoError(t, fx.store.RemoveFromCart(context.Background(), uuid.New()))

	assert.Zero(t, fx.cartGW.removeCalls)
	// The sync still ran, healing the stale local view.
	assert.Equal(t, 1, fx.cartGW.itemsCalls)
	assert.Len(t, fx.store.Items(), 1)
}

func TestCartStore_ClearCart(t *testing.T) {
	fx := createTestCartStore(t, authedSession(entity.RoleUser))
	fx.cartGW.serverItems = []*entity.CartItem{serverLine("fudge", 3.5, 1)}
	fx.store.Sync(context.Background())

	require.NoError(t, fx.store.ClearCart(context.Background()))

	assert.Equal(t, 1, fx.cartGW.clearCalls)
	assert.Empty(t, fx.store.Items())
	assert.Empty(t, fx.session.CartSnapshot())
}

func TestCartStore_LoginTriggersSyncLogoutDropsState(t *testing.T) {
	session := &memSession{}
	fx := createTestCartStore(t, session)
	fx.cartGW.serverItems = []*entity.CartItem{serverLine("fudge", 3.5, 2)}

	// Login: the auth listener pulls the server cart.
	require.NoError(t, session.SetToken("fresh-token"))
	assert.Len(t, fx.store.Items(), 1)
	assert.Equal(t, 2, fx.store.TotalItems())

	// Logout: local projection and snapshot are dropped, server untouched.
	require.NoError(t, session.Clear())
	assert.Empty(t, fx.store.Items())
	assert.Empty(t, session.CartSnapshot())
	assert.Len(t, fx.cartGW.serverItems, 1)
}

func TestCartStore_SeedsFromPersistedSnapshot(t *testing.T) {
	session := authedSession(entity.RoleUser)
	session.cart = []*entity.CartItem{serverLine("fudge", 3.5, 2)}

	fx := createTestCartStore(t, session)

	assert.Len(t, fx.store.Items(), 1)
	assert.Zero(t, fx.cartGW.itemsCalls)
}

func TestCartStore_Totals(t *testing.T) {
	fx := createTestCartStore(t, authedSession(entity.RoleUser))
	fx.cartGW.serverItems = []*entity.CartItem{
		serverLine("fudge", 3.5, 2),
		serverLine("toffee", 1.25, 4),
	}
	fx.store.Sync(context.Background())

	assert.InDelta(t, 12.0, fx.store.TotalPrice(), 1e-9)
	assert.Equal(t, 6, fx.store.TotalItems())
}

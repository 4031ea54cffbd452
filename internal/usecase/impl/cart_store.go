// Package impl contains the application-specific business rules implementations.
package impl

import (
	"context"
	"log/slog"
	"sync"

	"sweetshop/internal/domain/entity"
	domainerrors "sweetshop/internal/domain/errors"
	"sweetshop/internal/domain/gateway"
	"sweetshop/internal/domain/service"
	"sweetshop/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// cartStore implements the CartUsecase interface. The server owns the
// cart; this store only keeps a local projection that is wholesale
// replaced after every mutation. Concurrent mutations are serialized by
// the server, so the projection converges on whichever sync lands last.
type cartStore struct {
	cartGW  gateway.CartGateway
	session service.Session
	logger  *slog.Logger

	mu    sync.Mutex
	items []*entity.CartItem
}

// NewCartStore is the constructor for cartStore. It seeds the projection
// from the persisted session snapshot and subscribes to auth-state
// transitions: login triggers a sync, logout drops all local state.
func NewCartStore(
	cartGW gateway.CartGateway,
	session service.Session,
	logger *slog.Logger,
) usecase.CartUsecase {
	store := &cartStore{
		cartGW:  cartGW,
		session: session,
		logger:  logger,
		items:   session.CartSnapshot(),
	}

	session.Subscribe(func(authenticated bool) {
		if authenticated {
			store.Sync(context.Background())

			return
		}
		store.drop()
	})

	return store
}

// Sync replaces the local projection with the server's canonical cart.
// Unauthenticated sessions get an empty projection without a network
// call. Fetch failures keep the prior state; the next mutation or login
// will reconcile.
func (srv *cartStore) Sync(ctx context.Context) {
	if !srv.session.IsAuthenticated() {
		srv.drop()

		return
	}

	items, err := srv.cartGW.Items(ctx)
	if err != nil {
		srv.logger.Warn("cart sync failed, keeping previous state", "error", err)

		return
	}

	srv.mu.Lock()
	srv.items = items
	srv.mu.Unlock()

	if err := srv.session.SetCartSnapshot(items); err != nil {
		srv.logger.Warn("failed to persist cart snapshot", "error", err)
	}
	srv.logger.Debug("cart synced", "lines", len(items))
}

// AddToCart adds one unit of a sweet and re-syncs.
func (srv *cartStore) AddToCart(ctx context.Context, sweetID uuid.UUID) error {
	if !srv.session.IsAuthenticated() {
		return errors.Wrap(domainerrors.ErrNotAuthenticated, "cannot add to cart")
	}

	if _, err := srv.cartGW.Add(ctx, sweetID, 1); err != nil {
		srv.Sync(ctx)

		return errors.Wrap(err, "failed to add to cart")
	}

	srv.Sync(ctx)

	return nil
}

// RemoveFromCart deletes the line holding the given sweet. A sweet with
// no local line skips the delete call; the sync still runs so a stale
// projection heals either way.
func (srv *cartStore) RemoveFromCart(ctx context.Context, sweetID uuid.UUID) error {
	if !srv.session.IsAuthenticated() {
		return errors.Wrap(domainerrors.ErrNotAuthenticated, "cannot remove from cart")
	}

	line := srv.lineForSweet(sweetID)
	if line == nil {
		srv.logger.Debug("remove skipped, sweet not in local cart", "sweetID", sweetID)
		srv.Sync(ctx)

		return nil
	}

	if err := srv.cartGW.Remove(ctx, line.CartItemID); err != nil {
		srv.Sync(ctx)

		return errors.Wrap(err, "failed to remove from cart")
	}

	srv.Sync(ctx)

	return nil
}

// UpdateQuantity sets an absolute quantity for a sweet's cart line.
// Zero or negative quantities delegate to RemoveFromCart.
func (srv *cartStore) UpdateQuantity(ctx context.Context, sweetID uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return srv.RemoveFromCart(ctx, sweetID)
	}

	if !srv.session.IsAuthenticated() {
		return errors.Wrap(domainerrors.ErrNotAuthenticated, "cannot update cart")
	}

	line := srv.lineForSweet(sweetID)
	if line == nil {
		srv.Sync(ctx)

		return errors.Wrap(domainerrors.ErrCartItemNotFound, "sweet not in cart")
	}

	if err := srv.cartGW.UpdateQuantity(ctx, line.CartItemID, quantity); err != nil {
		srv.Sync(ctx)

		return errors.Wrap(err, "failed to update cart quantity")
	}

	srv.Sync(ctx)

	return nil
}

// ClearCart empties the server cart and re-syncs.
func (srv *cartStore) ClearCart(ctx context.Context) error {
	if !srv.session.IsAuthenticated() {
		return errors.Wrap(domainerrors.ErrNotAuthenticated, "cannot clear cart")
	}

	if err := srv.cartGW.Clear(ctx); err != nil {
		srv.Sync(ctx)

		return errors.Wrap(err, "failed to clear cart")
	}

	srv.Sync(ctx)

	return nil
}

// Items returns a copy of the current local projection.
func (srv *cartStore) Items() []*entity.CartItem {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	out := make([]*entity.CartItem, len(srv.items))
	copy(out, srv.items)

	return out
}

// TotalPrice sums price times quantity over the local lines.
func (srv *cartStore) TotalPrice() float64 {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	var total float64
	for _, item := range srv.items {
		total += item.LineTotal()
	}

	return total
}

// TotalItems sums quantities over the local lines.
func (srv *cartStore) TotalItems() int {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	var total int
	for _, item := range srv.items {
		total += item.Quantity
	}

	return total
}

func (srv *cartStore) lineForSweet(sweetID uuid.UUID) *entity.CartItem {
	srv.mu.Lock()
	defer srv.mu.Unlock()

	for _, item := range srv.items {
		if item.SweetID == sweetID {
			return item
		}
	}

	return nil
}

func (srv *cartStore) drop() {
	srv.mu.Lock()
	srv.items = nil
	srv.mu.Unlock()

	if err := srv.session.SetCartSnapshot(nil); err != nil {
		srv.logger.Warn("failed to clear cart snapshot", "error", err)
	}
}

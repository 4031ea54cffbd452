package impl

import (
	"context"
	"sync"

	"sweetshop/internal/domain/entity"
	"sweetshop/internal/domain/gateway"
	"sweetshop/internal/domain/service"

	"github.com/google/uuid"
)

// memSession is an in-memory service.Session for tests.
type memSession struct {
	mu        sync.Mutex
	token     string
	user      *entity.User
	cart      []*entity.CartItem
	listeners []service.AuthListener
}

func (s *memSession) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.token
}

func (s *memSession) SetToken(token string) error {
	s.mu.Lock()
	wasAuthed := s.token != ""
	s.token = token
	listeners := append([]service.AuthListener(nil), s.listeners...)
	s.mu.Unlock()

	if !wasAuthed && token != "" {
		for _, fn := range listeners {
			fn(true)
		}
	}

	return nil
}

func (s *memSession) User() *entity.User {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.user
}

func (s *memSession) SetUser(user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user

	return nil
}

func (s *memSession) CartSnapshot() []*entity.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cart
}

func (s *memSession) SetCartSnapshot(items []*entity.CartItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cart = items

	return nil
}

func (s *memSession) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.token != ""
}

func (s *memSession) Clear() error {
	s.mu.Lock()
	wasAuthed := s.token != ""
	s.token = ""
	s.user = nil
	s.cart = nil
	listeners := append([]service.AuthListener(nil), s.listeners...)
	s.mu.Unlock()

	if wasAuthed {
		for _, fn := range listeners {
			fn(false)
		}
	}

	return nil
}

func (s *memSession) Subscribe(listener service.AuthListener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, listener)
}

func authedSession(role string) *memSession {
	s := &memSession{}
	s.token = "test-token"
	s.user = &entity.User{Email: "user@example.com", Role: role}

	return s
}

// fakeCartGateway records calls and serves a scripted server cart.
type fakeCartGateway struct {
	mu          sync.Mutex
	serverItems []*entity.CartItem

	itemsCalls  int
	addCalls    int
	updateCalls int
	removeCalls int
	clearCalls  int

	itemsErr  error
	addErr    error
	updateErr error
	removeErr error
	clearErr  error
}

var _ gateway.CartGateway = (*fakeCartGateway)(nil)

func (g *fakeCartGateway) Items(context.Context) ([]*entity.CartItem, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.itemsCalls++
	if g.itemsErr != nil {
		return nil, g.itemsErr
	}

	out := make([]*entity.CartItem, len(g.serverItems))
	copy(out, g.serverItems)

	return out, nil
}

func (g *fakeCartGateway) Add(_ context.Context, sweetID uuid.UUID, qty int) (*entity.CartItem, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.addCalls++
	if g.addErr != nil {
		return nil, g.addErr
	}

	for _, item := range g.serverItems {
		if item.SweetID == sweetID {
			item.Quantity += qty

			return item, nil
		}
	}

	line := &entity.CartItem{
		CartItemID: uuid.New(),
		SweetID:    sweetID,
		Name:       "sweet",
		Price:      2.5,
		Quantity:   qty,
	}
	g.serverItems = append(g.serverItems, line)

	return line, nil
}

func (g *fakeCartGateway) UpdateQuantity(_ context.Context, cartItemID uuid.UUID, qty int) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.updateCalls++
	if g.updateErr != nil {
		return g.updateErr
	}

	for _, item := range g.serverItems {
		if item.CartItemID == cartItemID {
			item.Quantity = qty
		}
	}

	return nil
}

func (g *fakeCartGateway) Remove(_ context.Context, cartItemID uuid.UUID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeCalls++
	if g.removeErr != nil {
		return g.removeErr
	}

	kept := g.serverItems[:0]
	for _, item := range g.serverItems {
		if item.CartItemID != cartItemID {
			kept = append(kept, item)
		}
	}
	g.serverItems = kept

	return nil
}

func (g *fakeCartGateway) Clear(context.Context) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clearCalls++
	if g.clearErr != nil {
		return g.clearErr
	}
	g.serverItems = nil

	return nil
}

// fakeAuthGateway scripts the auth endpoints.
type fakeAuthGateway struct {
	loginResult *gateway.AuthResult
	loginErr    error
	registerErr error
	logoutErr   error
	profile     *entity.User
	profileErr  error
	updated     *entity.User
	updateErr   error

	logoutCalls int
}

var _ gateway.AuthGateway = (*fakeAuthGateway)(nil)

func (g *fakeAuthGateway) Login(context.Context, string, string) (*gateway.AuthResult, error) {
	return g.loginResult, g.loginErr
}

func (g *fakeAuthGateway) Register(context.Context, string, string, string) error {
	return g.registerErr
}

func (g *fakeAuthGateway) Logout(context.Context) error {
	g.logoutCalls++

	return g.logoutErr
}

func (g *fakeAuthGateway) Profile(context.Context) (*entity.User, error) {
	return g.profile, g.profileErr
}

func (g *fakeAuthGateway) UpdateProfile(context.Context, gateway.ProfileUpdate) (*entity.User, error) {
	return g.updated, g.updateErr
}

// fakeCatalogGateway serves a scripted catalog.
type fakeCatalogGateway struct {
	sweets  []*entity.Sweet
	listErr error

	created *entity.Sweet
	deleted []uuid.UUID
}

var _ gateway.CatalogGateway = (*fakeCatalogGateway)(nil)

func (g *fakeCatalogGateway) List(context.Context, entity.SweetFilter) ([]*entity.Sweet, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}

	out := make([]*entity.Sweet, len(g.sweets))
	copy(out, g.sweets)

	return out, nil
}

func (g *fakeCatalogGateway) Get(_ context.Context, id uuid.UUID) (*entity.Sweet, error) {
	for _, sweet := range g.sweets {
		if sweet.ID == id {
			return sweet, nil
		}
	}

	return nil, g.listErr
}

func (g *fakeCatalogGateway) Create(_ context.Context, sweet *entity.Sweet) (*entity.Sweet, error) {
	created := *sweet
	created.ID = uuid.New()
	g.created = &created

	return &created, nil
}

func (g *fakeCatalogGateway) Update(_ context.Context, sweet *entity.Sweet) (*entity.Sweet, error) {
	return sweet, nil
}

func (g *fakeCatalogGateway) Delete(_ context.Context, id uuid.UUID) error {
	g.deleted = append(g.deleted, id)

	return nil
}

func (g *fakeCatalogGateway) Purchase(_ context.Context, id uuid.UUID, qty int) (*entity.Sweet, error) {
	for _, sweet := range g.sweets {
		if sweet.ID == id {
			sweet.Quantity -= qty

			return sweet, nil
		}
	}

	return nil, g.listErr
}

func (g *fakeCatalogGateway) Restock(_ context.Context, id uuid.UUID, qty int) (*entity.Sweet, error) {
	for _, sweet := range g.sweets {
		if sweet.ID == id {
			sweet.Quantity += qty

			return sweet, nil
		}
	}

	return nil, g.listErr
}

// fakeOrderGateway scripts the order endpoints.
type fakeOrderGateway struct {
	order         *entity.Order
	orders        []*entity.Order
	checkoutErr   error
	listErr       error
	checkoutCalls int

	lastStatus   entity.OrderStatus
	lastTracking string
}

var _ gateway.OrderGateway = (*fakeOrderGateway)(nil)

func (g *fakeOrderGateway) Checkout(_ context.Context, _ *entity.PaymentDetails) (*entity.Order, error) {
	g.checkoutCalls++
	if g.checkoutErr != nil {
		return nil, g.checkoutErr
	}

	return g.order, nil
}

func (g *fakeOrderGateway) List(context.Context) ([]*entity.Order, error) {
	return g.orders, g.listErr
}

func (g *fakeOrderGateway) Get(context.Context, uuid.UUID) (*entity.Order, error) {
	return g.order, g.listErr
}

func (g *fakeOrderGateway) UpdateStatus(_ context.Context, _ uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	g.lastStatus = status

	return g.order, nil
}

func (g *fakeOrderGateway) UpdateTracking(_ context.Context, _ uuid.UUID, tracking string) (*entity.Order, error) {
	g.lastTracking = tracking

	return g.order, nil
}

package impl

import (
	"context"
	"log/slog"

	"sweetshop/internal/domain/entity"
	domainerrors "sweetshop/internal/domain/errors"
	"sweetshop/internal/domain/gateway"
	"sweetshop/internal/domain/service"
	"sweetshop/internal/usecase"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// orderService implements the OrderUsecase interface.
type orderService struct {
	orderGW  gateway.OrderGateway
	cart     usecase.CartUsecase
	session  service.Session
	validate *validator.Validate
	logger   *slog.Logger
}

// NewOrderService is the constructor for orderService.
func NewOrderService(
	orderGW gateway.OrderGateway,
	cart usecase.CartUsecase,
	session service.Session,
	logger *slog.Logger,
) usecase.OrderUsecase {
	return &orderService{
		orderGW:  orderGW,
		cart:     cart,
		session:  session,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger,
	}
}

// Checkout validates the payment form and places an order from the
// server-side cart. The backend empties the cart on success, so the
// local projection is re-synced afterwards.
func (srv *orderService) Checkout(ctx context.Context, input *usecase.CheckoutInput) (*entity.Order, error) {
	if !srv.session.IsAuthenticated() {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}
	if srv.cart.TotalItems() == 0 {
		return nil, errors.WithStack(domainerrors.ErrCartEmpty)
	}

	var payment *entity.PaymentDetails
	if input != nil {
		if err := srv.validate.Struct(input); err != nil {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, err.Error())
		}
		payment = &entity.PaymentDetails{
			CardNumber:      input.CardNumber,
			CardHolder:      input.CardHolder,
			ExpiryMonth:     input.ExpiryMonth,
			ExpiryYear:      input.ExpiryYear,
			CVV:             input.CVV,
			ShippingAddress: input.ShippingAddress,
		}
	}

	order, err := srv.orderGW.Checkout(ctx, payment)
	if err != nil {
		return nil, errors.Wrap(err, "checkout failed")
	}

	srv.cart.Sync(ctx)
	srv.logger.Info("order placed", "orderID", order.ID, "total", order.TotalAmount)

	return order, nil
}

// Orders lists the signed-in account's orders, newest first.
func (srv *orderService) Orders(ctx context.Context) ([]*entity.Order, error) {
	if !srv.session.IsAuthenticated() {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	orders, err := srv.orderGW.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list orders")
	}

	return orders, nil
}

// Order fetches a single order by id.
func (srv *orderService) Order(ctx context.Context, id uuid.UUID) (*entity.Order, error) {
	if !srv.session.IsAuthenticated() {
		return nil, errors.WithStack(domainerrors.ErrNotAuthenticated)
	}

	order, err := srv.orderGW.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch order")
	}

	return order, nil
}

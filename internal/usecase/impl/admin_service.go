package impl

import (
	"context"
	"log/slog"

	"sweetshop/internal/domain/entity"
	domainerrors "sweetshop/internal/domain/errors"
	"sweetshop/internal/domain/gateway"
	"sweetshop/internal/domain/service"
	"sweetshop/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// adminService implements the AdminUsecase interface. It is a thin
// authorization shim over the admin gateway: all aggregation happens
// server-side, and the local role check only exists to fail fast before
// spending a network round trip.
type adminService struct {
	adminGW gateway.AdminGateway
	orderGW gateway.OrderGateway
	session service.Session
	logger  *slog.Logger
}

// NewAdminService is the constructor for adminService.
func NewAdminService(
	adminGW gateway.AdminGateway,
	orderGW gateway.OrderGateway,
	session service.Session,
	logger *slog.Logger,
) usecase.AdminUsecase {
	return &adminService{
		adminGW: adminGW,
		orderGW: orderGW,
		session: session,
		logger:  logger,
	}
}

func (srv *adminService) requireAdmin() error {
	if !srv.session.IsAuthenticated() {
		return errors.WithStack(domainerrors.ErrNotAuthenticated)
	}
	if !srv.session.User().IsAdmin() {
		return errors.WithStack(domainerrors.ErrAdminOnly)
	}

	return nil
}

func (srv *adminService) Dashboard(ctx context.Context) (*entity.DashboardStats, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	stats, err := srv.adminGW.Dashboard(ctx)

	return stats, errors.Wrap(err, "failed to fetch dashboard")
}

func (srv *adminService) SystemStatus(ctx context.Context) (*entity.SystemStatus, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	status, err := srv.adminGW.SystemStatus(ctx)

	return status, errors.Wrap(err, "failed to fetch system status")
}

func (srv *adminService) AllOrders(ctx context.Context) ([]*entity.Order, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	orders, err := srv.adminGW.AllOrders(ctx)

	return orders, errors.Wrap(err, "failed to fetch all orders")
}

func (srv *adminService) RecentOrders(ctx context.Context, limit int) ([]*entity.Order, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	orders, err := srv.adminGW.RecentOrders(ctx, limit)

	return orders, errors.Wrap(err, "failed to fetch recent orders")
}

// UpdateOrderStatus moves any account's order to a new lifecycle state.
func (srv *adminService) UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	switch status {
	case entity.OrderPending, entity.OrderProcessing, entity.OrderShipped,
		entity.OrderDelivered, entity.OrderCancelled:
	default:
		return nil, errors.Wrapf(domainerrors.ErrValidationFailed, "unknown order status %q", status)
	}

	order, err := srv.orderGW.UpdateStatus(ctx, orderID, status)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order status")
	}
	srv.logger.Info("order status updated", "orderID", orderID, "status", status)

	return order, nil
}

// UpdateOrderTracking attaches a carrier tracking number to an order.
func (srv *adminService) UpdateOrderTracking(ctx context.Context, orderID uuid.UUID, trackingNumber string) (*entity.Order, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}
	if trackingNumber == "" {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "tracking number is required")
	}

	order, err := srv.orderGW.UpdateTracking(ctx, orderID, trackingNumber)
	if err != nil {
		return nil, errors.Wrap(err, "failed to update order tracking")
	}
	srv.logger.Info("order tracking updated", "orderID", orderID)

	return order, nil
}

func (srv *adminService) SalesOverview(ctx context.Context, rng string) (*entity.SalesOverview, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	overview, err := srv.adminGW.SalesOverview(ctx, rng)

	return overview, errors.Wrap(err, "failed to fetch sales overview")
}

func (srv *adminService) MonthlySales(ctx context.Context, months int) ([]*entity.MonthlySales, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	sales, err := srv.adminGW.MonthlySales(ctx, months)

	return sales, errors.Wrap(err, "failed to fetch monthly sales")
}

func (srv *adminService) TopProducts(ctx context.Context, limit int) ([]*entity.TopProduct, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	products, err := srv.adminGW.TopProducts(ctx, limit)

	return products, errors.Wrap(err, "failed to fetch top products")
}

func (srv *adminService) SalesByCategory(ctx context.Context, rng string) ([]*entity.CategorySales, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	sales, err := srv.adminGW.SalesByCategory(ctx, rng)

	return sales, errors.Wrap(err, "failed to fetch sales by category")
}

func (srv *adminService) CustomerSummary(ctx context.Context, rng string) (*entity.CustomerSummary, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	summary, err := srv.adminGW.CustomerSummary(ctx, rng)

	return summary, errors.Wrap(err, "failed to fetch customer summary")
}

func (srv *adminService) CustomerSegments(ctx context.Context, rng string) ([]*entity.CustomerSegment, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	segments, err := srv.adminGW.CustomerSegments(ctx, rng)

	return segments, errors.Wrap(err, "failed to fetch customer segments")
}

func (srv *adminService) Traffic(ctx context.Context, rng string) (*entity.WebsiteTraffic, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	traffic, err := srv.adminGW.Traffic(ctx, rng)

	return traffic, errors.Wrap(err, "failed to fetch website traffic")
}

func (srv *adminService) ConversionFunnel(ctx context.Context, rng string) (*entity.ConversionFunnel, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	funnel, err := srv.adminGW.ConversionFunnel(ctx, rng)

	return funnel, errors.Wrap(err, "failed to fetch conversion funnel")
}

func (srv *adminService) ShippingMetrics(ctx context.Context, rng string) (*entity.ShippingMetrics, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	metrics, err := srv.adminGW.ShippingMetrics(ctx, rng)

	return metrics, errors.Wrap(err, "failed to fetch shipping metrics")
}

func (srv *adminService) Alerts(ctx context.Context, limit int) ([]*entity.SystemAlert, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	alerts, err := srv.adminGW.Alerts(ctx, limit)

	return alerts, errors.Wrap(err, "failed to fetch alerts")
}

func (srv *adminService) InventoryStatus(ctx context.Context) (*entity.InventoryStatus, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	status, err := srv.adminGW.InventoryStatus(ctx)

	return status, errors.Wrap(err, "failed to fetch inventory status")
}

func (srv *adminService) LowStock(ctx context.Context, threshold int) ([]*entity.LowStockItem, error) {
	if err := srv.requireAdmin(); err != nil {
		return nil, err
	}

	items, err := srv.adminGW.LowStock(ctx, threshold)

	return items, errors.Wrap(err, "failed to fetch low-stock items")
}

package usecase

import (
	"context"

	"sweetshop/internal/domain/entity"

	"github.com/google/uuid"
)

// AdminUsecase surfaces the back-office dashboard, analytics and order
// management operations. Every method gates on the locally cached role
// before issuing the request; the server enforces the same rule again.
// rng is a backend range token such as "7d" or "30d".
type AdminUsecase interface {
	Dashboard(ctx context.Context) (*entity.DashboardStats, error)
	SystemStatus(ctx context.Context) (*entity.SystemStatus, error)

	AllOrders(ctx context.Context) ([]*entity.Order, error)
	RecentOrders(ctx context.Context, limit int) ([]*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, orderID uuid.UUID, status entity.OrderStatus) (*entity.Order, error)
	UpdateOrderTracking(ctx context.Context, orderID uuid.UUID, trackingNumber string) (*entity.Order, error)

	SalesOverview(ctx context.Context, rng string) (*entity.SalesOverview, error)
	MonthlySales(ctx context.Context, months int) ([]*entity.MonthlySales, error)
	TopProducts(ctx context.Context, limit int) ([]*entity.TopProduct, error)
	SalesByCategory(ctx context.Context, rng string) ([]*entity.CategorySales, error)
	CustomerSummary(ctx context.Context, rng string) (*entity.CustomerSummary, error)
	CustomerSegments(ctx context.Context, rng string) ([]*entity.CustomerSegment, error)
	Traffic(ctx context.Context, rng string) (*entity.WebsiteTraffic, error)
	ConversionFunnel(ctx context.Context, rng string) (*entity.ConversionFunnel, error)
	ShippingMetrics(ctx context.Context, rng string) (*entity.ShippingMetrics, error)

	Alerts(ctx context.Context, limit int) ([]*entity.SystemAlert, error)
	InventoryStatus(ctx context.Context) (*entity.InventoryStatus, error)
	LowStock(ctx context.Context, threshold int) ([]*entity.LowStockItem, error)
}

// Package gateway defines the interfaces for the remote backend API.
package gateway

import (
	"context"

	"sweetshop/internal/domain/entity"
)

// AdminGateway defines the admin dashboard, analytics and inventory
// views of the backend. All calls require an admin token; all
// aggregation is computed server-side.
type AdminGateway interface {
	Dashboard(ctx context.Context) (*entity.DashboardStats, error)
	SystemStatus(ctx context.Context) (*entity.SystemStatus, error)

	// Orders across all accounts, newest first.
	AllOrders(ctx context.Context) ([]*entity.Order, error)
	RecentOrders(ctx context.Context, limit int) ([]*entity.Order, error)

	// Analytics views. rng is a backend range token such as "30d".
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

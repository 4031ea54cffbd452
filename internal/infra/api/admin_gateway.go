package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"sweetshop/internal/domain/entity"
	domainerrors "sweetshop/internal/domain/errors"
	"sweetshop/internal/domain/gateway"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// adminGateway implements gateway.AdminGateway over the shared Client.
type adminGateway struct {
	client *Client
}

// NewAdminGateway is the constructor for adminGateway.
func NewAdminGateway(client *Client) gateway.AdminGateway {
	return &adminGateway{client: client}
}

// wrapAdmin maps a 403 onto the admin-only domain error and a 404 onto
// the generic not-found; admin views have no resource-specific sentinel.
func wrapAdmin(err error, msg string) error {
	if HasStatus(err, http.StatusForbidden) {
		return domainerrors.ErrAdminOnly
	}
	if IsNotFound(err) {
		return domainerrors.ErrNotFound
	}

	return errors.Wrap(err, msg)
}

func rangeQuery(rng string) url.Values {
	if rng == "" {
		return nil
	}

	return url.Values{"range": []string{rng}}
}

type dashboardDTO struct {
	TotalUsers   int    `json:"totalUsers"`
	AdminUsers   int    `json:"adminUsers"`
	RegularUsers int    `json:"regularUsers"`
	AdminEmail   string `json:"adminEmail"`
}

func (g *adminGateway) Dashboard(ctx context.Context) (*entity.DashboardStats, error) {
	var dto dashboardDTO
	if err := g.client.Get(ctx, "/admin/dashboard", nil, &dto); err != nil {
		return nil, wrapAdmin(err, "fetch dashboard failed")
	}

	return &entity.DashboardStats{
		TotalUsers:   dto.TotalUsers,
		AdminUsers:   dto.AdminUsers,
		RegularUsers: dto.RegularUsers,
		AdminEmail:   dto.AdminEmail,
	}, nil
}

type systemStatusDTO struct {
	Status    string `json:"status"`
	Uptime    string `json:"uptime"`
	Timestamp string `json:"timestamp"`
}

func (g *adminGateway) SystemStatus(ctx context.Context) (*entity.SystemStatus, error) {
	var dto systemStatusDTO
	if err := g.client.Get(ctx, "/admin/system-status", nil, &dto); err != nil {
		return nil, wrapAdmin(err, "fetch system status failed")
	}

	return &entity.SystemStatus{
		Status:    dto.Status,
		Uptime:    dto.Uptime,
		Timestamp: parseBackendTime(dto.Timestamp),
	}, nil
}

func (g *adminGateway) AllOrders(ctx context.Context) ([]*entity.Order, error) {
	var dtos []orderDTO
	if err := g.client.Get(ctx, "/admin/orders", nil, &dtos); err != nil {
		return nil, wrapAdmin(err, "fetch all orders failed")
	}

	return ordersToEntities(dtos), nil
}

func (g *adminGateway) RecentOrders(ctx context.Context, limit int) ([]*entity.Order, error) {
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}

	var dtos []orderDTO
	if err := g.client.Get(ctx, "/admin/orders/recent", query, &dtos); err != nil {
		return nil, wrapAdmin(err, "fetch recent orders failed")
	}

	return ordersToEntities(dtos), nil
}

type salesOverviewDTO struct {
	Range             string  `json:"range"`
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalOrders       int     `json:"totalOrders"`
	AverageOrderValue float64 `json:"averageOrderValue"`
	ConversionRate    float64 `json:"conversionRate"`
	RevenueGrowth     float64 `json:"revenueGrowth"`
	OrdersGrowth      float64 `json:"ordersGrowth"`
	AvgOrderGrowth    float64 `json:"avgOrderGrowth"`
	ConversionGrowth  float64 `json:"conversionGrowth"`
}

func (g *adminGateway) SalesOverview(ctx context.Context, rng string) (*entity.SalesOverview, error) {
	var dto salesOverviewDTO
	if err := g.client.Get(ctx, "/admin/analytics/sales-overview", rangeQuery(rng), &dto); err != nil {
		return nil, wrapAdmin(err, "fetch sales overview failed")
	}

	return &entity.SalesOverview{
		Range:             dto.Range,
		TotalRevenue:      dto.TotalRevenue,
		TotalOrders:       dto.TotalOrders,
		AverageOrderValue: dto.AverageOrderValue,
		ConversionRate:    dto.ConversionRate,
		RevenueGrowth:     dto.RevenueGrowth,
		OrdersGrowth:      dto.OrdersGrowth,
		AvgOrderGrowth:    dto.AvgOrderGrowth,
		ConversionGrowth:  dto.ConversionGrowth,
	}, nil
}

type monthlySalesDTO struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Orders  int     `json:"orders"`
	Growth  float64 `json:"growth"`
}

func (g *adminGateway) MonthlySales(ctx context.Context, months int) ([]*entity.MonthlySales, error) {
	query := url.Values{"months": []string{strconv.Itoa(months)}}

	var dtos []monthlySalesDTO
	if err := g.client.Get(ctx, "/admin/analytics/monthly-sales", query, &dtos); err != nil {
		return nil, wrapAdmin(err, "fetch monthly sales failed")
	}

	sales := make([]*entity.MonthlySales, 0, len(dtos))
	for _, dto := range dtos {
		sales = append(sales, &entity.MonthlySales{
			Month:   dto.Month,
			Revenue: dto.Revenue,
			Orders:  dto.Orders,
			Growth:  dto.Growth,
		})
	}

	return sales, nil
}

type topProductDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Category  string    `json:"category"`
	UnitsSold int       `json:"unitsSold"`
	Revenue   float64   `json:"revenue"`
	Profit    float64   `json:"profit"`
	Stock     int       `json:"stock"`
	Image     string    `json:"image"`
}

func (g *adminGateway) TopProducts(ctx context.Context, limit int) ([]*entity.TopProduct, error) {
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}

	var dtos []topProductDTO
	if err := g.client.Get(ctx, "/admin/analytics/top-products", query, &dtos); err != nil {
		return nil, wrapAdmin(err, "fetch top products failed")
	}

	products := make([]*entity.TopProduct, 0, len(dtos))
	for _, dto := range dtos {
		products = append(products, &entity.TopProduct{
			ID:        dto.ID,
			Name:      dto.Name,
			Category:  dto.Category,
			UnitsSold: dto.UnitsSold,
			Revenue:   dto.Revenue,
			Profit:    dto.Profit,
			Stock:     dto.Stock,
			Image:     dto.Image,
		})
	}

	return products, nil
}

type categorySalesDTO struct {
	Category   string  `json:"category"`
	Revenue    float64 `json:"revenue"`
	Percentage float64 `json:"percentage"`
	UnitsSold  int     `json:"unitsSold"`
	Profit     float64 `json:"profit"`
}

func (g *adminGateway) SalesByCategory(ctx context.Context, rng string) ([]*entity.CategorySales, error) {
	var dtos []categorySalesDTO
	if err := g.client.Get(ctx, "/admin/analytics/sales-by-category", rangeQuery(rng), &dtos); err != nil {
		return nil, wrapAdmin(err, "fetch sales by category failed")
	}

	categories := make([]*entity.CategorySales, 0, len(dtos))
	for _, dto := range dtos {
		categories = append(categories, &entity.CategorySales{
			Category:   dto.Category,
			Revenue:    dto.Revenue,
			Percentage: dto.Percentage,
			UnitsSold:  dto.UnitsSold,
			Profit:     dto.Profit,
		})
	}

	return categories, nil
}

type customerSummaryDTO struct {
	TotalCustomers        int     `json:"totalCustomers"`
	NewCustomers          int     `json:"newCustomers"`
	ReturningCustomers    int     `json:"returningCustomers"`
	AverageCustomerValue  float64 `json:"averageCustomerValue"`
	CustomerRetentionRate float64 `json:"customerRetentionRate"`
}

func (g *adminGateway) CustomerSummary(ctx context.Context, rng string) (*entity.CustomerSummary, error) {
	var dto customerSummaryDTO
	if err := g.client.Get(ctx, "/admin/analytics/customers/summary", rangeQuery(rng), &dto); err != nil {
		return nil, wrapAdmin(err, "fetch customer summary failed")
	}

	return &entity.CustomerSummary{
		TotalCustomers:        dto.TotalCustomers,
		NewCustomers:          dto.NewCustomers,
		ReturningCustomers:    dto.ReturningCustomers,
		AverageCustomerValue:  dto.AverageCustomerValue,
		CustomerRetentionRate: dto.CustomerRetentionRate,
	}, nil
}

type customerSegmentDTO struct {
	Segment       string  `json:"segment"`
	Count         int     `json:"count"`
	AvgOrderValue float64 `json:"avgOrderValue"`
}

func (g *adminGateway) CustomerSegments(ctx context.Context, rng string) ([]*entity.CustomerSegment, error) {
	var dtos []customerSegmentDTO
	if err := g.client.Get(ctx, "/admin/analytics/customers/segments", rangeQuery(rng), &dtos); err != nil {
		return nil, wrapAdmin(err, "fetch customer segments failed")
	}

	segments := make([]*entity.CustomerSegment, 0, len(dtos))
	for _, dto := range dtos {
		segments = append(segments, &entity.CustomerSegment{
			Segment:       dto.Segment,
			Count:         dto.Count,
			AvgOrderValue: dto.AvgOrderValue,
		})
	}

	return segments, nil
}

type trafficDTO struct {
	WebsiteTraffic struct {
		TotalVisits        int     `json:"totalVisits"`
		UniqueVisitors     int     `json:"uniqueVisitors"`
		BounceRate         float64 `json:"bounceRate"`
		AvgSessionDuration string  `json:"avgSessionDuration"`
		PageViews          int     `json:"pageViews"`
	} `json:"websiteTraffic"`
}

func (g *adminGateway) Traffic(ctx context.Context, rng string) (*entity.WebsiteTraffic, error) {
	var dto trafficDTO
	if err := g.client.Get(ctx, "/admin/analytics/performance/traffic", rangeQuery(rng), &dto); err != nil {
		return nil, wrapAdmin(err, "fetch traffic failed")
	}

	return &entity.WebsiteTraffic{
		TotalVisits:        dto.WebsiteTraffic.TotalVisits,
		UniqueVisitors:     dto.WebsiteTraffic.UniqueVisitors,
		BounceRate:         dto.WebsiteTraffic.BounceRate,
		AvgSessionDuration: dto.WebsiteTraffic.AvgSessionDuration,
		PageViews:          dto.WebsiteTraffic.PageViews,
	}, nil
}

type conversionFunnelDTO struct {
	Visitors     int `json:"visitors"`
	ProductViews int `json:"productViews"`
	AddToCart    int `json:"addToCart"`
	Checkout     int `json:"checkout"`
	Completed    int `json:"completed"`
}

func (g *adminGateway) ConversionFunnel(ctx context.Context, rng string) (*entity.ConversionFunnel, error) {
	var dto conversionFunnelDTO
	if err := g.client.Get(ctx, "/admin/analytics/performance/conversion-funnel", rangeQuery(rng), &dto); err != nil {
		return nil, wrapAdmin(err, "fetch conversion funnel failed")
	}

	return &entity.ConversionFunnel{
		Visitors:     dto.Visitors,
		ProductViews: dto.ProductViews,
		AddToCart:    dto.AddToCart,
		Checkout:     dto.Checkout,
		Completed:    dto.Completed,
	}, nil
}

type shippingMetricsDTO struct {
	AvgShippingTime       string  `json:"avgShippingTime"`
	OnTimeDelivery        float64 `json:"onTimeDelivery"`
	ShippingCost          float64 `json:"shippingCost"`
	FreeShippingThreshold float64 `json:"freeShippingThreshold"`
}

func (g *adminGateway) ShippingMetrics(ctx context.Context, rng string) (*entity.ShippingMetrics, error) {
	var dto shippingMetricsDTO
	if err := g.client.Get(ctx, "/admin/analytics/shipping-metrics", rangeQuery(rng), &dto); err != nil {
		return nil, wrapAdmin(err, "fetch shipping metrics failed")
	}

	return &entity.ShippingMetrics{
		AvgShippingTime:       dto.AvgShippingTime,
		OnTimeDelivery:        dto.OnTimeDelivery,
		ShippingCost:          dto.ShippingCost,
		FreeShippingThreshold: dto.FreeShippingThreshold,
	}, nil
}

type systemAlertDTO struct {
	ID        uuid.UUID `json:"id"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	CreatedAt string    `json:"createdAt"`
}

func (g *adminGateway) Alerts(ctx context.Context, limit int) ([]*entity.SystemAlert, error) {
	query := url.Values{"limit": []string{strconv.Itoa(limit)}}

	var dtos []systemAlertDTO
	if err := g.client.Get(ctx, "/admin/alerts", query, &dtos); err != nil {
		return nil, wrapAdmin(err, "fetch alerts failed")
	}

	alerts := make([]*entity.SystemAlert, 0, len(dtos))
	for _, dto := range dtos {
		alerts = append(alerts, &entity.SystemAlert{
			ID:        dto.ID,
			Severity:  dto.Severity,
			Message:   dto.Message,
			CreatedAt: parseBackendTime(dto.CreatedAt),
		})
	}

	return alerts, nil
}

type inventoryStatusDTO struct {
	TotalProducts   int     `json:"totalProducts"`
	InStock         int     `json:"inStock"`
	LowStock        int     `json:"lowStock"`
	OutOfStock      int     `json:"outOfStock"`
	TotalStockValue float64 `json:"totalStockValue"`
}

func (g *adminGateway) InventoryStatus(ctx context.Context) (*entity.InventoryStatus, error) {
	var dto inventoryStatusDTO
	if err := g.client.Get(ctx, "/admin/inventory/status", nil, &dto); err != nil {
		return nil, wrapAdmin(err, "fetch inventory status failed")
	}

	return &entity.InventoryStatus{
		TotalProducts:   dto.TotalProducts,
		InStock:         dto.InStock,
		LowStock:        dto.LowStock,
		OutOfStock:      dto.OutOfStock,
		TotalStockValue: dto.TotalStockValue,
	}, nil
}

type lowStockItemDTO struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Category string    `json:"category"`
	Quantity int       `json:"quantity"`
	Price    float64   `json:"price"`
}

func (g *adminGateway) LowStock(ctx context.Context, threshold int) ([]*entity.LowStockItem, error) {
	query := url.Values{"threshold": []string{strconv.Itoa(threshold)}}

	var dtos []lowStockItemDTO
	if err := g.client.Get(ctx, "/admin/inventory/low-stock", query, &dtos); err != nil {
		return nil, wrapAdmin(err, "fetch low stock failed")
	}

	items := make([]*entity.LowStockItem, 0, len(dtos))
	for _, dto := range dtos {
		items = append(items, &entity.LowStockItem{
			ID:       dto.ID,
			Name:     dto.Name,
			Category: dto.Category,
			Quantity: dto.Quantity,
			Price:    dto.Price,
		})
	}

	return items, nil
}

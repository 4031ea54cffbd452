// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// The analytics types below are read-only projections of the backend's
// admin analytics endpoints. All aggregation happens server-side; the
// client only displays them.

// DashboardStats summarizes account counts for the admin landing view.
type DashboardStats struct {
	TotalUsers   int
	AdminUsers   int
	RegularUsers int
	AdminEmail   string
}

// SystemStatus is the backend's self-reported health snapshot.
type SystemStatus struct {
	Status    string
	Uptime    string
	Timestamp time.Time
}

// SalesOverview aggregates revenue and order counts over a range.
type SalesOverview struct {
	Range             string
	TotalRevenue      float64
	TotalOrders       int
	AverageOrderValue float64
	ConversionRate    float64
	RevenueGrowth     float64
	OrdersGrowth      float64
	AvgOrderGrowth    float64
	ConversionGrowth  float64
}

// MonthlySales is one month's revenue bucket.
type MonthlySales struct {
	Month   string
	Revenue float64
	Orders  int
	Growth  float64
}

// TopProduct is one entry of the best-sellers list.
type TopProduct struct {
	ID        uuid.UUID
	Name      string
	Category  string
	UnitsSold int
	Revenue   float64
	Profit    float64
	Stock     int
	Image     string
}

// CategorySales aggregates revenue per catalog category.
type CategorySales struct {
	Category   string
	Revenue    float64
	Percentage float64
	UnitsSold  int
	Profit     float64
}

// CustomerSummary aggregates customer activity over a range.
type CustomerSummary struct {
	TotalCustomers        int
	NewCustomers          int
	ReturningCustomers    int
	AverageCustomerValue  float64
	CustomerRetentionRate float64
}

// CustomerSegment is one bucket of the customer segmentation view.
type CustomerSegment struct {
	Segment       string
	Count         int
	AvgOrderValue float64
}

// WebsiteTraffic aggregates site visit metrics over a range.
type WebsiteTraffic struct {
	TotalVisits        int
	UniqueVisitors     int
	BounceRate         float64
	AvgSessionDuration string
	PageViews          int
}

// ConversionFunnel counts users surviving each purchase stage.
type ConversionFunnel struct {
	Visitors     int
	ProductViews int
	AddToCart    int
	Checkout     int
	Completed    int
}

// ShippingMetrics aggregates fulfilment performance over a range.
type ShippingMetrics struct {
	AvgShippingTime       string
	OnTimeDelivery        float64
	ShippingCost          float64
	FreeShippingThreshold float64
}

// SystemAlert is one operational alert raised by the backend.
type SystemAlert struct {
	ID        uuid.UUID
	Severity  string
	Message   string
	CreatedAt time.Time
}

// InventoryStatus summarizes stock health across the catalog.
type InventoryStatus struct {
	TotalProducts   int
	InStock         int
	LowStock        int
	OutOfStock      int
	TotalStockValue float64
}

// LowStockItem is one product below the restock threshold.
type LowStockItem struct {
	ID       uuid.UUID
	Name     string
	Category string
	Quantity int
	Price    float64
}

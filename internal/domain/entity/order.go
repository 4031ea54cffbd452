// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the backend's order lifecycle state.
type OrderStatus string

const (
	OrderPending    OrderStatus = "PENDING"
	OrderProcessing OrderStatus = "PROCESSING"
	OrderShipped    OrderStatus = "SHIPPED"
	OrderDelivered  OrderStatus = "DELIVERED"
	OrderCancelled  OrderStatus = "CANCELLED"
)

// Order is a placed order as returned by the backend. Orders are created
// server-side from the cart at checkout; the client never assembles one.
type Order struct {
	ID             uuid.UUID   // The unique order ID.
	Username       string      // Email of the account that placed the order.
	Items          []OrderItem // The purchased lines, frozen at checkout.
	TotalAmount    float64     // Total charged, computed server-side.
	Status         OrderStatus // Current lifecycle state.
	TrackingNumber string      // Carrier tracking number, empty until shipped.
	OrderDate      time.Time   // When the order was placed.
}

// OrderItem is one purchased line within an order.
type OrderItem struct {
	SweetID  uuid.UUID // The catalog product purchased.
	Name     string    // Product name at purchase time.
	Quantity int       // Units purchased.
	Price    float64   // Unit price at purchase time.
}

// PaymentDetails carries the mocked payment form data sent with
// checkout. The backend validates and "processes" it; nothing is
// charged for real.
type PaymentDetails struct {
	CardNumber      string `json:"cardNumber" validate:"required,len=16,numeric"`
	CardHolder      string `json:"cardHolder" validate:"required,min=2"`
	ExpiryMonth     int    `json:"expiryMonth" validate:"required,min=1,max=12"`
	ExpiryYear      int    `json:"expiryYear" validate:"required,min=2024"`
	CVV             string `json:"cvv" validate:"required,min=3,max=4,numeric"`
	ShippingAddress string `json:"shippingAddress" validate:"required,min=5"`
}

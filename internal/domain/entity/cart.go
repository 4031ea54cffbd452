// Package entity contains the core business objects of the project.
package entity

import (
	"github.com/google/uuid"
)

// CartItem is the client's view of one server-side cart line. The server
// owns the truth; this projection is rebuilt wholesale after every
// mutation and persisted locally only as a disposable snapshot.
type CartItem struct {
	CartItemID  uuid.UUID `json:"cartItemId"`  // The server-assigned cart line ID, required for update/delete calls.
	SweetID     uuid.UUID `json:"id"`          // The catalog product this line refers to.
	Name        string    `json:"name"`        // Denormalized product name for display.
	Category    string    `json:"category"`    // Denormalized category for display.
	Price       float64   `json:"price"`       // Unit price captured at add time.
	Quantity    int       `json:"quantity"`    // Units in the cart; always >= 1 while the line exists.
	Description string    `json:"description"` // Denormalized description for display.
	Image       string    `json:"image"`       // Denormalized image URL for display.
}

// LineTotal is the price contribution of this line.
func (i *CartItem) LineTotal() float64 {
	return i.Price * float64(i.Quantity)
}

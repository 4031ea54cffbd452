// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"github.com/google/uuid"
)

// Sweet represents a single catalog product as the backend exposes it.
// Quantity is the units currently in stock, not a cart quantity.
type Sweet struct {
	ID          uuid.UUID // The unique ID assigned by the backend.
	Name        string    // Display name, unique across the catalog.
	Category    string    // Free-form category label, e.g. "chocolate".
	Price       float64   // Unit price.
	Quantity    int       // Units available in inventory (the stock clamp ceiling).
	Description string    // Longer marketing copy, may be empty.
	Image       string    // Image URL, may be empty.
}

// InStock reports whether at least one unit can still be ordered.
func (s *Sweet) InStock() bool {
	return s.Quantity > 0
}

// SweetFilter narrows a catalog listing. Zero values mean "no constraint".
type SweetFilter struct {
	Name     string  // Substring match on the product name.
	Category string  // Exact category match.
	MinPrice float64 // Inclusive lower price bound, 0 disables.
	MaxPrice float64 // Inclusive upper price bound, 0 disables.
}

// IsZero reports whether the filter imposes no constraints at all.
func (f SweetFilter) IsZero() bool {
	return f.Name == "" && f.Category == "" && f.MinPrice == 0 && f.MaxPrice == 0
}

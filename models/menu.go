package models

import "time"

// MenuItem is a row from menu_items. Price is stored in cents; the
// major-unit string form exists only at the API boundary.
type MenuItem struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
	Image       string    `json:"image,omitempty"`
	Available   bool      `json:"available"`
	CreatedAt   time.Time `json:"createdAt"`
}

const (
	CategoryAppetizers = "appetizers"
	CategoryMains      = "mains"
	CategoryDesserts   = "desserts"
	CategoryBeverages  = "beverages"
)

// Categories lists the accepted menu categories in display order.
var Categories = []string{
	CategoryAppetizers,
	CategoryMains,
	CategoryDesserts,
	CategoryBeverages,
}

// ValidCategory reports whether c is one of the known categories.
// Matching is case-sensitive.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

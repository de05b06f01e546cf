package domain

import "time"

// Product is the catalog aggregate root.
type Product struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"`
	SKU           string         `json:"sku"`
	CategoryID    string         `json:"category_id"`
	StockQuantity int            `json:"stock_quantity"`
	IsActive      bool           `json:"is_active"`
	ImageURLs     []string       `json:"image_urls"`
	Weight        *float64       `json:"weight,omitempty"`
	Brand         string         `json:"brand,omitempty"`
	Attributes    map[string]any `json:"attributes"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// Category is a node in the category tree. ParentID is empty for roots.
// Cycle-freedom is assumed by callers, not enforced by the store.
type Category struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	ParentID string `json:"parent_id,omitempty"`
}

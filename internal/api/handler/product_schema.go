package handler

import "time"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type createProductRequest struct {
	Name          string         `json:"name"           validate:"required,max=200"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"          validate:"required,gt=0"`
	SKU           string         `json:"sku"            validate:"required,max=50"`
	CategoryID    string         `json:"category_id"    validate:"required"`
	StockQuantity int            `json:"stock_quantity" validate:"gte=0"`
	ImageURLs     []string       `json:"image_urls"`
	Weight        *float64       `json:"weight"         validate:"omitempty,gt=0"`
	Brand         string         `json:"brand"`
	Attributes    map[string]any `json:"attributes"`
}

type updateProductRequest struct {
	Name          string         `json:"name"           validate:"required,max=200"`
	Description   string         `json:"description"`
	Price         float64        `json:"price"          validate:"required,gt=0"`
	CategoryID    string         `json:"category_id"    validate:"required"`
	StockQuantity int            `json:"stock_quantity" validate:"gte=0"`
	ImageURLs     []string       `json:"image_urls"`
	Weight        *float64       `json:"weight"         validate:"omitempty,gt=0"`
	Brand         string         `json:"brand"`
	Attributes    map[string]any `json:"attributes"`
	IsActive      bool           `json:"is_active"`
}

// updateStockRequest deliberately carries no validation: the quantity is
// written verbatim, negative values included (caller-trusted).
type updateStockRequest struct {
	Quantity int `json:"quantity"`
}

// --- Response types, owned by the transport layer ---
// Intentionally separate from domain types so the JSON contract is not
// coupled to internal service changes.

type productResponse struct {
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

type listProductsResponse struct {
	Items       []productResponse `json:"items"`
	TotalCount  int64             `json:"total_count"`
	PageSize    int               `json:"page_size"`
	CurrentPage int               `json:"current_page"`
}

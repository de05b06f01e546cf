package ports

import (
	"context"

	"github.com/techmart/commerce-api/internal/core/domain"
)

// ProductSearchCriteria carries the query parameters for the list endpoint.
type ProductSearchCriteria struct {
	SearchTerm string
	CategoryID string
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     string
	SortDesc   bool
	Skip       int
	Take       int
}

// PagedResult is the list-endpoint envelope.
//
// CurrentPage is computed as skip/take + 1 and is only meaningful when skip
// is a multiple of take; the formula is kept verbatim for compatibility with
// existing clients.
type PagedResult struct {
	Items       []*domain.Product
	TotalCount  int64
	PageSize    int
	CurrentPage int
}

// CreateProductInput carries all data needed to create a product.
type CreateProductInput struct {
	Name          string
	Description   string
	Price         float64
	SKU           string
	CategoryID    string
	StockQuantity int
	ImageURLs     []string
	Weight        *float64
	Brand         string
	Attributes    map[string]any
}

// UpdateProductInput carries the mutable fields for a full product update.
type UpdateProductInput struct {
	Name          string
	Description   string
	Price         float64
	CategoryID    string
	StockQuantity int
	ImageURLs     []string
	Weight        *float64
	Brand         string
	Attributes    map[string]any
	IsActive      bool
}

// ProductService defines the catalog use cases.
type ProductService interface {
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context, criteria ProductSearchCriteria) (*PagedResult, error)
	CreateProduct(ctx context.Context, in CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, id string, in UpdateProductInput) (*domain.Product, error)
	// UpdateStock overwrites the stock quantity and invalidates the cached
	// entry. Inactive products remain addressable here.
	UpdateStock(ctx context.Context, id string, quantity int) error
	// DeleteProduct soft-deletes: the product is deactivated, not removed.
	DeleteProduct(ctx context.Context, id string) error
}

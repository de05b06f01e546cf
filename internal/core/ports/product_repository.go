package ports

import (
	"context"

	"github.com/techmart/commerce-api/internal/core/domain"
)

// Sort keys accepted by ListProductsFilter. Anything else falls back to
// ascending-by-name.
const (
	SortByName    = "name"
	SortByPrice   = "price"
	SortByCreated = "created"
)

// ListProductsFilter carries the composed query for listing products.
// All filters are conjunctive; zero values mean "no filter".
type ListProductsFilter struct {
	SearchTerm string   // substring match on name or description
	CategoryID string   // exact match
	MinPrice   *float64 // price >= MinPrice
	MaxPrice   *float64 // price <= MaxPrice
	SortBy     string   // one of the SortBy* constants
	SortDesc   bool
	Skip       int
	Take       int
}

// ProductRepository defines persistence operations for catalog entities.
type ProductRepository interface {
	Create(ctx context.Context, p *domain.Product) (*domain.Product, error)
	// FindByID retrieves a product by id. When activeOnly is true, inactive
	// products resolve to domain.ErrProductNotFound.
	FindByID(ctx context.Context, id string, activeOnly bool) (*domain.Product, error)
	Update(ctx context.Context, p *domain.Product) error
	// List returns a page of active products matching filter and the total
	// count over the filtered, pre-pagination set.
	List(ctx context.Context, filter ListProductsFilter) ([]*domain.Product, int64, error)
}

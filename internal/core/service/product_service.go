package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/techmart/commerce-api/internal/api/metrics"
	"github.com/techmart/commerce-api/internal/core/domain"
	"github.com/techmart/commerce-api/internal/core/ports"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// ProductCache abstracts the TTL-backed snapshot store (Redis) for
// single-product reads. Get returns (nil, nil) on a miss.
type ProductCache interface {
	Get(ctx context.Context, id string) (*domain.Product, error)
	Set(ctx context.Context, p *domain.Product) error
	Invalidate(ctx context.Context, id string) error
}

// ProductService implements the catalog read and write paths. The store is
// authoritative; the cache only accelerates single-entity reads.
type ProductService struct {
	repo  ports.ProductRepository
	cache ProductCache
	log   zerolog.Logger
}

func NewProductService(repo ports.ProductRepository, cache ProductCache, log zerolog.Logger) *ProductService {
	return &ProductService{repo: repo, cache: cache, log: log}
}

// GetProduct returns the product by id, serving from cache when possible.
// A cache hit never consults the store, so reads may lag concurrent writes
// by at most the cache TTL. On a miss the store result is written through.
func (s *ProductService) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	cached, err := s.cache.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get product: cache read: %w", err)
	}
	if cached != nil {
		metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
		return cached, nil
	}
	metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()

	product, err := s.repo.FindByID(ctx, id, true)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(ctx, product); err != nil {
		return nil, fmt.Errorf("get product: cache write: %w", err)
	}
	return product, nil
}

// ListProducts composes the search/filter/sort/paginate query. The cache is
// never involved; only single-entity reads are cached.
func (s *ProductService) ListProducts(ctx context.Context, criteria ports.ProductSearchCriteria) (*ports.PagedResult, error) {
	take := criteria.Take
	if take <= 0 {
		take = defaultPageSize
	}
	if take > maxPageSize {
		take = maxPageSize
	}
	skip := criteria.Skip
	if skip < 0 {
		skip = 0
	}

	items, total, err := s.repo.List(ctx, ports.ListProductsFilter{
		SearchTerm: criteria.SearchTerm,
		CategoryID: criteria.CategoryID,
		MinPrice:   criteria.MinPrice,
		MaxPrice:   criteria.MaxPrice,
		SortBy:     criteria.SortBy,
		SortDesc:   criteria.SortDesc,
		Skip:       skip,
		Take:       take,
	})
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	return &ports.PagedResult{
		Items:      items,
		TotalCount: total,
		PageSize:   take,
		// Only meaningful when skip is a multiple of take; kept verbatim
		// for compatibility with existing clients.
		CurrentPage: (skip / take) + 1,
	}, nil
}

// CreateProduct persists a new product and returns it with its assigned id.
// Nothing is cached for a new id, so there is no cache interaction.
func (s *ProductService) CreateProduct(ctx context.Context, in ports.CreateProductInput) (*domain.Product, error) {
	now := time.Now().UTC()

	images := in.ImageURLs
	if images == nil {
		images = []string{}
	}
	attrs := in.Attributes
	if attrs == nil {
		attrs = map[string]any{}
	}

	product := &domain.Product{
		Name:          in.Name,
		Description:   in.Description,
		Price:         in.Price,
		SKU:           in.SKU,
		CategoryID:    in.CategoryID,
		StockQuantity: in.StockQuantity,
		IsActive:      true,
		ImageURLs:     images,
		Weight:        in.Weight,
		Brand:         in.Brand,
		Attributes:    attrs,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	created, err := s.repo.Create(ctx, product)
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("product_id", created.ID).Str("sku", created.SKU).Msg("product created")
	metrics.ProductsCreatedTotal.WithLabelValues(created.CategoryID).Inc()

	return created, nil
}

// UpdateProduct applies a full field update. Inactive products stay
// addressable so they can be corrected and reactivated.
func (s *ProductService) UpdateProduct(ctx context.Context, id string, in ports.UpdateProductInput) (*domain.Product, error) {
	product, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	product.Name = in.Name
	product.Description = in.Description
	product.Price = in.Price
	product.CategoryID = in.CategoryID
	product.StockQuantity = in.StockQuantity
	product.ImageURLs = in.ImageURLs
	if product.ImageURLs == nil {
		product.ImageURLs = []string{}
	}
	product.Weight = in.Weight
	product.Brand = in.Brand
	product.Attributes = in.Attributes
	if product.Attributes == nil {
		product.Attributes = map[string]any{}
	}
	product.IsActive = in.IsActive
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		return nil, fmt.Errorf("update product: invalidate cache: %w", err)
	}

	s.log.Info().Str("product_id", id).Msg("product updated")
	return product, nil
}

// UpdateStock overwrites the stock quantity. The quantity is written
// verbatim (negative values are caller-trusted) and the cache entry is
// invalidated unconditionally so the next read observes fresh data.
func (s *ProductService) UpdateStock(ctx context.Context, id string, quantity int) error {
	product, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return err
	}

	product.StockQuantity = quantity
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return fmt.Errorf("update stock: %w", err)
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		return fmt.Errorf("update stock: invalidate cache: %w", err)
	}

	s.log.Info().Str("product_id", id).Int("quantity", quantity).Msg("stock updated")
	metrics.StockUpdatesTotal.Inc()

	return nil
}

// DeleteProduct soft-deletes: the product is deactivated so the read path
// stops serving it, and its cache entry is invalidated.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	product, err := s.repo.FindByID(ctx, id, false)
	if err != nil {
		return err
	}

	product.IsActive = false
	product.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, product); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if err := s.cache.Invalidate(ctx, id); err != nil {
		return fmt.Errorf("delete product: invalidate cache: %w", err)
	}

	s.log.Info().Str("product_id", id).Msg("product deactivated")
	return nil
}

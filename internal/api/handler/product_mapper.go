package handler

import (
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/techmart/commerce-api/internal/core/domain"
	"github.com/techmart/commerce-api/internal/core/ports"
)

// --- Request → Service input ---

func toCreateInput(req createProductRequest) ports.CreateProductInput {
	return ports.CreateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		SKU:           req.SKU,
		CategoryID:    req.CategoryID,
		StockQuantity: req.StockQuantity,
		ImageURLs:     req.ImageURLs,
		Weight:        req.Weight,
		Brand:         req.Brand,
		Attributes:    req.Attributes,
	}
}

func toUpdateInput(req updateProductRequest) ports.UpdateProductInput {
	return ports.UpdateProductInput{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		CategoryID:    req.CategoryID,
		StockQuantity: req.StockQuantity,
		ImageURLs:     req.ImageURLs,
		Weight:        req.Weight,
		Brand:         req.Brand,
		Attributes:    req.Attributes,
		IsActive:      req.IsActive,
	}
}

// parseCriteria reads the list query parameters. Malformed numbers are
// ignored rather than rejected, leaving the corresponding filter unset.
func parseCriteria(c echo.Context) ports.ProductSearchCriteria {
	criteria := ports.ProductSearchCriteria{
		SearchTerm: c.QueryParam("search"),
		CategoryID: c.QueryParam("category_id"),
		SortBy:     c.QueryParam("sort_by"),
	}

	if v, err := strconv.ParseFloat(c.QueryParam("min_price"), 64); err == nil {
		criteria.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.QueryParam("max_price"), 64); err == nil {
		criteria.MaxPrice = &v
	}
	if v, err := strconv.ParseBool(c.QueryParam("sort_desc")); err == nil {
		criteria.SortDesc = v
	}
	if v, err := strconv.Atoi(c.QueryParam("skip")); err == nil {
		criteria.Skip = v
	}
	if v, err := strconv.Atoi(c.QueryParam("take")); err == nil {
		criteria.Take = v
	}

	return criteria
}

// --- Service result → HTTP response ---

func toProductResponse(p *domain.Product) productResponse {
	return productResponse{
		ID:            p.ID,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		SKU:           p.SKU,
		CategoryID:    p.CategoryID,
		StockQuantity: p.StockQuantity,
		IsActive:      p.IsActive,
		ImageURLs:     p.ImageURLs,
		Weight:        p.Weight,
		Brand:         p.Brand,
		Attributes:    p.Attributes,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toListResponse(r *ports.PagedResult) listProductsResponse {
	items := make([]productResponse, 0, len(r.Items))
	for _, p := range r.Items {
		items = append(items, toProductResponse(p))
	}
	return listProductsResponse{
		Items:       items,
		TotalCount:  r.TotalCount,
		PageSize:    r.PageSize,
		CurrentPage: r.CurrentPage,
	}
}

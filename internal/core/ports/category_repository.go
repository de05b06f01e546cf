package ports

import (
	"context"

	"github.com/techmart/commerce-api/internal/core/domain"
)

// CategoryRepository defines persistence operations for the category tree.
type CategoryRepository interface {
	Create(ctx context.Context, c *domain.Category) (*domain.Category, error)
	FindByID(ctx context.Context, id string) (*domain.Category, error)
	// List returns all categories ordered by name.
	List(ctx context.Context) ([]*domain.Category, error)
}

// CreateCategoryInput carries the data needed to create a category.
// ParentID is empty for root categories.
type CreateCategoryInput struct {
	Name     string
	ParentID string
}

// CategoryService defines the category use cases.
type CategoryService interface {
	ListCategories(ctx context.Context) ([]*domain.Category, error)
	// CreateCategory creates a category. A non-empty parent must exist.
	CreateCategory(ctx context.Context, in CreateCategoryInput) (*domain.Category, error)
}

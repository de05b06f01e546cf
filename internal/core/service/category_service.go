package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/techmart/commerce-api/internal/core/domain"
	"github.com/techmart/commerce-api/internal/core/ports"
)

// CategoryService implements the category tree use cases.
type CategoryService struct {
	repo ports.CategoryRepository
	log  zerolog.Logger
}

func NewCategoryService(repo ports.CategoryRepository, log zerolog.Logger) *CategoryService {
	return &CategoryService{repo: repo, log: log}
}

func (s *CategoryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// CreateCategory creates a category. A non-empty ParentID must reference an
// existing category; cycle-freedom is assumed, not enforced.
func (s *CategoryService) CreateCategory(ctx context.Context, in ports.CreateCategoryInput) (*domain.Category, error) {
	if in.ParentID != "" {
		if _, err := s.repo.FindByID(ctx, in.ParentID); err != nil {
			return nil, err
		}
	}

	created, err := s.repo.Create(ctx, &domain.Category{
		Name:     in.Name,
		ParentID: in.ParentID,
	})
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}

	s.log.Info().Str("category_id", created.ID).Str("name", created.Name).Msg("category created")
	return created, nil
}

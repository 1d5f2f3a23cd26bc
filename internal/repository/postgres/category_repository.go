package postgres

import (
	"context"
	"fmt"
	"storefront/domain"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{
		DB: db,
	}
}

func (r *CategoryRepository) Create(ctx context.Context, category *domain.Category) error {
	if err := insert(ctx, r.DB, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

func (r *CategoryRepository) FindByID(ctx context.Context, id int64) (domain.Category, error) {
	category, err := findByID[domain.Category](ctx, r.DB, id, "category not found")
	if err != nil {
		return domain.Category{}, wrapUnlessNotFound("failed to find category", err)
	}

	return category, nil
}

func (r *CategoryRepository) FindAll(ctx context.Context) ([]domain.Category, error) {
	categories, err := findWhere[domain.Category](ctx, r.DB, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to find categories: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Category, error) {
	if len(ids) == 0 {
		return []domain.Category{}, nil
	}

	categories, err := findWhere[domain.Category](ctx, r.DB, "id = ANY(?)", pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to find categories by ids: %w", err)
	}

	return categories, nil
}

func (r *CategoryRepository) Update(ctx context.Context, category *domain.Category) error {
	updated, err := updatePartial[domain.Category](ctx, r.DB, category.ID, map[string]any{
		"name": category.Name,
	}, "category not found")
	if err != nil {
		return wrapUnlessNotFound("failed to update category", err)
	}

	*category = updated
	return nil
}

func (r *CategoryRepository) Delete(ctx context.Context, id int64) (domain.Category, error) {
	category, err := deleteReturning[domain.Category](ctx, r.DB, id, "category not found")
	if err != nil {
		return domain.Category{}, wrapUnlessNotFound("failed to delete category", err)
	}

	return category, nil
}

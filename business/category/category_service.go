package category

import (
	"context"
	"fmt"
	"storefront/domain"
	"storefront/pkg/apperror"
	"storefront/pkg/logger"
	"storefront/pkg/validation"
	"time"
)

// CategoryRepository contract interface
type CategoryRepository interface {
	Create(ctx context.Context, category *domain.Category) error
	FindByID(ctx context.Context, id int64) (domain.Category, error)
	FindAll(ctx context.Context) ([]domain.Category, error)
	Update(ctx context.Context, category *domain.Category) error
	Delete(ctx context.Context, id int64) (domain.Category, error)
}

type CategoryInput struct {
	Name string `json:"name" validate:"required"`
}

type categoryService struct {
	categoryRepo CategoryRepository
	validate     *validation.Validator
	now          func() time.Time
}

func NewCategoryService(categoryRepo CategoryRepository, validate *validation.Validator) *categoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		validate:     validate,
		now:          time.Now,
	}
}

func (s *categoryService) GetAllCategories(ctx context.Context) ([]domain.Category, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all categories")
		return nil, fmt.Errorf("context error: %w", err)
	}

	categories, err := s.categoryRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all categories", err)
		return nil, err
	}

	return categories, nil
}

func (s *categoryService) GetCategoryByID(ctx context.Context, id int64) (domain.Category, error) {
	if id <= 0 {
		logger.Error("Invalid category id")
		return domain.Category{}, apperror.NotFound("category not found")
	}

	category, err := s.categoryRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("Failed to find category", err)
		return domain.Category{}, err
	}

	return category, nil
}

func (s *categoryService) CreateCategory(ctx context.Context, in CategoryInput) (domain.Category, error) {
	if err := s.validate.Struct(&in); err != nil {
		logger.Error("Invalid category data", err)
		return domain.Category{}, err
	}

	category := domain.Category{Name: in.Name, CreatedAt: s.now()}
	if err := s.categoryRepo.Create(ctx, &category); err != nil {
		logger.Error("failed to create new category", err)
		return domain.Category{}, err
	}

	logger.Info("category created successfully", "category_id", category.ID)

	return category, nil
}

// ReplaceCategory overwrites the category name. A missing row is reported
// by the repository as not found.
func (s *categoryService) ReplaceCategory(ctx context.Context, id int64, in CategoryInput) (domain.Category, error) {
	if err := s.validate.Struct(&in); err != nil {
		logger.Error("Invalid category data", err)
		return domain.Category{}, err
	}

	category := domain.Category{ID: id, Name: in.Name}
	if err := s.categoryRepo.Update(ctx, &category); err != nil {
		logger.Error("failed to update category", err)
		return domain.Category{}, err
	}

	logger.Info("category updated successfully", "category_id", id)

	return category, nil
}

func (s *categoryService) DeleteCategory(ctx context.Context, id int64) (domain.Category, error) {
	category, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		logger.Error("failed to delete category", err)
		return domain.Category{}, err
	}

	logger.Info("category deleted successfully", "category_id", id)

	return category, nil
}

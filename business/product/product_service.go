package product

import (
	"context"
	"fmt"
	"storefront/domain"
	"storefront/pkg/apperror"
	"storefront/pkg/logger"
	"storefront/pkg/optional"
	"storefront/pkg/validation"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// ProductRepository contract interface
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	FindByID(ctx context.Context, id int64) (domain.Product, error)
	FindAll(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, id int64, cols map[string]any) (domain.Product, error)
	Delete(ctx context.Context, id int64) (domain.Product, error)
}

// CategoryRepository resolves the categories a product references.
type CategoryRepository interface {
	FindByIDs(ctx context.Context, ids []int64) ([]domain.Category, error)
}

type CreateProductInput struct {
	Name        string          `json:"name" xml:"name" validate:"required"`
	About       string          `json:"about" xml:"about" validate:"required"`
	Price       decimal.Decimal `json:"price" xml:"price" validate:"required,price"`
	CategoryIDs []int64         `json:"categoryIds" xml:"categoryIds>id" validate:"omitempty,dive,gt=0"`
}

// PatchProductInput is a partial update. A null categoryIds clears the
// list; null for any other field is rejected.
type PatchProductInput struct {
	Name        optional.Field[string]          `json:"name" validate:"omitempty,min=1"`
	About       optional.Field[string]          `json:"about" validate:"omitempty,min=1"`
	Price       optional.Field[decimal.Decimal] `json:"price" validate:"omitempty,price"`
	CategoryIDs optional.Field[[]int64]         `json:"categoryIds" validate:"omitempty,dive,gt=0"`
}

type productService struct {
	productRepo  ProductRepository
	categoryRepo CategoryRepository
	validate     *validation.Validator
	now          func() time.Time
}

func NewProductService(productRepo ProductRepository, categoryRepo CategoryRepository, validate *validation.Validator) *productService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		validate:     validate,
		now:          time.Now,
	}
}

func (s *productService) GetAllProducts(ctx context.Context) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		logger.Error("context error when get all product")
		return nil, fmt.Errorf("context error: %w", err)
	}

	products, err := s.productRepo.FindAll(ctx)
	if err != nil {
		logger.Error("Failed to find all product", err)
		return nil, err
	}

	return products, nil
}

// GetAllProductsWithCategories lists products with their categories
// resolved in one extra lookup.
func (s *productService) GetAllProductsWithCategories(ctx context.Context) ([]domain.ProductWithCategories, error) {
	products, err := s.GetAllProducts(ctx)
	if err != nil {
		return nil, err
	}

	return s.expand(ctx, products)
}

func (s *productService) GetProductByID(ctx context.Context, id int64) (domain.Product, error) {
	if id <= 0 {
		logger.Error("invalid product id")
		return domain.Product{}, apperror.NotFound("product not found")
	}

	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		logger.Error("failed to find product by id", err)
		return domain.Product{}, err
	}

	return product, nil
}

func (s *productService) GetProductWithCategories(ctx context.Context, id int64) (domain.ProductWithCategories, error) {
	product, err := s.GetProductByID(ctx, id)
	if err != nil {
		return domain.ProductWithCategories{}, err
	}

	expanded, err := s.expand(ctx, []domain.Product{product})
	if err != nil {
		return domain.ProductWithCategories{}, err
	}

	return expanded[0], nil
}

func (s *productService) CreateProduct(ctx context.Context, in CreateProductInput) (domain.Product, error) {
	if err := s.validate.Struct(&in); err != nil {
		logger.Error("Invalid product data", err)
		return domain.Product{}, err
	}

	if err := s.checkCategories(ctx, in.CategoryIDs); err != nil {
		return domain.Product{}, err
	}

	now := s.now()
	product := domain.Product{
		Name:        in.Name,
		About:       in.About,
		Price:       in.Price,
		CategoryIDs: categoryIDs(in.CategoryIDs),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.productRepo.Create(ctx, &product); err != nil {
		logger.Error("failed to create new product", err)
		return domain.Product{}, err
	}

	logger.Info("product created successfully", "product_id", product.ID)

	return product, nil
}

// ReplaceProduct overwrites every writable field of an existing product.
func (s *productService) ReplaceProduct(ctx context.Context, id int64, in CreateProductInput) (domain.Product, error) {
	if err := s.validate.Struct(&in); err != nil {
		logger.Error("Invalid product data", err)
		return domain.Product{}, err
	}

	if err := s.checkCategories(ctx, in.CategoryIDs); err != nil {
		return domain.Product{}, err
	}

	product, err := s.productRepo.Update(ctx, id, domain.ProductPatch{
		Name:        &in.Name,
		About:       &in.About,
		Price:       &in.Price,
		CategoryIDs: in.CategoryIDs,
		SetCategory: true,
	}.Columns(s.now()))
	if err != nil {
		logger.Error("failed to update product", err)
		return domain.Product{}, err
	}

	logger.Info("product updated success", "product_id", id)

	return product, nil
}

func (s *productService) PatchProduct(ctx context.Context, id int64, in PatchProductInput) (domain.Product, error) {
	if err := s.validate.Struct(&in); err != nil {
		logger.Error("Invalid product patch", err)
		return domain.Product{}, err
	}

	nulls := []struct {
		field string
		null  bool
	}{
		{"name", in.Name.Set && in.Name.Null},
		{"about", in.About.Set && in.About.Null},
		{"price", in.Price.Set && in.Price.Null},
	}
	for _, n := range nulls {
		if n.null {
			return domain.Product{}, apperror.Validation("request validation failed", apperror.FieldViolation{
				Field:   n.field,
				Rule:    "not_null",
				Message: n.field + " cannot be null",
			})
		}
	}

	var patch domain.ProductPatch
	if v, ok := in.Name.Get(); ok {
		patch.Name = &v
	}
	if v, ok := in.About.Get(); ok {
		patch.About = &v
	}
	if v, ok := in.Price.Get(); ok {
		patch.Price = &v
	}
	if in.CategoryIDs.Set {
		if err := s.checkCategories(ctx, in.CategoryIDs.Value); err != nil {
			return domain.Product{}, err
		}
		patch.CategoryIDs = in.CategoryIDs.Value
		patch.SetCategory = true
	}

	product, err := s.productRepo.Update(ctx, id, patch.Columns(s.now()))
	if err != nil {
		logger.Error("failed to patch product", err)
		return domain.Product{}, err
	}

	return product, nil
}

// DeleteProduct removes the product and returns the deleted row. Orders
// referencing it are left as they are.
func (s *productService) DeleteProduct(ctx context.Context, id int64) (domain.Product, error) {
	product, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		logger.Error("failed to delete product", err)
		return domain.Product{}, err
	}

	logger.Info("product deleted success", "product_id", id)

	return product, nil
}

func (s *productService) checkCategories(ctx context.Context, ids []int64) error {
	unique := map[int64]struct{}{}
	for _, id := range ids {
		unique[id] = struct{}{}
	}
	if len(unique) == 0 {
		return nil
	}

	wanted := make([]int64, 0, len(unique))
	for id := range unique {
		wanted = append(wanted, id)
	}

	found, err := s.categoryRepo.FindByIDs(ctx, wanted)
	if err != nil {
		logger.Error("failed to find categories", err)
		return err
	}
	if len(found) != len(wanted) {
		return apperror.Validation("one or more categories are invalid", apperror.FieldViolation{
			Field:   "categoryIds",
			Rule:    "exists",
			Message: "one or more categories are invalid",
		})
	}

	return nil
}

func (s *productService) expand(ctx context.Context, products []domain.Product) ([]domain.ProductWithCategories, error) {
	var ids []int64
	seen := map[int64]struct{}{}
	for _, p := range products {
		for _, id := range p.CategoryIDs {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				ids = append(ids, id)
			}
		}
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, ids)
	if err != nil {
		logger.Error("failed to join product categories", err)
		return nil, err
	}

	byID := make(map[int64]domain.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	out := make([]domain.ProductWithCategories, 0, len(products))
	for _, p := range products {
		expanded := domain.ProductWithCategories{Product: p, Categories: []domain.Category{}}
		for _, id := range p.CategoryIDs {
			if c, ok := byID[id]; ok {
				expanded.Categories = append(expanded.Categories, c)
			}
		}
		out = append(out, expanded)
	}

	return out, nil
}

func categoryIDs(ids []int64) pq.Int64Array {
	if ids == nil {
		return pq.Int64Array{}
	}
	return pq.Int64Array(ids)
}

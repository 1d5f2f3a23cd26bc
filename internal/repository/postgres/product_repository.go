package postgres

import (
	"context"
	"fmt"
	"storefront/domain"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProductRepository struct {
	DB *gorm.DB
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		DB: db,
	}
}

func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	if err := insert(ctx, r.DB, product); err != nil {
		if rejectedPrice(err) {
			return invalidPrice()
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id int64) (domain.Product, error) {
	product, err := findByID[domain.Product](ctx, r.DB, id, "product not found")
	if err != nil {
		return domain.Product{}, wrapUnlessNotFound("failed to find product", err)
	}

	return product, nil
}

func (r *ProductRepository) FindAll(ctx context.Context) ([]domain.Product, error) {
	products, err := findWhere[domain.Product](ctx, r.DB, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to find products: %w", err)
	}

	return products, nil
}

// FindByIDs returns the products whose id is in ids. Each product appears
// once regardless of duplicates in ids. Inside a transaction the rows are
// locked FOR SHARE so they cannot be deleted before the transaction ends.
func (r *ProductRepository) FindByIDs(ctx context.Context, ids []int64) ([]domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	q := conn(ctx, r.DB).Where("id = ANY(?)", pq.Array(ids))
	if inTransaction(ctx) {
		q = q.Clauses(clause.Locking{Strength: "SHARE"})
	}

	products := []domain.Product{}
	if err := q.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to find products by ids: %w", err)
	}

	return products, nil
}

func (r *ProductRepository) Update(ctx context.Context, id int64, cols map[string]any) (domain.Product, error) {
	product, err := updatePartial[domain.Product](ctx, r.DB, id, cols, "product not found")
	if rejectedPrice(err) {
		return domain.Product{}, invalidPrice()
	}
	if err != nil {
		return domain.Product{}, wrapUnlessNotFound("failed to update product", err)
	}

	return product, nil
}

func (r *ProductRepository) Delete(ctx context.Context, id int64) (domain.Product, error) {
	product, err := deleteReturning[domain.Product](ctx, r.DB, id, "product not found")
	if err != nil {
		return domain.Product{}, wrapUnlessNotFound("failed to delete product", err)
	}

	return product, nil
}

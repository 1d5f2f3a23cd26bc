package postgres

import (
	"context"
	"fmt"
	"storefront/domain"

	"gorm.io/gorm"
)

type OrdersRepository struct {
	DB *gorm.DB
}

func NewOrdersRepository(db *gorm.DB) *OrdersRepository {
	return &OrdersRepository{
		DB: db,
	}
}

func (r *OrdersRepository) Create(ctx context.Context, order *domain.Orders) error {
	if err := insert(ctx, r.DB, order); err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

func (r *OrdersRepository) FindAll(ctx context.Context) ([]domain.Orders, error) {
	orders, err := findWhere[domain.Orders](ctx, r.DB, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to find orders: %w", err)
	}

	return orders, nil
}

func (r *OrdersRepository) FindByID(ctx context.Context, id int64) (domain.Orders, error) {
	order, err := findByID[domain.Orders](ctx, r.DB, id, "order not found")
	if err != nil {
		return domain.Orders{}, wrapUnlessNotFound("failed to find order", err)
	}

	return order, nil
}

func (r *OrdersRepository) Update(ctx context.Context, id int64, patch domain.OrderPatch) (domain.Orders, error) {
	order, err := updatePartial[domain.Orders](ctx, r.DB, id, patch.Columns(), "order not found")
	if err != nil {
		return domain.Orders{}, wrapUnlessNotFound("failed to update order", err)
	}

	return order, nil
}

func (r *OrdersRepository) Delete(ctx context.Context, id int64) (domain.Orders, error) {
	order, err := deleteReturning[domain.Orders](ctx, r.DB, id, "order not found")
	if err != nil {
		return domain.Orders{}, wrapUnlessNotFound("failed to delete order", err)
	}

	return order, nil
}

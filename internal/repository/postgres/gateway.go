package postgres

import (
	"context"
	"errors"
	"fmt"

	"storefront/pkg/apperror"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// The helpers below are the generic find / insert / updatePartial / delete
// contract every repository is built on. All values reach the database as
// bound parameters.

func findWhere[T any](ctx context.Context, db *gorm.DB, query any, args ...any) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("context error: %w", err)
	}

	rows := []T{}
	q := conn(ctx, db)
	if query != nil {
		q = q.Where(query, args...)
	}
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	return rows, nil
}

func findByID[T any](ctx context.Context, db *gorm.DB, id int64, notFound string) (T, error) {
	var row T
	if err := ctx.Err(); err != nil {
		return row, fmt.Errorf("context error: %w", err)
	}

	err := conn(ctx, db).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return row, apperror.NotFound(notFound)
		}
		return row, err
	}

	return row, nil
}

func insert[T any](ctx context.Context, db *gorm.DB, row *T) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("context error: %w", err)
	}

	return conn(ctx, db).Clauses(clause.Returning{}).Create(row).Error
}

// updatePartial writes only cols on the row with id and returns the
// updated row.
func updatePartial[T any](ctx context.Context, db *gorm.DB, id int64, cols map[string]any, notFound string) (T, error) {
	var row T
	if err := ctx.Err(); err != nil {
		return row, fmt.Errorf("context error: %w", err)
	}

	result := conn(ctx, db).Model(&row).Clauses(clause.Returning{}).Where("id = ?", id).Updates(cols)
	if result.Error != nil {
		return row, result.Error
	}
	if result.RowsAffected == 0 {
		return row, apperror.NotFound(notFound)
	}

	return row, nil
}

func deleteReturning[T any](ctx context.Context, db *gorm.DB, id int64, notFound string) (T, error) {
	var row T
	if err := ctx.Err(); err != nil {
		return row, fmt.Errorf("context error: %w", err)
	}

	result := conn(ctx, db).Clauses(clause.Returning{}).Where("id = ?", id).Delete(&row)
	if result.Error != nil {
		return row, result.Error
	}
	if result.RowsAffected == 0 {
		return row, apperror.NotFound(notFound)
	}

	return row, nil
}

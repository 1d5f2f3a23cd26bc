package postgres

import (
	"errors"
	"fmt"

	"storefront/pkg/apperror"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// numeric_value_out_of_range; the postgres dialector does not translate it.
const codeNumericOutOfRange = "22003"

func wrapUnlessNotFound(msg string, err error) error {
	if apperror.KindOf(err) == apperror.KindNotFound {
		return err
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// rejectedPrice reports whether the database refused a product price,
// either through the price > 0 check or by overflowing NUMERIC(12,2).
func rejectedPrice(err error) bool {
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == codeNumericOutOfRange
}

func invalidPrice() error {
	return apperror.Validation("request validation failed", apperror.FieldViolation{
		Field:   "price",
		Rule:    "price",
		Message: "price is out of the accepted range",
	})
}

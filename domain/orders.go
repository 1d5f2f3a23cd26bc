package domain

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CREATE TABLE orders (
//     id           BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     user_id      BIGINT NOT NULL,
//     product_ids  BIGINT[] NOT NULL,
//     total        NUMERIC NOT NULL,
//     payment      BOOLEAN NOT NULL DEFAULT FALSE,
//     created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//     updated_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
// );

type Orders struct {
	ID         int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID     int64           `gorm:"column:user_id;not null" json:"userId"`
	ProductIDs pq.Int64Array   `gorm:"column:product_ids;type:bigint[];not null" json:"productIds"`
	Total      decimal.Decimal `gorm:"column:total;type:numeric;not null" json:"total"`
	Payment    bool            `gorm:"column:payment;not null;default:false" json:"payment"`
	CreatedAt  time.Time       `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt  time.Time       `gorm:"column:updated_at" json:"updatedAt"`
}

func (Orders) TableName() string {
	return "orders"
}

// OrderDetail is an order with its owning user and referenced products
// resolved. User is nil when the owner no longer exists.
type OrderDetail struct {
	Orders
	User     *PublicUser `json:"user"`
	Products []Product   `json:"products"`
}

// OrderPatch holds the staged columns of a partial order update.
type OrderPatch struct {
	UserID     *int64
	ProductIDs []int64
	Total      *decimal.Decimal
	Payment    *bool
	UpdatedAt  time.Time
}

func (p OrderPatch) Columns() map[string]any {
	cols := map[string]any{"updated_at": p.UpdatedAt}
	if p.UserID != nil {
		cols["user_id"] = *p.UserID
	}
	if p.ProductIDs != nil {
		cols["product_ids"] = pq.Int64Array(p.ProductIDs)
	}
	if p.Total != nil {
		cols["total"] = *p.Total
	}
	if p.Payment != nil {
		cols["payment"] = *p.Payment
	}
	return cols
}

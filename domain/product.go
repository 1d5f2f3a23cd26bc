package domain

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CREATE TABLE products (
//     id            BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name          TEXT NOT NULL,
//     about         TEXT NOT NULL,
//     price         NUMERIC(12,2) NOT NULL CHECK (price > 0),
//     category_ids  BIGINT[] NOT NULL DEFAULT '{}',
//     created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
//     updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
// );

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id" xml:"id"`
	Name        string          `gorm:"column:name;type:text;not null" json:"name" xml:"name"`
	About       string          `gorm:"column:about;type:text;not null" json:"about" xml:"about"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric" json:"price" xml:"price"`
	CategoryIDs pq.Int64Array   `gorm:"column:category_ids;type:bigint[]" json:"categoryIds" xml:"categoryIds>id"`
	CreatedAt   time.Time       `gorm:"column:created_at" json:"createdAt" xml:"createdAt"`
	UpdatedAt   time.Time       `gorm:"column:updated_at" json:"updatedAt" xml:"updatedAt"`
}

func (Product) TableName() string {
	return "products"
}

// ProductWithCategories is a product with its category ids resolved.
type ProductWithCategories struct {
	Product
	Categories []Category `json:"categories"`
}

// ProductPatch holds the staged columns of a partial product update.
type ProductPatch struct {
	Name        *string
	About       *string
	Price       *decimal.Decimal
	CategoryIDs []int64
	SetCategory bool
}

// Columns returns the column map to write. Only staged fields appear.
func (p ProductPatch) Columns(now time.Time) map[string]any {
	cols := map[string]any{"updated_at": now}
	if p.Name != nil {
		cols["name"] = *p.Name
	}
	if p.About != nil {
		cols["about"] = *p.About
	}
	if p.Price != nil {
		cols["price"] = *p.Price
	}
	if p.SetCategory {
		ids := pq.Int64Array{}
		ids = append(ids, p.CategoryIDs...)
		cols["category_ids"] = ids
	}
	return cols
}

package domain

import (
	"time"
)

// CREATE TABLE categories (
//     id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
//     name        TEXT NOT NULL,
//     created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
// );

type Category struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"column:name;type:text;not null" json:"name"`
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
}

func (Category) TableName() string {
	return "categories"
}

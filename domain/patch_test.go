package domain

import (
	"testing"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

var stamp = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func TestOrderPatch_Columns(t *testing.T) {
	tests := []struct {
		name  string
		patch OrderPatch
		want  map[string]any
	}{
		{
			name:  "nothing staged",
			patch: OrderPatch{UpdatedAt: stamp},
			want:  map[string]any{"updated_at": stamp},
		},
		{
			name:  "payment only",
			patch: OrderPatch{Payment: ptr(false), UpdatedAt: stamp},
			want:  map[string]any{"updated_at": stamp, "payment": false},
		},
		{
			name:  "products with total",
			patch: OrderPatch{ProductIDs: []int64{1, 1}, Total: ptr(decimal.NewFromInt(24)), UpdatedAt: stamp},
			want: map[string]any{
				"updated_at":  stamp,
				"product_ids": pq.Int64Array{1, 1},
				"total":       decimal.NewFromInt(24),
			},
		},
		{
			name: "replace",
			patch: OrderPatch{
				UserID:     ptr(int64(7)),
				ProductIDs: []int64{2},
				Total:      ptr(decimal.NewFromInt(12)),
				Payment:    ptr(false),
				UpdatedAt:  stamp,
			},
			want: map[string]any{
				"updated_at":  stamp,
				"user_id":     int64(7),
				"product_ids": pq.Int64Array{2},
				"total":       decimal.NewFromInt(12),
				"payment":     false,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.patch.Columns())
		})
	}
}

func TestProductPatch_Columns(t *testing.T) {
	tests := []struct {
		name  string
		patch ProductPatch
		want  map[string]any
	}{
		{
			name:  "nothing staged",
			patch: ProductPatch{},
			want:  map[string]any{"updated_at": stamp},
		},
		{
			name:  "price only",
			patch: ProductPatch{Price: ptr(decimal.RequireFromString("9.99"))},
			want:  map[string]any{"updated_at": stamp, "price": decimal.RequireFromString("9.99")},
		},
		{
			name:  "categories cleared",
			patch: ProductPatch{SetCategory: true},
			want:  map[string]any{"updated_at": stamp, "category_ids": pq.Int64Array{}},
		},
		{
			name:  "categories ignored unless set",
			patch: ProductPatch{Name: ptr("Pad"), CategoryIDs: []int64{3}},
			want:  map[string]any{"updated_at": stamp, "name": "Pad"},
		},
		{
			name:  "every field",
			patch: ProductPatch{Name: ptr("Pad"), About: ptr("A pad"), Price: ptr(decimal.NewFromInt(5)), CategoryIDs: []int64{3, 4}, SetCategory: true},
			want: map[string]any{
				"updated_at":   stamp,
				"name":         "Pad",
				"about":        "A pad",
				"price":        decimal.NewFromInt(5),
				"category_ids": pq.Int64Array{3, 4},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.patch.Columns(stamp))
		})
	}
}

func TestUserPatch_Columns(t *testing.T) {
	tests := []struct {
		name  string
		patch UserPatch
		want  map[string]any
	}{
		{
			name:  "nothing staged",
			patch: UserPatch{},
			want:  map[string]any{"updated_at": stamp},
		},
		{
			name:  "email only",
			patch: UserPatch{Email: ptr("a@b.co")},
			want:  map[string]any{"updated_at": stamp, "email": "a@b.co"},
		},
		{
			name:  "every field",
			patch: UserPatch{Username: ptr("ann"), Email: ptr("a@b.co"), Password: ptr("$2a$digest")},
			want: map[string]any{
				"updated_at": stamp,
				"username":   "ann",
				"email":      "a@b.co",
				"password":   "$2a$digest",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.patch.Columns(stamp))
		})
	}
}

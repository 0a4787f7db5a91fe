package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product mirrors the products table.
type Product struct {
	ProductID string          `db:"product_id"`
	Name      string          `db:"name"`
	SKU       string          `db:"sku"`
	Price     decimal.Decimal `db:"price"`
	Quantity  int64           `db:"quantity"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Batch mirrors the batches table. Discounts live in batch_discounts.
type Batch struct {
	BatchID         string           `db:"batch_id"`
	CustomerID      string           `db:"customer_id"`
	BatchNumber     int              `db:"batch_number"`
	Status          string           `db:"status"`
	StartingBalance decimal.Decimal  `db:"starting_balance"`
	EndingBalance   *decimal.Decimal `db:"ending_balance"`
	StartDate       time.Time        `db:"start_date"`
	EndDate         *time.Time       `db:"end_date"`
	CreatedAt       time.Time        `db:"created_at"`
	UpdatedAt       time.Time        `db:"updated_at"`
}

// BatchDiscount mirrors the batch_discounts table.
type BatchDiscount struct {
	DiscountID  string          `db:"discount_id"`
	BatchID     string          `db:"batch_id"`
	Description string          `db:"description"`
	Amount      decimal.Decimal `db:"amount"`
	CreatedAt   time.Time       `db:"created_at"`
}

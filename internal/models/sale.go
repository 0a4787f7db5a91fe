package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sale mirrors the sales table. Items is stored as a JSONB document since
// line items are immutable snapshots, never queried relationally.
type Sale struct {
	SaleID      string          `db:"sale_id"`
	CustomerID  *string         `db:"customer_id"`
	BuyerID     *string         `db:"buyer_id"`
	BatchID     *string         `db:"batch_id"`
	Items       []byte          `db:"items"` // JSON-encoded []domain.SaleItem
	TotalAmount decimal.Decimal `db:"total_amount"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

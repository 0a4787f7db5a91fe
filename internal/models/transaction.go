package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction mirrors the transactions table. Item payloads are JSONB
// snapshots; rows are insert-only.
type Transaction struct {
	TransactionID string `db:"transaction_id"`
	Type          string `db:"type"`
	Notes         string `db:"notes"`
	PaymentMethod string `db:"payment_method"`

	CustomerID         *string `db:"customer_id"`
	BuyerID            *string `db:"buyer_id"`
	ProductID          *string `db:"product_id"`
	BatchID            *string `db:"batch_id"`
	RandomCustomerName string  `db:"random_customer_name"`
	ReferenceName      string  `db:"reference_name"`

	Amount        decimal.Decimal `db:"amount"`
	BalanceBefore decimal.Decimal `db:"balance_before"`
	BalanceAfter  decimal.Decimal `db:"balance_after"`

	QuantityChange int64 `db:"quantity_change"`

	Items             []byte          `db:"items"`        // JSON-encoded []domain.SaleItem
	CustomItems       []byte          `db:"custom_items"` // JSON-encoded []domain.CustomItem
	BuyBackQuantity   int64           `db:"buy_back_quantity"`
	BuyBackWeight     decimal.Decimal `db:"buy_back_weight"`
	BuyBackPricePerKg decimal.Decimal `db:"buy_back_price_per_kg"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

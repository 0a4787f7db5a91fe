package domain

import "github.com/shopspring/decimal"

// Product represents a catalog item with stock on hand.
// Quantity must never go below zero; sale prices are captured per line item
// at sale time, so later price changes never rewrite history.
type Product struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"` // unique
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	Timestamps
}

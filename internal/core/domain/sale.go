package domain

import "github.com/shopspring/decimal"

// SaleItem is one line of a catalog sale. Price and Name are captured at
// sale time so historical sales are immune to later catalog changes.
type SaleItem struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// Sale records a completed sale to a customer, a wholesale buyer, or an
// anonymous walk-in customer (neither reference set). When the customer had
// an Active batch at sale time, BatchID links the sale to it.
type Sale struct {
	SaleID      string          `json:"saleID"`
	CustomerID  *string         `json:"customerID,omitempty"`
	BuyerID     *string         `json:"buyerID,omitempty"`
	BatchID     *string         `json:"batchID,omitempty"`
	Items       []SaleItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Timestamps
}

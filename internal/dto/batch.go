package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
)

// StartBatchRequest opens a new settlement batch for a customer.
type StartBatchRequest struct {
	CustomerID string `json:"customerID" binding:"required"`
}

// BuyBackRequest settles an Active batch: the business buys the grown birds
// back from the customer at weight * pricePerKg.
type BuyBackRequest struct {
	Quantity   int64           `json:"quantity" binding:"required,gt=0"`
	Weight     decimal.Decimal `json:"weight" binding:"required,dpositive"`
	PricePerKg decimal.Decimal `json:"pricePerKg" binding:"required,dpositive"`
}

// CustomerBuyBackRequest records a buy-back against a customer's Active batch
// without closing it.
type CustomerBuyBackRequest struct {
	CustomerID    string          `json:"customerID" binding:"required"`
	Quantity      int64           `json:"quantity" binding:"required,gt=0"`
	Weight        decimal.Decimal `json:"weight" binding:"required,dpositive"`
	PricePerKg    decimal.Decimal `json:"pricePerKg" binding:"required,dpositive"`
	ReferenceName string          `json:"referenceName"`
}

// AddDiscountRequest appends a debt-relief discount to an Active batch.
type AddDiscountRequest struct {
	Description string          `json:"description" binding:"required"`
	Amount      decimal.Decimal `json:"amount" binding:"required,dpositive"`
}

// DiscountResponse mirrors domain.Discount.
type DiscountResponse struct {
	DiscountID  string          `json:"discountID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// BatchResponse mirrors domain.Batch for API output.
type BatchResponse struct {
	BatchID         string             `json:"batchID"`
	CustomerID      string             `json:"customerID"`
	BatchNumber     int                `json:"batchNumber"`
	Status          domain.BatchStatus `json:"status"`
	StartingBalance decimal.Decimal    `json:"startingBalance"`
	EndingBalance   *decimal.Decimal   `json:"endingBalance,omitempty"`
	StartDate       time.Time          `json:"startDate"`
	EndDate         *time.Time         `json:"endDate,omitempty"`
	Discounts       []DiscountResponse `json:"discounts"`
}

// ToBatchResponse converts a domain.Batch to its response DTO.
func ToBatchResponse(b *domain.Batch) BatchResponse {
	discounts := make([]DiscountResponse, len(b.Discounts))
	for i, d := range b.Discounts {
		discounts[i] = DiscountResponse{
			DiscountID:  d.DiscountID,
			Description: d.Description,
			Amount:      d.Amount,
			CreatedAt:   d.CreatedAt,
		}
	}
	return BatchResponse{
		BatchID:         b.BatchID,
		CustomerID:      b.CustomerID,
		BatchNumber:     b.BatchNumber,
		Status:          b.Status,
		StartingBalance: b.StartingBalance,
		EndingBalance:   b.EndingBalance,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		Discounts:       discounts,
	}
}

// ToBatchResponses converts a slice of batches.
func ToBatchResponses(batches []domain.Batch) []BatchResponse {
	res := make([]BatchResponse, len(batches))
	for i := range batches {
		res[i] = ToBatchResponse(&batches[i])
	}
	return res
}

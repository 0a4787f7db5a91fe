package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// BatchStatus indicates the lifecycle state of a settlement batch.
type BatchStatus string

const (
	BatchActive    BatchStatus = "Active"
	BatchCompleted BatchStatus = "Completed"
)

// Discount is a debt-relief adjustment attached to a batch.
type Discount struct {
	DiscountID  string          `json:"discountID"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// Batch groups a customer's activity into one settlement cycle.
// At most one batch per customer is Active at any time, and batch numbers
// form a dense 1-based sequence per customer.
type Batch struct {
	BatchID         string           `json:"batchID"`
	CustomerID      string           `json:"customerID"`
	BatchNumber     int              `json:"batchNumber"`
	Status          BatchStatus      `json:"status"`
	StartingBalance decimal.Decimal  `json:"startingBalance"`
	EndingBalance   *decimal.Decimal `json:"endingBalance,omitempty"`
	StartDate       time.Time        `json:"startDate"`
	EndDate         *time.Time       `json:"endDate,omitempty"`
	Discounts       []Discount       `json:"discounts"`
	Timestamps
}

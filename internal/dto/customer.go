package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
)

// CreateCustomerRequest defines the data needed to register a customer.
type CreateCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone" binding:"required"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

// UpdateCustomerRequest carries optional field updates. Pointers distinguish
// "not provided" from zero values.
type UpdateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

// CustomerResponse mirrors domain.Customer for API output.
type CustomerResponse struct {
	CustomerID string          `json:"customerID"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Email      string          `json:"email"`
	Address    string          `json:"address"`
	Balance    decimal.Decimal `json:"balance"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// ToCustomerResponse converts a domain.Customer to its response DTO.
func ToCustomerResponse(c *domain.Customer) CustomerResponse {
	return CustomerResponse{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		Balance:    c.Balance,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToCustomerResponses converts a slice of customers.
func ToCustomerResponses(customers []domain.Customer) []CustomerResponse {
	res := make([]CustomerResponse, len(customers))
	for i := range customers {
		res[i] = ToCustomerResponse(&customers[i])
	}
	return res
}

// AmountRequest carries a positive monetary amount for deposits/withdrawals.
type AmountRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required,dpositive"`
}

// BalanceChangeResponse is returned by deposit/withdraw endpoints.
type BalanceChangeResponse struct {
	PartyID       string              `json:"partyID"`
	BalanceBefore decimal.Decimal     `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal     `json:"balanceAfter"`
	Transaction   TransactionResponse `json:"transaction"`
}

// ToBalanceChangeResponse converts a committed ledger change.
func ToBalanceChangeResponse(bc *domain.BalanceChange) BalanceChangeResponse {
	return BalanceChangeResponse{
		PartyID:       bc.Party.ID,
		BalanceBefore: bc.BalanceBefore,
		BalanceAfter:  bc.BalanceAfter,
		Transaction:   ToTransactionResponse(&bc.Transaction),
	}
}

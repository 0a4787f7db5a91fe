package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
)

// TransactionResponse mirrors a ledger entry for API output.
type TransactionResponse struct {
	TransactionID string                 `json:"transactionID"`
	Type          domain.TransactionType `json:"type"`
	Notes         string                 `json:"notes"`
	PaymentMethod domain.PaymentMethod   `json:"paymentMethod,omitempty"`

	CustomerID         *string `json:"customerID,omitempty"`
	BuyerID            *string `json:"buyerID,omitempty"`
	ProductID          *string `json:"productID,omitempty"`
	BatchID            *string `json:"batchID,omitempty"`
	RandomCustomerName string  `json:"randomCustomerName,omitempty"`
	ReferenceName      string  `json:"referenceName,omitempty"`

	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`

	QuantityChange int64 `json:"quantityChange,omitempty"`

	Items             []SaleItemResponse   `json:"items,omitempty"`
	CustomItems       []CustomItemResponse `json:"customItems,omitempty"`
	BuyBackQuantity   int64                `json:"buyBackQuantity,omitempty"`
	BuyBackWeight     decimal.Decimal      `json:"buyBackWeight,omitempty"`
	BuyBackPricePerKg decimal.Decimal      `json:"buyBackPricePerKg,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
}

// CustomItemResponse mirrors domain.CustomItem.
type CustomItemResponse struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Weight   decimal.Decimal `json:"weight"`
	Price    decimal.Decimal `json:"price"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	items := make([]SaleItemResponse, len(t.Items))
	for i, it := range t.Items {
		items[i] = SaleItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	}
	customItems := make([]CustomItemResponse, len(t.CustomItems))
	for i, it := range t.CustomItems {
		customItems[i] = CustomItemResponse{
			Name:     it.Name,
			Quantity: it.Quantity,
			Weight:   it.Weight,
			Price:    it.Price,
		}
	}
	return TransactionResponse{
		TransactionID:      t.TransactionID,
		Type:               t.Type,
		Notes:              t.Notes,
		PaymentMethod:      t.PaymentMethod,
		CustomerID:         t.CustomerID,
		BuyerID:            t.BuyerID,
		ProductID:          t.ProductID,
		BatchID:            t.BatchID,
		RandomCustomerName: t.RandomCustomerName,
		ReferenceName:      t.ReferenceName,
		Amount:             t.Amount,
		BalanceBefore:      t.BalanceBefore,
		BalanceAfter:       t.BalanceAfter,
		QuantityChange:     t.QuantityChange,
		Items:              items,
		CustomItems:        customItems,
		BuyBackQuantity:    t.BuyBackQuantity,
		BuyBackWeight:      t.BuyBackWeight,
		BuyBackPricePerKg:  t.BuyBackPricePerKg,
		CreatedAt:          t.CreatedAt,
	}
}

// ToTransactionResponses converts a slice of transactions.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// ListTransactionsResponse is a page of ledger entries.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Page         int                   `json:"page"`
	TotalPages   int                   `json:"totalPages"`
}

// BatchTransactionsResponse is a page of a batch's ledger entries together
// with the batch aggregate totals replayed from the full log.
type BatchTransactionsResponse struct {
	Transactions        []TransactionResponse `json:"transactions"`
	Page                int                   `json:"page"`
	TotalPages          int                   `json:"totalPages"`
	TotalSoldInBatch    decimal.Decimal       `json:"totalSoldInBatch"`
	TotalBoughtInBatch  decimal.Decimal       `json:"totalBoughtInBatch"`
	TotalChickensBought int64                 `json:"totalChickensBought"`
}

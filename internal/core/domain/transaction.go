package domain

import "github.com/shopspring/decimal"

// TransactionType classifies a ledger entry.
type TransactionType string

const (
	TxnSale            TransactionType = "SALE"
	TxnDeposit         TransactionType = "DEPOSIT"
	TxnWithdrawal      TransactionType = "WITHDRAWAL"
	TxnStockAdd        TransactionType = "STOCK_ADD"
	TxnStockRemove     TransactionType = "STOCK_REMOVE"
	TxnBuyBack         TransactionType = "BUY_BACK"
	TxnWholesaleSale   TransactionType = "WHOLESALE_SALE"
	TxnDiscount        TransactionType = "DISCOUNT"
	TxnDiscountRemoval TransactionType = "DISCOUNT_REMOVAL"
)

// PaymentMethod indicates how a sale was settled.
type PaymentMethod string

const (
	PaymentCredit PaymentMethod = "Credit"
	PaymentCash   PaymentMethod = "Cash"
)

// CustomItem is a buyer-priced line on a wholesale sale. Only Price feeds the
// total; quantity and weight are informational.
type CustomItem struct {
	Name     string          `json:"name"`
	Quantity int64           `json:"quantity"`
	Weight   decimal.Decimal `json:"weight"`
	Price    decimal.Decimal `json:"price"`
}

// Transaction is an immutable, append-only ledger entry and the system of
// record for every balance- or stock-affecting event. For balance-mutating
// types, BalanceAfter - BalanceBefore equals the signed balance delta, and a
// party's stored balance always equals the BalanceAfter of its most recent
// transaction.
type Transaction struct {
	TransactionID string          `json:"transactionID"`
	Type          TransactionType `json:"type"`
	Notes         string          `json:"notes"`
	PaymentMethod PaymentMethod   `json:"paymentMethod"`

	// Optional references.
	CustomerID         *string `json:"customerID,omitempty"`
	BuyerID            *string `json:"buyerID,omitempty"`
	ProductID          *string `json:"productID,omitempty"`
	BatchID            *string `json:"batchID,omitempty"`
	RandomCustomerName string  `json:"randomCustomerName,omitempty"`
	ReferenceName      string  `json:"referenceName,omitempty"`

	// Financial fields. Amount is the sale/settlement value for SALE and
	// WHOLESALE_SALE (always positive), and the signed balance delta for
	// DEPOSIT, WITHDRAWAL, BUY_BACK, DISCOUNT and DISCOUNT_REMOVAL.
	Amount        decimal.Decimal `json:"amount"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`

	// Inventory fields.
	QuantityChange int64 `json:"quantityChange,omitempty"`

	// Type-specific payloads.
	Items             []SaleItem      `json:"items,omitempty"`
	CustomItems       []CustomItem    `json:"customItems,omitempty"`
	BuyBackQuantity   int64           `json:"buyBackQuantity,omitempty"`
	BuyBackWeight     decimal.Decimal `json:"buyBackWeight,omitempty"`
	BuyBackPricePerKg decimal.Decimal `json:"buyBackPricePerKg,omitempty"`

	Timestamps
}

package domain

import "github.com/shopspring/decimal"

// PartyKind identifies which kind of balance-holding party a ledger operation targets.
type PartyKind string

const (
	PartyCustomer       PartyKind = "CUSTOMER"
	PartyWholesaleBuyer PartyKind = "WHOLESALE_BUYER"
)

// PartyRef is a typed reference to a customer or wholesale buyer.
// The ledger mutates balances only through such references.
type PartyRef struct {
	Kind PartyKind `json:"kind"`
	ID   string    `json:"id"`
}

// Customer represents a retail customer holding a running account balance.
// Balance is denormalized from the transaction log; it is mutated only
// through ledger operations and may go negative on credit sales.
type Customer struct {
	CustomerID string          `json:"customerID"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"` // unique
	Email      string          `json:"email"`
	Address    string          `json:"address"`
	Balance    decimal.Decimal `json:"balance"`
	Timestamps
}

// Ref returns the ledger reference for this customer.
func (c *Customer) Ref() PartyRef {
	return PartyRef{Kind: PartyCustomer, ID: c.CustomerID}
}

// WholesaleBuyer represents a wholesale trading partner with its own balance.
type WholesaleBuyer struct {
	BuyerID      string          `json:"buyerID"`
	Name         string          `json:"name"`
	BusinessName string          `json:"businessName"`
	Phone        string          `json:"phone"` // unique
	Address      string          `json:"address"`
	Balance      decimal.Decimal `json:"balance"`
	Timestamps
}

// Ref returns the ledger reference for this buyer.
func (b *WholesaleBuyer) Ref() PartyRef {
	return PartyRef{Kind: PartyWholesaleBuyer, ID: b.BuyerID}
}

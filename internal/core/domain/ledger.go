package domain

import "github.com/shopspring/decimal"

// BalanceChange is the committed result of one ledger operation: the party's
// balance snapshots around the mutation and the transaction that recorded it.
type BalanceChange struct {
	Party         PartyRef        `json:"party"`
	BalanceBefore decimal.Decimal `json:"balanceBefore"`
	BalanceAfter  decimal.Decimal `json:"balanceAfter"`
	Transaction   Transaction     `json:"transaction"`
}

package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer mirrors the customers table.
type Customer struct {
	CustomerID string          `db:"customer_id"`
	Name       string          `db:"name"`
	Phone      string          `db:"phone"`
	Email      string          `db:"email"`
	Address    string          `db:"address"`
	Balance    decimal.Decimal `db:"balance"`
	CreatedAt  time.Time       `db:"created_at"`
	UpdatedAt  time.Time       `db:"updated_at"`
}

// WholesaleBuyer mirrors the wholesale_buyers table.
type WholesaleBuyer struct {
	BuyerID      string          `db:"buyer_id"`
	Name         string          `db:"name"`
	BusinessName string          `db:"business_name"`
	Phone        string          `db:"phone"`
	Address      string          `db:"address"`
	Balance      decimal.Decimal `db:"balance"`
	CreatedAt    time.Time       `db:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at"`
}

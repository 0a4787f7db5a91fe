package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/zahintraders/poultry_trading_app/internal/apperrors"
	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	"github.com/zahintraders/poultry_trading_app/internal/models"
	"github.com/zahintraders/poultry_trading_app/internal/utils/mapping"
)

// partyTarget resolves the table and ID column backing a party kind.
func partyTarget(kind domain.PartyKind) (table, idColumn string, err error) {
	switch kind {
	case domain.PartyCustomer:
		return "customers", "customer_id", nil
	case domain.PartyWholesaleBuyer:
		return "wholesale_buyers", "buyer_id", nil
	default:
		return "", "", apperrors.NewAppError(500, "unknown party kind "+string(kind), nil)
	}
}

// applyPartyDeltaTx locks the party row, applies the signed delta to the
// denormalized balance and returns the before/after snapshots. The caller
// owns the surrounding database transaction. With enforceFloor set, deltas
// that would take the balance below zero fail with ErrInsufficientBalance.
func applyPartyDeltaTx(ctx context.Context, tx pgx.Tx, ref domain.PartyRef, delta decimal.Decimal, enforceFloor bool, now time.Time) (before, after decimal.Decimal, err error) {
	table, idColumn, err := partyTarget(ref.Kind)
	if err != nil {
		return decimal.Zero, decimal.Zero, err
	}

	lockQuery := `SELECT balance FROM ` + table + ` WHERE ` + idColumn + ` = $1 FOR UPDATE;`
	if err := tx.QueryRow(ctx, lockQuery, ref.ID).Scan(&before); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, decimal.Zero, apperrors.ErrNotFound
		}
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to lock balance for "+ref.ID, err)
	}

	after = before.Add(delta)
	if enforceFloor && after.IsNegative() {
		return decimal.Zero, decimal.Zero, apperrors.ErrInsufficientBalance
	}

	updateQuery := `UPDATE ` + table + ` SET balance = $1, updated_at = $2 WHERE ` + idColumn + ` = $3;`
	if _, err := tx.Exec(ctx, updateQuery, after, now, ref.ID); err != nil {
		return decimal.Zero, decimal.Zero, apperrors.NewAppError(500, "failed to update balance for "+ref.ID, err)
	}

	return before, after, nil
}

const insertTransactionQuery = `
	INSERT INTO transactions (
		transaction_id, type, notes, payment_method,
		customer_id, buyer_id, product_id, batch_id,
		random_customer_name, reference_name,
		amount, balance_before, balance_after, quantity_change,
		items, custom_items,
		buy_back_quantity, buy_back_weight, buy_back_price_per_kg,
		created_at, updated_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21);
`

// insertTransactionTx appends one ledger entry inside the caller's database
// transaction. Entries are insert-only; there is no update path.
func insertTransactionTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	m, err := mapping.ToModelTransaction(txn)
	if err != nil {
		return apperrors.NewAppError(500, "failed to encode transaction "+txn.TransactionID, err)
	}
	_, err = tx.Exec(ctx, insertTransactionQuery,
		m.TransactionID,
		m.Type,
		m.Notes,
		m.PaymentMethod,
		m.CustomerID,
		m.BuyerID,
		m.ProductID,
		m.BatchID,
		m.RandomCustomerName,
		m.ReferenceName,
		m.Amount,
		m.BalanceBefore,
		m.BalanceAfter,
		m.QuantityChange,
		m.Items,
		m.CustomItems,
		m.BuyBackQuantity,
		m.BuyBackWeight,
		m.BuyBackPricePerKg,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert transaction "+m.TransactionID, err)
	}
	return nil
}

const selectTransactionColumns = `
	transaction_id, type, notes, payment_method,
	customer_id, buyer_id, product_id, batch_id,
	random_customer_name, reference_name,
	amount, balance_before, balance_after, quantity_change,
	items, custom_items,
	buy_back_quantity, buy_back_weight, buy_back_price_per_kg,
	created_at, updated_at
`

// scanTransactionRows drains rows produced by a selectTransactionColumns query.
func scanTransactionRows(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()

	modelTxns := []models.Transaction{}
	for rows.Next() {
		var m models.Transaction
		if err := rows.Scan(
			&m.TransactionID,
			&m.Type,
			&m.Notes,
			&m.PaymentMethod,
			&m.CustomerID,
			&m.BuyerID,
			&m.ProductID,
			&m.BatchID,
			&m.RandomCustomerName,
			&m.ReferenceName,
			&m.Amount,
			&m.BalanceBefore,
			&m.BalanceAfter,
			&m.QuantityChange,
			&m.Items,
			&m.CustomItems,
			&m.BuyBackQuantity,
			&m.BuyBackWeight,
			&m.BuyBackPricePerKg,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan transaction row", err)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating transaction rows", err)
	}

	return mapping.ToDomainTransactionSlice(modelTxns)
}

package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	portsrepo "github.com/zahintraders/poultry_trading_app/internal/core/ports/repositories"
)

type PgxLedgerRepository struct {
	BaseRepository
}

func newPgxLedgerRepository(pool *pgxpool.Pool) portsrepo.LedgerRepositoryFacade {
	return &PgxLedgerRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.LedgerRepositoryFacade = (*PgxLedgerRepository)(nil)

// ApplyBalanceChange is the single write path for party balances. It locks the
// party row, applies the delta and appends the transaction in one database
// transaction, so the denormalized balance and the log can never diverge.
func (r *PgxLedgerRepository) ApplyBalanceChange(ctx context.Context, ref domain.PartyRef, delta decimal.Decimal, enforceFloor bool, txn domain.Transaction) (*domain.BalanceChange, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	before, after, err := applyPartyDeltaTx(ctx, tx, ref, delta, enforceFloor, txn.CreatedAt)
	if err != nil {
		return nil, err
	}

	txn.BalanceBefore = before
	txn.BalanceAfter = after
	if err := insertTransactionTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return &domain.BalanceChange{
		Party:         ref,
		BalanceBefore: before,
		BalanceAfter:  after,
		Transaction:   txn,
	}, nil
}

func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, page, limit int) ([]domain.Transaction, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 15
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions;`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `
		SELECT ` + selectTransactionColumns + `
		FROM transactions
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2;
	`
	rows, err := r.Pool.Query(ctx, query, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}

	txns, err := scanTransactionRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

func (r *PgxLedgerRepository) ListTransactionsByBuyer(ctx context.Context, buyerID string, page, limit int) ([]domain.Transaction, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 15
	}

	var total int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM transactions WHERE buyer_id = $1;`, buyerID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for buyer %s: %w", buyerID, err)
	}

	query := `
		SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE buyer_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, buyerID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions for buyer %s: %w", buyerID, err)
	}

	txns, err := scanTransactionRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// ListTransactionsByBatch pages through a batch's entries, optionally narrowed
// to a single calendar day in the server's timezone.
func (r *PgxLedgerRepository) ListTransactionsByBatch(ctx context.Context, batchID string, page, limit int, day *time.Time) ([]domain.Transaction, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 15
	}

	filter := `WHERE batch_id = $1`
	args := []interface{}{batchID}
	if day != nil {
		dayStart := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, day.Location())
		filter += ` AND created_at >= $2 AND created_at < $3`
		args = append(args, dayStart, dayStart.AddDate(0, 0, 1))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM transactions ` + filter + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions for batch %s: %w", batchID, err)
	}

	query := fmt.Sprintf(`
		SELECT `+selectTransactionColumns+`
		FROM transactions
		%s
		ORDER BY created_at DESC
		LIMIT $%d OFFSET $%d;
	`, filter, len(args)+1, len(args)+2)
	args = append(args, limit, (page-1)*limit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions for batch %s: %w", batchID, err)
	}

	txns, err := scanTransactionRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return txns, total, nil
}

// FindTransactionsByBatchAndType returns matching entries oldest first, the
// order they were appended in.
func (r *PgxLedgerRepository) FindTransactionsByBatchAndType(ctx context.Context, batchID string, txnType domain.TransactionType) ([]domain.Transaction, error) {
	query := `
		SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE batch_id = $1 AND type = $2
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, batchID, string(txnType))
	if err != nil {
		return nil, fmt.Errorf("failed to query %s transactions for batch %s: %w", txnType, batchID, err)
	}
	return scanTransactionRows(rows)
}

func (r *PgxLedgerRepository) FindTransactionsByBatch(ctx context.Context, batchID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE batch_id = $1
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, batchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions for batch %s: %w", batchID, err)
	}
	return scanTransactionRows(rows)
}

// FindSalesInRange returns SALE entries within [start, end] newest first.
func (r *PgxLedgerRepository) FindSalesInRange(ctx context.Context, start, end time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + selectTransactionColumns + `
		FROM transactions
		WHERE type = $1 AND created_at >= $2 AND created_at <= $3
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, string(domain.TxnSale), start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales in range: %w", err)
	}
	return scanTransactionRows(rows)
}

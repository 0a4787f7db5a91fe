package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/zahintraders/poultry_trading_app/internal/apperrors"
	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	portsrepo "github.com/zahintraders/poultry_trading_app/internal/core/ports/repositories"
	"github.com/zahintraders/poultry_trading_app/internal/models"
	"github.com/zahintraders/poultry_trading_app/internal/utils/mapping"
)

type PgxBatchRepository struct {
	BaseRepository
}

func newPgxBatchRepository(pool *pgxpool.Pool) portsrepo.BatchRepositoryFacade {
	return &PgxBatchRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.BatchRepositoryFacade = (*PgxBatchRepository)(nil)

const selectBatchColumns = `
	batch_id, customer_id, batch_number, status, starting_balance, ending_balance,
	start_date, end_date, created_at, updated_at
`

// rowScanner covers pgx.Row and pgx.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanBatch(row rowScanner) (models.Batch, error) {
	var m models.Batch
	err := row.Scan(
		&m.BatchID,
		&m.CustomerID,
		&m.BatchNumber,
		&m.Status,
		&m.StartingBalance,
		&m.EndingBalance,
		&m.StartDate,
		&m.EndDate,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// OpenBatch completes any batch still Active for the customer and creates the
// next one in a single database transaction. The customer row is locked first
// so the balance snapshots and the dense batch numbering stay consistent under
// concurrent opens.
func (r *PgxBatchRepository) OpenBatch(ctx context.Context, customerID string, now time.Time) (*domain.Batch, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	var balance decimal.Decimal
	err = tx.QueryRow(ctx, `SELECT balance FROM customers WHERE customer_id = $1 FOR UPDATE;`, customerID).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to lock customer %s: %w", customerID, err)
	}

	// A customer has at most one Active batch. Complete it at the current
	// balance before opening the next.
	completeQuery := `
		UPDATE batches
		SET status = $3, ending_balance = $4, end_date = $5, updated_at = $5
		WHERE customer_id = $1 AND status = $2;
	`
	_, err = tx.Exec(ctx, completeQuery, customerID, string(domain.BatchActive), string(domain.BatchCompleted), balance, now)
	if err != nil {
		return nil, fmt.Errorf("failed to complete active batch for customer %s: %w", customerID, err)
	}

	var batchCount int
	if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM batches WHERE customer_id = $1;`, customerID).Scan(&batchCount); err != nil {
		return nil, fmt.Errorf("failed to count batches for customer %s: %w", customerID, err)
	}

	batch := domain.Batch{
		BatchID:         uuid.NewString(),
		CustomerID:      customerID,
		BatchNumber:     batchCount + 1,
		Status:          domain.BatchActive,
		StartingBalance: balance,
		StartDate:       now,
		Discounts:       []domain.Discount{},
		Timestamps:      domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	m := mapping.ToModelBatch(batch)
	insertQuery := `
		INSERT INTO batches (batch_id, customer_id, batch_number, status, starting_balance, start_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.BatchID,
		m.CustomerID,
		m.BatchNumber,
		m.Status,
		m.StartingBalance,
		m.StartDate,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert batch for customer %s: %w", customerID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &batch, nil
}

func (r *PgxBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	query := `SELECT ` + selectBatchColumns + ` FROM batches WHERE batch_id = $1;`
	m, err := scanBatch(r.Pool.QueryRow(ctx, query, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find batch by ID %s: %w", batchID, err)
	}

	discounts, err := r.findDiscounts(ctx, []string{batchID})
	if err != nil {
		return nil, err
	}

	batch := mapping.ToDomainBatch(m, discounts[batchID])
	return &batch, nil
}

func (r *PgxBatchRepository) FindActiveBatchByCustomer(ctx context.Context, customerID string) (*domain.Batch, error) {
	query := `SELECT ` + selectBatchColumns + ` FROM batches WHERE customer_id = $1 AND status = $2;`
	m, err := scanBatch(r.Pool.QueryRow(ctx, query, customerID, string(domain.BatchActive)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find active batch for customer %s: %w", customerID, err)
	}

	discounts, err := r.findDiscounts(ctx, []string{m.BatchID})
	if err != nil {
		return nil, err
	}

	batch := mapping.ToDomainBatch(m, discounts[m.BatchID])
	return &batch, nil
}

func (r *PgxBatchRepository) ListBatchesByCustomer(ctx context.Context, customerID string) ([]domain.Batch, error) {
	query := `
		SELECT ` + selectBatchColumns + `
		FROM batches
		WHERE customer_id = $1
		ORDER BY start_date DESC;
	`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query batches for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	modelBatches := []models.Batch{}
	batchIDs := []string{}
	for rows.Next() {
		m, err := scanBatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan batch row: %w", err)
		}
		modelBatches = append(modelBatches, m)
		batchIDs = append(batchIDs, m.BatchID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batch rows: %w", err)
	}

	discounts, err := r.findDiscounts(ctx, batchIDs)
	if err != nil {
		return nil, err
	}

	batches := make([]domain.Batch, len(modelBatches))
	for i, m := range modelBatches {
		batches[i] = mapping.ToDomainBatch(m, discounts[m.BatchID])
	}
	return batches, nil
}

// findDiscounts loads discount rows for the given batches, keyed by batch ID.
func (r *PgxBatchRepository) findDiscounts(ctx context.Context, batchIDs []string) (map[string][]models.BatchDiscount, error) {
	result := map[string][]models.BatchDiscount{}
	if len(batchIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT discount_id, batch_id, description, amount, created_at
		FROM batch_discounts
		WHERE batch_id = ANY($1)
		ORDER BY created_at;
	`
	rows, err := r.Pool.Query(ctx, query, batchIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query batch discounts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.BatchDiscount
		if err := rows.Scan(&d.DiscountID, &d.BatchID, &d.Description, &d.Amount, &d.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan batch discount row: %w", err)
		}
		result[d.BatchID] = append(result[d.BatchID], d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating batch discount rows: %w", err)
	}
	return result, nil
}

// lockBatchTx locks the batch row and returns it.
func lockBatchTx(ctx context.Context, tx pgx.Tx, batchID string) (models.Batch, error) {
	query := `SELECT ` + selectBatchColumns + ` FROM batches WHERE batch_id = $1 FOR UPDATE;`
	m, err := scanBatch(tx.QueryRow(ctx, query, batchID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Batch{}, apperrors.ErrNotFound
		}
		return models.Batch{}, fmt.Errorf("failed to lock batch %s: %w", batchID, err)
	}
	return m, nil
}

// SettleBuyBack credits the customer with the buy-back total, completes the
// batch at the post-credit balance and appends the BUY_BACK transaction, all
// in one database transaction.
func (r *PgxBatchRepository) SettleBuyBack(ctx context.Context, batchID string, delta decimal.Decimal, txn domain.Transaction) (*domain.BalanceChange, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := lockBatchTx(ctx, tx, batchID)
	if err != nil {
		return nil, err
	}
	if m.Status != string(domain.BatchActive) {
		return nil, apperrors.ErrNotFound
	}

	ref := domain.PartyRef{Kind: domain.PartyCustomer, ID: m.CustomerID}
	before, after, err := applyPartyDeltaTx(ctx, tx, ref, delta, false, txn.CreatedAt)
	if err != nil {
		return nil, err
	}

	completeQuery := `
		UPDATE batches
		SET status = $2, ending_balance = $3, end_date = $4, updated_at = $4
		WHERE batch_id = $1;
	`
	if _, err := tx.Exec(ctx, completeQuery, batchID, string(domain.BatchCompleted), after, txn.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to complete batch %s: %w", batchID, err)
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

// AddDiscount appends a discount row to an Active batch, credits the
// customer's balance and records the DISCOUNT transaction atomically.
// Completed batches are settled history and reject new discounts.
func (r *PgxBatchRepository) AddDiscount(ctx context.Context, batchID string, discount domain.Discount, txn domain.Transaction) (*domain.Batch, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := lockBatchTx(ctx, tx, batchID)
	if err != nil {
		return nil, err
	}
	if m.Status != string(domain.BatchActive) {
		return nil, apperrors.ErrConflict
	}

	insertQuery := `
		INSERT INTO batch_discounts (discount_id, batch_id, description, amount, created_at)
		VALUES ($1, $2, $3, $4, $5);
	`
	_, err = tx.Exec(ctx, insertQuery, discount.DiscountID, batchID, discount.Description, discount.Amount, discount.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert discount for batch %s: %w", batchID, err)
	}

	ref := domain.PartyRef{Kind: domain.PartyCustomer, ID: m.CustomerID}
	before, after, err := applyPartyDeltaTx(ctx, tx, ref, discount.Amount, false, txn.CreatedAt)
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

	return r.FindBatchByID(ctx, batchID)
}

// RemoveDiscount deletes the discount row, debits the customer's balance back
// and records the DISCOUNT_REMOVAL transaction atomically.
func (r *PgxBatchRepository) RemoveDiscount(ctx context.Context, batchID, discountID string, txn domain.Transaction) (*domain.Batch, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	m, err := lockBatchTx(ctx, tx, batchID)
	if err != nil {
		return nil, err
	}
	if m.Status != string(domain.BatchActive) {
		return nil, apperrors.ErrConflict
	}

	var amount decimal.Decimal
	deleteQuery := `
		DELETE FROM batch_discounts
		WHERE discount_id = $1 AND batch_id = $2
		RETURNING amount;
	`
	if err := tx.QueryRow(ctx, deleteQuery, discountID, batchID).Scan(&amount); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to delete discount %s: %w", discountID, err)
	}

	ref := domain.PartyRef{Kind: domain.PartyCustomer, ID: m.CustomerID}
	before, after, err := applyPartyDeltaTx(ctx, tx, ref, amount.Neg(), false, txn.CreatedAt)
	if err != nil {
		return nil, err
	}

	txn.Amount = amount.Neg()
	txn.BalanceBefore = before
	txn.BalanceAfter = after
	if err := insertTransactionTx(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	return r.FindBatchByID(ctx, batchID)
}

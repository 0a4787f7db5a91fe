package pgsql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/zahintraders/poultry_trading_app/internal/apperrors"
	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	portsrepo "github.com/zahintraders/poultry_trading_app/internal/core/ports/repositories"
	"github.com/zahintraders/poultry_trading_app/internal/models"
	"github.com/zahintraders/poultry_trading_app/internal/utils/mapping"
)

type PgxSaleRepository struct {
	BaseRepository
}

func newPgxSaleRepository(pool *pgxpool.Pool) portsrepo.SaleRepositoryFacade {
	return &PgxSaleRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.SaleRepositoryFacade = (*PgxSaleRepository)(nil)

// CreateSale commits the sale, its stock decrements, the optional party
// balance delta and the audit transaction as one database transaction. Stock
// decrements are guarded in SQL, so a shortfall on any line aborts the whole
// sale and nothing is applied.
func (r *PgxSaleRepository) CreateSale(ctx context.Context, sale domain.Sale, txn domain.Transaction, stockDecrements map[string]int64, balanceDelta *decimal.Decimal) (*domain.Sale, *domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, nil, err
	}
	defer r.Rollback(ctx, tx)

	decrementQuery := `
		UPDATE products
		SET quantity = quantity - $2, updated_at = $3
		WHERE product_id = $1 AND quantity >= $2;
	`
	for productID, qty := range stockDecrements {
		cmdTag, err := tx.Exec(ctx, decrementQuery, productID, qty, txn.CreatedAt)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to decrement stock for product %s: %w", productID, err)
		}
		if cmdTag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE product_id = $1);`, productID).Scan(&exists); err != nil {
				return nil, nil, fmt.Errorf("failed to check product %s: %w", productID, err)
			}
			if !exists {
				return nil, nil, apperrors.ErrNotFound
			}
			return nil, nil, apperrors.ErrInsufficientStock
		}
	}

	if balanceDelta != nil {
		var ref domain.PartyRef
		switch {
		case sale.CustomerID != nil:
			ref = domain.PartyRef{Kind: domain.PartyCustomer, ID: *sale.CustomerID}
		case sale.BuyerID != nil:
			ref = domain.PartyRef{Kind: domain.PartyWholesaleBuyer, ID: *sale.BuyerID}
		default:
			return nil, nil, apperrors.NewAppError(500, "balance delta without a party on sale "+sale.SaleID, nil)
		}
		before, after, err := applyPartyDeltaTx(ctx, tx, ref, *balanceDelta, false, txn.CreatedAt)
		if err != nil {
			return nil, nil, err
		}
		txn.BalanceBefore = before
		txn.BalanceAfter = after
	}

	m, err := mapping.ToModelSale(sale)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to encode sale "+sale.SaleID, err)
	}
	insertQuery := `
		INSERT INTO sales (sale_id, customer_id, buyer_id, batch_id, items, total_amount, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.SaleID,
		m.CustomerID,
		m.BuyerID,
		m.BatchID,
		m.Items,
		m.TotalAmount,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to insert sale %s: %w", m.SaleID, err)
	}

	if err := insertTransactionTx(ctx, tx, txn); err != nil {
		return nil, nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, nil, err
	}
	return &sale, &txn, nil
}

func (r *PgxSaleRepository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	query := `
		SELECT sale_id, customer_id, buyer_id, batch_id, items, total_amount, created_at, updated_at
		FROM sales
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query sales: %w", err)
	}
	defer rows.Close()

	sales := []domain.Sale{}
	for rows.Next() {
		var m models.Sale
		if err := rows.Scan(
			&m.SaleID,
			&m.CustomerID,
			&m.BuyerID,
			&m.BatchID,
			&m.Items,
			&m.TotalAmount,
			&m.CreatedAt,
			&m.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan sale row: %w", err)
		}
		sale, err := mapping.ToDomainSale(m)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to decode sale "+m.SaleID, err)
		}
		sales = append(sales, sale)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sale rows: %w", err)
	}
	return sales, nil
}

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

type PgxReportingRepository struct {
	BaseRepository
}

func newPgxReportingRepository(pool *pgxpool.Pool) portsrepo.ReportingRepositoryFacade {
	return &PgxReportingRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.ReportingRepositoryFacade = (*PgxReportingRepository)(nil)

func (r *PgxReportingRepository) SalesTotalInRange(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE type = $1 AND created_at >= $2 AND created_at <= $3;
	`
	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, string(domain.TxnSale), start, end).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum sales in range: %w", err)
	}
	return total, nil
}

func (r *PgxReportingRepository) CountCustomersWithNegativeBalance(ctx context.Context) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE balance < 0;`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count negative-balance customers: %w", err)
	}
	return count, nil
}

func (r *PgxReportingRepository) CountLowStockProducts(ctx context.Context, threshold int64) (int64, error) {
	var count int64
	if err := r.Pool.QueryRow(ctx, `SELECT COUNT(*) FROM products WHERE quantity <= $1;`, threshold).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count low-stock products: %w", err)
	}
	return count, nil
}

func (r *PgxReportingRepository) FindRecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = 5
	}
	query := `
		SELECT ` + selectTransactionColumns + `
		FROM transactions
		ORDER BY created_at DESC
		LIMIT $1;
	`
	rows, err := r.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query recent transactions: %w", err)
	}
	return scanTransactionRows(rows)
}

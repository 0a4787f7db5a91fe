package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/zahintraders/poultry_trading_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CustomerRepo:  newPgxCustomerRepository(dbPool),
		BuyerRepo:     newPgxBuyerRepository(dbPool),
		ProductRepo:   newPgxProductRepository(dbPool),
		LedgerRepo:    newPgxLedgerRepository(dbPool),
		BatchRepo:     newPgxBatchRepository(dbPool),
		SaleRepo:      newPgxSaleRepository(dbPool),
		UserRepo:      newPgxUserRepository(dbPool),
		ReportingRepo: newPgxReportingRepository(dbPool),
	}
}

package services

import (
	portsrepo "github.com/zahintraders/poultry_trading_app/internal/core/ports/repositories"
	portssvc "github.com/zahintraders/poultry_trading_app/internal/core/ports/services"
	"github.com/zahintraders/poultry_trading_app/internal/platform/config"
	"github.com/zahintraders/poultry_trading_app/internal/repositories/cache"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// dashCache may be nil when Redis is not configured; caching is then skipped.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, dashCache *cache.DashboardCache) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Customer = NewCustomerService(repos.CustomerRepo)
	container.Buyer = NewBuyerService(repos.BuyerRepo)
	container.Product = NewProductService(repos.ProductRepo)
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.CustomerRepo, repos.BuyerRepo)
	container.Batch = NewBatchService(repos.BatchRepo, repos.LedgerRepo)
	container.Sale = NewSaleService(repos.SaleRepo, repos.ProductRepo, repos.CustomerRepo, repos.BuyerRepo, repos.BatchRepo, dashCache)
	container.Report = NewReportService(repos.LedgerRepo, repos.BatchRepo, repos.ReportingRepo, dashCache)
	container.User = NewUserService(repos.UserRepo)
	container.Token = NewTokenService(cfg.JWTSecret, cfg.JWTExpiryDuration, cfg.JWTIssuer)

	return container
}

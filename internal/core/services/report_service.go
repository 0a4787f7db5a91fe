package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	portsrepo "github.com/zahintraders/poultry_trading_app/internal/core/ports/repositories"
	portssvc "github.com/zahintraders/poultry_trading_app/internal/core/ports/services"
	"github.com/zahintraders/poultry_trading_app/internal/dto"
	"github.com/zahintraders/poultry_trading_app/internal/middleware"
	"github.com/zahintraders/poultry_trading_app/internal/repositories/cache"
)

const (
	transactionPageLimit = 15
	lowStockThreshold    = 10
	recentTxnLimit       = 5
)

// ReportService serves the read-only reporting surface: date-ranged sales
// reports, per-batch settlements replayed from the transaction log, the
// paginated ledger views and the cached dashboard stats.
type ReportService struct {
	ledgerRepo    portsrepo.LedgerRepositoryFacade
	batchRepo     portsrepo.BatchRepositoryFacade
	reportingRepo portsrepo.ReportingRepositoryFacade
	dashCache     *cache.DashboardCache
}

func NewReportService(
	ledgerRepo portsrepo.LedgerRepositoryFacade,
	batchRepo portsrepo.BatchRepositoryFacade,
	reportingRepo portsrepo.ReportingRepositoryFacade,
	dashCache *cache.DashboardCache,
) *ReportService {
	return &ReportService{
		ledgerRepo:    ledgerRepo,
		batchRepo:     batchRepo,
		reportingRepo: reportingRepo,
		dashCache:     dashCache,
	}
}

var _ portssvc.ReportSvcFacade = (*ReportService)(nil)

func (s *ReportService) SalesReport(ctx context.Context, start, end time.Time) (*dto.SalesReportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	sales, err := s.ledgerRepo.FindSalesInRange(ctx, start, end)
	if err != nil {
		logger.Error("Failed to fetch sales for report", slog.String("error", err.Error()))
		return nil, err
	}

	totalRevenue := decimal.Zero
	for _, sale := range sales {
		totalRevenue = totalRevenue.Add(sale.Amount)
	}

	return &dto.SalesReportResponse{
		Sales:        dto.ToTransactionResponses(sales),
		TotalRevenue: totalRevenue,
	}, nil
}

// BatchReport replays a batch's transaction log into its settlement summary.
func (s *ReportService) BatchReport(ctx context.Context, batchID string) (*dto.BatchReportResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if _, err := s.batchRepo.FindBatchByID(ctx, batchID); err != nil {
		return nil, err
	}

	sales, err := s.ledgerRepo.FindTransactionsByBatchAndType(ctx, batchID, domain.TxnSale)
	if err != nil {
		logger.Error("Failed to fetch batch sales", slog.String("error", err.Error()), slog.String("batch_id", batchID))
		return nil, err
	}
	buyBacks, err := s.ledgerRepo.FindTransactionsByBatchAndType(ctx, batchID, domain.TxnBuyBack)
	if err != nil {
		logger.Error("Failed to fetch batch buy-backs", slog.String("error", err.Error()), slog.String("batch_id", batchID))
		return nil, err
	}

	totalSold := decimal.Zero
	for _, txn := range sales {
		totalSold = totalSold.Add(txn.Amount)
	}
	totalBought := decimal.Zero
	var totalChickens int64
	for _, txn := range buyBacks {
		totalBought = totalBought.Add(txn.Amount)
		totalChickens += txn.BuyBackQuantity
	}

	return &dto.BatchReportResponse{
		Sales:         dto.ToTransactionResponses(sales),
		BuyBacks:      dto.ToTransactionResponses(buyBacks),
		TotalSold:     totalSold,
		TotalBought:   totalBought,
		TotalChickens: totalChickens,
	}, nil
}

// Dashboard serves the landing-page stats, cached in Redis for a short TTL.
func (s *ReportService) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if s.dashCache != nil {
		cached, hit, err := s.dashCache.Get(ctx)
		if err != nil {
			logger.Warn("Dashboard cache read failed", slog.String("error", err.Error()))
		} else if hit {
			return cached, nil
		}
	}

	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	salesToday, err := s.reportingRepo.SalesTotalInRange(ctx, dayStart, now)
	if err != nil {
		logger.Error("Failed to compute today's sales", slog.String("error", err.Error()))
		return nil, err
	}
	negativeCustomers, err := s.reportingRepo.CountCustomersWithNegativeBalance(ctx)
	if err != nil {
		logger.Error("Failed to count negative-balance customers", slog.String("error", err.Error()))
		return nil, err
	}
	lowStock, err := s.reportingRepo.CountLowStockProducts(ctx, lowStockThreshold)
	if err != nil {
		logger.Error("Failed to count low-stock products", slog.String("error", err.Error()))
		return nil, err
	}
	recent, err := s.reportingRepo.FindRecentTransactions(ctx, recentTxnLimit)
	if err != nil {
		logger.Error("Failed to fetch recent transactions", slog.String("error", err.Error()))
		return nil, err
	}

	resp := &dto.DashboardResponse{
		SalesToday:               salesToday,
		NegativeBalanceCustomers: negativeCustomers,
		LowStockProducts:         lowStock,
		RecentTransactions:       dto.ToTransactionResponses(recent),
	}

	if s.dashCache != nil {
		if err := s.dashCache.Set(ctx, resp); err != nil {
			logger.Warn("Dashboard cache write failed", slog.String("error", err.Error()))
		}
	}
	return resp, nil
}

func (s *ReportService) ListTransactions(ctx context.Context, page int) (*dto.ListTransactionsResponse, error) {
	txns, total, err := s.ledgerRepo.ListTransactions(ctx, page, transactionPageLimit)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Page:         normalizePage(page),
		TotalPages:   totalPages(total, transactionPageLimit),
	}, nil
}

// ListBatchTransactions pages through one batch's entries and replays the full
// log for the batch aggregate totals.
func (s *ReportService) ListBatchTransactions(ctx context.Context, batchID string, page int, day *time.Time) (*dto.BatchTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	txns, total, err := s.ledgerRepo.ListTransactionsByBatch(ctx, batchID, page, transactionPageLimit, day)
	if err != nil {
		logger.Error("Failed to list batch transactions", slog.String("error", err.Error()), slog.String("batch_id", batchID))
		return nil, err
	}

	all, err := s.ledgerRepo.FindTransactionsByBatch(ctx, batchID)
	if err != nil {
		logger.Error("Failed to fetch batch transactions for totals", slog.String("error", err.Error()), slog.String("batch_id", batchID))
		return nil, err
	}

	totalSold := decimal.Zero
	totalBought := decimal.Zero
	var totalChickens int64
	for _, txn := range all {
		switch txn.Type {
		case domain.TxnSale:
			totalSold = totalSold.Add(txn.Amount)
		case domain.TxnBuyBack:
			totalBought = totalBought.Add(txn.Amount)
			totalChickens += txn.BuyBackQuantity
		}
	}

	return &dto.BatchTransactionsResponse{
		Transactions:        dto.ToTransactionResponses(txns),
		Page:                normalizePage(page),
		TotalPages:          totalPages(total, transactionPageLimit),
		TotalSoldInBatch:    totalSold,
		TotalBoughtInBatch:  totalBought,
		TotalChickensBought: totalChickens,
	}, nil
}

func (s *ReportService) ListBuyerTransactions(ctx context.Context, buyerID string, page int) (*dto.ListTransactionsResponse, error) {
	txns, total, err := s.ledgerRepo.ListTransactionsByBuyer(ctx, buyerID, page, transactionPageLimit)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list buyer transactions", slog.String("error", err.Error()), slog.String("buyer_id", buyerID))
		return nil, err
	}
	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		Page:         normalizePage(page),
		TotalPages:   totalPages(total, transactionPageLimit),
	}, nil
}

func normalizePage(page int) int {
	if page <= 0 {
		return 1
	}
	return page
}

func totalPages(total int64, limit int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/zahintraders/poultry_trading_app/internal/apperrors"
	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	portsrepo "github.com/zahintraders/poultry_trading_app/internal/core/ports/repositories"
	portssvc "github.com/zahintraders/poultry_trading_app/internal/core/ports/services"
	"github.com/zahintraders/poultry_trading_app/internal/dto"
	"github.com/zahintraders/poultry_trading_app/internal/middleware"
	"github.com/zahintraders/poultry_trading_app/internal/repositories/cache"
)

// SaleService processes catalog and wholesale sales. All pricing comes from
// the server side: catalog sales read unit prices from the product catalog,
// wholesale sales take the buyer-agreed line prices as given.
type SaleService struct {
	saleRepo     portsrepo.SaleRepositoryFacade
	productRepo  portsrepo.ProductRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	buyerRepo    portsrepo.BuyerRepositoryFacade
	batchRepo    portsrepo.BatchRepositoryFacade
	dashCache    *cache.DashboardCache
}

func NewSaleService(
	saleRepo portsrepo.SaleRepositoryFacade,
	productRepo portsrepo.ProductRepositoryFacade,
	customerRepo portsrepo.CustomerRepositoryFacade,
	buyerRepo portsrepo.BuyerRepositoryFacade,
	batchRepo portsrepo.BatchRepositoryFacade,
	dashCache *cache.DashboardCache,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		buyerRepo:    buyerRepo,
		batchRepo:    batchRepo,
		dashCache:    dashCache,
	}
}

var _ portssvc.SaleSvcFacade = (*SaleService)(nil)

// CreateSale creates a catalog sale. Stock decrements, the optional balance
// debit and the SALE transaction commit atomically; a shortfall on any line
// leaves nothing applied. Random customer sales are cash only since there is
// no balance to debit.
func (s *SaleService) CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*domain.Sale, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.IsRandomCustomer && req.CustomerID == "" {
		return nil, fmt.Errorf("customerID is required for registered-customer sales: %w", apperrors.ErrValidation)
	}
	if req.IsRandomCustomer && !req.IsCashPayment {
		return nil, fmt.Errorf("random customer sales must be paid in cash: %w", apperrors.ErrValidation)
	}

	totalAmount := decimal.Zero
	saleItems := make([]domain.SaleItem, 0, len(req.Items))
	stockDecrements := make(map[string]int64, len(req.Items))
	for _, item := range req.Items {
		product, err := s.productRepo.FindProductByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product.Quantity < item.Quantity {
			return nil, fmt.Errorf("not enough stock for %s: %w", product.Name, apperrors.ErrInsufficientStock)
		}
		totalAmount = totalAmount.Add(product.Price.Mul(decimal.NewFromInt(item.Quantity)))
		saleItems = append(saleItems, domain.SaleItem{
			ProductID: product.ProductID,
			Name:      product.Name,
			Quantity:  item.Quantity,
			Price:     product.Price,
		})
		stockDecrements[item.ProductID] += item.Quantity
	}

	now := time.Now()
	sale := domain.Sale{
		SaleID:      uuid.NewString(),
		Items:       saleItems,
		TotalAmount: totalAmount,
		Timestamps:  domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TxnSale,
		Amount:        totalAmount,
		Items:         saleItems,
		PaymentMethod: domain.PaymentCash,
		Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	var balanceDelta *decimal.Decimal
	if req.IsRandomCustomer {
		txn.RandomCustomerName = req.RandomCustomerName
		name := req.RandomCustomerName
		if name == "" {
			name = "a random customer"
		}
		txn.Notes = fmt.Sprintf("Cash sale to %s", name)
	} else {
		customer, err := s.customerRepo.FindCustomerByID(ctx, req.CustomerID)
		if err != nil {
			return nil, err
		}

		sale.CustomerID = &customer.CustomerID
		txn.CustomerID = &customer.CustomerID
		txn.Notes = fmt.Sprintf("Sale of %d item(s) to %s", len(saleItems), customer.Name)

		// A sale during an open batch belongs to that batch.
		activeBatch, err := s.batchRepo.FindActiveBatchByCustomer(ctx, req.CustomerID)
		if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		if activeBatch != nil {
			sale.BatchID = &activeBatch.BatchID
			txn.BatchID = &activeBatch.BatchID
		}

		if req.IsCashPayment {
			txn.BalanceBefore = customer.Balance
			txn.BalanceAfter = customer.Balance
		} else {
			txn.PaymentMethod = domain.PaymentCredit
			delta := totalAmount.Neg()
			balanceDelta = &delta
		}
	}

	created, _, err := s.saleRepo.CreateSale(ctx, sale, txn, stockDecrements, balanceDelta)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientStock) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to create sale", slog.String("error", err.Error()))
		}
		return nil, err
	}

	s.invalidateDashboard(ctx)
	logger.Info("Sale created", slog.String("sale_id", created.SaleID), slog.String("total", totalAmount.String()))
	return created, nil
}

// CreateWholesaleSale creates a custom-priced sale for a wholesale buyer. The
// total is the sum of line prices; weights and quantities are descriptive.
func (s *SaleService) CreateWholesaleSale(ctx context.Context, req dto.CreateWholesaleSaleRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	buyer, err := s.buyerRepo.FindBuyerByID(ctx, req.BuyerID)
	if err != nil {
		return nil, err
	}

	totalAmount := decimal.Zero
	customItems := make([]domain.CustomItem, 0, len(req.Items))
	for _, item := range req.Items {
		totalAmount = totalAmount.Add(item.Price)
		customItems = append(customItems, domain.CustomItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Weight:   item.Weight,
			Price:    item.Price,
		})
	}

	now := time.Now()
	sale := domain.Sale{
		SaleID:      uuid.NewString(),
		BuyerID:     &buyer.BuyerID,
		Items:       []domain.SaleItem{},
		TotalAmount: totalAmount,
		Timestamps:  domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TxnWholesaleSale,
		BuyerID:       &buyer.BuyerID,
		Amount:        totalAmount,
		CustomItems:   customItems,
		PaymentMethod: domain.PaymentCash,
		Notes:         fmt.Sprintf("Wholesale sale of %d item(s) to %s", len(customItems), buyer.Name),
		Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	var balanceDelta *decimal.Decimal
	if req.IsCashPayment {
		txn.BalanceBefore = buyer.Balance
		txn.BalanceAfter = buyer.Balance
	} else {
		txn.PaymentMethod = domain.PaymentCredit
		delta := totalAmount.Neg()
		balanceDelta = &delta
	}

	_, committed, err := s.saleRepo.CreateSale(ctx, sale, txn, nil, balanceDelta)
	if err != nil {
		logger.Error("Failed to create wholesale sale", slog.String("error", err.Error()), slog.String("buyer_id", req.BuyerID))
		return nil, err
	}

	s.invalidateDashboard(ctx)
	logger.Info("Wholesale sale created", slog.String("buyer_id", req.BuyerID), slog.String("total", totalAmount.String()))
	return committed, nil
}

func (s *SaleService) ListSales(ctx context.Context) ([]domain.Sale, error) {
	sales, err := s.saleRepo.ListSales(ctx)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list sales", slog.String("error", err.Error()))
		return nil, err
	}
	if sales == nil {
		sales = []domain.Sale{}
	}
	return sales, nil
}

// invalidateDashboard drops the cached dashboard snapshot after a sale. The
// cache is best-effort; a failure here never fails the sale.
func (s *SaleService) invalidateDashboard(ctx context.Context) {
	if s.dashCache == nil {
		return
	}
	if err := s.dashCache.Invalidate(ctx); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("Failed to invalidate dashboard cache", slog.String("error", err.Error()))
	}
}

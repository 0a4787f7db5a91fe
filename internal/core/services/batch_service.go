package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/zahintraders/poultry_trading_app/internal/apperrors"
	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	portsrepo "github.com/zahintraders/poultry_trading_app/internal/core/ports/repositories"
	portssvc "github.com/zahintraders/poultry_trading_app/internal/core/ports/services"
	"github.com/zahintraders/poultry_trading_app/internal/dto"
	"github.com/zahintraders/poultry_trading_app/internal/middleware"
)

// BatchService manages settlement batches. A batch brackets the period
// between handing chicks to a customer and buying the grown birds back; its
// balance snapshots come from the customer row at open and close.
type BatchService struct {
	batchRepo  portsrepo.BatchRepositoryFacade
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

func NewBatchService(batchRepo portsrepo.BatchRepositoryFacade, ledgerRepo portsrepo.LedgerRepositoryFacade) *BatchService {
	return &BatchService{batchRepo: batchRepo, ledgerRepo: ledgerRepo}
}

var _ portssvc.BatchSvcFacade = (*BatchService)(nil)

// StartBatch opens a new batch for the customer. Any batch still Active is
// completed first, so a customer never carries two open batches.
func (s *BatchService) StartBatch(ctx context.Context, customerID string) (*domain.Batch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	batch, err := s.batchRepo.OpenBatch(ctx, customerID, time.Now())
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to open batch", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return nil, err
	}

	logger.Info("Batch opened", slog.String("batch_id", batch.BatchID), slog.Int("batch_number", batch.BatchNumber))
	return batch, nil
}

func (s *BatchService) GetBatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	return s.batchRepo.FindBatchByID(ctx, batchID)
}

func (s *BatchService) ListBatchesForCustomer(ctx context.Context, customerID string) ([]domain.Batch, error) {
	batches, err := s.batchRepo.ListBatchesByCustomer(ctx, customerID)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list batches", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		return nil, err
	}
	if batches == nil {
		batches = []domain.Batch{}
	}
	return batches, nil
}

// BuyBackAndEndBatch settles an Active batch: the buy-back total
// (weight * pricePerKg) is credited to the customer and the batch is marked
// Completed at the post-credit balance.
func (s *BatchService) BuyBackAndEndBatch(ctx context.Context, batchID string, req dto.BuyBackRequest) (*domain.BalanceChange, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch.Status != domain.BatchActive {
		return nil, apperrors.ErrNotFound
	}

	total := req.Weight.Mul(req.PricePerKg)
	now := time.Now()
	txn := domain.Transaction{
		TransactionID:     uuid.NewString(),
		Type:              domain.TxnBuyBack,
		CustomerID:        &batch.CustomerID,
		BatchID:           &batch.BatchID,
		Amount:            total,
		BuyBackQuantity:   req.Quantity,
		BuyBackWeight:     req.Weight,
		BuyBackPricePerKg: req.PricePerKg,
		Notes:             fmt.Sprintf("Bought back %d chickens (%skg @ TK %s/kg)", req.Quantity, req.Weight.String(), req.PricePerKg.String()),
		Timestamps:        domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	change, err := s.batchRepo.SettleBuyBack(ctx, batchID, total, txn)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to settle buy-back", slog.String("error", err.Error()), slog.String("batch_id", batchID))
		}
		return nil, err
	}

	logger.Info("Batch settled", slog.String("batch_id", batchID), slog.String("total", total.String()))
	return change, nil
}

// BuyFromCustomer records a buy-back against the customer's Active batch
// without closing it. Customers without an Active batch are rejected.
func (s *BatchService) BuyFromCustomer(ctx context.Context, req dto.CustomerBuyBackRequest) (*domain.BalanceChange, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	active, err := s.batchRepo.FindActiveBatchByCustomer(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("customer has no active batch: %w", apperrors.ErrValidation)
		}
		return nil, err
	}

	total := req.Weight.Mul(req.PricePerKg)
	now := time.Now()
	txn := domain.Transaction{
		TransactionID:     uuid.NewString(),
		Type:              domain.TxnBuyBack,
		CustomerID:        &active.CustomerID,
		BatchID:           &active.BatchID,
		Amount:            total,
		BuyBackQuantity:   req.Quantity,
		BuyBackWeight:     req.Weight,
		BuyBackPricePerKg: req.PricePerKg,
		ReferenceName:     req.ReferenceName,
		Notes:             fmt.Sprintf("Bought back %d chickens (%skg @ TK %s/kg)", req.Quantity, req.Weight.String(), req.PricePerKg.String()),
		Timestamps:        domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	ref := domain.PartyRef{Kind: domain.PartyCustomer, ID: req.CustomerID}
	change, err := s.ledgerRepo.ApplyBalanceChange(ctx, ref, total, false, txn)
	if err != nil {
		logger.Error("Failed to record buy-back", slog.String("error", err.Error()), slog.String("customer_id", req.CustomerID))
		return nil, err
	}

	logger.Info("Buy-back recorded", slog.String("customer_id", req.CustomerID), slog.String("batch_id", active.BatchID))
	return change, nil
}

// AddDiscount grants debt relief on an Active batch: the amount is credited
// to the customer's balance and logged as a DISCOUNT transaction.
func (s *BatchService) AddDiscount(ctx context.Context, batchID string, req dto.AddDiscountRequest) (*domain.Batch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !req.Amount.IsPositive() {
		return nil, fmt.Errorf("discount amount must be positive: %w", apperrors.ErrValidation)
	}

	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	discount := domain.Discount{
		DiscountID:  uuid.NewString(),
		Description: req.Description,
		Amount:      req.Amount,
		CreatedAt:   now,
	}
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TxnDiscount,
		CustomerID:    &batch.CustomerID,
		BatchID:       &batch.BatchID,
		Amount:        req.Amount,
		Notes:         fmt.Sprintf("Discount: %s", req.Description),
		Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	updated, err := s.batchRepo.AddDiscount(ctx, batchID, discount, txn)
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to add discount", slog.String("error", err.Error()), slog.String("batch_id", batchID))
		}
		return nil, err
	}

	logger.Info("Discount added", slog.String("batch_id", batchID), slog.String("amount", req.Amount.String()))
	return updated, nil
}

// RemoveDiscount revokes a discount: the amount is debited back from the
// customer's balance and logged as a DISCOUNT_REMOVAL transaction.
func (s *BatchService) RemoveDiscount(ctx context.Context, batchID, discountID string) (*domain.Batch, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	batch, err := s.batchRepo.FindBatchByID(ctx, batchID)
	if err != nil {
		return nil, err
	}

	var discount *domain.Discount
	for i := range batch.Discounts {
		if batch.Discounts[i].DiscountID == discountID {
			discount = &batch.Discounts[i]
			break
		}
	}
	if discount == nil {
		return nil, apperrors.ErrNotFound
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TxnDiscountRemoval,
		CustomerID:    &batch.CustomerID,
		BatchID:       &batch.BatchID,
		Amount:        discount.Amount.Neg(),
		Notes:         fmt.Sprintf("Discount removed: %s", discount.Description),
		Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	updated, err := s.batchRepo.RemoveDiscount(ctx, batchID, discountID, txn)
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to remove discount", slog.String("error", err.Error()), slog.String("batch_id", batchID))
		}
		return nil, err
	}

	logger.Info("Discount removed", slog.String("batch_id", batchID), slog.String("discount_id", discountID))
	return updated, nil
}

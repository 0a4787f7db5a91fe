package services

import (
	"context"
	"errors"
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
)

type BuyerService struct {
	buyerRepo portsrepo.BuyerRepositoryFacade
}

func NewBuyerService(buyerRepo portsrepo.BuyerRepositoryFacade) *BuyerService {
	return &BuyerService{buyerRepo: buyerRepo}
}

var _ portssvc.BuyerSvcFacade = (*BuyerService)(nil)

func (s *BuyerService) CreateBuyer(ctx context.Context, req dto.CreateBuyerRequest) (*domain.WholesaleBuyer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	buyer := domain.WholesaleBuyer{
		BuyerID:      uuid.NewString(),
		Name:         req.Name,
		BusinessName: req.BusinessName,
		Phone:        req.Phone,
		Address:      req.Address,
		Balance:      decimal.Zero,
		Timestamps:   domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.buyerRepo.SaveBuyer(ctx, buyer); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save buyer", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Wholesale buyer created", slog.String("buyer_id", buyer.BuyerID))
	return &buyer, nil
}

func (s *BuyerService) GetBuyerByID(ctx context.Context, buyerID string) (*domain.WholesaleBuyer, error) {
	return s.buyerRepo.FindBuyerByID(ctx, buyerID)
}

func (s *BuyerService) ListBuyers(ctx context.Context, search string) ([]domain.WholesaleBuyer, error) {
	buyers, err := s.buyerRepo.ListBuyers(ctx, search)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list buyers", slog.String("error", err.Error()))
		return nil, err
	}
	if buyers == nil {
		buyers = []domain.WholesaleBuyer{}
	}
	return buyers, nil
}

func (s *BuyerService) UpdateBuyer(ctx context.Context, buyerID string, req dto.UpdateBuyerRequest) (*domain.WholesaleBuyer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	buyer, err := s.buyerRepo.FindBuyerByID(ctx, buyerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		buyer.Name = *req.Name
	}
	if req.BusinessName != nil {
		buyer.BusinessName = *req.BusinessName
	}
	if req.Phone != nil {
		buyer.Phone = *req.Phone
	}
	if req.Address != nil {
		buyer.Address = *req.Address
	}
	buyer.UpdatedAt = time.Now()

	if err := s.buyerRepo.UpdateBuyer(ctx, *buyer); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to update buyer", slog.String("error", err.Error()), slog.String("buyer_id", buyerID))
		}
		return nil, err
	}

	logger.Info("Wholesale buyer updated", slog.String("buyer_id", buyerID))
	return buyer, nil
}

func (s *BuyerService) DeleteBuyer(ctx context.Context, buyerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.buyerRepo.DeleteBuyer(ctx, buyerID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete buyer", slog.String("error", err.Error()), slog.String("buyer_id", buyerID))
		}
		return err
	}

	logger.Info("Wholesale buyer deleted", slog.String("buyer_id", buyerID))
	return nil
}

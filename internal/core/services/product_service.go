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

type ProductService struct {
	productRepo portsrepo.ProductRepositoryFacade
}

func NewProductService(productRepo portsrepo.ProductRepositoryFacade) *ProductService {
	return &ProductService{productRepo: productRepo}
}

var _ portssvc.ProductSvcFacade = (*ProductService)(nil)

func (s *ProductService) CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if req.Price.IsNegative() {
		return nil, fmt.Errorf("price must not be negative: %w", apperrors.ErrValidation)
	}

	now := time.Now()
	product := domain.Product{
		ProductID:  uuid.NewString(),
		Name:       req.Name,
		SKU:        req.SKU,
		Price:      req.Price,
		Quantity:   req.Quantity,
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.productRepo.SaveProduct(ctx, product); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save product", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Product created", slog.String("product_id", product.ProductID))
	return &product, nil
}

func (s *ProductService) GetProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	return s.productRepo.FindProductByID(ctx, productID)
}

func (s *ProductService) ListProducts(ctx context.Context, search string) ([]domain.Product, error) {
	products, err := s.productRepo.ListProducts(ctx, search)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list products", slog.String("error", err.Error()))
		return nil, err
	}
	if products == nil {
		products = []domain.Product{}
	}
	return products, nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.SKU != nil {
		product.SKU = *req.SKU
	}
	if req.Price != nil {
		if req.Price.IsNegative() {
			return nil, fmt.Errorf("price must not be negative: %w", apperrors.ErrValidation)
		}
		product.Price = *req.Price
	}
	product.UpdatedAt = time.Now()

	if err := s.productRepo.UpdateProduct(ctx, *product); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to update product", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return nil, err
	}

	logger.Info("Product updated", slog.String("product_id", productID))
	return product, nil
}

func (s *ProductService) DeleteProduct(ctx context.Context, productID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.productRepo.DeleteProduct(ctx, productID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete product", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return err
	}

	logger.Info("Product deleted", slog.String("product_id", productID))
	return nil
}

// AddStock increases a product's quantity and records a STOCK_ADD transaction.
func (s *ProductService) AddStock(ctx context.Context, productID string, quantity int64) (*domain.Product, error) {
	return s.adjustStock(ctx, productID, quantity, domain.TxnStockAdd)
}

// RemoveStock decreases a product's quantity and records a STOCK_REMOVE
// transaction. Removing more than is on hand fails with ErrInsufficientStock.
func (s *ProductService) RemoveStock(ctx context.Context, productID string, quantity int64) (*domain.Product, error) {
	return s.adjustStock(ctx, productID, -quantity, domain.TxnStockRemove)
}

func (s *ProductService) adjustStock(ctx context.Context, productID string, delta int64, txnType domain.TransactionType) (*domain.Product, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if delta == 0 {
		return nil, fmt.Errorf("quantity must be positive: %w", apperrors.ErrValidation)
	}

	product, err := s.productRepo.FindProductByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	var notes string
	if delta > 0 {
		notes = fmt.Sprintf("Added %d unit(s) to %s", delta, product.Name)
	} else {
		notes = fmt.Sprintf("Removed %d unit(s) of %s", -delta, product.Name)
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID:  uuid.NewString(),
		Type:           txnType,
		ProductID:      &product.ProductID,
		QuantityChange: delta,
		Notes:          notes,
		Timestamps:     domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	updated, err := s.productRepo.AdjustStock(ctx, productID, delta, txn)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientStock) && !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to adjust stock", slog.String("error", err.Error()), slog.String("product_id", productID))
		}
		return nil, err
	}

	logger.Info("Stock adjusted", slog.String("product_id", productID), slog.Int64("delta", delta))
	return updated, nil
}

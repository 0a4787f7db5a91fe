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

type CustomerService struct {
	customerRepo portsrepo.CustomerRepositoryFacade
}

func NewCustomerService(customerRepo portsrepo.CustomerRepositoryFacade) *CustomerService {
	return &CustomerService{customerRepo: customerRepo}
}

var _ portssvc.CustomerSvcFacade = (*CustomerService)(nil)

func (s *CustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	now := time.Now()
	customer := domain.Customer{
		CustomerID: uuid.NewString(),
		Name:       req.Name,
		Phone:      req.Phone,
		Email:      req.Email,
		Address:    req.Address,
		Balance:    decimal.Zero,
		Timestamps: domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}

	if err := s.customerRepo.SaveCustomer(ctx, customer); err != nil {
		if !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to save customer", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Customer created", slog.String("customer_id", customer.CustomerID))
	return &customer, nil
}

func (s *CustomerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	return s.customerRepo.FindCustomerByID(ctx, customerID)
}

func (s *CustomerService) ListCustomers(ctx context.Context, search string) ([]domain.Customer, error) {
	customers, err := s.customerRepo.ListCustomers(ctx, search)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to list customers", slog.String("error", err.Error()))
		return nil, err
	}
	if customers == nil {
		customers = []domain.Customer{}
	}
	return customers, nil
}

func (s *CustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	customer, err := s.customerRepo.FindCustomerByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		customer.Name = *req.Name
	}
	if req.Phone != nil {
		customer.Phone = *req.Phone
	}
	if req.Email != nil {
		customer.Email = *req.Email
	}
	if req.Address != nil {
		customer.Address = *req.Address
	}
	customer.UpdatedAt = time.Now()

	if err := s.customerRepo.UpdateCustomer(ctx, *customer); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrDuplicate) {
			logger.Error("Failed to update customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return nil, err
	}

	logger.Info("Customer updated", slog.String("customer_id", customerID))
	return customer, nil
}

func (s *CustomerService) DeleteCustomer(ctx context.Context, customerID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := s.customerRepo.DeleteCustomer(ctx, customerID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to delete customer", slog.String("error", err.Error()), slog.String("customer_id", customerID))
		}
		return err
	}

	logger.Info("Customer deleted", slog.String("customer_id", customerID))
	return nil
}

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
	"github.com/zahintraders/poultry_trading_app/internal/middleware"
)

// LedgerService moves money in and out of party balances. Every movement goes
// through the repository's single write path, so the balance and the
// transaction log commit together.
type LedgerService struct {
	ledgerRepo   portsrepo.LedgerRepositoryFacade
	customerRepo portsrepo.CustomerRepositoryFacade
	buyerRepo    portsrepo.BuyerRepositoryFacade
}

func NewLedgerService(ledgerRepo portsrepo.LedgerRepositoryFacade, customerRepo portsrepo.CustomerRepositoryFacade, buyerRepo portsrepo.BuyerRepositoryFacade) *LedgerService {
	return &LedgerService{
		ledgerRepo:   ledgerRepo,
		customerRepo: customerRepo,
		buyerRepo:    buyerRepo,
	}
}

var _ portssvc.LedgerSvcFacade = (*LedgerService)(nil)

// partyName resolves the display name for transaction notes.
func (s *LedgerService) partyName(ctx context.Context, ref domain.PartyRef) (string, error) {
	switch ref.Kind {
	case domain.PartyCustomer:
		customer, err := s.customerRepo.FindCustomerByID(ctx, ref.ID)
		if err != nil {
			return "", err
		}
		return customer.Name, nil
	case domain.PartyWholesaleBuyer:
		buyer, err := s.buyerRepo.FindBuyerByID(ctx, ref.ID)
		if err != nil {
			return "", err
		}
		return buyer.Name, nil
	default:
		return "", apperrors.ErrValidation
	}
}

func (s *LedgerService) Deposit(ctx context.Context, ref domain.PartyRef, amount decimal.Decimal) (*domain.BalanceChange, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("deposit amount must be positive: %w", apperrors.ErrValidation)
	}

	name, err := s.partyName(ctx, ref)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TxnDeposit,
		Amount:        amount,
		Notes:         fmt.Sprintf("Deposit of TK %s for %s", amount.StringFixed(2), name),
		Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	attachParty(&txn, ref)

	change, err := s.ledgerRepo.ApplyBalanceChange(ctx, ref, amount, false, txn)
	if err != nil {
		logger.Error("Failed to apply deposit", slog.String("error", err.Error()), slog.String("party_id", ref.ID))
		return nil, err
	}

	logger.Info("Deposit recorded", slog.String("party_id", ref.ID), slog.String("amount", amount.String()))
	return change, nil
}

// Withdraw debits the party's balance. The non-negative floor is enforced
// inside the database transaction; the stored amount is negative.
func (s *LedgerService) Withdraw(ctx context.Context, ref domain.PartyRef, amount decimal.Decimal) (*domain.BalanceChange, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !amount.IsPositive() {
		return nil, fmt.Errorf("withdrawal amount must be positive: %w", apperrors.ErrValidation)
	}

	name, err := s.partyName(ctx, ref)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TxnWithdrawal,
		Amount:        amount.Neg(),
		Notes:         fmt.Sprintf("Withdrawal of TK %s by %s", amount.StringFixed(2), name),
		Timestamps:    domain.Timestamps{CreatedAt: now, UpdatedAt: now},
	}
	attachParty(&txn, ref)

	change, err := s.ledgerRepo.ApplyBalanceChange(ctx, ref, amount.Neg(), true, txn)
	if err != nil {
		if !errors.Is(err, apperrors.ErrInsufficientBalance) {
			logger.Error("Failed to apply withdrawal", slog.String("error", err.Error()), slog.String("party_id", ref.ID))
		}
		return nil, err
	}

	logger.Info("Withdrawal recorded", slog.String("party_id", ref.ID), slog.String("amount", amount.String()))
	return change, nil
}

// attachParty sets the matching party reference column on a transaction.
func attachParty(txn *domain.Transaction, ref domain.PartyRef) {
	id := ref.ID
	switch ref.Kind {
	case domain.PartyCustomer:
		txn.CustomerID = &id
	case domain.PartyWholesaleBuyer:
		txn.BuyerID = &id
	}
}

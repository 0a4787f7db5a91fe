package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zahintraders/poultry_trading_app/internal/apperrors"
	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	"github.com/zahintraders/poultry_trading_app/internal/core/services"
	"github.com/zahintraders/poultry_trading_app/internal/dto"
)

// MockBatchRepository is a mock type for the BatchRepositoryFacade interface
type MockBatchRepository struct {
	mock.Mock
}

func (m *MockBatchRepository) OpenBatch(ctx context.Context, customerID string, now time.Time) (*domain.Batch, error) {
	args := m.Called(ctx, customerID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindBatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockBatchRepository) FindActiveBatchByCustomer(ctx context.Context, customerID string) (*domain.Batch, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockBatchRepository) ListBatchesByCustomer(ctx context.Context, customerID string) ([]domain.Batch, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Batch), args.Error(1)
}

func (m *MockBatchRepository) SettleBuyBack(ctx context.Context, batchID string, delta decimal.Decimal, txn domain.Transaction) (*domain.BalanceChange, error) {
	args := m.Called(ctx, batchID, delta, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceChange), args.Error(1)
}

func (m *MockBatchRepository) AddDiscount(ctx context.Context, batchID string, discount domain.Discount, txn domain.Transaction) (*domain.Batch, error) {
	args := m.Called(ctx, batchID, discount, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

func (m *MockBatchRepository) RemoveDiscount(ctx context.Context, batchID, discountID string, txn domain.Transaction) (*domain.Batch, error) {
	args := m.Called(ctx, batchID, discountID, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

// --- Test Suite Setup ---

type BatchServiceTestSuite struct {
	suite.Suite
	mockBatchRepo  *MockBatchRepository
	mockLedgerRepo *MockLedgerRepository
	service        *services.BatchService
}

func (suite *BatchServiceTestSuite) SetupTest() {
	suite.mockBatchRepo = new(MockBatchRepository)
	suite.mockLedgerRepo = new(MockLedgerRepository)
	suite.service = services.NewBatchService(suite.mockBatchRepo, suite.mockLedgerRepo)
}

// --- Test Cases ---

func (suite *BatchServiceTestSuite) TestStartBatch_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()

	opened := &domain.Batch{
		BatchID:         uuid.NewString(),
		CustomerID:      customerID,
		BatchNumber:     3,
		Status:          domain.BatchActive,
		StartingBalance: decimal.NewFromInt(-250),
	}
	suite.mockBatchRepo.On("OpenBatch", ctx, customerID, mock.AnythingOfType("time.Time")).Return(opened, nil).Once()

	batch, err := suite.service.StartBatch(ctx, customerID)

	suite.Require().NoError(err)
	suite.Equal(3, batch.BatchNumber)
	suite.Equal(domain.BatchActive, batch.Status)
	suite.mockBatchRepo.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestStartBatch_CustomerNotFound() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockBatchRepo.On("OpenBatch", ctx, customerID, mock.AnythingOfType("time.Time")).Return(nil, apperrors.ErrNotFound).Once()

	batch, err := suite.service.StartBatch(ctx, customerID)

	suite.Require().Error(err)
	suite.Nil(batch)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *BatchServiceTestSuite) TestBuyBackAndEndBatch_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	batchID := uuid.NewString()

	batch := &domain.Batch{BatchID: batchID, CustomerID: customerID, Status: domain.BatchActive}
	suite.mockBatchRepo.On("FindBatchByID", ctx, batchID).Return(batch, nil).Once()

	req := dto.BuyBackRequest{
		Quantity:   120,
		Weight:     decimal.NewFromFloat(180.5),
		PricePerKg: decimal.NewFromInt(150),
	}
	total := req.Weight.Mul(req.PricePerKg)

	expected := &domain.BalanceChange{
		Party:         domain.PartyRef{Kind: domain.PartyCustomer, ID: customerID},
		BalanceBefore: decimal.NewFromInt(-20000),
		BalanceAfter:  decimal.NewFromInt(-20000).Add(total),
	}
	suite.mockBatchRepo.On("SettleBuyBack", ctx, batchID, total, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.TxnBuyBack &&
			txn.Amount.Equal(total) &&
			txn.BuyBackQuantity == req.Quantity &&
			txn.BuyBackWeight.Equal(req.Weight) &&
			txn.BuyBackPricePerKg.Equal(req.PricePerKg) &&
			txn.BatchID != nil && *txn.BatchID == batchID
	})).Return(expected, nil).Once()

	change, err := suite.service.BuyBackAndEndBatch(ctx, batchID, req)

	suite.Require().NoError(err)
	suite.True(change.BalanceAfter.Sub(change.BalanceBefore).Equal(total))
	suite.mockBatchRepo.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestBuyBackAndEndBatch_CompletedBatch() {
	ctx := context.Background()
	batchID := uuid.NewString()

	ending := decimal.NewFromInt(500)
	batch := &domain.Batch{BatchID: batchID, Status: domain.BatchCompleted, EndingBalance: &ending}
	suite.mockBatchRepo.On("FindBatchByID", ctx, batchID).Return(batch, nil).Once()

	change, err := suite.service.BuyBackAndEndBatch(ctx, batchID, dto.BuyBackRequest{
		Quantity:   10,
		Weight:     decimal.NewFromInt(15),
		PricePerKg: decimal.NewFromInt(140),
	})

	suite.Require().Error(err)
	suite.Nil(change)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "SettleBuyBack")
}

func (suite *BatchServiceTestSuite) TestBuyFromCustomer_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	batchID := uuid.NewString()

	active := &domain.Batch{BatchID: batchID, CustomerID: customerID, Status: domain.BatchActive}
	suite.mockBatchRepo.On("FindActiveBatchByCustomer", ctx, customerID).Return(active, nil).Once()

	req := dto.CustomerBuyBackRequest{
		CustomerID:    customerID,
		Quantity:      40,
		Weight:        decimal.NewFromInt(60),
		PricePerKg:    decimal.NewFromInt(145),
		ReferenceName: "Morning pickup",
	}
	total := req.Weight.Mul(req.PricePerKg)
	ref := domain.PartyRef{Kind: domain.PartyCustomer, ID: customerID}

	expected := &domain.BalanceChange{Party: ref, BalanceBefore: decimal.Zero, BalanceAfter: total}
	suite.mockLedgerRepo.On("ApplyBalanceChange", ctx, ref, total, false, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.TxnBuyBack &&
			txn.BatchID != nil && *txn.BatchID == batchID &&
			txn.ReferenceName == "Morning pickup"
	})).Return(expected, nil).Once()

	change, err := suite.service.BuyFromCustomer(ctx, req)

	suite.Require().NoError(err)
	suite.True(change.BalanceAfter.Equal(total))
	suite.mockBatchRepo.AssertExpectations(suite.T())
	suite.mockLedgerRepo.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestBuyFromCustomer_NoActiveBatch() {
	ctx := context.Background()
	customerID := uuid.NewString()

	suite.mockBatchRepo.On("FindActiveBatchByCustomer", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	change, err := suite.service.BuyFromCustomer(ctx, dto.CustomerBuyBackRequest{
		CustomerID: customerID,
		Quantity:   10,
		Weight:     decimal.NewFromInt(15),
		PricePerKg: decimal.NewFromInt(140),
	})

	suite.Require().Error(err)
	suite.Nil(change)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockLedgerRepo.AssertNotCalled(suite.T(), "ApplyBalanceChange")
}

func (suite *BatchServiceTestSuite) TestAddDiscount_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	batchID := uuid.NewString()

	batch := &domain.Batch{BatchID: batchID, CustomerID: customerID, Status: domain.BatchActive}
	suite.mockBatchRepo.On("FindBatchByID", ctx, batchID).Return(batch, nil).Once()

	req := dto.AddDiscountRequest{Description: "Feed spillage", Amount: decimal.NewFromInt(300)}

	updated := &domain.Batch{
		BatchID:    batchID,
		CustomerID: customerID,
		Status:     domain.BatchActive,
		Discounts:  []domain.Discount{{Description: req.Description, Amount: req.Amount}},
	}
	suite.mockBatchRepo.On("AddDiscount", ctx, batchID, mock.MatchedBy(func(d domain.Discount) bool {
		return d.Description == req.Description && d.Amount.Equal(req.Amount) && d.DiscountID != ""
	}), mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.TxnDiscount &&
			txn.Amount.Equal(req.Amount) &&
			txn.Notes == "Discount: Feed spillage"
	})).Return(updated, nil).Once()

	result, err := suite.service.AddDiscount(ctx, batchID, req)

	suite.Require().NoError(err)
	suite.Len(result.Discounts, 1)
	suite.mockBatchRepo.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestAddDiscount_NonPositiveAmount() {
	ctx := context.Background()

	result, err := suite.service.AddDiscount(ctx, uuid.NewString(), dto.AddDiscountRequest{
		Description: "Bad",
		Amount:      decimal.Zero,
	})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "AddDiscount")
}

func (suite *BatchServiceTestSuite) TestRemoveDiscount_Success() {
	ctx := context.Background()
	customerID := uuid.NewString()
	batchID := uuid.NewString()
	discountID := uuid.NewString()

	amount := decimal.NewFromInt(300)
	batch := &domain.Batch{
		BatchID:    batchID,
		CustomerID: customerID,
		Status:     domain.BatchActive,
		Discounts:  []domain.Discount{{DiscountID: discountID, Description: "Feed spillage", Amount: amount}},
	}
	suite.mockBatchRepo.On("FindBatchByID", ctx, batchID).Return(batch, nil).Once()

	updated := &domain.Batch{BatchID: batchID, CustomerID: customerID, Status: domain.BatchActive, Discounts: []domain.Discount{}}
	// Removal debits the amount back, so the logged amount is negative.
	suite.mockBatchRepo.On("RemoveDiscount", ctx, batchID, discountID, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.TxnDiscountRemoval &&
			txn.Amount.Equal(amount.Neg()) &&
			txn.Notes == "Discount removed: Feed spillage"
	})).Return(updated, nil).Once()

	result, err := suite.service.RemoveDiscount(ctx, batchID, discountID)

	suite.Require().NoError(err)
	suite.Empty(result.Discounts)
	suite.mockBatchRepo.AssertExpectations(suite.T())
}

func (suite *BatchServiceTestSuite) TestRemoveDiscount_UnknownDiscount() {
	ctx := context.Background()
	batchID := uuid.NewString()

	batch := &domain.Batch{BatchID: batchID, CustomerID: uuid.NewString(), Status: domain.BatchActive}
	suite.mockBatchRepo.On("FindBatchByID", ctx, batchID).Return(batch, nil).Once()

	result, err := suite.service.RemoveDiscount(ctx, batchID, uuid.NewString())

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockBatchRepo.AssertNotCalled(suite.T(), "RemoveDiscount")
}

func TestBatchServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BatchServiceTestSuite))
}

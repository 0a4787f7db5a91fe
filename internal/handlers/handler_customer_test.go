package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zahintraders/poultry_trading_app/internal/apperrors"
	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	portssvc "github.com/zahintraders/poultry_trading_app/internal/core/ports/services"
	"github.com/zahintraders/poultry_trading_app/internal/dto"
	"github.com/zahintraders/poultry_trading_app/internal/handlers"
	"github.com/zahintraders/poultry_trading_app/internal/middleware"
	"github.com/zahintraders/poultry_trading_app/internal/utils"
)

// --- Mock CustomerService ---
type MockCustomerService struct {
	mock.Mock
}

func (m *MockCustomerService) CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) ListCustomers(ctx context.Context, search string) ([]domain.Customer, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Customer), args.Error(1)
}
func (m *MockCustomerService) UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error) {
	args := m.Called(ctx, customerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Customer), args.Error(1)
}
func (m *MockCustomerService) DeleteCustomer(ctx context.Context, customerID string) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

var _ portssvc.CustomerSvcFacade = (*MockCustomerService)(nil)

// --- Mock LedgerService ---
type MockLedgerService struct {
	mock.Mock
}

func (m *MockLedgerService) Deposit(ctx context.Context, ref domain.PartyRef, amount decimal.Decimal) (*domain.BalanceChange, error) {
	args := m.Called(ctx, ref, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceChange), args.Error(1)
}
func (m *MockLedgerService) Withdraw(ctx context.Context, ref domain.PartyRef, amount decimal.Decimal) (*domain.BalanceChange, error) {
	args := m.Called(ctx, ref, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceChange), args.Error(1)
}

var _ portssvc.LedgerSvcFacade = (*MockLedgerService)(nil)

// --- Mock BatchService ---
type MockBatchService struct {
	mock.Mock
}

func (m *MockBatchService) StartBatch(ctx context.Context, customerID string) (*domain.Batch, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}
func (m *MockBatchService) GetBatchByID(ctx context.Context, batchID string) (*domain.Batch, error) {
	args := m.Called(ctx, batchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}
func (m *MockBatchService) ListBatchesForCustomer(ctx context.Context, customerID string) ([]domain.Batch, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Batch), args.Error(1)
}
func (m *MockBatchService) BuyBackAndEndBatch(ctx context.Context, batchID string, req dto.BuyBackRequest) (*domain.BalanceChange, error) {
	args := m.Called(ctx, batchID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceChange), args.Error(1)
}
func (m *MockBatchService) BuyFromCustomer(ctx context.Context, req dto.CustomerBuyBackRequest) (*domain.BalanceChange, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.BalanceChange), args.Error(1)
}
func (m *MockBatchService) AddDiscount(ctx context.Context, batchID string, req dto.AddDiscountRequest) (*domain.Batch, error) {
	args := m.Called(ctx, batchID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}
func (m *MockBatchService) RemoveDiscount(ctx context.Context, batchID, discountID string) (*domain.Batch, error) {
	args := m.Called(ctx, batchID, discountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Batch), args.Error(1)
}

var _ portssvc.BatchSvcFacade = (*MockBatchService)(nil)

// --- Test Suite ---
type CustomerHandlerTestSuite struct {
	suite.Suite
	router              *gin.Engine
	mockCustomerService *MockCustomerService
	mockLedgerService   *MockLedgerService
	mockBatchService    *MockBatchService
	jwtSecret           string
}

func (suite *CustomerHandlerTestSuite) generateTestToken(userID string) string {
	token, _, err := utils.GenerateJWT(userID, string(domain.RoleAdmin), suite.jwtSecret, time.Hour, "poultry-test")
	if err != nil {
		suite.FailNow("Failed to sign test token", err.Error())
	}
	return token
}

func (suite *CustomerHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"

	suite.router.Use(middleware.AuthMiddleware(suite.jwtSecret), middleware.RequireRole(string(domain.RoleAdmin)))

	suite.mockCustomerService = new(MockCustomerService)
	suite.mockLedgerService = new(MockLedgerService)
	suite.mockBatchService = new(MockBatchService)

	v1 := suite.router.Group("/api/v1")
	handlers.RegisterCustomerRoutes(v1, suite.mockCustomerService, suite.mockLedgerService, suite.mockBatchService)
}

func (suite *CustomerHandlerTestSuite) authedRequest(method, url string, body any) *httptest.ResponseRecorder {
	var buf *bytes.Buffer
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		buf = bytes.NewBuffer(raw)
	} else {
		buf = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, url, buf)
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(uuid.NewString()))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *CustomerHandlerTestSuite) TestGetCustomer_Success() {
	customerID := uuid.NewString()
	customer := &domain.Customer{
		CustomerID: customerID,
		Name:       "Rahim",
		Phone:      "01712345678",
		Balance:    decimal.NewFromInt(-500),
	}
	suite.mockCustomerService.On("GetCustomerByID", mock.Anything, customerID).Return(customer, nil).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/customers/"+customerID, nil)

	suite.Equal(http.StatusOK, w.Code)
	var body dto.CustomerResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(customerID, body.CustomerID)
	suite.True(body.Balance.Equal(decimal.NewFromInt(-500)))
	suite.mockCustomerService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestGetCustomer_WrongRoleForbidden() {
	customerID := uuid.NewString()
	token, _, err := utils.GenerateJWT(uuid.NewString(), "viewer", suite.jwtSecret, time.Hour, "poultry-test")
	suite.Require().NoError(err)

	req, _ := http.NewRequest(http.MethodGet, "/api/v1/customers/"+customerID, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusForbidden, w.Code)
	suite.mockCustomerService.AssertNotCalled(suite.T(), "GetCustomerByID")
}

func (suite *CustomerHandlerTestSuite) TestGetCustomer_NotFound() {
	customerID := uuid.NewString()
	suite.mockCustomerService.On("GetCustomerByID", mock.Anything, customerID).Return(nil, apperrors.ErrNotFound).Once()

	w := suite.authedRequest(http.MethodGet, "/api/v1/customers/"+customerID, nil)

	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *CustomerHandlerTestSuite) TestGetCustomer_Unauthorized() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/customers/"+uuid.NewString(), nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockCustomerService.AssertNotCalled(suite.T(), "GetCustomerByID")
}

func (suite *CustomerHandlerTestSuite) TestCreateCustomer_MissingPhone() {
	w := suite.authedRequest(http.MethodPost, "/api/v1/customers", map[string]string{"name": "Rahim"})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockCustomerService.AssertNotCalled(suite.T(), "CreateCustomer")
}

func (suite *CustomerHandlerTestSuite) TestDeposit_Success() {
	customerID := uuid.NewString()
	amount := decimal.NewFromInt(500)
	ref := domain.PartyRef{Kind: domain.PartyCustomer, ID: customerID}

	change := &domain.BalanceChange{
		Party:         ref,
		BalanceBefore: decimal.Zero,
		BalanceAfter:  amount,
		Transaction:   domain.Transaction{TransactionID: uuid.NewString(), Type: domain.TxnDeposit, Amount: amount},
	}
	suite.mockLedgerService.On("Deposit", mock.Anything, ref, mock.MatchedBy(func(a decimal.Decimal) bool {
		return a.Equal(amount)
	})).Return(change, nil).Once()

	url := fmt.Sprintf("/api/v1/customers/%s/deposit", customerID)
	w := suite.authedRequest(http.MethodPatch, url, dto.AmountRequest{Amount: amount})

	suite.Equal(http.StatusOK, w.Code)
	var body dto.BalanceChangeResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Equal(customerID, body.PartyID)
	suite.True(body.BalanceAfter.Equal(amount))
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestWithdraw_InsufficientBalance() {
	customerID := uuid.NewString()
	ref := domain.PartyRef{Kind: domain.PartyCustomer, ID: customerID}

	suite.mockLedgerService.On("Withdraw", mock.Anything, ref, mock.AnythingOfType("decimal.Decimal")).
		Return(nil, apperrors.ErrInsufficientBalance).Once()

	url := fmt.Sprintf("/api/v1/customers/%s/withdraw", customerID)
	w := suite.authedRequest(http.MethodPatch, url, dto.AmountRequest{Amount: decimal.NewFromInt(9999)})

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockLedgerService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestBuyBack_NoActiveBatch() {
	req := dto.CustomerBuyBackRequest{
		CustomerID: uuid.NewString(),
		Quantity:   10,
		Weight:     decimal.NewFromInt(15),
		PricePerKg: decimal.NewFromInt(140),
	}
	suite.mockBatchService.On("BuyFromCustomer", mock.Anything, req).
		Return(nil, fmt.Errorf("customer has no active batch: %w", apperrors.ErrValidation)).Once()

	w := suite.authedRequest(http.MethodPost, "/api/v1/customers/buy-back", req)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockBatchService.AssertExpectations(suite.T())
}

func (suite *CustomerHandlerTestSuite) TestListBatches_Success() {
	customerID := uuid.NewString()
	batches := []domain.Batch{
		{BatchID: uuid.NewString(), CustomerID: customerID, BatchNumber: 2, Status: domain.BatchActive},
		{BatchID: uuid.NewString(), CustomerID: customerID, BatchNumber: 1, Status: domain.BatchCompleted},
	}
	suite.mockBatchService.On("ListBatchesForCustomer", mock.Anything, customerID).Return(batches, nil).Once()

	w := suite.authedRequest(http.MethodGet, fmt.Sprintf("/api/v1/customers/%s/batches", customerID), nil)

	suite.Equal(http.StatusOK, w.Code)
	var body []dto.BatchResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &body))
	suite.Len(body, 2)
	suite.Equal(2, body[0].BatchNumber)
	suite.mockBatchService.AssertExpectations(suite.T())
}

// --- Run Test Suite ---
func TestCustomerHandler(t *testing.T) {
	suite.Run(t, new(CustomerHandlerTestSuite))
}

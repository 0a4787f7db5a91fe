package services_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/zahintraders/poultry_trading_app/internal/apperrors"
	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	"github.com/zahintraders/poultry_trading_app/internal/core/services"
	"github.com/zahintraders/poultry_trading_app/internal/dto"
)

// MockProductRepository is a mock type for the ProductRepositoryFacade interface
type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) SaveProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) FindProductByID(ctx context.Context, productID string) (*domain.Product, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

func (m *MockProductRepository) ListProducts(ctx context.Context, search string) ([]domain.Product, error) {
	args := m.Called(ctx, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Product), args.Error(1)
}

func (m *MockProductRepository) UpdateProduct(ctx context.Context, product domain.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) DeleteProduct(ctx context.Context, productID string) error {
	args := m.Called(ctx, productID)
	return args.Error(0)
}

func (m *MockProductRepository) AdjustStock(ctx context.Context, productID string, delta int64, txn domain.Transaction) (*domain.Product, error) {
	args := m.Called(ctx, productID, delta, txn)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Product), args.Error(1)
}

// MockSaleRepository is a mock type for the SaleRepositoryFacade interface
type MockSaleRepository struct {
	mock.Mock
}

func (m *MockSaleRepository) CreateSale(ctx context.Context, sale domain.Sale, txn domain.Transaction, stockDecrements map[string]int64, balanceDelta *decimal.Decimal) (*domain.Sale, *domain.Transaction, error) {
	args := m.Called(ctx, sale, txn, stockDecrements, balanceDelta)
	var createdSale *domain.Sale
	if args.Get(0) != nil {
		createdSale = args.Get(0).(*domain.Sale)
	}
	var committedTxn *domain.Transaction
	if args.Get(1) != nil {
		committedTxn = args.Get(1).(*domain.Transaction)
	}
	return createdSale, committedTxn, args.Error(2)
}

func (m *MockSaleRepository) ListSales(ctx context.Context) ([]domain.Sale, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Sale), args.Error(1)
}

// --- Test Suite Setup ---

type SaleServiceTestSuite struct {
	suite.Suite
	mockSaleRepo     *MockSaleRepository
	mockProductRepo  *MockProductRepository
	mockCustomerRepo *MockCustomerRepository
	mockBuyerRepo    *MockBuyerRepository
	mockBatchRepo    *MockBatchRepository
	service          *services.SaleService
}

func (suite *SaleServiceTestSuite) SetupTest() {
	suite.mockSaleRepo = new(MockSaleRepository)
	suite.mockProductRepo = new(MockProductRepository)
	suite.mockCustomerRepo = new(MockCustomerRepository)
	suite.mockBuyerRepo = new(MockBuyerRepository)
	suite.mockBatchRepo = new(MockBatchRepository)
	suite.service = services.NewSaleService(
		suite.mockSaleRepo,
		suite.mockProductRepo,
		suite.mockCustomerRepo,
		suite.mockBuyerRepo,
		suite.mockBatchRepo,
		nil, // no dashboard cache in tests
	)
}

// --- Test Cases ---

func (suite *SaleServiceTestSuite) TestCreateSale_CashRegisteredCustomer() {
	ctx := context.Background()
	customerID := uuid.NewString()
	productID := uuid.NewString()

	product := &domain.Product{ProductID: productID, Name: "Broiler chick", Price: decimal.NewFromInt(45), Quantity: 100}
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()

	customer := &domain.Customer{CustomerID: customerID, Name: "Rahim", Balance: decimal.NewFromInt(-500)}
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(customer, nil).Once()
	suite.mockBatchRepo.On("FindActiveBatchByCustomer", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	total := decimal.NewFromInt(90) // 2 * 45
	suite.mockSaleRepo.On("CreateSale", ctx,
		mock.MatchedBy(func(sale domain.Sale) bool {
			return sale.CustomerID != nil && *sale.CustomerID == customerID &&
				sale.BatchID == nil &&
				sale.TotalAmount.Equal(total) &&
				len(sale.Items) == 1 && sale.Items[0].Price.Equal(product.Price)
		}),
		mock.MatchedBy(func(txn domain.Transaction) bool {
			// A cash sale leaves the balance untouched; both snapshots carry it.
			return txn.Type == domain.TxnSale &&
				txn.PaymentMethod == domain.PaymentCash &&
				txn.BalanceBefore.Equal(customer.Balance) &&
				txn.BalanceAfter.Equal(customer.Balance)
		}),
		map[string]int64{productID: 2},
		(*decimal.Decimal)(nil),
	).Return(&domain.Sale{SaleID: uuid.NewString(), TotalAmount: total}, &domain.Transaction{}, nil).Once()

	sale, err := suite.service.CreateSale(ctx, dto.CreateSaleRequest{
		CustomerID:    customerID,
		Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: 2}},
		IsCashPayment: true,
	})

	suite.Require().NoError(err)
	suite.True(sale.TotalAmount.Equal(total))
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_CreditDebitsBalance() {
	ctx := context.Background()
	customerID := uuid.NewString()
	productID := uuid.NewString()

	product := &domain.Product{ProductID: productID, Name: "Feed bag", Price: decimal.NewFromInt(1200), Quantity: 10}
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()

	customer := &domain.Customer{CustomerID: customerID, Name: "Rahim", Balance: decimal.Zero}
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(customer, nil).Once()
	suite.mockBatchRepo.On("FindActiveBatchByCustomer", ctx, customerID).Return(nil, apperrors.ErrNotFound).Once()

	total := decimal.NewFromInt(3600) // 3 * 1200
	suite.mockSaleRepo.On("CreateSale", ctx,
		mock.AnythingOfType("domain.Sale"),
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.PaymentMethod == domain.PaymentCredit
		}),
		map[string]int64{productID: 3},
		mock.MatchedBy(func(delta *decimal.Decimal) bool {
			return delta != nil && delta.Equal(total.Neg())
		}),
	).Return(&domain.Sale{SaleID: uuid.NewString(), TotalAmount: total}, &domain.Transaction{}, nil).Once()

	sale, err := suite.service.CreateSale(ctx, dto.CreateSaleRequest{
		CustomerID: customerID,
		Items:      []dto.SaleItemRequest{{ProductID: productID, Quantity: 3}},
	})

	suite.Require().NoError(err)
	suite.NotNil(sale)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_AttachesActiveBatch() {
	ctx := context.Background()
	customerID := uuid.NewString()
	productID := uuid.NewString()
	batchID := uuid.NewString()

	product := &domain.Product{ProductID: productID, Name: "Broiler chick", Price: decimal.NewFromInt(45), Quantity: 100}
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()

	customer := &domain.Customer{CustomerID: customerID, Name: "Rahim", Balance: decimal.Zero}
	suite.mockCustomerRepo.On("FindCustomerByID", ctx, customerID).Return(customer, nil).Once()

	active := &domain.Batch{BatchID: batchID, CustomerID: customerID, Status: domain.BatchActive}
	suite.mockBatchRepo.On("FindActiveBatchByCustomer", ctx, customerID).Return(active, nil).Once()

	suite.mockSaleRepo.On("CreateSale", ctx,
		mock.MatchedBy(func(sale domain.Sale) bool {
			return sale.BatchID != nil && *sale.BatchID == batchID
		}),
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.BatchID != nil && *txn.BatchID == batchID
		}),
		mock.AnythingOfType("map[string]int64"),
		mock.Anything,
	).Return(&domain.Sale{SaleID: uuid.NewString()}, &domain.Transaction{}, nil).Once()

	_, err := suite.service.CreateSale(ctx, dto.CreateSaleRequest{
		CustomerID:    customerID,
		Items:         []dto.SaleItemRequest{{ProductID: productID, Quantity: 1}},
		IsCashPayment: true,
	})

	suite.Require().NoError(err)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_RandomCustomer() {
	ctx := context.Background()
	productID := uuid.NewString()

	product := &domain.Product{ProductID: productID, Name: "Broiler chick", Price: decimal.NewFromInt(45), Quantity: 100}
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()

	suite.mockSaleRepo.On("CreateSale", ctx,
		mock.MatchedBy(func(sale domain.Sale) bool {
			return sale.CustomerID == nil
		}),
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.RandomCustomerName == "Walk-in" && txn.Notes == "Cash sale to Walk-in"
		}),
		mock.AnythingOfType("map[string]int64"),
		(*decimal.Decimal)(nil),
	).Return(&domain.Sale{SaleID: uuid.NewString()}, &domain.Transaction{}, nil).Once()

	_, err := suite.service.CreateSale(ctx, dto.CreateSaleRequest{
		Items:              []dto.SaleItemRequest{{ProductID: productID, Quantity: 1}},
		IsRandomCustomer:   true,
		IsCashPayment:      true,
		RandomCustomerName: "Walk-in",
	})

	suite.Require().NoError(err)
	suite.mockCustomerRepo.AssertNotCalled(suite.T(), "FindCustomerByID")
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateSale_RandomCustomerOnCredit() {
	ctx := context.Background()

	sale, err := suite.service.CreateSale(ctx, dto.CreateSaleRequest{
		Items:              []dto.SaleItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
		IsRandomCustomer:   true,
		RandomCustomerName: "Walk-in",
	})

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "FindProductByID")
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CreateSale")
}

func (suite *SaleServiceTestSuite) TestCreateSale_InsufficientStock() {
	ctx := context.Background()
	productID := uuid.NewString()

	product := &domain.Product{ProductID: productID, Name: "Feed bag", Price: decimal.NewFromInt(1200), Quantity: 2}
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()

	sale, err := suite.service.CreateSale(ctx, dto.CreateSaleRequest{
		IsRandomCustomer: true,
		IsCashPayment:    true,
		Items:            []dto.SaleItemRequest{{ProductID: productID, Quantity: 5}},
	})

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
	suite.mockSaleRepo.AssertNotCalled(suite.T(), "CreateSale")
}

func (suite *SaleServiceTestSuite) TestCreateSale_MissingCustomerID() {
	ctx := context.Background()

	sale, err := suite.service.CreateSale(ctx, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{{ProductID: uuid.NewString(), Quantity: 1}},
	})

	suite.Require().Error(err)
	suite.Nil(sale)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "FindProductByID")
}

func (suite *SaleServiceTestSuite) TestCreateWholesaleSale_TotalIsSumOfPrices() {
	ctx := context.Background()
	buyerID := uuid.NewString()

	buyer := &domain.WholesaleBuyer{BuyerID: buyerID, Name: "Karim Traders", Balance: decimal.NewFromInt(2000)}
	suite.mockBuyerRepo.On("FindBuyerByID", ctx, buyerID).Return(buyer, nil).Once()

	// Only line prices feed the total; weights and quantities do not.
	total := decimal.NewFromInt(5500)
	committed := &domain.Transaction{
		TransactionID: uuid.NewString(),
		Type:          domain.TxnWholesaleSale,
		Amount:        total,
	}
	suite.mockSaleRepo.On("CreateSale", ctx,
		mock.MatchedBy(func(sale domain.Sale) bool {
			return sale.BuyerID != nil && *sale.BuyerID == buyerID &&
				sale.TotalAmount.Equal(total) && len(sale.Items) == 0
		}),
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.Type == domain.TxnWholesaleSale &&
				txn.Amount.Equal(total) &&
				len(txn.CustomItems) == 2 &&
				txn.BalanceBefore.Equal(buyer.Balance) &&
				txn.BalanceAfter.Equal(buyer.Balance)
		}),
		map[string]int64(nil),
		(*decimal.Decimal)(nil),
	).Return(&domain.Sale{}, committed, nil).Once()

	txn, err := suite.service.CreateWholesaleSale(ctx, dto.CreateWholesaleSaleRequest{
		BuyerID: buyerID,
		Items: []dto.CustomItemRequest{
			{Name: "Live birds", Quantity: 50, Weight: decimal.NewFromInt(90), Price: decimal.NewFromInt(4000)},
			{Name: "Eggs", Quantity: 300, Price: decimal.NewFromInt(1500)},
		},
		IsCashPayment: true,
	})

	suite.Require().NoError(err)
	suite.True(txn.Amount.Equal(total))
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestCreateWholesaleSale_CreditDebitsBuyer() {
	ctx := context.Background()
	buyerID := uuid.NewString()

	buyer := &domain.WholesaleBuyer{BuyerID: buyerID, Name: "Karim Traders", Balance: decimal.Zero}
	suite.mockBuyerRepo.On("FindBuyerByID", ctx, buyerID).Return(buyer, nil).Once()

	total := decimal.NewFromInt(4000)
	suite.mockSaleRepo.On("CreateSale", ctx,
		mock.AnythingOfType("domain.Sale"),
		mock.MatchedBy(func(txn domain.Transaction) bool {
			return txn.PaymentMethod == domain.PaymentCredit
		}),
		map[string]int64(nil),
		mock.MatchedBy(func(delta *decimal.Decimal) bool {
			return delta != nil && delta.Equal(total.Neg())
		}),
	).Return(&domain.Sale{}, &domain.Transaction{Amount: total}, nil).Once()

	txn, err := suite.service.CreateWholesaleSale(ctx, dto.CreateWholesaleSaleRequest{
		BuyerID: buyerID,
		Items:   []dto.CustomItemRequest{{Name: "Live birds", Price: decimal.NewFromInt(4000)}},
	})

	suite.Require().NoError(err)
	suite.NotNil(txn)
	suite.mockSaleRepo.AssertExpectations(suite.T())
}

func (suite *SaleServiceTestSuite) TestListSales_EmptyResult() {
	ctx := context.Background()

	suite.mockSaleRepo.On("ListSales", ctx).Return([]domain.Sale(nil), nil).Once()

	sales, err := suite.service.ListSales(ctx)

	suite.Require().NoError(err)
	suite.NotNil(sales)
	suite.Empty(sales)
}

func TestSaleServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SaleServiceTestSuite))
}

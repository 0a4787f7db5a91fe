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

type ProductServiceTestSuite struct {
	suite.Suite
	mockProductRepo *MockProductRepository
	service         *services.ProductService
}

func (suite *ProductServiceTestSuite) SetupTest() {
	suite.mockProductRepo = new(MockProductRepository)
	suite.service = services.NewProductService(suite.mockProductRepo)
}

func (suite *ProductServiceTestSuite) TestCreateProduct_Success() {
	ctx := context.Background()
	req := dto.CreateProductRequest{
		Name:     "Broiler chick",
		SKU:      "CHK-BR-01",
		Price:    decimal.NewFromInt(45),
		Quantity: 500,
	}

	suite.mockProductRepo.On("SaveProduct", ctx, mock.AnythingOfType("domain.Product")).Return(nil).Once()

	product, err := suite.service.CreateProduct(ctx, req)

	suite.Require().NoError(err)
	suite.NotEmpty(product.ProductID)
	suite.Equal(req.SKU, product.SKU)
	suite.True(product.Price.Equal(req.Price))
	suite.Equal(int64(500), product.Quantity)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestCreateProduct_NegativePrice() {
	ctx := context.Background()

	product, err := suite.service.CreateProduct(ctx, dto.CreateProductRequest{
		Name:  "Bad product",
		SKU:   "BAD-01",
		Price: decimal.NewFromInt(-10),
	})

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "SaveProduct")
}

func (suite *ProductServiceTestSuite) TestCreateProduct_DuplicateSKU() {
	ctx := context.Background()

	suite.mockProductRepo.On("SaveProduct", ctx, mock.AnythingOfType("domain.Product")).Return(apperrors.ErrDuplicate).Once()

	product, err := suite.service.CreateProduct(ctx, dto.CreateProductRequest{
		Name:  "Broiler chick",
		SKU:   "CHK-BR-01",
		Price: decimal.NewFromInt(45),
	})

	suite.Require().Error(err)
	suite.Nil(product)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *ProductServiceTestSuite) TestAddStock_Success() {
	ctx := context.Background()
	productID := uuid.NewString()

	product := &domain.Product{ProductID: productID, Name: "Feed bag", Quantity: 10}
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()

	updated := &domain.Product{ProductID: productID, Name: "Feed bag", Quantity: 35}
	suite.mockProductRepo.On("AdjustStock", ctx, productID, int64(25), mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.TxnStockAdd &&
			txn.QuantityChange == int64(25) &&
			txn.ProductID != nil && *txn.ProductID == productID &&
			txn.Notes == "Added 25 unit(s) to Feed bag"
	})).Return(updated, nil).Once()

	result, err := suite.service.AddStock(ctx, productID, 25)

	suite.Require().NoError(err)
	suite.Equal(int64(35), result.Quantity)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestRemoveStock_Success() {
	ctx := context.Background()
	productID := uuid.NewString()

	product := &domain.Product{ProductID: productID, Name: "Feed bag", Quantity: 10}
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()

	updated := &domain.Product{ProductID: productID, Name: "Feed bag", Quantity: 6}
	suite.mockProductRepo.On("AdjustStock", ctx, productID, int64(-4), mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Type == domain.TxnStockRemove &&
			txn.QuantityChange == int64(-4) &&
			txn.Notes == "Removed 4 unit(s) of Feed bag"
	})).Return(updated, nil).Once()

	result, err := suite.service.RemoveStock(ctx, productID, 4)

	suite.Require().NoError(err)
	suite.Equal(int64(6), result.Quantity)
	suite.mockProductRepo.AssertExpectations(suite.T())
}

func (suite *ProductServiceTestSuite) TestRemoveStock_InsufficientStock() {
	ctx := context.Background()
	productID := uuid.NewString()

	product := &domain.Product{ProductID: productID, Name: "Feed bag", Quantity: 2}
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()
	suite.mockProductRepo.On("AdjustStock", ctx, productID, int64(-5), mock.AnythingOfType("domain.Transaction")).
		Return(nil, apperrors.ErrInsufficientStock).Once()

	result, err := suite.service.RemoveStock(ctx, productID, 5)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInsufficientStock)
}

func (suite *ProductServiceTestSuite) TestUpdateProduct_NegativePrice() {
	ctx := context.Background()
	productID := uuid.NewString()

	product := &domain.Product{ProductID: productID, Name: "Feed bag", Price: decimal.NewFromInt(1200)}
	suite.mockProductRepo.On("FindProductByID", ctx, productID).Return(product, nil).Once()

	badPrice := decimal.NewFromInt(-1)
	result, err := suite.service.UpdateProduct(ctx, productID, dto.UpdateProductRequest{Price: &badPrice})

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockProductRepo.AssertNotCalled(suite.T(), "UpdateProduct")
}

func TestProductServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ProductServiceTestSuite))
}

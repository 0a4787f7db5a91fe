// Package services defines the application-facing contracts implemented by
// internal/core/services and consumed by the HTTP handlers.
package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	"github.com/zahintraders/poultry_trading_app/internal/dto"
)

// CustomerSvcFacade manages retail customers.
type CustomerSvcFacade interface {
	CreateCustomer(ctx context.Context, req dto.CreateCustomerRequest) (*domain.Customer, error)
	GetCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	ListCustomers(ctx context.Context, search string) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customerID string, req dto.UpdateCustomerRequest) (*domain.Customer, error)
	DeleteCustomer(ctx context.Context, customerID string) error
}

// BuyerSvcFacade manages wholesale buyers.
type BuyerSvcFacade interface {
	CreateBuyer(ctx context.Context, req dto.CreateBuyerRequest) (*domain.WholesaleBuyer, error)
	GetBuyerByID(ctx context.Context, buyerID string) (*domain.WholesaleBuyer, error)
	ListBuyers(ctx context.Context, search string) ([]domain.WholesaleBuyer, error)
	UpdateBuyer(ctx context.Context, buyerID string, req dto.UpdateBuyerRequest) (*domain.WholesaleBuyer, error)
	DeleteBuyer(ctx context.Context, buyerID string) error
}

// ProductSvcFacade manages the product catalog and stock levels.
type ProductSvcFacade interface {
	CreateProduct(ctx context.Context, req dto.CreateProductRequest) (*domain.Product, error)
	GetProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, search string) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, req dto.UpdateProductRequest) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	AddStock(ctx context.Context, productID string, quantity int64) (*domain.Product, error)
	RemoveStock(ctx context.Context, productID string, quantity int64) (*domain.Product, error)
}

// LedgerSvcFacade moves money in and out of party balances. Every movement
// is recorded as a transaction.
type LedgerSvcFacade interface {
	Deposit(ctx context.Context, ref domain.PartyRef, amount decimal.Decimal) (*domain.BalanceChange, error)
	// Withdraw rejects amounts exceeding the current balance.
	Withdraw(ctx context.Context, ref domain.PartyRef, amount decimal.Decimal) (*domain.BalanceChange, error)
}

// BatchSvcFacade manages settlement batches and their buy-backs and discounts.
type BatchSvcFacade interface {
	// StartBatch opens a new batch for the customer, completing any batch
	// still Active.
	StartBatch(ctx context.Context, customerID string) (*domain.Batch, error)
	GetBatchByID(ctx context.Context, batchID string) (*domain.Batch, error)
	ListBatchesForCustomer(ctx context.Context, customerID string) ([]domain.Batch, error)
	// BuyBackAndEndBatch settles the batch: credits the customer with
	// weight * pricePerKg and marks the batch Completed.
	BuyBackAndEndBatch(ctx context.Context, batchID string, req dto.BuyBackRequest) (*domain.BalanceChange, error)
	// BuyFromCustomer records a buy-back against the customer's Active batch
	// without closing it.
	BuyFromCustomer(ctx context.Context, req dto.CustomerBuyBackRequest) (*domain.BalanceChange, error)
	AddDiscount(ctx context.Context, batchID string, req dto.AddDiscountRequest) (*domain.Batch, error)
	RemoveDiscount(ctx context.Context, batchID, discountID string) (*domain.Batch, error)
}

// SaleSvcFacade processes catalog and wholesale sales.
type SaleSvcFacade interface {
	CreateSale(ctx context.Context, req dto.CreateSaleRequest) (*domain.Sale, error)
	CreateWholesaleSale(ctx context.Context, req dto.CreateWholesaleSaleRequest) (*domain.Transaction, error)
	ListSales(ctx context.Context) ([]domain.Sale, error)
}

// ReportSvcFacade serves the read-only reporting surface.
type ReportSvcFacade interface {
	SalesReport(ctx context.Context, start, end time.Time) (*dto.SalesReportResponse, error)
	BatchReport(ctx context.Context, batchID string) (*dto.BatchReportResponse, error)
	Dashboard(ctx context.Context) (*dto.DashboardResponse, error)
	ListTransactions(ctx context.Context, page int) (*dto.ListTransactionsResponse, error)
	ListBatchTransactions(ctx context.Context, batchID string, page int, day *time.Time) (*dto.BatchTransactionsResponse, error)
	ListBuyerTransactions(ctx context.Context, buyerID string, page int) (*dto.ListTransactionsResponse, error)
}

// UserSvcFacade manages operator accounts.
type UserSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	// Authenticate verifies credentials and returns the user on success.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
}

// TokenSvcFacade issues access tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(user *domain.User) (string, time.Time, error)
}

// ServiceContainer bundles every service the HTTP layer needs.
type ServiceContainer struct {
	Customer CustomerSvcFacade
	Buyer    BuyerSvcFacade
	Product  ProductSvcFacade
	Ledger   LedgerSvcFacade
	Batch    BatchSvcFacade
	Sale     SaleSvcFacade
	Report   ReportSvcFacade
	User     UserSvcFacade
	Token    TokenSvcFacade
}

// Package repositories defines the persistence contracts the core services
// depend on. Implementations live under internal/repositories.
package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
)

// CustomerRepositoryFacade persists retail customers.
type CustomerRepositoryFacade interface {
	SaveCustomer(ctx context.Context, customer domain.Customer) error
	FindCustomerByID(ctx context.Context, customerID string) (*domain.Customer, error)
	// ListCustomers returns customers newest first, optionally filtered by a
	// case-insensitive substring match on name or phone.
	ListCustomers(ctx context.Context, search string) ([]domain.Customer, error)
	UpdateCustomer(ctx context.Context, customer domain.Customer) error
	DeleteCustomer(ctx context.Context, customerID string) error
}

// BuyerRepositoryFacade persists wholesale buyers.
type BuyerRepositoryFacade interface {
	SaveBuyer(ctx context.Context, buyer domain.WholesaleBuyer) error
	FindBuyerByID(ctx context.Context, buyerID string) (*domain.WholesaleBuyer, error)
	// ListBuyers returns buyers ordered by name, optionally filtered on
	// name, business name or phone.
	ListBuyers(ctx context.Context, search string) ([]domain.WholesaleBuyer, error)
	UpdateBuyer(ctx context.Context, buyer domain.WholesaleBuyer) error
	DeleteBuyer(ctx context.Context, buyerID string) error
}

// ProductRepositoryFacade persists catalog products and their stock levels.
type ProductRepositoryFacade interface {
	SaveProduct(ctx context.Context, product domain.Product) error
	FindProductByID(ctx context.Context, productID string) (*domain.Product, error)
	ListProducts(ctx context.Context, search string) ([]domain.Product, error)
	UpdateProduct(ctx context.Context, product domain.Product) error
	DeleteProduct(ctx context.Context, productID string) error
	// AdjustStock applies a signed quantity delta and appends the given
	// stock transaction in one database transaction. Negative deltas are
	// rejected with ErrInsufficientStock when they would take the quantity
	// below zero.
	AdjustStock(ctx context.Context, productID string, delta int64, txn domain.Transaction) (*domain.Product, error)
}

// LedgerRepositoryFacade is the single write path for party balances and the
// read surface of the transaction log.
type LedgerRepositoryFacade interface {
	// ApplyBalanceChange locks the party row, optionally enforces the
	// non-negative floor, updates the denormalized balance and appends the
	// transaction, all in one database transaction. The returned change
	// carries the committed balance snapshots.
	ApplyBalanceChange(ctx context.Context, ref domain.PartyRef, delta decimal.Decimal, enforceFloor bool, txn domain.Transaction) (*domain.BalanceChange, error)

	ListTransactions(ctx context.Context, page, limit int) ([]domain.Transaction, int64, error)
	ListTransactionsByBuyer(ctx context.Context, buyerID string, page, limit int) ([]domain.Transaction, int64, error)
	// ListTransactionsByBatch optionally narrows to a single calendar day.
	ListTransactionsByBatch(ctx context.Context, batchID string, page, limit int, day *time.Time) ([]domain.Transaction, int64, error)
	// FindTransactionsByBatchAndType returns matching entries oldest first.
	FindTransactionsByBatchAndType(ctx context.Context, batchID string, txnType domain.TransactionType) ([]domain.Transaction, error)
	FindTransactionsByBatch(ctx context.Context, batchID string) ([]domain.Transaction, error)
	// FindSalesInRange returns SALE transactions within [start, end] newest first.
	FindSalesInRange(ctx context.Context, start, end time.Time) ([]domain.Transaction, error)
}

// BatchRepositoryFacade persists settlement batches.
type BatchRepositoryFacade interface {
	// OpenBatch completes any Active batch for the customer and creates the
	// next one (dense numbering, balance snapshots) in one database
	// transaction.
	OpenBatch(ctx context.Context, customerID string, now time.Time) (*domain.Batch, error)
	FindBatchByID(ctx context.Context, batchID string) (*domain.Batch, error)
	FindActiveBatchByCustomer(ctx context.Context, customerID string) (*domain.Batch, error)
	// ListBatchesByCustomer returns batches ordered by start date descending.
	ListBatchesByCustomer(ctx context.Context, customerID string) ([]domain.Batch, error)
	// SettleBuyBack credits the customer, completes the batch with the
	// post-credit ending balance and appends the BUY_BACK transaction in one
	// database transaction. Fails with ErrNotFound when the batch is not
	// Active.
	SettleBuyBack(ctx context.Context, batchID string, delta decimal.Decimal, txn domain.Transaction) (*domain.BalanceChange, error)
	// AddDiscount appends a discount to an Active batch, credits the
	// customer's balance and records the DISCOUNT transaction atomically.
	AddDiscount(ctx context.Context, batchID string, discount domain.Discount, txn domain.Transaction) (*domain.Batch, error)
	// RemoveDiscount deletes the discount, debits the balance back and
	// records the DISCOUNT_REMOVAL transaction atomically.
	RemoveDiscount(ctx context.Context, batchID, discountID string, txn domain.Transaction) (*domain.Batch, error)
}

// SaleRepositoryFacade persists sales atomically with their side effects.
type SaleRepositoryFacade interface {
	// CreateSale commits the sale, its stock decrements, the optional party
	// balance delta and the audit transaction as one database transaction.
	// Stock decrements are guarded: any shortfall aborts the whole sale with
	// ErrInsufficientStock.
	CreateSale(ctx context.Context, sale domain.Sale, txn domain.Transaction, stockDecrements map[string]int64, balanceDelta *decimal.Decimal) (*domain.Sale, *domain.Transaction, error)
	ListSales(ctx context.Context) ([]domain.Sale, error)
}

// UserRepositoryFacade persists operator accounts.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// RepositoryProvider bundles every repository the service layer needs.
type RepositoryProvider struct {
	CustomerRepo  CustomerRepositoryFacade
	BuyerRepo     BuyerRepositoryFacade
	ProductRepo   ProductRepositoryFacade
	LedgerRepo    LedgerRepositoryFacade
	BatchRepo     BatchRepositoryFacade
	SaleRepo      SaleRepositoryFacade
	UserRepo      UserRepositoryFacade
	ReportingRepo ReportingRepositoryFacade
}

// ReportingRepositoryFacade serves the aggregate reads the dashboard needs.
type ReportingRepositoryFacade interface {
	SalesTotalInRange(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	CountCustomersWithNegativeBalance(ctx context.Context) (int64, error)
	CountLowStockProducts(ctx context.Context, threshold int64) (int64, error)
	FindRecentTransactions(ctx context.Context, limit int) ([]domain.Transaction, error)
}

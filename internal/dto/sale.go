package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
)

// SaleItemRequest is one requested line of a catalog sale. The unit price is
// never client-supplied; it is read from the catalog at sale time.
type SaleItemRequest struct {
	ProductID string `json:"productID" binding:"required"`
	Quantity  int64  `json:"quantity" binding:"required,gt=0"`
}

// CreateSaleRequest creates a catalog sale for a registered customer or an
// anonymous walk-in ("random") customer.
type CreateSaleRequest struct {
	CustomerID         string            `json:"customerID"`
	Items              []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	IsCashPayment      bool              `json:"isCashPayment"`
	IsRandomCustomer   bool              `json:"isRandomCustomer"`
	RandomCustomerName string            `json:"randomCustomerName"`
}

// CustomItemRequest is one buyer-priced line of a wholesale sale.
type CustomItemRequest struct {
	Name     string          `json:"name" binding:"required"`
	Quantity int64           `json:"quantity"`
	Weight   decimal.Decimal `json:"weight"`
	Price    decimal.Decimal `json:"price" binding:"required"`
}

// CreateWholesaleSaleRequest creates a custom-priced sale for a wholesale buyer.
type CreateWholesaleSaleRequest struct {
	BuyerID       string              `json:"buyerID" binding:"required"`
	Items         []CustomItemRequest `json:"items" binding:"required,min=1,dive"`
	IsCashPayment bool                `json:"isCashPayment"`
}

// SaleItemResponse mirrors domain.SaleItem.
type SaleItemResponse struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

// SaleResponse mirrors domain.Sale for API output.
type SaleResponse struct {
	SaleID      string             `json:"saleID"`
	CustomerID  *string            `json:"customerID,omitempty"`
	BuyerID     *string            `json:"buyerID,omitempty"`
	BatchID     *string            `json:"batchID,omitempty"`
	Items       []SaleItemResponse `json:"items"`
	TotalAmount decimal.Decimal    `json:"totalAmount"`
	CreatedAt   time.Time          `json:"createdAt"`
}

// ToSaleResponse converts a domain.Sale to its response DTO.
func ToSaleResponse(s *domain.Sale) SaleResponse {
	items := make([]SaleItemResponse, len(s.Items))
	for i, it := range s.Items {
		items[i] = SaleItemResponse{
			ProductID: it.ProductID,
			Name:      it.Name,
			Quantity:  it.Quantity,
			Price:     it.Price,
		}
	}
	return SaleResponse{
		SaleID:      s.SaleID,
		CustomerID:  s.CustomerID,
		BuyerID:     s.BuyerID,
		BatchID:     s.BatchID,
		Items:       items,
		TotalAmount: s.TotalAmount,
		CreatedAt:   s.CreatedAt,
	}
}

// ToSaleResponses converts a slice of sales.
func ToSaleResponses(sales []domain.Sale) []SaleResponse {
	res := make([]SaleResponse, len(sales))
	for i := range sales {
		res[i] = ToSaleResponse(&sales[i])
	}
	return res
}

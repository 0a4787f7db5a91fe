package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
)

// CreateProductRequest defines the data needed to add a catalog product.
type CreateProductRequest struct {
	Name     string          `json:"name" binding:"required"`
	SKU      string          `json:"sku" binding:"required"`
	Price    decimal.Decimal `json:"price" binding:"required"`
	Quantity int64           `json:"quantity" binding:"gte=0"`
}

// UpdateProductRequest carries optional field updates. Stock changes go
// through the stock endpoints, not here.
type UpdateProductRequest struct {
	Name  *string          `json:"name"`
	SKU   *string          `json:"sku"`
	Price *decimal.Decimal `json:"price"`
}

// StockAdjustRequest carries a positive quantity for stock add/remove.
type StockAdjustRequest struct {
	Quantity int64 `json:"quantity" binding:"required,gt=0"`
}

// ProductResponse mirrors domain.Product for API output.
type ProductResponse struct {
	ProductID string          `json:"productID"`
	Name      string          `json:"name"`
	SKU       string          `json:"sku"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int64           `json:"quantity"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}

// ToProductResponse converts a domain.Product to its response DTO.
func ToProductResponse(p *domain.Product) ProductResponse {
	return ProductResponse{
		ProductID: p.ProductID,
		Name:      p.Name,
		SKU:       p.SKU,
		Price:     p.Price,
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// ToProductResponses converts a slice of products.
func ToProductResponses(products []domain.Product) []ProductResponse {
	res := make([]ProductResponse, len(products))
	for i := range products {
		res[i] = ToProductResponse(&products[i])
	}
	return res
}

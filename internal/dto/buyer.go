package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
)

// CreateBuyerRequest defines the data needed to register a wholesale buyer.
type CreateBuyerRequest struct {
	Name         string `json:"name" binding:"required"`
	BusinessName string `json:"businessName"`
	Phone        string `json:"phone" binding:"required"`
	Address      string `json:"address"`
}

// UpdateBuyerRequest carries optional field updates.
type UpdateBuyerRequest struct {
	Name         *string `json:"name"`
	BusinessName *string `json:"businessName"`
	Phone        *string `json:"phone"`
	Address      *string `json:"address"`
}

// BuyerResponse mirrors domain.WholesaleBuyer for API output.
type BuyerResponse struct {
	BuyerID      string          `json:"buyerID"`
	Name         string          `json:"name"`
	BusinessName string          `json:"businessName"`
	Phone        string          `json:"phone"`
	Address      string          `json:"address"`
	Balance      decimal.Decimal `json:"balance"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ToBuyerResponse converts a domain.WholesaleBuyer to its response DTO.
func ToBuyerResponse(b *domain.WholesaleBuyer) BuyerResponse {
	return BuyerResponse{
		BuyerID:      b.BuyerID,
		Name:         b.Name,
		BusinessName: b.BusinessName,
		Phone:        b.Phone,
		Address:      b.Address,
		Balance:      b.Balance,
		CreatedAt:    b.CreatedAt,
		UpdatedAt:    b.UpdatedAt,
	}
}

// ToBuyerResponses converts a slice of buyers.
func ToBuyerResponses(buyers []domain.WholesaleBuyer) []BuyerResponse {
	res := make([]BuyerResponse, len(buyers))
	for i := range buyers {
		res[i] = ToBuyerResponse(&buyers[i])
	}
	return res
}

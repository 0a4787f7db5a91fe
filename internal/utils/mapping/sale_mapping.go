package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	"github.com/zahintraders/poultry_trading_app/internal/models"
)

// ToModelSale converts a domain sale to its persistence model.
func ToModelSale(s domain.Sale) (models.Sale, error) {
	items, err := json.Marshal(s.Items)
	if err != nil {
		return models.Sale{}, fmt.Errorf("failed to encode sale items: %w", err)
	}
	return models.Sale{
		SaleID:      s.SaleID,
		CustomerID:  s.CustomerID,
		BuyerID:     s.BuyerID,
		BatchID:     s.BatchID,
		Items:       items,
		TotalAmount: s.TotalAmount,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}, nil
}

// ToDomainSale converts a persistence model back to the domain form.
func ToDomainSale(m models.Sale) (domain.Sale, error) {
	s := domain.Sale{
		SaleID:      m.SaleID,
		CustomerID:  m.CustomerID,
		BuyerID:     m.BuyerID,
		BatchID:     m.BatchID,
		Items:       []domain.SaleItem{},
		TotalAmount: m.TotalAmount,
		Timestamps:  domain.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
	}
	if len(m.Items) > 0 {
		if err := json.Unmarshal(m.Items, &s.Items); err != nil {
			return domain.Sale{}, fmt.Errorf("failed to decode sale items: %w", err)
		}
	}
	return s, nil
}

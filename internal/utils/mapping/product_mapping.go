package mapping

import (
	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	"github.com/zahintraders/poultry_trading_app/internal/models"
)

// ToDomainProduct converts a persistence model to the domain representation.
func ToDomainProduct(m models.Product) domain.Product {
	return domain.Product{
		ProductID:  m.ProductID,
		Name:       m.Name,
		SKU:        m.SKU,
		Price:      m.Price,
		Quantity:   m.Quantity,
		Timestamps: domain.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
	}
}

// ToModelProduct converts a domain product to its persistence model.
func ToModelProduct(p domain.Product) models.Product {
	return models.Product{
		ProductID: p.ProductID,
		Name:      p.Name,
		SKU:       p.SKU,
		Price:     p.Price,
		Quantity:  p.Quantity,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

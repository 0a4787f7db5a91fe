package mapping

import (
	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	"github.com/zahintraders/poultry_trading_app/internal/models"
)

// ToDomainBatch converts a batch model and its discount rows to the domain form.
func ToDomainBatch(m models.Batch, discounts []models.BatchDiscount) domain.Batch {
	b := domain.Batch{
		BatchID:         m.BatchID,
		CustomerID:      m.CustomerID,
		BatchNumber:     m.BatchNumber,
		Status:          domain.BatchStatus(m.Status),
		StartingBalance: m.StartingBalance,
		EndingBalance:   m.EndingBalance,
		StartDate:       m.StartDate,
		EndDate:         m.EndDate,
		Discounts:       make([]domain.Discount, len(discounts)),
		Timestamps:      domain.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
	}
	for i, d := range discounts {
		b.Discounts[i] = domain.Discount{
			DiscountID:  d.DiscountID,
			Description: d.Description,
			Amount:      d.Amount,
			CreatedAt:   d.CreatedAt,
		}
	}
	return b
}

// ToModelBatch converts a domain batch to its persistence model (discount
// rows are persisted separately).
func ToModelBatch(b domain.Batch) models.Batch {
	return models.Batch{
		BatchID:         b.BatchID,
		CustomerID:      b.CustomerID,
		BatchNumber:     b.BatchNumber,
		Status:          string(b.Status),
		StartingBalance: b.StartingBalance,
		EndingBalance:   b.EndingBalance,
		StartDate:       b.StartDate,
		EndDate:         b.EndDate,
		CreatedAt:       b.CreatedAt,
		UpdatedAt:       b.UpdatedAt,
	}
}

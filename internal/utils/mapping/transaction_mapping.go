package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	"github.com/zahintraders/poultry_trading_app/internal/models"
)

// ToModelTransaction converts a domain transaction to its persistence model,
// JSON-encoding the item payloads.
func ToModelTransaction(t domain.Transaction) (models.Transaction, error) {
	m := models.Transaction{
		TransactionID:      t.TransactionID,
		Type:               string(t.Type),
		Notes:              t.Notes,
		PaymentMethod:      string(t.PaymentMethod),
		CustomerID:         t.CustomerID,
		BuyerID:            t.BuyerID,
		ProductID:          t.ProductID,
		BatchID:            t.BatchID,
		RandomCustomerName: t.RandomCustomerName,
		ReferenceName:      t.ReferenceName,
		Amount:             t.Amount,
		BalanceBefore:      t.BalanceBefore,
		BalanceAfter:       t.BalanceAfter,
		QuantityChange:     t.QuantityChange,
		BuyBackQuantity:    t.BuyBackQuantity,
		BuyBackWeight:      t.BuyBackWeight,
		BuyBackPricePerKg:  t.BuyBackPricePerKg,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	}
	if len(t.Items) > 0 {
		data, err := json.Marshal(t.Items)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("failed to encode transaction items: %w", err)
		}
		m.Items = data
	}
	if len(t.CustomItems) > 0 {
		data, err := json.Marshal(t.CustomItems)
		if err != nil {
			return models.Transaction{}, fmt.Errorf("failed to encode transaction custom items: %w", err)
		}
		m.CustomItems = data
	}
	return m, nil
}

// ToDomainTransaction converts a persistence model back to the domain form,
// decoding any item payloads.
func ToDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	t := domain.Transaction{
		TransactionID:      m.TransactionID,
		Type:               domain.TransactionType(m.Type),
		Notes:              m.Notes,
		PaymentMethod:      domain.PaymentMethod(m.PaymentMethod),
		CustomerID:         m.CustomerID,
		BuyerID:            m.BuyerID,
		ProductID:          m.ProductID,
		BatchID:            m.BatchID,
		RandomCustomerName: m.RandomCustomerName,
		ReferenceName:      m.ReferenceName,
		Amount:             m.Amount,
		BalanceBefore:      m.BalanceBefore,
		BalanceAfter:       m.BalanceAfter,
		QuantityChange:     m.QuantityChange,
		BuyBackQuantity:    m.BuyBackQuantity,
		BuyBackWeight:      m.BuyBackWeight,
		BuyBackPricePerKg:  m.BuyBackPricePerKg,
		Timestamps:         domain.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
	}
	if len(m.Items) > 0 {
		if err := json.Unmarshal(m.Items, &t.Items); err != nil {
			return domain.Transaction{}, fmt.Errorf("failed to decode transaction items: %w", err)
		}
	}
	if len(m.CustomItems) > 0 {
		if err := json.Unmarshal(m.CustomItems, &t.CustomItems); err != nil {
			return domain.Transaction{}, fmt.Errorf("failed to decode transaction custom items: %w", err)
		}
	}
	return t, nil
}

// ToDomainTransactionSlice converts a slice of transaction models.
func ToDomainTransactionSlice(ms []models.Transaction) ([]domain.Transaction, error) {
	out := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		t, err := ToDomainTransaction(m)
		if err != nil {
			return nil, err
		}
		out[i] = t
	}
	return out, nil
}

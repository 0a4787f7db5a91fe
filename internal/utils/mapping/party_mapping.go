package mapping

import (
	"github.com/zahintraders/poultry_trading_app/internal/core/domain"
	"github.com/zahintraders/poultry_trading_app/internal/models"
)

// ToDomainCustomer converts a persistence model to the domain representation.
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID: m.CustomerID,
		Name:       m.Name,
		Phone:      m.Phone,
		Email:      m.Email,
		Address:    m.Address,
		Balance:    m.Balance,
		Timestamps: domain.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
	}
}

// ToModelCustomer converts a domain customer to its persistence model.
func ToModelCustomer(c domain.Customer) models.Customer {
	return models.Customer{
		CustomerID: c.CustomerID,
		Name:       c.Name,
		Phone:      c.Phone,
		Email:      c.Email,
		Address:    c.Address,
		Balance:    c.Balance,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToDomainBuyer converts a persistence model to the domain representation.
func ToDomainBuyer(m models.WholesaleBuyer) domain.WholesaleBuyer {
	return domain.WholesaleBuyer{
		BuyerID:      m.BuyerID,
		Name:         m.Name,
		BusinessName: m.BusinessName,
		Phone:        m.Phone,
		Address:      m.Address,
		Balance:      m.Balance,
		Timestamps:   domain.Timestamps{CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt},
	}
}

// ToModelBuyer converts a domain buyer to its persistence model.
func ToModelBuyer(b domain.WholesaleBuyer) models.WholesaleBuyer {
	return models.WholesaleBuyer{
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

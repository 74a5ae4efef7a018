package mapping

import (
	"github.com/meypanhawath/corebank/internal/core/domain"
	"github.com/meypanhawath/corebank/internal/models"
)

// ToDomainCustomer converts a model Customer to a domain Customer.
func ToDomainCustomer(m models.Customer) domain.Customer {
	return domain.Customer{
		CustomerID: m.CustomerID,
		FullName:   m.FullName,
		PinHash:    m.PinHash,
		AuditFields: domain.AuditFields{
			CreatedAt:     m.CreatedAt,
			CreatedBy:     m.CreatedBy,
			LastUpdatedAt: m.LastUpdatedAt,
			LastUpdatedBy: m.LastUpdatedBy,
		},
	}
}

// ToModelCustomer converts a domain Customer to a model Customer.
func ToModelCustomer(d domain.Customer) models.Customer {
	return models.Customer{
		CustomerID:    d.CustomerID,
		FullName:      d.FullName,
		PinHash:       d.PinHash,
		CreatedAt:     d.CreatedAt,
		CreatedBy:     d.CreatedBy,
		LastUpdatedAt: d.LastUpdatedAt,
		LastUpdatedBy: d.LastUpdatedBy,
	}
}

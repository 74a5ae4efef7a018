package repositories

import (
	"context"

	"github.com/meypanhawath/corebank/internal/core/domain"
)

// CustomerRepository defines read operations for customer data
type CustomerRepository interface {
	// FindCustomerByID retrieves a customer by their unique identifier.
	FindCustomerByID(ctx context.Context, customerID int64) (*domain.Customer, error)
}

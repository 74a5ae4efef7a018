package repositories

import (
	"context"

	"github.com/meypanhawath/corebank/internal/core/domain"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error)

	// FindAccountByNo retrieves an account by its customer-facing account number.
	FindAccountByNo(ctx context.Context, accountNo string) (*domain.Account, error)

	// ListAccountsByCustomer retrieves every account owned by a customer,
	// including frozen and soft-deleted ones.
	ListAccountsByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error)

	// AccountNoExists reports whether an account number is already allocated.
	AccountNoExists(ctx context.Context, accountNo string) (bool, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account. When opening is non-nil it is
	// journaled as the opening deposit and the account balance reflects it,
	// all in the same unit of work. The stored account is returned with its
	// generated identifier.
	SaveAccount(ctx context.Context, account domain.Account, opening *domain.Transaction) (*domain.Account, error)

	// UpdateAccount updates an existing account's mutable fields
	// (name, frozen flag, deletion flag, audit columns).
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountRepository combines all account-related repository interfaces.
type AccountRepository interface {
	AccountReader
	AccountWriter
}

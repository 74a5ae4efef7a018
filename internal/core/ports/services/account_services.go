package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meypanhawath/corebank/internal/core/domain"
)

// OpenAccountParams carries everything needed to open an account.
type OpenAccountParams struct {
	CustomerID     int64
	AccountType    domain.AccountType
	Currency       domain.Currency
	InitialDeposit decimal.Decimal
	// MaturityDate is required for Fixed accounts and must lie strictly in
	// the future.
	MaturityDate *time.Time
	// Name overrides the generated account name when non-empty.
	Name string
}

// AccountTypeAvailability tells whether a customer may still open an account
// of a given type and currency, given the per-customer quotas.
type AccountTypeAvailability struct {
	AccountType domain.AccountType
	Currency    domain.Currency
	Available   bool
	Reason      string
}

// AccountService defines account lifecycle operations.
type AccountService interface {
	// OpenAccount creates a new account for the customer, allocating an
	// account number and journaling the initial deposit when present.
	OpenAccount(ctx context.Context, params OpenAccountParams) (*domain.Account, error)

	// GetAccountByID retrieves one of the customer's accounts by identifier.
	GetAccountByID(ctx context.Context, customerID int64, accountID int64) (*domain.Account, error)

	// GetAccountByNo retrieves one of the customer's accounts by account number.
	GetAccountByNo(ctx context.Context, customerID int64, accountNo string) (*domain.Account, error)

	// ListAccounts retrieves every account owned by the customer.
	ListAccounts(ctx context.Context, customerID int64) ([]domain.Account, error)

	// ListActiveAccounts retrieves the customer's accounts that are neither
	// frozen nor closed.
	ListActiveAccounts(ctx context.Context, customerID int64) ([]domain.Account, error)

	// SetFrozen freezes or unfreezes one of the customer's accounts,
	// addressed by account number. Closed accounts are rejected.
	SetFrozen(ctx context.Context, customerID int64, accountNo string, frozen bool) (*domain.Account, error)

	// CloseAccount soft-deletes an empty account after PIN confirmation.
	CloseAccount(ctx context.Context, customerID int64, accountID int64, pin string) error

	// AvailableAccountTypes reports which account type and currency
	// combinations the customer can still open.
	AvailableAccountTypes(ctx context.Context, customerID int64) ([]AccountTypeAvailability, error)
}

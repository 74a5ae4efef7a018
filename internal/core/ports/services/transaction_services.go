package services

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/meypanhawath/corebank/internal/core/domain"
)

// DepositParams carries a deposit request. Amount is expressed in Currency
// and converted to the account's currency when they differ.
type DepositParams struct {
	AccountID int64
	Amount    decimal.Decimal
	Currency  domain.Currency
	Remark    string
}

// WithdrawParams carries a withdrawal request.
type WithdrawParams struct {
	AccountID int64
	Amount    decimal.Decimal
	Currency  domain.Currency
	Remark    string
	Pin       string
}

// TransferParams carries a transfer request. Receiver is a 9-digit account
// number or a numeric account id, so transfers work across customers.
type TransferParams struct {
	SenderID int64
	Receiver string
	Amount   decimal.Decimal
	Currency domain.Currency
	Remark   string
	Pin      string
}

// BillPaymentParams carries a bill payment request.
type BillPaymentParams struct {
	SenderID       int64
	BillCategoryID int64
	Amount         decimal.Decimal
	Currency       domain.Currency
	Remark         string
	Pin            string
}

// TransactionService defines the money movement operations.
type TransactionService interface {
	// Deposit credits an account.
	Deposit(ctx context.Context, customerID int64, params DepositParams) (*domain.Transaction, error)

	// Withdraw debits an account after PIN confirmation.
	Withdraw(ctx context.Context, customerID int64, params WithdrawParams) (*domain.Transaction, error)

	// Transfer moves money between two accounts atomically.
	Transfer(ctx context.Context, customerID int64, params TransferParams) (*domain.Transaction, error)

	// PayBill debits an account in favour of a bill category.
	PayBill(ctx context.Context, customerID int64, params BillPaymentParams) (*domain.Transaction, error)

	// GetTransaction retrieves a transaction one of the customer's accounts
	// took part in.
	GetTransaction(ctx context.Context, customerID int64, transactionID int64) (*domain.Transaction, error)

	// ListTransactions retrieves an account's transaction history, newest first.
	ListTransactions(ctx context.Context, customerID int64, accountID int64, limit int, offset int) ([]domain.Transaction, error)

	// ListCustomerTransactions retrieves the history across every account the
	// customer owns, newest first.
	ListCustomerTransactions(ctx context.Context, customerID int64, limit int, offset int) ([]domain.Transaction, error)
}

// DailyLimit summarises an account's daily outgoing allowance.
type DailyLimit struct {
	Currency  domain.Currency
	Limit     decimal.Decimal
	Used      decimal.Decimal
	Remaining decimal.Decimal
}

// AccountLimit pairs an account with its daily allowance, for the
// per-customer limits summary. Limit is nil for uncapped account types.
type AccountLimit struct {
	AccountID   int64
	AccountNo   string
	AccountType domain.AccountType
	Limit       *DailyLimit
}

// LimitService answers questions about daily transaction limits.
type LimitService interface {
	// DailyRemaining reports how much of today's outgoing allowance is left
	// for one of the customer's accounts. Accounts without a cap return a
	// nil summary.
	DailyRemaining(ctx context.Context, customerID int64, accountID int64) (*DailyLimit, error)

	// LimitsSummary reports the daily allowance of every account the
	// customer owns.
	LimitsSummary(ctx context.Context, customerID int64) ([]AccountLimit, error)
}

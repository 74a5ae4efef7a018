package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meypanhawath/corebank/internal/core/domain"
)

// MovementGuard re-validates one debited account at commit time, after the
// store has taken exclusive ownership of every touched account. Amounts seen
// during the service-layer pre-checks may be stale by then.
type MovementGuard struct {
	// AccountID is the debited account the guard applies to.
	AccountID int64

	// Floor is the minimum balance the account may reach, normally the
	// negated over-limit. The movement fails when the resulting balance
	// would drop below it.
	Floor decimal.Decimal

	// DailyCap, when non-nil, bounds the sum of the account's successful
	// outgoing movements inside [DayStart, DayEnd) plus this movement.
	DailyCap *decimal.Decimal
	DayStart time.Time
	DayEnd   time.Time
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction by its identifier.
	FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error)

	// ListTransactionsByAccount retrieves transactions where the account is
	// sender or receiver, newest first.
	ListTransactionsByAccount(ctx context.Context, accountID int64, limit int, offset int) ([]domain.Transaction, error)

	// ListTransactionsByCustomer retrieves transactions touching any of the
	// customer's accounts, newest first.
	ListTransactionsByCustomer(ctx context.Context, customerID int64, limit int, offset int) ([]domain.Transaction, error)

	// SumOutgoing totals the successful outgoing movements (everything but
	// deposits) sent from an account within [from, to).
	SumOutgoing(ctx context.Context, accountID int64, from time.Time, to time.Time) (decimal.Decimal, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction atomically journals one movement: it locks every
	// account in changes, rechecks that each is active, applies the guards,
	// adds each delta to the matching balance and inserts the transaction
	// row. Either everything is persisted or nothing is. The stored
	// transaction is returned with its generated identifier.
	SaveTransaction(ctx context.Context, txn domain.Transaction, changes map[int64]decimal.Decimal, guards []MovementGuard) (*domain.Transaction, error)
}

// TransactionRepository combines all transaction-related repository interfaces.
type TransactionRepository interface {
	TransactionReader
	TransactionWriter
}

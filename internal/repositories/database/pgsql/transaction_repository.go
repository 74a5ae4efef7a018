package pgsql

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/meypanhawath/corebank/internal/apperrors"
	"github.com/meypanhawath/corebank/internal/core/domain"
	portsrepo "github.com/meypanhawath/corebank/internal/core/ports/repositories"
	"github.com/meypanhawath/corebank/internal/models"
	"github.com/meypanhawath/corebank/internal/utils/mapping"
)

const transactionColumns = `transaction_id, sender_id, receiver_id, transaction_type_id, bill_category_id, amount, status, remark, is_deleted, created_at`

type PgxTransactionRepository struct {
	BaseRepository
	retries int
}

// newPgxTransactionRepository creates a new repository for journal data.
// retries bounds the re-attempts on serialization conflicts.
func newPgxTransactionRepository(pool *pgxpool.Pool, retries int) *PgxTransactionRepository {
	if retries < 0 {
		retries = 0
	}
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}, retries: retries}
}

var _ portsrepo.TransactionRepository = (*PgxTransactionRepository)(nil)

// SaveTransaction journals one movement atomically: every touched account is
// locked FOR UPDATE in ascending id order, the guards are re-evaluated
// against the locked balances, then the balance updates and the journal row
// commit together. Serialization conflicts are retried a bounded number of
// times; business-rule rejections are not.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, changes map[int64]decimal.Decimal, guards []portsrepo.MovementGuard) (*domain.Transaction, error) {
	var lastErr error
	for attempt := 0; attempt <= r.retries; attempt++ {
		saved, err := r.saveTransactionOnce(ctx, txn, changes, guards)
		if err == nil {
			return saved, nil
		}
		if !isRetryableTxError(err) {
			return nil, err
		}
		lastErr = err
	}
	return nil, apperrors.NewAppError(500, "movement failed after repeated conflicts", fmt.Errorf("%w: %w", apperrors.ErrRetryExhausted, lastErr))
}

func (r *PgxTransactionRepository) saveTransactionOnce(ctx context.Context, txn domain.Transaction, changes map[int64]decimal.Decimal, guards []portsrepo.MovementGuard) (*domain.Transaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	// Fixed global lock order prevents deadlocks between opposing transfers
	// on the same pair of accounts.
	accountIDs := make([]int64, 0, len(changes))
	for id := range changes {
		accountIDs = append(accountIDs, id)
	}
	sort.Slice(accountIDs, func(i, j int) bool { return accountIDs[i] < accountIDs[j] })

	locked := make(map[int64]*domain.Account, len(accountIDs))
	lockQuery := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1 FOR UPDATE;`
	for _, id := range accountIDs {
		account, err := scanAccount(tx.QueryRow(ctx, lockQuery, id))
		if err != nil {
			return nil, err
		}
		if !account.Active() {
			return nil, fmt.Errorf("%w: account %d is %s", apperrors.ErrAccountState, id, account.Status())
		}
		locked[id] = account
	}

	for _, guard := range guards {
		account, ok := locked[guard.AccountID]
		if !ok {
			return nil, apperrors.NewAppError(500, fmt.Sprintf("guard references unlocked account %d", guard.AccountID), nil)
		}
		if account.Balance.Add(changes[guard.AccountID]).LessThan(guard.Floor) {
			return nil, fmt.Errorf("%w: balance %s cannot cover the movement", apperrors.ErrInsufficientBalance, account.Balance)
		}
		if guard.DailyCap != nil {
			used, err := r.sumOutgoingInTx(ctx, tx, guard.AccountID, guard.DayStart, guard.DayEnd)
			if err != nil {
				return nil, err
			}
			if used.Add(txn.Amount).GreaterThan(*guard.DailyCap) {
				remaining := guard.DailyCap.Sub(used)
				if remaining.IsNegative() {
					remaining = decimal.Zero
				}
				return nil, fmt.Errorf("%w: daily limit reached, %s remaining today", apperrors.ErrLimitExceeded, remaining)
			}
		}
	}

	updateQuery := `UPDATE accounts SET balance = balance + $1, last_updated_at = $2 WHERE account_id = $3;`
	for _, id := range accountIDs {
		if _, err := tx.Exec(ctx, updateQuery, changes[id], txn.CreatedAt, id); err != nil {
			return nil, apperrors.NewAppError(500, "failed to apply balance change", err)
		}
	}

	m := mapping.ToModelTransaction(txn)
	insertQuery := `
		INSERT INTO transactions (sender_id, receiver_id, transaction_type_id, bill_category_id, amount, status, remark, is_deleted, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING transaction_id;
	`
	err = tx.QueryRow(ctx, insertQuery,
		m.SenderID,
		m.ReceiverID,
		m.TransactionTypeID,
		m.BillCategoryID,
		m.Amount,
		m.Status,
		m.Remark,
		m.IsDeleted,
		m.CreatedAt,
	).Scan(&txn.TransactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to insert transaction", err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &txn, nil
}

const sumOutgoingQuery = `
	SELECT COALESCE(SUM(amount), 0)
	FROM transactions
	WHERE sender_id = $1
	  AND status = $2
	  AND is_deleted = FALSE
	  AND transaction_type_id <> $3
	  AND created_at >= $4
	  AND created_at < $5;
`

func (r *PgxTransactionRepository) sumOutgoingInTx(ctx context.Context, tx pgx.Tx, accountID int64, from time.Time, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := tx.QueryRow(ctx, sumOutgoingQuery,
		accountID, string(domain.Success), mapping.TransactionTypeID(domain.Deposit), from, to,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum outgoing transactions", err)
	}
	return total, nil
}

// SumOutgoing totals the successful outgoing movements sent from an account
// within [from, to). Deposits credit the sender account and are excluded.
func (r *PgxTransactionRepository) SumOutgoing(ctx context.Context, accountID int64, from time.Time, to time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, sumOutgoingQuery,
		accountID, string(domain.Success), mapping.TransactionTypeID(domain.Deposit), from, to,
	).Scan(&total)
	if err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to sum outgoing transactions", err)
	}
	return total, nil
}

func scanTransaction(row rowScanner) (*domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.SenderID,
		&m.ReceiverID,
		&m.TransactionTypeID,
		&m.BillCategoryID,
		&m.Amount,
		&m.Status,
		&m.Remark,
		&m.IsDeleted,
		&m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction not found")
		}
		return nil, apperrors.NewAppError(500, "failed to read transaction row", err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

// FindTransactionByID retrieves a transaction by its identifier.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID int64) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND is_deleted = FALSE;`
	return scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
}

// ListTransactionsByAccount retrieves transactions where the account is
// sender or receiver, newest first.
func (r *PgxTransactionRepository) ListTransactionsByAccount(ctx context.Context, accountID int64, limit int, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE (sender_id = $1 OR receiver_id = $1) AND is_deleted = FALSE
		ORDER BY created_at DESC, transaction_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, accountID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate transaction rows", err)
	}
	return txns, nil
}

// ListTransactionsByCustomer retrieves transactions touching any of the
// customer's accounts, newest first.
func (r *PgxTransactionRepository) ListTransactionsByCustomer(ctx context.Context, customerID int64, limit int, offset int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions t
		WHERE t.is_deleted = FALSE
		  AND EXISTS (
			SELECT 1 FROM accounts a
			WHERE a.customer_id = $1
			  AND (a.account_id = t.sender_id OR a.account_id = t.receiver_id)
		  )
		ORDER BY t.created_at DESC, t.transaction_id DESC
		LIMIT $2 OFFSET $3;
	`
	rows, err := r.Pool.Query(ctx, query, customerID, limit, offset)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list transactions", err)
	}
	defer rows.Close()

	var txns []domain.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txns = append(txns, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate transaction rows", err)
	}
	return txns, nil
}

package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/meypanhawath/corebank/internal/apperrors"
	"github.com/meypanhawath/corebank/internal/core/domain"
	portsrepo "github.com/meypanhawath/corebank/internal/core/ports/repositories"
	"github.com/meypanhawath/corebank/internal/models"
	"github.com/meypanhawath/corebank/internal/utils/mapping"
)

const accountColumns = `account_id, customer_id, account_no, account_name, currency, balance, over_limit, is_frozen, is_deleted, account_type_id, maturity_date, created_at, created_by, last_updated_at, last_updated_by`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.AccountRepository = (*PgxAccountRepository)(nil)

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAccount(row rowScanner) (*domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.CustomerID,
		&m.AccountNo,
		&m.Name,
		&m.Currency,
		&m.Balance,
		&m.OverLimit,
		&m.IsFrozen,
		&m.IsDeleted,
		&m.AccountTypeID,
		&m.MaturityDate,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account not found")
		}
		return nil, apperrors.NewAppError(500, "failed to read account row", err)
	}
	account := mapping.ToDomainAccount(m)
	return &account, nil
}

// SaveAccount inserts a new account and, when opening is non-nil, the
// opening deposit journal row, all in one database transaction.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account, opening *domain.Transaction) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	insertQuery := `
		INSERT INTO accounts (customer_id, account_no, account_name, currency, balance, over_limit, is_frozen, is_deleted, account_type_id, maturity_date, created_at, created_by, last_updated_at, last_updated_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		RETURNING account_id;
	`
	err = tx.QueryRow(ctx, insertQuery,
		m.CustomerID,
		m.AccountNo,
		m.Name,
		m.Currency,
		m.Balance,
		m.OverLimit,
		m.IsFrozen,
		m.IsDeleted,
		m.AccountTypeID,
		m.MaturityDate,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	).Scan(&account.AccountID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.NewAppError(409, "account number already allocated", apperrors.ErrDuplicate)
		}
		return nil, apperrors.NewAppError(500, "failed to insert account", err)
	}

	if opening != nil {
		opening.SenderID = account.AccountID
		openingModel := mapping.ToModelTransaction(*opening)
		openingQuery := `
			INSERT INTO transactions (sender_id, receiver_id, transaction_type_id, bill_category_id, amount, status, remark, is_deleted, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			RETURNING transaction_id;
		`
		err = tx.QueryRow(ctx, openingQuery,
			openingModel.SenderID,
			openingModel.ReceiverID,
			openingModel.TransactionTypeID,
			openingModel.BillCategoryID,
			openingModel.Amount,
			openingModel.Status,
			openingModel.Remark,
			openingModel.IsDeleted,
			openingModel.CreatedAt,
		).Scan(&opening.TransactionID)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to insert opening deposit", err)
		}
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return &account, nil
}

// FindAccountByID retrieves a specific account by its unique identifier.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID int64) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, accountID))
}

// FindAccountByNo retrieves an account by its customer-facing account number.
func (r *PgxAccountRepository) FindAccountByNo(ctx context.Context, accountNo string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_no = $1;`
	return scanAccount(r.Pool.QueryRow(ctx, query, accountNo))
}

// ListAccountsByCustomer retrieves every account owned by a customer.
func (r *PgxAccountRepository) ListAccountsByCustomer(ctx context.Context, customerID int64) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE customer_id = $1 ORDER BY account_id;`
	rows, err := r.Pool.Query(ctx, query, customerID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list accounts", err)
	}
	defer rows.Close()

	var accounts []domain.Account
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, *account)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed to iterate account rows", err)
	}
	return accounts, nil
}

// AccountNoExists reports whether an account number is already allocated.
func (r *PgxAccountRepository) AccountNoExists(ctx context.Context, accountNo string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM accounts WHERE account_no = $1);`
	if err := r.Pool.QueryRow(ctx, query, accountNo).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check account number", err)
	}
	return exists, nil
}

// UpdateAccount updates an existing account's mutable fields. The balance is
// deliberately untouched; it only moves through SaveTransaction.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	query := `
		UPDATE accounts
		SET account_name = $1, is_frozen = $2, is_deleted = $3, last_updated_at = $4, last_updated_by = $5
		WHERE account_id = $6;
	`
	tag, err := r.Pool.Exec(ctx, query,
		account.Name,
		account.IsFrozen,
		account.IsDeleted,
		account.LastUpdatedAt,
		account.LastUpdatedBy,
		account.AccountID,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update account", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account not found")
	}
	return nil
}

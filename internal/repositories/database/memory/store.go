// Package memory provides a mutex-guarded in-memory implementation of the
// repository ports, used by tests and by local development without Postgres.
// One store-wide mutex serializes every mutation, which trivially satisfies
// the per-account linearizability and deadlock-freedom requirements.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/meypanhawath/corebank/internal/apperrors"
	"github.com/meypanhawath/corebank/internal/core/domain"
	portsrepo "github.com/meypanhawath/corebank/internal/core/ports/repositories"
)

type Store struct {
	mu sync.Mutex

	accounts     map[int64]domain.Account
	accountNos   map[string]int64
	transactions []domain.Transaction
	customers    map[int64]domain.Customer

	nextAccountID     int64
	nextTransactionID int64
	nextCustomerID    int64
}

var (
	_ portsrepo.Provider              = (*Store)(nil)
	_ portsrepo.AccountRepository     = (*Store)(nil)
	_ portsrepo.TransactionRepository = (*Store)(nil)
	_ portsrepo.CustomerRepository    = (*Store)(nil)
)

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		accounts:          make(map[int64]domain.Account),
		accountNos:        make(map[string]int64),
		customers:         make(map[int64]domain.Customer),
		nextAccountID:     1,
		nextTransactionID: 1,
		nextCustomerID:    1,
	}
}

func (s *Store) Accounts() portsrepo.AccountRepository { return s }

func (s *Store) Transactions() portsrepo.TransactionRepository { return s }

func (s *Store) Customers() portsrepo.CustomerRepository { return s }

// AddCustomer seeds a customer and returns it with its assigned identifier.
func (s *Store) AddCustomer(customer domain.Customer) domain.Customer {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer.CustomerID = s.nextCustomerID
	s.nextCustomerID++
	s.customers[customer.CustomerID] = customer
	return customer
}

// FindCustomerByID retrieves a customer by their unique identifier.
func (s *Store) FindCustomerByID(_ context.Context, customerID int64) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	customer, ok := s.customers[customerID]
	if !ok {
		return nil, apperrors.NewNotFoundError("customer not found")
	}
	return &customer, nil
}

// SaveAccount persists a new account and its opening deposit atomically.
func (s *Store) SaveAccount(_ context.Context, account domain.Account, opening *domain.Transaction) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.accountNos[account.AccountNo]; taken {
		return nil, apperrors.NewAppError(409, "account number already allocated", apperrors.ErrDuplicate)
	}
	account.AccountID = s.nextAccountID
	s.nextAccountID++
	s.accounts[account.AccountID] = account
	s.accountNos[account.AccountNo] = account.AccountID

	if opening != nil {
		opening.SenderID = account.AccountID
		opening.TransactionID = s.nextTransactionID
		s.nextTransactionID++
		s.transactions = append(s.transactions, *opening)
	}
	return &account, nil
}

// FindAccountByID retrieves a specific account by its unique identifier.
func (s *Store) FindAccountByID(_ context.Context, accountID int64) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	account, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account not found")
	}
	return &account, nil
}

// FindAccountByNo retrieves an account by its customer-facing account number.
func (s *Store) FindAccountByNo(_ context.Context, accountNo string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.accountNos[accountNo]
	if !ok {
		return nil, apperrors.NewNotFoundError("account not found")
	}
	account := s.accounts[id]
	return &account, nil
}

// ListAccountsByCustomer retrieves every account owned by a customer.
func (s *Store) ListAccountsByCustomer(_ context.Context, customerID int64) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []domain.Account
	for _, account := range s.accounts {
		if account.CustomerID == customerID {
			out = append(out, account)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AccountID < out[j].AccountID })
	return out, nil
}

// AccountNoExists reports whether an account number is already allocated.
func (s *Store) AccountNoExists(_ context.Context, accountNo string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, taken := s.accountNos[accountNo]
	return taken, nil
}

// UpdateAccount updates an existing account's mutable fields. The balance
// only moves through SaveTransaction.
func (s *Store) UpdateAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	current, ok := s.accounts[account.AccountID]
	if !ok {
		return apperrors.NewNotFoundError("account not found")
	}
	current.Name = account.Name
	current.IsFrozen = account.IsFrozen
	current.IsDeleted = account.IsDeleted
	current.LastUpdatedAt = account.LastUpdatedAt
	current.LastUpdatedBy = account.LastUpdatedBy
	s.accounts[account.AccountID] = current
	return nil
}

// SaveTransaction journals one movement atomically under the store mutex,
// re-validating every guard against the current balances.
func (s *Store) SaveTransaction(_ context.Context, txn domain.Transaction, changes map[int64]decimal.Decimal, guards []portsrepo.MovementGuard) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id := range changes {
		account, ok := s.accounts[id]
		if !ok {
			return nil, apperrors.NewNotFoundError("account not found")
		}
		if !account.Active() {
			return nil, fmt.Errorf("%w: account %d is %s", apperrors.ErrAccountState, id, account.Status())
		}
	}

	for _, guard := range guards {
		account := s.accounts[guard.AccountID]
		if account.Balance.Add(changes[guard.AccountID]).LessThan(guard.Floor) {
			return nil, fmt.Errorf("%w: balance %s cannot cover the movement", apperrors.ErrInsufficientBalance, account.Balance)
		}
		if guard.DailyCap != nil {
			used := s.sumOutgoingLocked(guard.AccountID, guard.DayStart, guard.DayEnd)
			if used.Add(txn.Amount).GreaterThan(*guard.DailyCap) {
				remaining := guard.DailyCap.Sub(used)
				if remaining.IsNegative() {
					remaining = decimal.Zero
				}
				return nil, fmt.Errorf("%w: daily limit reached, %s remaining today", apperrors.ErrLimitExceeded, remaining)
			}
		}
	}

	for id, delta := range changes {
		account := s.accounts[id]
		account.Balance = account.Balance.Add(delta)
		account.LastUpdatedAt = txn.CreatedAt
		s.accounts[id] = account
	}

	txn.TransactionID = s.nextTransactionID
	s.nextTransactionID++
	s.transactions = append(s.transactions, txn)
	return &txn, nil
}

func (s *Store) sumOutgoingLocked(accountID int64, from time.Time, to time.Time) decimal.Decimal {
	total := decimal.Zero
	for i := range s.transactions {
		t := &s.transactions[i]
		if !t.Outgoing(accountID) || t.Status != domain.Success || t.IsDeleted {
			continue
		}
		if t.CreatedAt.Before(from) || !t.CreatedAt.Before(to) {
			continue
		}
		total = total.Add(t.Amount)
	}
	return total
}

// SumOutgoing totals the successful outgoing movements sent from an account
// within [from, to).
func (s *Store) SumOutgoing(_ context.Context, accountID int64, from time.Time, to time.Time) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sumOutgoingLocked(accountID, from, to), nil
}

// FindTransactionByID retrieves a transaction by its identifier.
func (s *Store) FindTransactionByID(_ context.Context, transactionID int64) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.transactions {
		if s.transactions[i].TransactionID == transactionID && !s.transactions[i].IsDeleted {
			txn := s.transactions[i]
			return &txn, nil
		}
	}
	return nil, apperrors.NewNotFoundError("transaction not found")
}

// ListTransactionsByAccount retrieves transactions where the account is
// sender or receiver, newest first.
func (s *Store) ListTransactionsByAccount(_ context.Context, accountID int64, limit int, offset int) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.Transaction
	for i := range s.transactions {
		t := &s.transactions[i]
		if t.IsDeleted {
			continue
		}
		if t.SenderID == accountID || (t.ReceiverID != nil && *t.ReceiverID == accountID) {
			out = append(out, *t)
		}
	}
	return sortAndPage(out, limit, offset), nil
}

// ListTransactionsByCustomer retrieves transactions touching any of the
// customer's accounts, newest first.
func (s *Store) ListTransactionsByCustomer(_ context.Context, customerID int64, limit int, offset int) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	owned := make(map[int64]bool)
	for id, account := range s.accounts {
		if account.CustomerID == customerID {
			owned[id] = true
		}
	}

	var out []domain.Transaction
	for i := range s.transactions {
		t := &s.transactions[i]
		if t.IsDeleted {
			continue
		}
		if owned[t.SenderID] || (t.ReceiverID != nil && owned[*t.ReceiverID]) {
			out = append(out, *t)
		}
	}
	return sortAndPage(out, limit, offset), nil
}

func sortAndPage(out []domain.Transaction, limit int, offset int) []domain.Transaction {
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].TransactionID > out[j].TransactionID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	if offset >= len(out) {
		return nil
	}
	out = out[offset:]
	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}

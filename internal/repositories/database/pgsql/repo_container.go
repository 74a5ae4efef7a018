package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/meypanhawath/corebank/internal/core/ports/repositories"
)

// RepositoryProvider bundles the pgsql-backed repositories.
type RepositoryProvider struct {
	accounts     *PgxAccountRepository
	transactions *PgxTransactionRepository
	customers    *PgxCustomerRepository
}

var _ portsrepo.Provider = (*RepositoryProvider)(nil)

// NewRepositoryProvider wires the repositories to a shared connection pool.
// conflictRetries bounds the re-attempts on serialization conflicts during
// money movements.
func NewRepositoryProvider(dbPool *pgxpool.Pool, conflictRetries int) *RepositoryProvider {
	return &RepositoryProvider{
		accounts:     newPgxAccountRepository(dbPool),
		transactions: newPgxTransactionRepository(dbPool, conflictRetries),
		customers:    newPgxCustomerRepository(dbPool),
	}
}

func (p *RepositoryProvider) Accounts() portsrepo.AccountRepository { return p.accounts }

func (p *RepositoryProvider) Transactions() portsrepo.TransactionRepository { return p.transactions }

func (p *RepositoryProvider) Customers() portsrepo.CustomerRepository { return p.customers }

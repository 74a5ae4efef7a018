package services

import (
	portsrepo "github.com/meypanhawath/corebank/internal/core/ports/repositories"
	portssvc "github.com/meypanhawath/corebank/internal/core/ports/services"
	"github.com/meypanhawath/corebank/internal/utils/accountnum"
)

// ServiceContainer wires the services to their repositories and exposes them
// behind the service ports.
type ServiceContainer struct {
	accounts     *AccountService
	transactions *TransactionService
	exchange     *ExchangeService
	limits       *LimitService
	gate         *PinConfirmationService
}

var _ portssvc.Provider = (*ServiceContainer)(nil)

// NewServiceContainer builds the full service graph on top of a repository
// provider.
func NewServiceContainer(repos portsrepo.Provider, policy Policy, generator *accountnum.Generator) *ServiceContainer {
	gate := NewPinConfirmationService(repos.Customers())
	exchange := NewExchangeService(policy)
	return &ServiceContainer{
		accounts:     NewAccountService(repos.Accounts(), repos.Customers(), gate, generator, policy),
		transactions: NewTransactionService(repos.Accounts(), repos.Transactions(), exchange, gate, policy),
		exchange:     exchange,
		limits:       NewLimitService(repos.Accounts(), repos.Transactions(), policy),
		gate:         gate,
	}
}

func (c *ServiceContainer) Accounts() portssvc.AccountService { return c.accounts }

func (c *ServiceContainer) Transactions() portssvc.TransactionService { return c.transactions }

func (c *ServiceContainer) Exchange() portssvc.ExchangeService { return c.exchange }

func (c *ServiceContainer) Limits() portssvc.LimitService { return c.limits }

// Gate exposes the PIN confirmation gate for transports that need it directly.
func (c *ServiceContainer) Gate() portssvc.ConfirmationGate { return c.gate }

package repositories

// Provider exposes every repository the service layer depends on.
// Storage backends implement it once and hand it to the service container.
type Provider interface {
	Accounts() AccountRepository
	Transactions() TransactionRepository
	Customers() CustomerRepository
}

package services

// Provider exposes every service the transport layer depends on.
type Provider interface {
	Accounts() AccountService
	Transactions() TransactionService
	Exchange() ExchangeService
	Limits() LimitService
}

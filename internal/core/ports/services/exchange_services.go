package services

import (
	"github.com/shopspring/decimal"

	"github.com/meypanhawath/corebank/internal/core/domain"
)

// ExchangeService converts amounts between supported currencies at the
// bank's fixed rates.
type ExchangeService interface {
	// Convert converts amount from one currency to another, rounding to the
	// target currency's minor unit scale. Same-currency conversion is the
	// identity.
	Convert(amount decimal.Decimal, from domain.Currency, to domain.Currency) (decimal.Decimal, error)

	// Rate returns the fixed rate applied when converting from one currency
	// to another.
	Rate(from domain.Currency, to domain.Currency) (decimal.Decimal, error)

	// RateDisplay renders the rate as a human-readable string for
	// confirmation screens, e.g. "1 USD = 4100 KHR".
	RateDisplay(from domain.Currency, to domain.Currency) (string, error)
}

package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meypanhawath/corebank/internal/apperrors"
	"github.com/meypanhawath/corebank/internal/core/domain"
	portssvc "github.com/meypanhawath/corebank/internal/core/ports/services"
)

// ExchangeService converts between the two supported currencies at fixed,
// injected rates. An unsupported pair is a configuration error, not a user
// error.
type ExchangeService struct {
	rates map[domain.Currency]map[domain.Currency]decimal.Decimal
}

var _ portssvc.ExchangeService = (*ExchangeService)(nil)

// NewExchangeService creates an ExchangeService from the policy rates.
func NewExchangeService(policy Policy) *ExchangeService {
	return &ExchangeService{
		rates: map[domain.Currency]map[domain.Currency]decimal.Decimal{
			domain.USD: {domain.KHR: policy.USDToKHRRate},
			domain.KHR: {domain.USD: policy.KHRToUSDRate},
		},
	}
}

// Rate returns the fixed conversion rate for a currency pair.
func (s *ExchangeService) Rate(from domain.Currency, to domain.Currency) (decimal.Decimal, error) {
	if from == to {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := s.rates[from][to]
	if !ok {
		return decimal.Zero, apperrors.NewAppError(500, fmt.Sprintf("no exchange rate configured for %s to %s", from, to), apperrors.ErrPersistence)
	}
	return rate, nil
}

// Convert converts amount between currencies, rounding half-up to the target
// currency's minor unit scale. Same-currency conversion is the identity.
func (s *ExchangeService) Convert(amount decimal.Decimal, from domain.Currency, to domain.Currency) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rate, err := s.Rate(from, to)
	if err != nil {
		return decimal.Zero, err
	}
	// decimal.Round is round-half-away-from-zero, which matches half-up for
	// the positive amounts that reach the converter.
	return amount.Mul(rate).Round(to.MinorScale()), nil
}

// RateDisplay renders the conversion rate for confirmation screens.
func (s *ExchangeService) RateDisplay(from domain.Currency, to domain.Currency) (string, error) {
	rate, err := s.Rate(from, to)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("1 %s = %s %s", from, rate.String(), to), nil
}

package services

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/meypanhawath/corebank/internal/apperrors"
	"github.com/meypanhawath/corebank/internal/core/domain"
)

// validateAmount checks that an amount is positive and fits the currency's
// minor unit scale. KHR amounts must be integral; USD amounts may carry at
// most two decimal places.
func validateAmount(amount decimal.Decimal, currency domain.Currency) error {
	if !currency.Valid() {
		return fmt.Errorf("%w: unsupported currency %q", apperrors.ErrValidation, currency)
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: amount must be positive, got %s", apperrors.ErrValidation, amount)
	}
	if !amount.Equal(amount.Truncate(currency.MinorScale())) {
		if currency == domain.KHR {
			return fmt.Errorf("%w: KHR amounts must be whole riel, got %s", apperrors.ErrValidation, amount)
		}
		return fmt.Errorf("%w: %s amounts allow at most %d decimal places, got %s", apperrors.ErrValidation, currency, currency.MinorScale(), amount)
	}
	return nil
}

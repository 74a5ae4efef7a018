package services

import (
	"github.com/shopspring/decimal"

	"github.com/meypanhawath/corebank/internal/core/domain"
	"github.com/meypanhawath/corebank/internal/platform/config"
)

// Policy bundles the injected business constants the services enforce:
// exchange rates, daily caps, opening minimums and creation quotas.
type Policy struct {
	USDToKHRRate decimal.Decimal
	KHRToUSDRate decimal.Decimal

	SavingDailyLimit  map[domain.Currency]decimal.Decimal
	MinInitialDeposit map[domain.Currency]decimal.Decimal

	SavingPerCurrencyQuota int
	CheckingQuota          int
	FixedQuota             int

	MaxMaturityYears int
}

// PolicyFromConfig builds a Policy from the loaded application config.
func PolicyFromConfig(cfg *config.Config) Policy {
	return Policy{
		USDToKHRRate: cfg.USDToKHRRate,
		KHRToUSDRate: cfg.KHRToUSDRate,
		SavingDailyLimit: map[domain.Currency]decimal.Decimal{
			domain.USD: cfg.SavingDailyLimitUSD,
			domain.KHR: cfg.SavingDailyLimitKHR,
		},
		MinInitialDeposit: map[domain.Currency]decimal.Decimal{
			domain.USD: cfg.MinInitialDepositUSD,
			domain.KHR: cfg.MinInitialDepositKHR,
		},
		SavingPerCurrencyQuota: cfg.SavingPerCurrencyQuota,
		CheckingQuota:          cfg.CheckingQuota,
		FixedQuota:             cfg.FixedQuota,
		MaxMaturityYears:       cfg.MaxMaturityYears,
	}
}

// quotaFor returns the creation quota for an account type.
func (p Policy) quotaFor(accountType domain.AccountType) int {
	switch accountType {
	case domain.Saving:
		return p.SavingPerCurrencyQuota
	case domain.Checking:
		return p.CheckingQuota
	case domain.Fixed:
		return p.FixedQuota
	}
	return 0
}

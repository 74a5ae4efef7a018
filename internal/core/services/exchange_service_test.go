package services_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meypanhawath/corebank/internal/core/domain"
	"github.com/meypanhawath/corebank/internal/core/services"
	"github.com/meypanhawath/corebank/internal/platform/config"
)

func testPolicy() services.Policy {
	return services.PolicyFromConfig(&config.Config{
		USDToKHRRate:           decimal.RequireFromString("4100"),
		KHRToUSDRate:           decimal.RequireFromString("0.000244"),
		SavingDailyLimitUSD:    decimal.RequireFromString("5000"),
		SavingDailyLimitKHR:    decimal.RequireFromString("20500000"),
		MinInitialDepositUSD:   decimal.RequireFromString("5.00"),
		MinInitialDepositKHR:   decimal.RequireFromString("20000"),
		SavingPerCurrencyQuota: 1,
		CheckingQuota:          1,
		FixedQuota:             1,
		MaxMaturityYears:       10,
	})
}

func TestConvert_USDToKHR(t *testing.T) {
	svc := services.NewExchangeService(testPolicy())

	got, err := svc.Convert(decimal.RequireFromString("100.00"), domain.USD, domain.KHR)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("410000")), "got %s", got)
}

func TestConvert_KHRToUSDRoundsHalfUp(t *testing.T) {
	svc := services.NewExchangeService(testPolicy())

	// 20500 * 0.000244 = 5.002, already at scale 2 after rounding
	got, err := svc.Convert(decimal.RequireFromString("20500"), domain.KHR, domain.USD)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("5.00")), "got %s", got)

	// 10250 * 0.000244 = 2.501 -> 2.50
	got, err = svc.Convert(decimal.RequireFromString("10250"), domain.KHR, domain.USD)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("2.50")), "got %s", got)

	// 2023 * 0.000244 = 0.4936... -> 0.49
	got, err = svc.Convert(decimal.RequireFromString("2023"), domain.KHR, domain.USD)
	require.NoError(t, err)
	assert.True(t, got.Equal(decimal.RequireFromString("0.49")), "got %s", got)
}

func TestConvert_USDToKHRIsIntegral(t *testing.T) {
	svc := services.NewExchangeService(testPolicy())

	// 1.01 * 4100 = 4141, integral by rounding to scale 0
	got, err := svc.Convert(decimal.RequireFromString("1.01"), domain.USD, domain.KHR)
	require.NoError(t, err)
	assert.True(t, got.Equal(got.Truncate(0)), "KHR result must be integral, got %s", got)
}

func TestConvert_SameCurrencyIsIdentity(t *testing.T) {
	svc := services.NewExchangeService(testPolicy())

	amount := decimal.RequireFromString("123.45")
	got, err := svc.Convert(amount, domain.USD, domain.USD)
	require.NoError(t, err)
	assert.True(t, got.Equal(amount))
}

func TestRateDisplay(t *testing.T) {
	svc := services.NewExchangeService(testPolicy())

	display, err := svc.RateDisplay(domain.USD, domain.KHR)
	require.NoError(t, err)
	assert.Equal(t, "1 USD = 4100 KHR", display)
}

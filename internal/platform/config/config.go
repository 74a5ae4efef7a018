package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration. Business constants (rates, caps,
// minimums, quotas) are injected here rather than hard-coded so they can be
// changed without recompilation.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	RunMigrations bool

	JWTSecret string
	JWTIssuer string

	RateLimitPeriod   time.Duration
	RateLimitRequests int64

	// Exchange rates between the two supported currencies.
	USDToKHRRate decimal.Decimal
	KHRToUSDRate decimal.Decimal

	// Per-currency daily caps for outgoing Saving-account value. The KHR cap
	// is a fixed figure, not derived from the exchange rate at runtime.
	SavingDailyLimitUSD decimal.Decimal
	SavingDailyLimitKHR decimal.Decimal

	// Minimum opening deposits per currency.
	MinInitialDepositUSD decimal.Decimal
	MinInitialDepositKHR decimal.Decimal

	// Account creation quotas per owner.
	SavingPerCurrencyQuota int
	CheckingQuota          int
	FixedQuota             int

	// Fixed accounts: maximum maturity horizon from today.
	MaxMaturityYears int

	// Account number generation attempt bound.
	AccountNoMaxAttempts int

	// Bounded retries for serialization conflicts on money movements.
	TxnConflictRetries int
}

// LoadConfig loads configuration from environment variables and a .env file
// if present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("RUN_MIGRATIONS", true)
	viper.SetDefault("JWT_SECRET", "a-very-secret-key-should-be-longer-and-random")
	viper.SetDefault("JWT_ISSUER", "corebank")
	viper.SetDefault("RATE_LIMIT_PERIOD", "1m")
	viper.SetDefault("RATE_LIMIT_REQUESTS", 120)
	viper.SetDefault("USD_TO_KHR_RATE", "4100")
	viper.SetDefault("KHR_TO_USD_RATE", "0.000244")
	viper.SetDefault("SAVING_DAILY_LIMIT_USD", "5000")
	viper.SetDefault("SAVING_DAILY_LIMIT_KHR", "20500000")
	viper.SetDefault("MIN_INITIAL_DEPOSIT_USD", "5.00")
	viper.SetDefault("MIN_INITIAL_DEPOSIT_KHR", "20000")
	viper.SetDefault("SAVING_PER_CURRENCY_QUOTA", 1)
	viper.SetDefault("CHECKING_QUOTA", 1)
	viper.SetDefault("FIXED_QUOTA", 1)
	viper.SetDefault("MAX_MATURITY_YEARS", 10)
	viper.SetDefault("ACCOUNT_NO_MAX_ATTEMPTS", 1000)
	viper.SetDefault("TXN_CONFLICT_RETRIES", 3)

	viper.AutomaticEnv()

	cfg := &Config{
		DatabaseURL:            viper.GetString("PGSQL_URL"),
		Port:                   viper.GetString("PORT"),
		IsProduction:           viper.GetBool("IS_PRODUCTION"),
		RunMigrations:          viper.GetBool("RUN_MIGRATIONS"),
		JWTSecret:              viper.GetString("JWT_SECRET"),
		JWTIssuer:              viper.GetString("JWT_ISSUER"),
		RateLimitRequests:      viper.GetInt64("RATE_LIMIT_REQUESTS"),
		SavingPerCurrencyQuota: viper.GetInt("SAVING_PER_CURRENCY_QUOTA"),
		CheckingQuota:          viper.GetInt("CHECKING_QUOTA"),
		FixedQuota:             viper.GetInt("FIXED_QUOTA"),
		MaxMaturityYears:       viper.GetInt("MAX_MATURITY_YEARS"),
		AccountNoMaxAttempts:   viper.GetInt("ACCOUNT_NO_MAX_ATTEMPTS"),
		TxnConflictRetries:     viper.GetInt("TXN_CONFLICT_RETRIES"),
	}

	period, err := time.ParseDuration(viper.GetString("RATE_LIMIT_PERIOD"))
	if err != nil {
		period = time.Minute
	}
	cfg.RateLimitPeriod = period

	for _, f := range []struct {
		key  string
		dest *decimal.Decimal
	}{
		{"USD_TO_KHR_RATE", &cfg.USDToKHRRate},
		{"KHR_TO_USD_RATE", &cfg.KHRToUSDRate},
		{"SAVING_DAILY_LIMIT_USD", &cfg.SavingDailyLimitUSD},
		{"SAVING_DAILY_LIMIT_KHR", &cfg.SavingDailyLimitKHR},
		{"MIN_INITIAL_DEPOSIT_USD", &cfg.MinInitialDepositUSD},
		{"MIN_INITIAL_DEPOSIT_KHR", &cfg.MinInitialDepositKHR},
	} {
		v, err := decimal.NewFromString(viper.GetString(f.key))
		if err != nil {
			return nil, fmt.Errorf("invalid value for %s: %w", f.key, err)
		}
		if v.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%s must be positive, got %s", f.key, v)
		}
		*f.dest = v
	}

	return cfg, nil
}

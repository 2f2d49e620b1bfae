package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// Credit policy
	CreditInterestRate decimal.Decimal // Percent applied to every new credit
	CreditMaxAmount    decimal.Decimal // Ceiling on the principal of one credit
	CreditMaxTermDays  int             // Ceiling on the repayment term

	// Rate limiting, in ulule/limiter format (e.g. "100-M")
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("CREDIT_INTEREST_RATE", "10")
	viper.SetDefault("CREDIT_MAX_AMOUNT", "50")
	viper.SetDefault("CREDIT_MAX_TERM_DAYS", 30)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	rateStr := viper.GetString("CREDIT_INTEREST_RATE")
	rate, err := decimal.NewFromString(rateStr)
	if err != nil || rate.IsNegative() {
		rate = decimal.NewFromInt(10)
		log.Printf("Warning: Invalid value for CREDIT_INTEREST_RATE ('%s'). Defaulting to %s.\n", rateStr, rate.String())
	}
	cfg.CreditInterestRate = rate

	maxAmountStr := viper.GetString("CREDIT_MAX_AMOUNT")
	maxAmount, err := decimal.NewFromString(maxAmountStr)
	if err != nil || !maxAmount.IsPositive() {
		maxAmount = decimal.NewFromInt(50)
		log.Printf("Warning: Invalid value for CREDIT_MAX_AMOUNT ('%s'). Defaulting to %s.\n", maxAmountStr, maxAmount.String())
	}
	cfg.CreditMaxAmount = maxAmount

	cfg.CreditMaxTermDays = viper.GetInt("CREDIT_MAX_TERM_DAYS")
	if cfg.CreditMaxTermDays <= 0 {
		cfg.CreditMaxTermDays = 30
		log.Printf("Warning: CREDIT_MAX_TERM_DAYS not set or invalid. Defaulting to %d.\n", cfg.CreditMaxTermDays)
	}

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	if cfg.RateLimit == "" {
		cfg.RateLimit = "100-M"
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	return cfg, nil
}

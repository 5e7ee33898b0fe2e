package config

import (
	"fmt"
	"log"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/mandi_ledger_app/internal/utils/accounting"
	"github.com/SscSPs/mandi_ledger_app/internal/utils/validation"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Port          string
	IsProduction  bool
	LogLevel      slog.Level
	DBDriver      string // "postgres" or "sqlite"
	DatabaseURL   string
	SQLitePath    string
	DBTimeout     time.Duration
	EnableDBCheck bool

	// JWTSecret enables bearer auth on /api/v1 when non-empty.
	JWTSecret         string
	JWTExpiryDuration time.Duration
	JWTIssuer         string

	RateLimit          string // ulule formatted, e.g. "100-M"
	CORSAllowedOrigins []string

	Rates  accounting.Rates
	Limits validation.Limits
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	rates := accounting.DefaultRates()
	limits := validation.DefaultLimits()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_DRIVER", "postgres")
	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("SQLITE_PATH", "mandi_ledger.db")
	viper.SetDefault("DB_TIMEOUT", "5s")
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_EXPIRY_DURATION", "24h")
	viper.SetDefault("JWT_ISSUER", "mandi-ledger-app")
	viper.SetDefault("RATE_LIMIT", "100-M")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "*")

	viper.SetDefault("MANDI_CHARGE_RATE", rates.MandiChargeRate.String())
	viper.SetDefault("MUDDAT_RATE", rates.MuddatRate.String())
	viper.SetDefault("CASH_DISCOUNT_RATE", rates.CashDiscountRate.String())
	viper.SetDefault("TRACTOR_RENT_PER_QUINTAL", rates.TractorRentPerQtl.String())
	viper.SetDefault("LABOUR_CHARGE_PER_QUINTAL", rates.LabourChargePerQtl.String())
	viper.SetDefault("TRANSPORT_CHARGE_PER_QUINTAL", rates.TransportChargePerQtl.String())

	viper.SetDefault("MIN_QUANTITY", limits.MinQuantity.String())
	viper.SetDefault("MAX_QUANTITY", limits.MaxQuantity.String())
	viper.SetDefault("MIN_PRICE", limits.MinPrice.String())
	viper.SetDefault("MAX_PRICE", limits.MaxPrice.String())
	viper.SetDefault("MAX_AMOUNT", limits.MaxAmount.String())
	viper.SetDefault("MAX_NAME_LENGTH", limits.MaxNameLength)
	viper.SetDefault("MAX_ITEM_NAME_LENGTH", limits.MaxItemNameLength)
	viper.SetDefault("MAX_NOTES_LENGTH", limits.MaxNotesLength)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}
	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	if err := cfg.LogLevel.UnmarshalText([]byte(viper.GetString("LOG_LEVEL"))); err != nil {
		log.Printf("Warning: Invalid value for LOG_LEVEL ('%s'). Defaulting to info.\n", viper.GetString("LOG_LEVEL"))
		cfg.LogLevel = slog.LevelInfo
	}

	cfg.DBDriver = strings.ToLower(viper.GetString("DB_DRIVER"))
	switch cfg.DBDriver {
	case "postgres":
		cfg.DatabaseURL = viper.GetString("PGSQL_URL")
		if cfg.DatabaseURL == "" {
			log.Println("Warning: PGSQL_URL environment variable not set.")
		}
	case "sqlite":
		cfg.SQLitePath = viper.GetString("SQLITE_PATH")
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (want postgres or sqlite)", cfg.DBDriver)
	}

	cfg.DBTimeout = durationOrDefault("DB_TIMEOUT", 5*time.Second)
	cfg.JWTSecret = viper.GetString("JWT_SECRET")
	if cfg.JWTSecret == "" {
		log.Println("Warning: JWT_SECRET not set. API authentication is disabled.")
	}
	cfg.JWTExpiryDuration = durationOrDefault("JWT_EXPIRY_DURATION", 24*time.Hour)
	cfg.JWTIssuer = viper.GetString("JWT_ISSUER")

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	for _, origin := range strings.Split(viper.GetString("CORS_ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSAllowedOrigins = append(cfg.CORSAllowedOrigins, origin)
		}
	}

	cfg.Rates = accounting.Rates{
		MandiChargeRate:       nonNegativeDecimal("MANDI_CHARGE_RATE", rates.MandiChargeRate),
		MuddatRate:            nonNegativeDecimal("MUDDAT_RATE", rates.MuddatRate),
		CashDiscountRate:      nonNegativeDecimal("CASH_DISCOUNT_RATE", rates.CashDiscountRate),
		TractorRentPerQtl:     nonNegativeDecimal("TRACTOR_RENT_PER_QUINTAL", rates.TractorRentPerQtl),
		LabourChargePerQtl:    nonNegativeDecimal("LABOUR_CHARGE_PER_QUINTAL", rates.LabourChargePerQtl),
		TransportChargePerQtl: nonNegativeDecimal("TRANSPORT_CHARGE_PER_QUINTAL", rates.TransportChargePerQtl),
	}

	cfg.Limits = validation.Limits{
		MinQuantity:       nonNegativeDecimal("MIN_QUANTITY", limits.MinQuantity),
		MaxQuantity:       nonNegativeDecimal("MAX_QUANTITY", limits.MaxQuantity),
		MinPrice:          nonNegativeDecimal("MIN_PRICE", limits.MinPrice),
		MaxPrice:          nonNegativeDecimal("MAX_PRICE", limits.MaxPrice),
		MaxAmount:         nonNegativeDecimal("MAX_AMOUNT", limits.MaxAmount),
		MaxNameLength:     positiveInt("MAX_NAME_LENGTH", limits.MaxNameLength),
		MaxItemNameLength: positiveInt("MAX_ITEM_NAME_LENGTH", limits.MaxItemNameLength),
		MaxNotesLength:    positiveInt("MAX_NOTES_LENGTH", limits.MaxNotesLength),
	}
	if cfg.Limits.MinQuantity.GreaterThan(cfg.Limits.MaxQuantity) || cfg.Limits.MinPrice.GreaterThan(cfg.Limits.MaxPrice) {
		return nil, fmt.Errorf("invalid limits: minimum exceeds maximum")
	}

	return cfg, nil
}

func durationOrDefault(key string, def time.Duration) time.Duration {
	raw := viper.GetString(key)
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		return def
	}
	return d
}

func nonNegativeDecimal(key string, def decimal.Decimal) decimal.Decimal {
	raw := viper.GetString(key)
	d, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || d.IsNegative() {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %s.\n", key, raw, def.String())
		return def
	}
	return d
}

func positiveInt(key string, def int) int {
	n := viper.GetInt(key)
	if n <= 0 {
		log.Printf("Warning: Invalid value for %s ('%s'). Defaulting to %d.\n", key, viper.GetString(key), def)
		return def
	}
	return n
}

// Package config loads engine settings from the environment, with an optional
// .env file for local development.
package config

import (
	"fmt"
	"time"

	"fanmeet-engine/internal/settlement"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultSQLiteDSN is used when DB_DRIVER=sqlite and no DB_DSN is set
const DefaultSQLiteDSN = "file:fanmeet.db?cache=shared"

// Config holds all configuration for the engine
type Config struct {
	Port                 string        `mapstructure:"PORT"`
	LogLevel             string        `mapstructure:"LOG_LEVEL"`
	DBDriver             string        `mapstructure:"DB_DRIVER"`
	DBDSN                string        `mapstructure:"DB_DSN"`
	BidStep              int64         `mapstructure:"BID_STEP"`
	CommissionBPS        int64         `mapstructure:"COMMISSION_BPS"`
	NoShowGrace          time.Duration `mapstructure:"NO_SHOW_GRACE"`
	SweepSchedule        string        `mapstructure:"SWEEP_SCHEDULE"`
	AuctionCloseSchedule string        `mapstructure:"AUCTION_CLOSE_SCHEDULE"`
	SweepConcurrency     int           `mapstructure:"SWEEP_CONCURRENCY"`
	TransitionAttempts   int           `mapstructure:"TRANSITION_ATTEMPTS"`
	PaymentServiceURL    string        `mapstructure:"PAYMENT_SERVICE_URL"`
	RabbitMQURL          string        `mapstructure:"RABBITMQ_URL"`
	EventsExchange       string        `mapstructure:"EVENTS_EXCHANGE"`
	RedisURL             string        `mapstructure:"REDIS_URL"`
	SweepLockTTL         time.Duration `mapstructure:"SWEEP_LOCK_TTL"`
}

var keys = []string{
	"PORT", "LOG_LEVEL", "DB_DRIVER", "DB_DSN", "BID_STEP", "COMMISSION_BPS",
	"NO_SHOW_GRACE", "SWEEP_SCHEDULE", "AUCTION_CLOSE_SCHEDULE", "SWEEP_CONCURRENCY",
	"TRANSITION_ATTEMPTS", "PAYMENT_SERVICE_URL", "RABBITMQ_URL", "EVENTS_EXCHANGE",
	"REDIS_URL", "SWEEP_LOCK_TTL",
}

// LoadConfig reads configuration from environment variables. A missing .env
// file is not an error.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetDefault("PORT", "8080")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DB_DRIVER", "memory")
	viper.SetDefault("BID_STEP", 50)
	viper.SetDefault("COMMISSION_BPS", settlement.DefaultCommissionBPS)
	viper.SetDefault("NO_SHOW_GRACE", "0s")
	viper.SetDefault("SWEEP_SCHEDULE", "@every 1m")
	viper.SetDefault("AUCTION_CLOSE_SCHEDULE", "@every 1m")
	viper.SetDefault("SWEEP_CONCURRENCY", 8)
	viper.SetDefault("TRANSITION_ATTEMPTS", 5)
	viper.SetDefault("EVENTS_EXCHANGE", "meeting_events")
	viper.SetDefault("SWEEP_LOCK_TTL", "50s")
	viper.AutomaticEnv()

	// Bind environment variables explicitly to ensure they appear in Unmarshal
	for _, key := range keys {
		_ = viper.BindEnv(key)
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if cfg.DBDriver == "sqlite" && cfg.DBDSN == "" {
		cfg.DBDSN = DefaultSQLiteDSN
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.DBDriver {
	case "memory", "sqlite", "mysql":
	default:
		return fmt.Errorf("config: DB_DRIVER must be memory, sqlite or mysql, got %q", c.DBDriver)
	}
	if c.DBDriver == "mysql" && c.DBDSN == "" {
		return fmt.Errorf("config: DB_DSN is required for mysql")
	}
	if c.BidStep <= 0 {
		return fmt.Errorf("config: BID_STEP must be positive, got %d", c.BidStep)
	}
	if c.CommissionBPS < 0 || c.CommissionBPS > 10000 {
		return fmt.Errorf("config: COMMISSION_BPS must be within 0..10000, got %d", c.CommissionBPS)
	}
	if c.NoShowGrace < 0 {
		return fmt.Errorf("config: NO_SHOW_GRACE must not be negative")
	}
	return nil
}

// Addr is the listen address for the HTTP server
func (c *Config) Addr() string {
	return ":" + c.Port
}

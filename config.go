package economy

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Built-in defaults.
const (
	DefaultMonetaryUnit = "￦"
	DefaultBalance      = 1000
	DefaultMaxBalance   = 10_000_000_000
)

// Provider selector values accepted by Config.
const (
	ProviderMemory   = "memory"
	ProviderYAML     = "yaml"
	ProviderSQLite   = "sqlite"
	ProviderPostgres = "postgres"
	ProviderMongo    = "mongo"
)

// Config is the process-wide configuration surface the engine consumes.
// It is read-only to the engine.
type Config struct {
	// MonetaryUnit is the display symbol appended to formatted balances.
	MonetaryUnit string `env:"ECONOMY_MONETARY_UNIT" envDefault:"￦"`

	// DefaultBalance is the initial balance for new accounts, in major
	// units (rounded to 2 fractional digits).
	DefaultBalance float64 `env:"ECONOMY_DEFAULT_BALANCE" envDefault:"1000"`

	// MaxBalance is the balance ceiling enforced after every mutation.
	MaxBalance float64 `env:"ECONOMY_MAX_BALANCE" envDefault:"10000000000"`

	// Provider selects the storage backend. An unrecognized selector is
	// a fatal startup error.
	Provider string `env:"ECONOMY_PROVIDER" envDefault:"memory"`

	// AutoSaveInterval enables the periodic durability flush when
	// positive.
	AutoSaveInterval time.Duration `env:"ECONOMY_AUTO_SAVE_INTERVAL" envDefault:"5m"`
}

// LoadConfig reads the configuration from the environment and
// validates it.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("economy: parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for fatal startup errors.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderMemory, ProviderYAML, ProviderSQLite, ProviderPostgres, ProviderMongo:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	if c.DefaultBalance < 0 {
		return fmt.Errorf("%w: default balance must not be negative", ErrInvalidConfig)
	}
	if c.MaxBalance <= 0 {
		return fmt.Errorf("%w: max balance must be positive", ErrInvalidConfig)
	}
	if c.DefaultBalance > c.MaxBalance {
		return fmt.Errorf("%w: default balance exceeds max balance", ErrInvalidConfig)
	}
	return nil
}

package extension

import "time"

// Config holds the economy extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.economy" or "economy" keys).
type Config struct {
	// DisableMigrate prevents store migration and engine startup when
	// the host application manages the schema itself.
	DisableMigrate bool `json:"disable_migrate" mapstructure:"disable_migrate" yaml:"disable_migrate"`

	// MonetaryUnit is the currency symbol appended to formatted amounts
	// (default: "￦").
	MonetaryUnit string `json:"monetary_unit" mapstructure:"monetary_unit" yaml:"monetary_unit"`

	// DefaultBalance is the opening balance for new accounts. Nil keeps
	// the engine default; zero is a valid opening balance.
	DefaultBalance *float64 `json:"default_balance" mapstructure:"default_balance" yaml:"default_balance"`

	// MaxBalance caps every account balance. Nil keeps the engine default.
	MaxBalance *float64 `json:"max_balance" mapstructure:"max_balance" yaml:"max_balance"`

	// AutoSaveInterval enables the periodic background flush when
	// positive (default: disabled).
	AutoSaveInterval time.Duration `json:"auto_save_interval" mapstructure:"auto_save_interval" yaml:"auto_save_interval"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

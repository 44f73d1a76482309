package extension

import (
	"time"

	"github.com/xraph/economy"
	"github.com/xraph/economy/hook"
	"github.com/xraph/economy/store"
)

// Option configures the economy Forge extension.
type Option func(*Extension)

// WithStore sets the store for the economy engine.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithEconomyOption passes an economy.Option through to the underlying engine.
func WithEconomyOption(opt economy.Option) Option {
	return func(e *Extension) {
		e.economyOpts = append(e.economyOpts, opt)
	}
}

// WithHook registers an economy hook.
func WithHook(h hook.Hook) Option {
	return func(e *Extension) {
		e.economyOpts = append(e.economyOpts, economy.WithHook(h))
	}
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithMonetaryUnit sets the currency symbol for formatted amounts.
func WithMonetaryUnit(unit string) Option {
	return func(e *Extension) { e.config.MonetaryUnit = unit }
}

// WithDefaultBalance sets the opening balance for new accounts.
func WithDefaultBalance(v float64) Option {
	return func(e *Extension) { e.config.DefaultBalance = &v }
}

// WithMaxBalance caps every account balance.
func WithMaxBalance(v float64) Option {
	return func(e *Extension) { e.config.MaxBalance = &v }
}

// WithAutoSaveInterval enables the periodic background flush.
func WithAutoSaveInterval(d time.Duration) Option {
	return func(e *Extension) { e.config.AutoSaveInterval = d }
}

// WithDisableMigrate prevents store migration and engine startup.
func WithDisableMigrate() Option {
	return func(e *Extension) { e.config.DisableMigrate = true }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}

// Package extension provides the Forge extension adapter for the
// economy engine.
//
// It implements the forge.Extension interface to integrate the engine
// into a Forge application with DI registration and lifecycle
// management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.economy" or
// "economy" keys.
package extension

import (
	"context"
	"errors"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/xraph/economy"
	"github.com/xraph/economy/store"
	"github.com/xraph/economy/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "economy"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Player account ledger with pluggable storage"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts the economy engine as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config      Config
	engine      *economy.Economy
	store       store.Store
	economyOpts []economy.Option
}

// New creates a new economy Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Engine returns the underlying economy instance.
// This is nil until Register is called.
func (e *Extension) Engine() *economy.Economy { return e.engine }

// Register implements [forge.Extension]. It loads configuration,
// initializes the engine, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	opts := e.buildEconomyOpts()

	eng := economy.New(e.store, opts...)
	e.engine = eng

	return vessel.Provide(fapp.Container(), func() (*economy.Economy, error) {
		return e.engine, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.engine == nil {
		return errors.New("economy: extension not initialized")
	}

	if !e.config.DisableMigrate {
		if err := e.engine.Start(ctx); err != nil {
			return err
		}
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(_ context.Context) error {
	if e.engine != nil {
		if err := e.engine.Stop(); err != nil {
			e.MarkStopped()
			return err
		}
	}
	e.MarkStopped()
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("economy: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildEconomyOpts constructs economy.Option values from the resolved config.
func (e *Extension) buildEconomyOpts() []economy.Option {
	opts := make([]economy.Option, 0, len(e.economyOpts)+4)

	if e.config.MonetaryUnit != "" {
		opts = append(opts, economy.WithMonetaryUnit(e.config.MonetaryUnit))
	}
	if e.config.DefaultBalance != nil {
		opts = append(opts, economy.WithDefaultBalance(economy.FromFloat(*e.config.DefaultBalance)))
	}
	if e.config.MaxBalance != nil {
		opts = append(opts, economy.WithMaxBalance(economy.FromFloat(*e.config.MaxBalance)))
	}
	if e.config.AutoSaveInterval > 0 {
		opts = append(opts, economy.WithAutoSave(e.config.AutoSaveInterval))
	}

	// Append any pass-through engine options.
	opts = append(opts, e.economyOpts...)

	return opts
}

// --- Config Loading ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("economy: configuration is required but not found in config files; " +
				"ensure 'extensions.economy' or 'economy' key exists in your config")
		}
		e.config = programmaticConfig
	} else {
		e.config = e.mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("economy: configuration loaded",
		forge.F("disable_migrate", e.config.DisableMigrate),
		forge.F("monetary_unit", e.config.MonetaryUnit),
		forge.F("auto_save_interval", e.config.AutoSaveInterval),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()
	var cfg Config

	// Try "extensions.economy" first (namespaced pattern).
	if cm.IsSet("extensions.economy") {
		if err := cm.Bind("extensions.economy", &cfg); err == nil {
			e.Logger().Debug("economy: loaded config from file",
				forge.F("key", "extensions.economy"),
			)
			return cfg, true
		}
		e.Logger().Warn("economy: failed to bind extensions.economy config",
			forge.F("error", "bind failed"),
		)
	}

	// Try bare "economy" key.
	if cm.IsSet("economy") {
		if err := cm.Bind("economy", &cfg); err == nil {
			e.Logger().Debug("economy: loaded config from file",
				forge.F("key", "economy"),
			)
			return cfg, true
		}
		e.Logger().Warn("economy: failed to bind economy config",
			forge.F("error", "bind failed"),
		)
	}

	return Config{}, false
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML takes precedence for set fields; programmatic values fill gaps.
func (e *Extension) mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if programmaticConfig.DisableMigrate {
		yamlConfig.DisableMigrate = true
	}
	if yamlConfig.MonetaryUnit == "" {
		yamlConfig.MonetaryUnit = programmaticConfig.MonetaryUnit
	}
	if yamlConfig.DefaultBalance == nil {
		yamlConfig.DefaultBalance = programmaticConfig.DefaultBalance
	}
	if yamlConfig.MaxBalance == nil {
		yamlConfig.MaxBalance = programmaticConfig.MaxBalance
	}
	if yamlConfig.AutoSaveInterval == 0 {
		yamlConfig.AutoSaveInterval = programmaticConfig.AutoSaveInterval
	}
	yamlConfig.RequireConfig = programmaticConfig.RequireConfig
	return yamlConfig
}

package economy

import (
	"errors"
	"testing"
	"time"
)

func TestConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}

	if cfg.MonetaryUnit != "￦" {
		t.Errorf("MonetaryUnit: got %q, want ￦", cfg.MonetaryUnit)
	}
	if cfg.DefaultBalance != 1000 {
		t.Errorf("DefaultBalance: got %v, want 1000", cfg.DefaultBalance)
	}
	if cfg.MaxBalance != 10_000_000_000 {
		t.Errorf("MaxBalance: got %v, want 1e10", cfg.MaxBalance)
	}
	if cfg.Provider != ProviderMemory {
		t.Errorf("Provider: got %q, want memory", cfg.Provider)
	}
	if cfg.AutoSaveInterval != 5*time.Minute {
		t.Errorf("AutoSaveInterval: got %v, want 5m", cfg.AutoSaveInterval)
	}
}

func TestConfigEnvOverrides(t *testing.T) {
	t.Setenv("ECONOMY_MONETARY_UNIT", "$")
	t.Setenv("ECONOMY_PROVIDER", "yaml")
	t.Setenv("ECONOMY_DEFAULT_BALANCE", "250.5")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MonetaryUnit != "$" || cfg.Provider != ProviderYAML || cfg.DefaultBalance != 250.5 {
		t.Errorf("overridden config: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	base := Config{
		MonetaryUnit:   "￦",
		DefaultBalance: 1000,
		MaxBalance:     10_000,
		Provider:       ProviderMemory,
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{"valid", func(*Config) {}, nil},
		{"unknown provider", func(c *Config) { c.Provider = "redis" }, ErrUnknownProvider},
		{"negative default", func(c *Config) { c.DefaultBalance = -1 }, ErrInvalidConfig},
		{"zero max", func(c *Config) { c.MaxBalance = 0 }, ErrInvalidConfig},
		{"default above max", func(c *Config) { c.DefaultBalance = 20_000 }, ErrInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate: got %v, want %v", err, tt.wantErr)
			}
		})
	}
}

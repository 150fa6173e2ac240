package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tatianab/wealth-quest/internal/catalog"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Game.Language != "en" || cfg.Game.Currency != "USD" {
		t.Errorf("unexpected game defaults: %+v", cfg.Game)
	}
	if cfg.Log.Level != "info" || cfg.Log.File != "wealthquest.log" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.Game.Seed != 0 || cfg.Autoplay.Cron != "" || cfg.Autoplay.Autopilot {
		t.Errorf("unexpected zero values: %+v", cfg)
	}
	if err := cfg.Validate(catalog.Default()); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wealthquest.yaml")
	data := `
game:
  language: pt
  currency: EUR
  seed: 42
autoplay:
  cron: "@every 5s"
log:
  level: debug
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("WQ_CURRENCY", "BRL")
	t.Setenv("WQ_AUTOPILOT", "true")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Game.Language != "pt" || cfg.Game.Seed != 42 {
		t.Errorf("file values not applied: %+v", cfg.Game)
	}
	if cfg.Game.Currency != "BRL" {
		t.Errorf("Expected env override BRL, got %s", cfg.Game.Currency)
	}
	if !cfg.Autoplay.Autopilot || cfg.Autoplay.Cron != "@every 5s" {
		t.Errorf("unexpected autoplay: %+v", cfg.Autoplay)
	}
	if err := cfg.Validate(catalog.Default()); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadRejectsBadEnv(t *testing.T) {
	t.Setenv("WQ_SEED", "minus one")
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Expected error for bad WQ_SEED")
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("game: [unclosed"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown language", func(c *Config) { c.Game.Language = "xx" }, `game.language "xx"`},
		{"unknown currency", func(c *Config) { c.Game.Currency = "DOGE" }, `game.currency "DOGE"`},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
		{"bad cron", func(c *Config) { c.Autoplay.Cron = "every now and then" }, "autoplay.cron"},
		{"autopilot without cron", func(c *Config) { c.Autoplay.Autopilot = true }, "requires autoplay.cron"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
			if err != nil {
				t.Fatal(err)
			}
			tt.mutate(cfg)
			err = cfg.Validate(catalog.Default())
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Validate() error = %v, want it to mention %q", err, tt.want)
			}
		})
	}
}

func TestCatalogPath(t *testing.T) {
	cfg := &Config{}
	cat, err := cfg.Catalog()
	if err != nil || cat != catalog.Default() {
		t.Errorf("Expected embedded catalog, got %v", err)
	}
	cfg.Game.CatalogPath = filepath.Join(t.TempDir(), "nope.yaml")
	if _, err := cfg.Catalog(); err == nil {
		t.Error("Expected error for missing catalog file")
	}
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/robfig/cron/v3"
	"github.com/tatianab/wealth-quest/internal/catalog"
	"github.com/tatianab/wealth-quest/internal/log"
	"gopkg.in/yaml.v3"
)

// DefaultPath is the config file read when none is given.
const DefaultPath = "wealthquest.yaml"

// Config holds the application configuration.
type Config struct {
	Game struct {
		Language    string `yaml:"language"`
		Currency    string `yaml:"currency"`
		Seed        uint64 `yaml:"seed"`
		CatalogPath string `yaml:"catalog_path"`
	} `yaml:"game"`
	Autoplay struct {
		Cron      string `yaml:"cron"`
		Autopilot bool   `yaml:"autopilot"`
	} `yaml:"autoplay"`
	Log struct {
		Level string `yaml:"level"`
		File  string `yaml:"file"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("WQ_LANGUAGE"); v != "" {
		cfg.Game.Language = v
	}
	if v := os.Getenv("WQ_CURRENCY"); v != "" {
		cfg.Game.Currency = v
	}
	if v := os.Getenv("WQ_SEED"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse WQ_SEED: %w", err)
		}
		cfg.Game.Seed = seed
	}
	if v := os.Getenv("WQ_CATALOG"); v != "" {
		cfg.Game.CatalogPath = v
	}
	if v := os.Getenv("WQ_AUTOPLAY_CRON"); v != "" {
		cfg.Autoplay.Cron = v
	}
	if v := os.Getenv("WQ_AUTOPILOT"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("parse WQ_AUTOPILOT: %w", err)
		}
		cfg.Autoplay.Autopilot = on
	}
	if v := os.Getenv("WQ_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("WQ_LOG_FILE"); v != "" {
		cfg.Log.File = v
	}

	// Defaults
	if cfg.Game.Language == "" {
		cfg.Game.Language = "en"
	}
	if cfg.Game.Currency == "" {
		cfg.Game.Currency = "USD"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = "wealthquest.log"
	}

	return cfg, nil
}

// Catalog loads the configured catalog, or the embedded one.
func (c *Config) Catalog() (*catalog.Catalog, error) {
	if c.Game.CatalogPath == "" {
		return catalog.Default(), nil
	}
	return catalog.Load(c.Game.CatalogPath)
}

// Validate checks the config against the catalog it will run with and
// reports every problem at once.
func (c *Config) Validate(cat *catalog.Catalog) error {
	var errs []error
	if !cat.HasLanguage(c.Game.Language) {
		errs = append(errs, fmt.Errorf("game.language %q is not in the catalog", c.Game.Language))
	}
	if _, ok := cat.Currency(c.Game.Currency); !ok {
		errs = append(errs, fmt.Errorf("game.currency %q is not in the catalog", c.Game.Currency))
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Autoplay.Cron != "" {
		if _, err := cron.ParseStandard(c.Autoplay.Cron); err != nil {
			errs = append(errs, fmt.Errorf("autoplay.cron %q: %w", c.Autoplay.Cron, err))
		}
	}
	if c.Autoplay.Autopilot && c.Autoplay.Cron == "" {
		errs = append(errs, errors.New("autoplay.autopilot requires autoplay.cron"))
	}
	return errors.Join(errs...)
}

package main

import (
	"flag"
	"fmt"
	"io"

	"github.com/tatianab/wealth-quest/internal/catalog"
	"github.com/tatianab/wealth-quest/internal/config"
	"github.com/tatianab/wealth-quest/internal/engine"
	"github.com/tatianab/wealth-quest/internal/i18n"
	"github.com/tatianab/wealth-quest/internal/log"
	"github.com/tatianab/wealth-quest/internal/money"
)

// game bundles what every subcommand needs to run the engine.
type game struct {
	cfg       *config.Config
	catalog   *catalog.Catalog
	tr        *i18n.Translator
	formatter *money.Formatter
	labels    *i18n.Labeler
}

type commonFlags struct {
	configPath string
	seed       uint64
}

func (c *commonFlags) register(f *flag.FlagSet) {
	f.StringVar(&c.configPath, "config", config.DefaultPath, "path to the YAML config file")
	f.Uint64Var(&c.seed, "seed", 0, "random seed, overrides the config (0 keeps it)")
}

func (c *commonFlags) load() (*game, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	if c.seed != 0 {
		cfg.Game.Seed = c.seed
	}
	cat, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(cat); err != nil {
		return nil, fmt.Errorf("invalid config:\n%w", err)
	}

	cur, _ := cat.Currency(cfg.Game.Currency)
	g := &game{
		cfg:       cfg,
		catalog:   cat,
		tr:        i18n.Default(),
		formatter: money.NewFormatter(),
	}
	g.labels, err = i18n.NewLabeler(g.tr, cfg.Game.Language, g.formatter, cur)
	if err != nil {
		return nil, err
	}
	return g, nil
}

// engine builds an engine for seed. Zero means a time-based seed.
func (g *game) engine(seed uint64) *engine.Engine {
	if seed == 0 {
		return engine.New(g.catalog, g.labels)
	}
	return engine.New(g.catalog, g.labels, engine.WithSeed(seed))
}

func (g *game) logger(out io.Writer, component string) *log.Logger {
	level, _ := log.ParseLevel(g.cfg.Log.Level)
	return log.New(log.Config{Level: level, Component: component, Output: out})
}

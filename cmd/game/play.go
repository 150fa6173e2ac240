package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tatianab/wealth-quest/internal/autopilot"
	"github.com/tatianab/wealth-quest/internal/log"
	"github.com/tatianab/wealth-quest/internal/scheduler"
	"github.com/tatianab/wealth-quest/internal/session"
	"github.com/tatianab/wealth-quest/internal/tui"
)

type playCmd struct {
	commonFlags
}

func (*playCmd) Name() string     { return "play" }
func (*playCmd) Synopsis() string { return "play the game in the terminal" }
func (*playCmd) Usage() string {
	return `game play [-config <file>] [-seed n]

  Starts an interactive game. Logs go to the configured log file.
`
}

func (c *playCmd) SetFlags(f *flag.FlagSet) {
	c.commonFlags.register(f)
}

func (c *playCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	g, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	logFile, err := os.OpenFile(g.cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		return subcommands.ExitFailure
	}
	defer logFile.Close()
	logger := g.logger(logFile, log.ComponentApp)
	log.SetDefault(logger)

	sess := session.New(g.engine(g.cfg.Game.Seed), logger)
	pilot := autopilot.Default()

	var sched *scheduler.Scheduler
	if spec := g.cfg.Autoplay.Cron; spec != "" {
		var p *autopilot.Policy
		if g.cfg.Autoplay.Autopilot {
			p = &pilot
		}
		sched, err = scheduler.New(spec, sess, p, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		logger.Info("autoplay enabled", log.FieldSpec, spec, "autopilot", p != nil)
	}

	logger.Info("game started", log.FieldSeed, g.cfg.Game.Seed, "language", g.cfg.Game.Language, "currency", g.cfg.Game.Currency)
	err = tui.Run(tui.Config{
		Session:    sess,
		Translator: g.tr,
		Formatter:  g.formatter,
		Labels:     g.labels,
		Autopilot:  pilot,
		Scheduler:  sched,
		Logger:     logger,
	})
	if err != nil {
		logger.Error("tui failed", log.FieldError, err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

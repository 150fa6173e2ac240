package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
	"github.com/tatianab/wealth-quest/internal/advisor"
	"github.com/tatianab/wealth-quest/internal/autopilot"
)

type snapshotCmd struct {
	commonFlags
	months int
}

func (*snapshotCmd) Name() string     { return "snapshot" }
func (*snapshotCmd) Synopsis() string { return "print the advisor snapshot of an autopilot game" }
func (*snapshotCmd) Usage() string {
	return `game snapshot [-months n] [-seed n]

  Plays n months with the autopilot and prints the advisor snapshot as
  YAML, in the configured display currency.
`
}

func (c *snapshotCmd) SetFlags(f *flag.FlagSet) {
	c.commonFlags.register(f)
	f.IntVar(&c.months, "months", 24, "months to play before the snapshot")
}

func (c *snapshotCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.months < 0 {
		fmt.Fprintln(os.Stderr, "Error: -months must not be negative")
		return subcommands.ExitUsageError
	}
	g, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	e := g.engine(g.cfg.Game.Seed)
	s := autopilot.Default().Play(e, e.NewGame(), c.months)
	if err := advisor.Encode(os.Stdout, advisor.Build(s, e, g.labels.Currency())); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

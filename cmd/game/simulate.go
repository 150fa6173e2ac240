package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"text/tabwriter"

	"github.com/google/subcommands"
	"github.com/tatianab/wealth-quest/internal/autopilot"
	"github.com/tatianab/wealth-quest/internal/log"
	"github.com/tatianab/wealth-quest/internal/models"
	"golang.org/x/sync/errgroup"
)

type simulateCmd struct {
	commonFlags
	runs     int
	months   int
	parallel int
	strategy string
}

func (*simulateCmd) Name() string     { return "simulate" }
func (*simulateCmd) Synopsis() string { return "play many games with the autopilot and summarize them" }
func (*simulateCmd) Usage() string {
	return `game simulate [-runs n] [-months n] [-seed n] [-parallel n] [-strategy avalanche|snowball]

  Plays seeded games with the rule-based autopilot and prints the
  distribution of final net worth. Run i uses seed+i.
`
}

func (c *simulateCmd) SetFlags(f *flag.FlagSet) {
	c.commonFlags.register(f)
	f.IntVar(&c.runs, "runs", 100, "number of games")
	f.IntVar(&c.months, "months", 480, "months per game")
	f.IntVar(&c.parallel, "parallel", runtime.GOMAXPROCS(0), "games played at once")
	f.StringVar(&c.strategy, "strategy", string(models.Avalanche), "debt repayment order")
}

// outcome is the end state of one simulated game.
type outcome struct {
	seed      uint64
	netWorth  float64
	debtFree  bool
	job       string
	happiness int
}

func (c *simulateCmd) Execute(ctx context.Context, f *flag.FlagSet, args ...interface{}) subcommands.ExitStatus {
	if c.runs <= 0 || c.months <= 0 || c.parallel <= 0 {
		fmt.Fprintln(os.Stderr, "Error: -runs, -months and -parallel must be positive")
		return subcommands.ExitUsageError
	}
	strategy := models.RepaymentStrategy(c.strategy)
	if strategy != models.Avalanche && strategy != models.Snowball {
		fmt.Fprintf(os.Stderr, "Error: unknown strategy %q\n", c.strategy)
		return subcommands.ExitUsageError
	}
	g, err := c.load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	logger := g.logger(os.Stderr, log.ComponentSimulate)

	base := g.cfg.Game.Seed
	if base == 0 {
		base = 1
	}
	policy := autopilot.Default()
	policy.Strategy = strategy

	results := make([]outcome, c.runs)
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(c.parallel)
	for i := range c.runs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			seed := base + uint64(i)
			e := g.engine(seed)
			s := policy.Play(e, e.NewGame(), c.months)
			results[i] = outcome{
				seed:      seed,
				netWorth:  s.NetWorth,
				debtFree:  s.TotalDebt() == 0,
				job:       s.Income.Job.ID,
				happiness: s.Happiness,
			}
			logger.Debug("run finished", log.FieldSeed, seed, log.FieldNetWorth, s.NetWorth, log.FieldJob, s.Income.Job.ID)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		logger.Error("simulation aborted", log.FieldError, err)
		return subcommands.ExitFailure
	}
	logger.Info("simulation finished", "runs", c.runs, "months", c.months)

	c.report(g, results)
	return subcommands.ExitSuccess
}

func (c *simulateCmd) report(g *game, results []outcome) {
	nw := make([]float64, len(results))
	debtFree := 0
	jobs := map[string]int{}
	for i, r := range results {
		nw[i] = r.netWorth
		if r.debtFree {
			debtFree++
		}
		jobs[r.job]++
	}
	sort.Float64s(nw)

	l := g.labels
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "games\t%d × %d months\n", len(results), c.months)
	for _, p := range []float64{0.1, 0.5, 0.9} {
		fmt.Fprintf(w, "p%.0f %s\t%s\n", p*100, l.Text("app.netWorth", nil), l.Money(percentile(nw, p)))
	}
	fmt.Fprintf(w, "debt free\t%.0f%%\n", 100*float64(debtFree)/float64(len(results)))
	for _, j := range g.catalog.Jobs {
		if n := jobs[j.ID]; n > 0 {
			fmt.Fprintf(w, "%s\t%d\n", l.Name("jobs", j.ID, "title", j.Title), n)
		}
	}
	w.Flush()
}

// percentile picks the nearest-rank value from sorted data.
func percentile(sorted []float64, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	i := int(p*float64(len(sorted)-1) + 0.5)
	return sorted[min(i, len(sorted)-1)]
}

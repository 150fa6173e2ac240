package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/tatianab/wealth-quest/internal/autopilot"
	"github.com/tatianab/wealth-quest/internal/catalog"
	"github.com/tatianab/wealth-quest/internal/engine"
	"github.com/tatianab/wealth-quest/internal/i18n"
	"github.com/tatianab/wealth-quest/internal/money"
)

func main() {
	months := flag.Int("months", 36, "months to play")
	seed := flag.Uint64("seed", 7, "random seed")
	lang := flag.String("lang", "en", "language of the log")
	code := flag.String("currency", "USD", "display currency")
	flag.Parse()

	cat := catalog.Default()
	cur, ok := cat.Currency(*code)
	if !ok {
		log.Fatalf("Unknown currency %q", *code)
	}
	labels, err := i18n.NewLabeler(i18n.Default(), *lang, money.NewFormatter(), cur)
	if err != nil {
		log.Fatalf("Failed to create labeler: %v", err)
	}
	eng := engine.New(cat, labels, engine.WithSeed(*seed))
	player := autopilot.Default()

	state := eng.NewGame()
	fmt.Printf("--- Starting game (seed %d) ---\n", *seed)
	fmt.Printf("Net Worth: %s, Cash: %s\n\n", labels.Money(state.NetWorth), labels.Money(state.Cash))

	for turn := 1; turn <= *months; turn++ {
		fmt.Printf("--- Month %d ---\n", turn)

		// The autopilot moves first, then the month is simulated.
		before := state.History.Logs[0].ID
		next, report := eng.AdvanceMonthReport(player.Step(eng, state))
		state = next

		// Print every new log entry, oldest first.
		var fresh []string
		for _, e := range state.History.Logs {
			if e.ID == before {
				break
			}
			line := e.Message
			if e.Amount != nil {
				line += " (" + labels.Money(*e.Amount) + ")"
			}
			fresh = append(fresh, line)
		}
		for i := len(fresh) - 1; i >= 0; i-- {
			fmt.Printf("  %s\n", fresh[i])
		}

		fmt.Printf("Income %s, Expenses %s, XP +%d\n", labels.Money(report.Income), labels.Money(report.Expenses), report.XP)
		if report.Event != nil {
			fmt.Printf("EVENT: %s\n", labels.Name("events", report.Event.ID, "title", report.Event.Title))
		}
		fmt.Printf("Stats: Net Worth=%s, Cash=%s, Debt=%s, IQ=%d, Happiness=%d, Job=%s\n\n",
			labels.Money(state.NetWorth), labels.Money(state.Cash), labels.Money(state.TotalDebt()),
			state.FinancialIQ, state.Happiness, labels.Name("jobs", state.Income.Job.ID, "title", state.Income.Job.Title))
	}
}

// Package advisor builds the read-only snapshot of a game handed to an
// external financial-advice collaborator. Money is converted into the
// display currency and floored to whole units.
package advisor

import (
	"fmt"
	"io"

	"github.com/tatianab/wealth-quest/internal/engine"
	"github.com/tatianab/wealth-quest/internal/models"
	"github.com/tatianab/wealth-quest/internal/money"
	"gopkg.in/yaml.v3"
)

// highInterestAPR is the rate above which paying down debt beats investing.
const highInterestAPR = 0.08

// Stage thresholds, in base units of net worth.
const (
	survivalCash     = 500
	wealthBuildingNW = 100_000
	financialFreeNW  = 1_000_000
)

const (
	stageSurvival      = "Survival Mode"
	stageEarlyCareer   = "Early Career"
	stageWealth        = "Wealth Building"
	stageFinancialFree = "Financial Freedom"
)

// Snapshot is the advisor's view of one game.
type Snapshot struct {
	Currency      string        `yaml:"currency"`
	Stage         string        `yaml:"stage"`
	Stats         Stats         `yaml:"stats"`
	Portfolio     Portfolio     `yaml:"portfolio"`
	Career        Career        `yaml:"career"`
	Opportunities Opportunities `yaml:"opportunities"`
}

type Stats struct {
	AgeYears        int   `yaml:"age_years"`
	Cash            int64 `yaml:"cash"`
	NetWorth        int64 `yaml:"net_worth"`
	FinancialIQXP   int   `yaml:"financial_iq_xp"`
	MonthlyCashflow int64 `yaml:"monthly_cashflow"`
	Happiness       int   `yaml:"happiness"`
}

type Portfolio struct {
	Assets []Holding `yaml:"assets"`
	Debts  []Loan    `yaml:"debts"`
}

type Holding struct {
	Name       string           `yaml:"name"`
	TotalValue int64            `yaml:"total_value"`
	Type       models.AssetType `yaml:"type"`
	Volatility float64          `yaml:"volatility"`
}

type Loan struct {
	Name       string `yaml:"name"`
	Amount     int64  `yaml:"amount"`
	APR        string `yaml:"apr"`
	MinPayment int64  `yaml:"min_payment"`
}

type Career struct {
	CurrentJob string  `yaml:"current_job"`
	BaseSalary int64   `yaml:"base_salary"`
	NextJob    Opening `yaml:"next_job_opportunity"`
}

// Opening is the next job on the ladder. The zero value means the
// player holds the top job.
type Opening struct {
	Title string
	ReqXP int
}

// MarshalYAML renders the top of the ladder as a plain string.
func (o Opening) MarshalYAML() (any, error) {
	if o.Title == "" {
		return "maxed", nil
	}
	return struct {
		Title string `yaml:"title"`
		ReqXP int    `yaml:"req_xp"`
	}{o.Title, o.ReqXP}, nil
}

type Opportunities struct {
	AffordableUpgrades        []string `yaml:"affordable_upgrades"`
	CanPayOffHighInterestDebt bool     `yaml:"can_pay_off_high_interest_debt"`
}

// Build summarizes s for display currency cur. Monthly cash flow is the
// engine's projection for the coming month.
func Build(s models.GameState, e *engine.Engine, cur models.Currency) Snapshot {
	conv := func(v float64) int64 {
		return money.Convert(v, cur).Floor().IntPart()
	}
	cat := e.Catalog()

	snap := Snapshot{
		Currency: cur.Code,
		Stage:    stage(s),
		Stats: Stats{
			AgeYears:        s.Age / 12,
			Cash:            conv(s.Cash),
			NetWorth:        conv(s.NetWorth),
			FinancialIQXP:   s.FinancialIQ,
			MonthlyCashflow: conv(e.Project(s).Net),
			Happiness:       s.Happiness,
		},
		Career: Career{
			CurrentJob: s.Income.Job.Title,
			BaseSalary: conv(s.Income.Job.BaseSalary),
		},
		Portfolio: Portfolio{
			Assets: make([]Holding, 0, len(s.Assets)),
			Debts:  []Loan{},
		},
		Opportunities: Opportunities{AffordableUpgrades: []string{}},
	}

	for _, a := range s.Assets {
		snap.Portfolio.Assets = append(snap.Portfolio.Assets, Holding{
			Name:       a.Name,
			TotalValue: conv(a.Value * a.Quantity),
			Type:       a.Type,
			Volatility: a.Volatility,
		})
	}

	var highestAPR float64
	for _, d := range models.ActiveDebts(s.Debts) {
		snap.Portfolio.Debts = append(snap.Portfolio.Debts, Loan{
			Name:       d.Name,
			Amount:     conv(d.Principal),
			APR:        fmt.Sprintf("%.1f%%", d.InterestRate*100),
			MinPayment: conv(d.MinPayment),
		})
		highestAPR = max(highestAPR, d.InterestRate)
	}
	snap.Opportunities.CanPayOffHighInterestDebt = s.TotalDebt() > 0 && s.Cash > 0 && highestAPR > highInterestAPR

	if next, ok := cat.NextJob(s.FinancialIQ); ok {
		snap.Career.NextJob = Opening{Title: next.Title, ReqXP: next.ReqSkillLevel}
	}

	for _, sk := range cat.Skills {
		if s.FinancialIQ >= sk.Cost && s.SkillLevel(sk.ID) < sk.MaxLevel {
			snap.Opportunities.AffordableUpgrades = append(snap.Opportunities.AffordableUpgrades,
				fmt.Sprintf("%s (%s) - Cost: %d XP", sk.Name, sk.Description, sk.Cost))
		}
	}
	return snap
}

func stage(s models.GameState) string {
	switch {
	case s.NetWorth < 0 || s.Cash < survivalCash:
		return stageSurvival
	case s.NetWorth > financialFreeNW:
		return stageFinancialFree
	case s.NetWorth > wealthBuildingNW:
		return stageWealth
	}
	return stageEarlyCareer
}

// Encode writes snap as YAML.
func Encode(w io.Writer, snap Snapshot) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(snap); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	return enc.Close()
}

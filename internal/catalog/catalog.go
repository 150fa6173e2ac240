// Package catalog holds the static reference data of the game: jobs,
// skills, loan offers, random events, starting holdings, currencies and
// languages. Entries are addressed by stable ids, except jobs, which are
// also addressed by position.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/tatianab/wealth-quest/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var defaultCatalog []byte

// Start holds the scalar fields of the initial game state.
type Start struct {
	Cash       float64 `yaml:"cash"`
	Happiness  int     `yaml:"happiness"`
	SideHustle float64 `yaml:"side_hustle"`
	Living     float64 `yaml:"living"`
	Lifestyle  float64 `yaml:"lifestyle"`
}

// Catalog is read-only after Parse returns.
type Catalog struct {
	Jobs       []models.Job       `yaml:"jobs"`
	Skills     []models.Skill     `yaml:"skills"`
	Loans      []models.LoanOffer `yaml:"loans"`
	Events     []models.Event     `yaml:"events"`
	Assets     []models.Asset     `yaml:"assets"`
	Debts      []models.Debt      `yaml:"debts"`
	Start      Start              `yaml:"start"`
	Currencies []models.Currency  `yaml:"currencies"`
	Languages  []models.Language  `yaml:"languages"`
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Parse(defaultCatalog)
})

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Load reads a catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the invariants the engine relies on.
func (c *Catalog) Validate() error {
	var errs []error
	if len(c.Jobs) == 0 {
		errs = append(errs, errors.New("catalog: at least one job is required"))
	}
	for i := 1; i < len(c.Jobs); i++ {
		if c.Jobs[i].ReqSkillLevel < c.Jobs[i-1].ReqSkillLevel {
			errs = append(errs, fmt.Errorf("catalog: job %q unlocks before %q", c.Jobs[i].ID, c.Jobs[i-1].ID))
		}
	}
	for _, e := range c.Events {
		if e.Probability < 0 || e.Probability > 0.2 {
			errs = append(errs, fmt.Errorf("catalog: event %q probability %v outside [0, 0.2]", e.ID, e.Probability))
		}
		if (e.Cost > 0) == (e.Bonus > 0) {
			errs = append(errs, fmt.Errorf("catalog: event %q needs exactly one of cost or bonus", e.ID))
		}
	}
	for _, a := range c.Assets {
		if a.Value <= 0 {
			errs = append(errs, fmt.Errorf("catalog: asset %q needs a positive value", a.ID))
		}
	}
	for _, s := range c.Skills {
		switch s.Effect.Kind {
		case models.EffectIncomeBoost, models.EffectExpenseReduction, models.EffectVolatilityReduction:
		default:
			errs = append(errs, fmt.Errorf("catalog: skill %q has unknown effect %q", s.ID, s.Effect.Kind))
		}
	}
	if len(c.Currencies) == 0 {
		errs = append(errs, errors.New("catalog: at least one currency is required"))
	}
	return errors.Join(errs...)
}

// Job returns the job at position i in catalog order.
func (c *Catalog) Job(i int) (models.Job, bool) {
	if i < 0 || i >= len(c.Jobs) {
		return models.Job{}, false
	}
	return c.Jobs[i], true
}

// JobIndex returns the catalog position of a job id, or -1.
func (c *Catalog) JobIndex(id string) int {
	for i, j := range c.Jobs {
		if j.ID == id {
			return i
		}
	}
	return -1
}

// NextJob returns the first job the given IQ has not yet unlocked.
func (c *Catalog) NextJob(financialIQ int) (models.Job, bool) {
	for _, j := range c.Jobs {
		if j.ReqSkillLevel > financialIQ {
			return j, true
		}
	}
	return models.Job{}, false
}

// Skill looks up a skill by id.
func (c *Catalog) Skill(id string) (models.Skill, bool) {
	for _, s := range c.Skills {
		if s.ID == id {
			return s, true
		}
	}
	return models.Skill{}, false
}

// Loan looks up a loan offer by id.
func (c *Catalog) Loan(id string) (models.LoanOffer, bool) {
	for _, l := range c.Loans {
		if l.ID == id {
			return l, true
		}
	}
	return models.LoanOffer{}, false
}

// Currency looks up a currency by ISO code.
func (c *Catalog) Currency(code string) (models.Currency, bool) {
	for _, cur := range c.Currencies {
		if cur.Code == code {
			return cur, true
		}
	}
	return models.Currency{}, false
}

// HasLanguage reports whether code is a selectable language.
func (c *Catalog) HasLanguage(code string) bool {
	for _, l := range c.Languages {
		if l.Code == code {
			return true
		}
	}
	return false
}

// NewGame builds the state of month 0. welcome is the first log message.
func (c *Catalog) NewGame(welcome string) models.GameState {
	s := models.GameState{
		Age:       models.StartAge,
		Cash:      c.Start.Cash,
		Happiness: c.Start.Happiness,
		Income: models.Income{
			Job:        c.Jobs[0],
			SideHustle: c.Start.SideHustle,
		},
		Expenses: models.Expenses{
			Living:    c.Start.Living,
			Lifestyle: c.Start.Lifestyle,
		},
		Assets: append([]models.Asset(nil), c.Assets...),
		Debts:  append([]models.Debt(nil), c.Debts...),
		Skills: make(map[string]int, len(c.Skills)),
	}
	for i := range s.Assets {
		s.Assets[i].Quantity = 0
	}
	for _, sk := range c.Skills {
		s.Skills[sk.ID] = 0
	}
	s.NetWorth = s.ComputeNetWorth()
	s.History = models.History{
		NetWorth: []models.NetWorthPoint{{Month: 0, Value: s.NetWorth}},
		Logs:     []models.LogEntry{{ID: "init", Month: 0, Message: welcome, Type: models.LogInfo}},
	}
	return s
}

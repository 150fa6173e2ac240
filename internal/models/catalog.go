package models

// SkillCategory groups skills in the skill tree.
type SkillCategory string

const (
	CategoryIncome    SkillCategory = "INCOME"
	CategoryInvesting SkillCategory = "INVESTING"
	CategoryMindset   SkillCategory = "MINDSET"
)

// EffectKind says which part of the monthly update a skill modifies.
type EffectKind string

const (
	EffectIncomeBoost         EffectKind = "income_boost"
	EffectExpenseReduction    EffectKind = "expense_reduction"
	EffectVolatilityReduction EffectKind = "volatility_reduction"
)

// SkillEffect is applied once per skill level.
type SkillEffect struct {
	Kind      EffectKind `yaml:"kind"`
	Magnitude float64    `yaml:"magnitude"`
}

// Skill is an entry of the skill tree. Cost is paid in Financial IQ.
type Skill struct {
	ID          string        `yaml:"id"`
	Name        string        `yaml:"name"`
	Description string        `yaml:"description"`
	Cost        int           `yaml:"cost"`
	MaxLevel    int           `yaml:"max_level"`
	Category    SkillCategory `yaml:"category"`
	Effect      SkillEffect   `yaml:"effect"`
}

// LoanOffer is a loan the player can draw from.
type LoanOffer struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	InterestRate float64 `yaml:"interest_rate"`
	MaxAmount    float64 `yaml:"max_amount"`
}

// Event is a random life event. Exactly one of Cost or Bonus is set.
type Event struct {
	ID          string  `yaml:"id"`
	Title       string  `yaml:"title"`
	Description string  `yaml:"description"`
	Cost        float64 `yaml:"cost,omitempty"`
	Bonus       float64 `yaml:"bonus,omitempty"`
	Probability float64 `yaml:"probability"`
}

// Currency describes how base-unit amounts are displayed.
// Rate converts base units into this currency.
type Currency struct {
	Code     string  `yaml:"code"`
	Symbol   string  `yaml:"symbol"`
	Rate     float64 `yaml:"rate"`
	Locale   string  `yaml:"locale"`
	Decimals int     `yaml:"decimals"`
}

// Language is a selectable UI language.
type Language struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
	Flag string `yaml:"flag"`
}

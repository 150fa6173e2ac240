package models

// StartAge is the age in months at month 0 of play (18 years).
const StartAge = 216

// AssetType tags the kind of holding.
type AssetType string

const (
	AssetStock      AssetType = "STOCK"
	AssetRealEstate AssetType = "REAL_ESTATE"
	AssetCrypto     AssetType = "CRYPTO"
	AssetBond       AssetType = "BOND"
)

// LogType classifies an activity log entry.
type LogType string

const (
	LogInfo    LogType = "INFO"
	LogEarning LogType = "EARNING"
	LogExpense LogType = "EXPENSE"
	LogEvent   LogType = "EVENT"
)

// Asset is one holding in the portfolio. Value is the per-unit price.
type Asset struct {
	ID         string    `yaml:"id"`
	Name       string    `yaml:"name"`
	Type       AssetType `yaml:"type"`
	Value      float64   `yaml:"value"`
	Quantity   float64   `yaml:"quantity"`
	GrowthRate float64   `yaml:"growth_rate"` // annualized expected drift
	Volatility float64   `yaml:"volatility"`  // 0-1
}

// Debt is an outstanding obligation.
type Debt struct {
	ID           string  `yaml:"id"`
	Name         string  `yaml:"name"`
	Principal    float64 `yaml:"principal"`
	InterestRate float64 `yaml:"interest_rate"` // annual
	MinPayment   float64 `yaml:"min_payment"`
}

// Job is a career rung. ReqSkillLevel is the Financial IQ needed to unlock it.
type Job struct {
	ID            string  `yaml:"id"`
	Title         string  `yaml:"title"`
	BaseSalary    float64 `yaml:"base_salary"` // annual
	ReqSkillLevel int     `yaml:"req_skill_level"`
}

// LogEntry is one line of the activity log.
type LogEntry struct {
	ID      string   `yaml:"id"`
	Month   int      `yaml:"month"`
	Message string   `yaml:"message"`
	Type    LogType  `yaml:"type"`
	Amount  *float64 `yaml:"amount,omitempty"`
}

// NetWorthPoint is one sample of the net-worth history.
type NetWorthPoint struct {
	Month int     `yaml:"month"`
	Value float64 `yaml:"value"`
}

// Income holds the sources of monthly income.
type Income struct {
	Job        Job     `yaml:"job"`
	SideHustle float64 `yaml:"side_hustle"`
}

// Expenses holds the flat monthly costs.
type Expenses struct {
	Living    float64 `yaml:"living"`
	Lifestyle float64 `yaml:"lifestyle"`
}

// History holds the net-worth series and the activity log (newest first).
type History struct {
	NetWorth []NetWorthPoint `yaml:"net_worth"`
	Logs     []LogEntry      `yaml:"logs"`
}

// GameState is the whole financial state of a play session.
type GameState struct {
	Age         int            `yaml:"age"`
	Cash        float64        `yaml:"cash"`
	NetWorth    float64        `yaml:"net_worth"`
	Happiness   int            `yaml:"happiness"`
	FinancialIQ int            `yaml:"financial_iq"`
	Income      Income         `yaml:"income"`
	Expenses    Expenses       `yaml:"expenses"`
	Assets      []Asset        `yaml:"assets"`
	Debts       []Debt         `yaml:"debts"`
	Skills      map[string]int `yaml:"skills"`
	History     History        `yaml:"history"`
}

// CurrentMonth is the number of months played so far.
func (s GameState) CurrentMonth() int {
	return s.Age - StartAge
}

// Clone returns a deep copy that shares no slices or maps with s.
func (s GameState) Clone() GameState {
	c := s
	c.Assets = append([]Asset(nil), s.Assets...)
	c.Debts = append([]Debt(nil), s.Debts...)
	if s.Skills != nil {
		c.Skills = make(map[string]int, len(s.Skills))
		for k, v := range s.Skills {
			c.Skills[k] = v
		}
	}
	c.History.NetWorth = append([]NetWorthPoint(nil), s.History.NetWorth...)
	c.History.Logs = make([]LogEntry, len(s.History.Logs))
	for i, l := range s.History.Logs {
		if l.Amount != nil {
			amt := *l.Amount
			l.Amount = &amt
		}
		c.History.Logs[i] = l
	}
	return c
}

// AssetsValue is the market value of all holdings.
func (s GameState) AssetsValue() float64 {
	var total float64
	for _, a := range s.Assets {
		total += a.Value * a.Quantity
	}
	return total
}

// TotalDebt is the sum of outstanding principal.
func (s GameState) TotalDebt() float64 {
	var total float64
	for _, d := range s.Debts {
		total += d.Principal
	}
	return total
}

// ComputeNetWorth is cash plus holdings minus debt.
func (s GameState) ComputeNetWorth() float64 {
	return s.Cash + s.AssetsValue() - s.TotalDebt()
}

// SkillLevel returns the level of a skill, 0 when absent.
func (s GameState) SkillLevel(id string) int {
	return s.Skills[id]
}

// AssetIndex returns the position of the asset with the given id, or -1.
func (s GameState) AssetIndex(id string) int {
	for i, a := range s.Assets {
		if a.ID == id {
			return i
		}
	}
	return -1
}

// DebtIndex returns the position of the debt with the given id, or -1.
func (s GameState) DebtIndex(id string) int {
	for i, d := range s.Debts {
		if d.ID == id {
			return i
		}
	}
	return -1
}

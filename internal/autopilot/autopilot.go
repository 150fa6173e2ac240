// Package autopilot plays the game with a fixed set of rules. It is used
// by batch simulations and by scheduled autoplay, and only ever issues
// engine commands, so it cannot break the game's bookkeeping.
package autopilot

import (
	"github.com/tatianab/wealth-quest/internal/engine"
	"github.com/tatianab/wealth-quest/internal/models"
)

// Policy tunes the rules. The zero value is not useful; start from Default.
type Policy struct {
	// Cash kept aside, in months of living costs plus minimum payments.
	BufferMonths float64
	// Order in which extra debt payments are made.
	Strategy models.RepaymentStrategy
	// Debts at or above this rate are paid before investing.
	MinAPR float64
	// Asset that receives the surplus.
	AssetID string
	// Hold Financial IQ for the next promotion instead of learning skills.
	SaveForPromotion bool
}

// Default promotes early, pays expensive debt first and indexes the rest.
func Default() Policy {
	return Policy{
		BufferMonths:     3,
		Strategy:         models.Avalanche,
		MinAPR:           0.06,
		AssetID:          "index_fund",
		SaveForPromotion: true,
	}
}

// Step makes the player's moves for the current month without advancing
// time: promote, learn skills, pay down debt, then invest what is left
// above the cash buffer.
func (p Policy) Step(e *engine.Engine, s models.GameState) models.GameState {
	s = p.promote(e, s)
	s = p.learn(e, s)

	cf := e.Project(s)
	surplus := s.Cash - p.BufferMonths*(cf.Living+cf.DebtPayments)
	if surplus <= 0 {
		return s
	}

	for _, d := range models.SortDebts(models.ActiveDebts(s.Debts), p.Strategy) {
		if surplus <= 0 {
			break
		}
		if d.InterestRate < p.MinAPR {
			continue
		}
		before := s.Cash
		s = e.RepayDebt(s, d.ID, surplus)
		surplus -= before - s.Cash
	}

	if surplus > 0 && p.AssetID != "" {
		s = e.BuyAsset(s, p.AssetID, surplus)
	}
	return s
}

// Play runs Step and AdvanceMonth for the given number of months.
func (p Policy) Play(e *engine.Engine, s models.GameState, months int) models.GameState {
	for range months {
		s = p.Step(e, s)
		s = e.AdvanceMonth(s)
	}
	return s
}

// promote moves to the best job the current Financial IQ unlocks.
func (p Policy) promote(e *engine.Engine, s models.GameState) models.GameState {
	cat := e.Catalog()
	current := cat.JobIndex(s.Income.Job.ID)
	for i := len(cat.Jobs) - 1; i > current; i-- {
		if cat.Jobs[i].ReqSkillLevel <= s.FinancialIQ {
			return e.PromoteJob(s, i)
		}
	}
	return s
}

// learn buys every affordable skill level, in catalog order. With
// SaveForPromotion it waits until the top job is reached.
func (p Policy) learn(e *engine.Engine, s models.GameState) models.GameState {
	cat := e.Catalog()
	if p.SaveForPromotion && cat.JobIndex(s.Income.Job.ID) < len(cat.Jobs)-1 {
		return s
	}
	for _, sk := range cat.Skills {
		for s.SkillLevel(sk.ID) < sk.MaxLevel && s.FinancialIQ >= sk.Cost {
			s = e.LearnSkill(s, sk.ID)
		}
	}
	return s
}

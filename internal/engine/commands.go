package engine

import (
	"math"

	"github.com/tatianab/wealth-quest/internal/models"
)

// validAmount reports whether v is a positive, finite amount of money.
func validAmount(v float64) bool {
	return v > 0 && !math.IsInf(v, 1)
}

// BuyAsset converts cash into units of an asset at its current price.
// Unknown assets, non-positive or non-finite amounts and insufficient cash
// are no-ops.
func (e *Engine) BuyAsset(state models.GameState, assetID string, amt float64) models.GameState {
	i := state.AssetIndex(assetID)
	if i < 0 || !validAmount(amt) || state.Cash < amt || state.Assets[i].Value <= 0 {
		return state
	}
	s := state.Clone()
	a := &s.Assets[i]
	a.Quantity += amt / a.Value
	s.Cash -= amt
	recomputeNetWorth(&s)

	name := e.labels.Name("assets", a.ID, "", a.Name)
	e.addLog(&s, e.labels.Text("logs.bought", map[string]any{"asset": name}), models.LogInfo, s.CurrentMonth(), amount(-amt))
	return s
}

// PromoteJob switches to the job at position jobIndex of the catalog when
// Financial IQ meets its requirement. It does not check that the job is
// the next rung.
func (e *Engine) PromoteJob(state models.GameState, jobIndex int) models.GameState {
	job, ok := e.catalog.Job(jobIndex)
	if !ok || state.FinancialIQ < job.ReqSkillLevel {
		return state
	}
	s := state.Clone()
	s.Income.Job = job

	title := e.labels.Name("jobs", job.ID, "title", job.Title)
	e.addLog(&s, e.labels.Text("logs.promoted", map[string]any{"job": title}), models.LogEarning, s.CurrentMonth(), nil)
	return s
}

// RepayDebt pays down a debt by min(requested, cash, principal).
func (e *Engine) RepayDebt(state models.GameState, debtID string, requested float64) models.GameState {
	i := state.DebtIndex(debtID)
	if i < 0 || !validAmount(requested) || state.Debts[i].Principal <= 0 {
		return state
	}
	payment := min(requested, state.Cash, state.Debts[i].Principal)
	if payment <= 0 {
		return state
	}

	s := state.Clone()
	d := &s.Debts[i]
	s.Cash -= payment
	d.Principal -= payment

	name := e.labels.Name("loans", d.ID, "", d.Name)
	if d.Principal < payoffEpsilon {
		d.Principal = 0
		e.addLog(&s, e.labels.Text("logs.paidOff", map[string]any{"debt": name}), models.LogInfo, s.CurrentMonth(), amount(-payment))
	} else {
		msg := e.labels.Text("logs.extraPay", map[string]any{"debt": name, "amt": e.labels.Money(payment)})
		e.addLog(&s, msg, models.LogExpense, s.CurrentMonth(), amount(-payment))
	}
	recomputeNetWorth(&s)
	return s
}

// TakeLoan borrows amt. Drawing again on an existing loan id adds to its
// principal and keeps its original rate. Non-finite amounts or rates are
// no-ops.
func (e *Engine) TakeLoan(state models.GameState, loanID, name string, amt, interestRate float64) models.GameState {
	if !validAmount(amt) || math.IsNaN(interestRate) || math.IsInf(interestRate, 0) {
		return state
	}
	s := state.Clone()
	if i := s.DebtIndex(loanID); i >= 0 {
		s.Debts[i].Principal += amt
	} else {
		s.Debts = append(s.Debts, models.Debt{
			ID:           loanID,
			Name:         name,
			Principal:    amt,
			InterestRate: interestRate,
		})
	}
	s.Cash += amt

	label := e.labels.Name("loans", loanID, "", name)
	msg := e.labels.Text("logs.borrowed", map[string]any{"debt": label, "amt": e.labels.Money(amt)})
	e.addLog(&s, msg, models.LogEarning, s.CurrentMonth(), amount(amt))
	recomputeNetWorth(&s)
	return s
}

// TakeLoanOffer borrows from a catalog loan offer, capped at its maximum.
func (e *Engine) TakeLoanOffer(state models.GameState, loanID string, amt float64) models.GameState {
	offer, ok := e.catalog.Loan(loanID)
	if !ok {
		return state
	}
	return e.TakeLoan(state, offer.ID, offer.Name, min(amt, offer.MaxAmount), offer.InterestRate)
}

// LearnSkill spends Financial IQ on the next level of a skill. Unknown
// skills, maxed skills and unaffordable costs are no-ops.
func (e *Engine) LearnSkill(state models.GameState, skillID string) models.GameState {
	sk, ok := e.catalog.Skill(skillID)
	if !ok {
		return state
	}
	level := state.SkillLevel(skillID)
	if level >= sk.MaxLevel || state.FinancialIQ < sk.Cost {
		return state
	}
	s := state.Clone()
	if s.Skills == nil {
		s.Skills = make(map[string]int)
	}
	s.FinancialIQ -= sk.Cost
	s.Skills[skillID] = level + 1

	name := e.labels.Name("skills", sk.ID, "name", sk.Name)
	msg := e.labels.Text("logs.learned", map[string]any{"skill": name, "level": level + 1})
	e.addLog(&s, msg, models.LogInfo, s.CurrentMonth(), nil)
	return s
}

package engine

import (
	"strings"

	"github.com/tatianab/wealth-quest/internal/models"
)

const (
	// Share of asset volatility that reaches a single month's move.
	volatilityDamping = 0.1
	// Dynamic minimum payment as a share of outstanding principal.
	minPaymentRate = 0.025
	// Balances below this are treated as paid off.
	payoffEpsilon = 0.01
	// Monthly expense creep as a share of positive net worth.
	wealthCreepRate = 0.0005
	// Monthly chance that a random event is drawn at all.
	eventChance = 0.15
	// Weight applied to an event's own probability once drawn.
	eventWeight = 5
	// Id prefix of overdraft notices, independent of the display language.
	overdraftIDPrefix = "overdraft-"
)

// Report itemizes one simulated month.
type Report struct {
	Month            int
	Income           float64
	Expenses         float64
	DebtPayments     float64
	WealthCreep      float64
	InvestmentGrowth float64
	XP               int
	Event            *models.Event
}

// AdvanceMonth simulates one month: income, asset moves, debt service,
// living costs, experience and mood, a possible random event, and the
// net-worth bookkeeping. It never fails.
func (e *Engine) AdvanceMonth(state models.GameState) models.GameState {
	s, _ := e.AdvanceMonthReport(state)
	return s
}

// AdvanceMonthReport is AdvanceMonth that also itemizes the month.
func (e *Engine) AdvanceMonthReport(state models.GameState) (models.GameState, Report) {
	s := state.Clone()
	month := s.CurrentMonth()
	r := Report{Month: month}

	// Income
	totalIncome := e.monthlySalary(s) + s.Income.SideHustle

	// Asset revaluation. Quantity never changes here; the growth of held
	// units is captured through the new price.
	volScale := e.volatilityFactor(s)
	for i := range s.Assets {
		a := &s.Assets[i]
		monthlyRate := a.GrowthRate / 12
		volatility := (e.rng.Float64() - 0.5) * 2 * a.Volatility * volScale
		change := monthlyRate + volatility*volatilityDamping
		if a.Quantity > 0 {
			r.InvestmentGrowth += a.Value * a.Quantity * change
		}
		a.Value *= 1 + change
	}

	// Debt service: interest compounds before the payment is applied.
	var totalDebtPayments float64
	var details []string
	for i := range s.Debts {
		d := &s.Debts[i]
		if d.Principal <= 0 {
			continue
		}
		payment, balance := debtService(*d)
		totalDebtPayments += payment

		name := e.labels.Name("loans", d.ID, "", d.Name)
		if payment > 0 {
			details = append(details, name+": "+e.labels.Money(payment))
		}
		if balance < payoffEpsilon {
			balance = 0
			e.addLog(&s, e.labels.Text("logs.paidOffAuto", map[string]any{"debt": name}), models.LogInfo, month, amount(-payment))
		}
		d.Principal = balance
	}
	if len(details) > 0 && totalDebtPayments > 0 {
		msg := e.labels.Text("logs.debtPayments", map[string]any{"details": strings.Join(details, ", ")})
		e.addLog(&s, msg, models.LogExpense, month, amount(-totalDebtPayments))
	}

	// Living expenses rise slightly with (last month's) net worth.
	wealthCreep := max(0, s.NetWorth) * wealthCreepRate * e.creepFactor(s)
	totalExpenses := s.Expenses.Living + s.Expenses.Lifestyle + wealthCreep + totalDebtPayments

	s.Cash += totalIncome - totalExpenses

	// Experience and mood
	xp := 10
	if totalIncome > 0 {
		savingsRate := (totalIncome - totalExpenses) / totalIncome
		if savingsRate > 0.2 {
			xp += 50
		}
		if savingsRate > 0.5 {
			xp += 100
		}
	}
	s.FinancialIQ += xp
	r.Income, r.Expenses, r.DebtPayments, r.WealthCreep, r.XP = totalIncome, totalExpenses, totalDebtPayments, wealthCreep, xp

	if s.Cash < 0 {
		s.Happiness = max(0, s.Happiness-10)
		if len(s.History.Logs) == 0 || !strings.HasPrefix(s.History.Logs[0].ID, overdraftIDPrefix) {
			e.addLog(&s, e.labels.Text("logs.overdraft", nil), models.LogInfo, month, nil)
			s.History.Logs[0].ID = overdraftIDPrefix + s.History.Logs[0].ID
		}
	} else {
		s.Happiness = min(100, s.Happiness+1)
	}

	r.Event = e.randomEvent(&s, month)

	recomputeNetWorth(&s)
	recordNetWorth(&s, month+1)

	if month > 0 && month%12 == 0 {
		msg := e.labels.Text("logs.yearComplete", map[string]any{
			"year": month / 12,
			"nw":   e.labels.Money(s.NetWorth),
		})
		e.addLog(&s, msg, models.LogInfo, month, nil)
	}

	s.Age++
	return s, r
}

// debtService returns the month's payment on d and the balance left after
// interest accrues and the payment is applied.
func debtService(d models.Debt) (payment, balance float64) {
	balance = d.Principal + d.Principal*d.InterestRate/12
	payment = min(max(d.MinPayment, d.Principal*minPaymentRate), balance)
	return payment, balance - payment
}

// randomEvent fires at most one catalog event. The effective chance of a
// given event is eventChance × its probability × eventWeight, split
// uniformly across the catalog.
func (e *Engine) randomEvent(s *models.GameState, month int) *models.Event {
	events := e.catalog.Events
	if len(events) == 0 || e.rng.Float64() >= eventChance {
		return nil
	}
	idx := min(int(e.rng.Float64()*float64(len(events))), len(events)-1)
	ev := events[idx]
	if e.rng.Float64() >= ev.Probability*eventWeight {
		return nil
	}

	msg := e.labels.Text("logs.event", map[string]any{
		"title":       e.labels.Name("events", ev.ID, "title", ev.Title),
		"description": e.labels.Name("events", ev.ID, "description", ev.Description),
	})
	switch {
	case ev.Cost > 0:
		s.Cash -= ev.Cost
		e.addLog(s, msg, models.LogExpense, month, amount(-ev.Cost))
	case ev.Bonus > 0:
		s.Cash += ev.Bonus
		e.addLog(s, msg, models.LogEarning, month, amount(ev.Bonus))
	}
	return &ev
}

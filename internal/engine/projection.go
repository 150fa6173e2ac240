package engine

import "github.com/tatianab/wealth-quest/internal/models"

// Cashflow is the expected cash movement of the coming month, before
// random asset moves, wealth creep and events.
type Cashflow struct {
	Income       float64
	Living       float64
	DebtPayments float64
	Net          float64
}

// Project computes the cash flow the next AdvanceMonth will apply, using
// the same salary and minimum-payment rules. It does not draw randomness.
func (e *Engine) Project(s models.GameState) Cashflow {
	cf := Cashflow{
		Income: e.monthlySalary(s) + s.Income.SideHustle,
		Living: s.Expenses.Living + s.Expenses.Lifestyle,
	}
	for _, d := range s.Debts {
		if d.Principal <= 0 {
			continue
		}
		payment, _ := debtService(d)
		cf.DebtPayments += payment
	}
	cf.Net = cf.Income - cf.Living - cf.DebtPayments
	return cf
}

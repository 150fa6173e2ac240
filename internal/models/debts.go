package models

import "sort"

// RepaymentStrategy orders debts for extra payments.
type RepaymentStrategy string

const (
	// Avalanche pays the highest interest rate first.
	Avalanche RepaymentStrategy = "avalanche"
	// Snowball pays the smallest balance first.
	Snowball RepaymentStrategy = "snowball"
)

// SortDebts returns a copy of debts ordered by the strategy. Ties keep input order.
func SortDebts(debts []Debt, strategy RepaymentStrategy) []Debt {
	sorted := append([]Debt(nil), debts...)
	switch strategy {
	case Snowball:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].Principal < sorted[j].Principal
		})
	default:
		sort.SliceStable(sorted, func(i, j int) bool {
			return sorted[i].InterestRate > sorted[j].InterestRate
		})
	}
	return sorted
}

// ActiveDebts filters out debts that are fully paid.
func ActiveDebts(debts []Debt) []Debt {
	var active []Debt
	for _, d := range debts {
		if d.Principal > 0 {
			active = append(active, d)
		}
	}
	return active
}

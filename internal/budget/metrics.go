// Package budget computes spending metrics over budgets and validates new
// budgets coming from forms or flags.
package budget

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bizdash/internal/model"
)

var (
	hundred          = decimal.NewFromInt(100)
	warningThreshold = decimal.NewFromInt(80)
)

// TotalSpent sums spending across all categories.
func TotalSpent(b model.Budget) decimal.Decimal {
	total := decimal.Zero
	for _, c := range b.Categories {
		total = total.Add(c.Spent)
	}
	return total
}

// TotalAllocated sums the allocations across all categories.
func TotalAllocated(b model.Budget) decimal.Decimal {
	total := decimal.Zero
	for _, c := range b.Categories {
		total = total.Add(c.Allocated)
	}
	return total
}

// Variance is the budget total minus total spent. Positive means under
// budget, negative means over.
func Variance(b model.Budget) decimal.Decimal {
	return b.TotalAmount.Sub(TotalSpent(b))
}

// Utilization returns spent/allocated as a percentage. ok is false when
// nothing was allocated and the ratio is undefined.
func Utilization(c model.BudgetCategory) (pct decimal.Decimal, ok bool) {
	if c.Allocated.IsZero() {
		return decimal.Zero, false
	}
	return c.Spent.Div(c.Allocated).Mul(hundred), true
}

// CategoryStatus classifies a category: over above 100% utilization,
// warning above 80%, ok otherwise. Exactly 80% and 100% fall in the lower
// bucket. A category with no allocation is over as soon as anything is
// spent.
func CategoryStatus(c model.BudgetCategory) model.CategoryStatus {
	pct, ok := Utilization(c)
	if !ok {
		if c.Spent.IsPositive() {
			return model.CategoryOver
		}
		return model.CategoryOK
	}

	switch {
	case pct.GreaterThan(hundred):
		return model.CategoryOver
	case pct.GreaterThan(warningThreshold):
		return model.CategoryWarning
	default:
		return model.CategoryOK
	}
}

// Standing describes which side of the total a budget sits on.
type Standing int

// Budget standings by variance sign.
const (
	OverBudget Standing = iota - 1
	OnBudget
	UnderBudget
)

// VarianceStanding maps a variance to its standing.
func VarianceStanding(variance decimal.Decimal) Standing {
	return Standing(variance.Sign())
}

func (s Standing) String() string {
	switch s {
	case OverBudget:
		return "over budget"
	case UnderBudget:
		return "under budget"
	default:
		return "on budget"
	}
}

// CategoryLine is a rendered-ready view of one category.
type CategoryLine struct {
	Category    model.BudgetCategory
	Utilization decimal.Decimal
	Defined     bool // false when Allocated is zero
	Remaining   decimal.Decimal
	Status      model.CategoryStatus
}

// Summary holds every derived figure the budget views display.
type Summary struct {
	TotalAmount    decimal.Decimal
	TotalAllocated decimal.Decimal
	TotalSpent     decimal.Decimal
	Variance       decimal.Decimal
	Standing       Standing
	Unallocated    decimal.Decimal
	Lines          []CategoryLine
	OverCount      int
	WarningCount   int
}

// Summarize computes totals and per-category lines for b.
func Summarize(b model.Budget) Summary {
	s := Summary{
		TotalAmount:    b.TotalAmount,
		TotalAllocated: TotalAllocated(b),
		TotalSpent:     TotalSpent(b),
		Variance:       Variance(b),
		Lines:          make([]CategoryLine, 0, len(b.Categories)),
	}
	s.Standing = VarianceStanding(s.Variance)
	s.Unallocated = b.TotalAmount.Sub(s.TotalAllocated)

	for _, c := range b.Categories {
		pct, ok := Utilization(c)
		line := CategoryLine{
			Category:    c,
			Utilization: pct,
			Defined:     ok,
			Remaining:   c.Allocated.Sub(c.Spent),
			Status:      CategoryStatus(c),
		}
		switch line.Status {
		case model.CategoryOver:
			s.OverCount++
		case model.CategoryWarning:
			s.WarningCount++
		}
		s.Lines = append(s.Lines, line)
	}
	return s
}

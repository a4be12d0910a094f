package budget

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/bizdash/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func category(name, allocated, spent string) model.BudgetCategory {
	return model.BudgetCategory{Name: name, Allocated: dec(allocated), Spent: dec(spent)}
}

func marketingBudget() model.Budget {
	return model.Budget{
		ID:          "b-1",
		Name:        "Marketing Budget 2024",
		TotalAmount: dec("50000"),
		Period:      model.PeriodYearly,
		Status:      model.StatusActive,
		Categories: []model.BudgetCategory{
			category("Digital Advertising", "20000", "15000"),
			category("Content Creation", "15000", "8000"),
			category("Events & Conferences", "10000", "12000"),
			category("Tools & Software", "5000", "3500"),
		},
	}
}

func TestTotalSpentAndVariance(t *testing.T) {
	b := marketingBudget()

	assert.True(t, TotalSpent(b).Equal(dec("38500")), "TotalSpent = %s", TotalSpent(b))
	assert.True(t, Variance(b).Equal(dec("11500")), "Variance = %s", Variance(b))
	assert.True(t, TotalAllocated(b).Equal(dec("50000")))
}

func TestTotalSpentEmptyCategories(t *testing.T) {
	b := model.Budget{TotalAmount: dec("100")}
	assert.True(t, TotalSpent(b).IsZero())
	assert.True(t, Variance(b).Equal(dec("100")))
}

func TestVarianceIdentity(t *testing.T) {
	budgets := []model.Budget{
		marketingBudget(),
		{TotalAmount: dec("25000"), Categories: []model.BudgetCategory{
			category("Office Rent", "12000", "12000"),
			category("Utilities", "3000", "2800"),
		}},
		{TotalAmount: dec("10"), Categories: []model.BudgetCategory{category("Over", "5", "40.25")}},
		{TotalAmount: dec("0.3"), Categories: []model.BudgetCategory{
			category("a", "0.1", "0.1"), category("b", "0.2", "0.2"),
		}},
	}
	for _, b := range budgets {
		want := b.TotalAmount.Sub(TotalSpent(b))
		assert.True(t, Variance(b).Equal(want), "budget %q: variance %s, want %s", b.Name, Variance(b), want)
	}
}

func TestVarianceStanding(t *testing.T) {
	assert.Equal(t, UnderBudget, VarianceStanding(dec("1")))
	assert.Equal(t, OnBudget, VarianceStanding(dec("0")))
	assert.Equal(t, OverBudget, VarianceStanding(dec("-0.01")))
	assert.Equal(t, "over budget", OverBudget.String())
}

func TestCategoryStatus(t *testing.T) {
	tests := []struct {
		name      string
		allocated string
		spent     string
		want      model.CategoryStatus
	}{
		{"well under", "20000", "15000", model.CategoryOK},
		{"exactly 80 percent stays ok", "5000", "4000", model.CategoryOK},
		{"just above 80 percent", "5000", "4000.01", model.CategoryWarning},
		{"exactly 100 percent is warning", "12000", "12000", model.CategoryWarning},
		{"just above 100 percent", "100", "100.01", model.CategoryOver},
		{"overspent", "10000", "12000", model.CategoryOver},
		{"nothing spent", "3000", "0", model.CategoryOK},
		{"zero allocation, nothing spent", "0", "0", model.CategoryOK},
		{"zero allocation, some spent", "0", "1", model.CategoryOver},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := category(tt.name, tt.allocated, tt.spent)
			assert.Equal(t, tt.want, CategoryStatus(c))
		})
	}
}

func TestCategoryStatusMatchesRatio(t *testing.T) {
	// Sweep spent from 0 to 150% of allocation in 0.5% steps.
	allocated := dec("200")
	for step := 0; step <= 300; step++ {
		spent := allocated.Mul(decimal.NewFromInt(int64(step))).Div(decimal.NewFromInt(200))
		c := model.BudgetCategory{Allocated: allocated, Spent: spent}
		ratio := spent.Div(allocated)

		var want model.CategoryStatus
		switch {
		case ratio.GreaterThan(dec("1")):
			want = model.CategoryOver
		case ratio.GreaterThan(dec("0.8")):
			want = model.CategoryWarning
		default:
			want = model.CategoryOK
		}
		require.Equal(t, want, CategoryStatus(c), "spent=%s", spent)
	}
}

func TestUtilization(t *testing.T) {
	pct, ok := Utilization(category("Supplies", "5000", "3200"))
	require.True(t, ok)
	assert.True(t, pct.Equal(dec("64")), "pct = %s", pct)

	_, ok = Utilization(category("Empty", "0", "10"))
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	s := Summarize(marketingBudget())

	require.Len(t, s.Lines, 4)
	assert.True(t, s.TotalSpent.Equal(dec("38500")))
	assert.True(t, s.Variance.Equal(dec("11500")))
	assert.True(t, s.Unallocated.IsZero())
	assert.Equal(t, UnderBudget, s.Standing)
	assert.Equal(t, 1, s.OverCount)
	assert.Equal(t, 0, s.WarningCount)

	events := s.Lines[2]
	assert.Equal(t, "Events & Conferences", events.Category.Name)
	assert.Equal(t, model.CategoryOver, events.Status)
	assert.True(t, events.Remaining.Equal(dec("-2000")))
	assert.True(t, events.Utilization.Equal(dec("120")))
}

func TestSnapshot(t *testing.T) {
	b := marketingBudget()
	at := time.Date(2024, 6, 1, 12, 0, 0, 0, time.FixedZone("EST", -5*3600))

	r := Snapshot(b, at)
	assert.True(t, r.TotalSpent.Equal(TotalSpent(b)))
	assert.True(t, r.Variance.Equal(Variance(b)))
	assert.Equal(t, time.UTC, r.GeneratedAt.Location())
	assert.True(t, r.GeneratedAt.Equal(at))

	// The snapshot must not alias the source categories.
	r.Budget.Categories[0].Spent = dec("0")
	assert.True(t, b.Categories[0].Spent.Equal(dec("15000")))
}

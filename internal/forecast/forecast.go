// Package forecast projects revenue, expenses and profit from a history of
// monthly samples.
package forecast

import (
	"cmp"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/model"
)

const (
	// MinSamples is the smallest history Generate accepts.
	MinSamples = 3
	// Window is how many trailing samples feed the growth rate.
	Window = 3

	confidenceStart = 95
	confidenceStep  = 5
	confidenceFloor = 60
)

// HorizonOptions are the horizons offered by the forecast views.
var HorizonOptions = []int{3, 6, 12, 24}

// GrowthRate returns the mean period-over-period relative change of values.
// Fewer than two values yield 0. A zero prior value would make a step
// undefined, so it fails with common.ErrDivisionByZero instead.
func GrowthRate(values []float64) (float64, error) {
	if len(values) < 2 {
		return 0, nil
	}

	var total float64
	for i := 1; i < len(values); i++ {
		prev := values[i-1]
		if prev == 0 {
			return 0, fmt.Errorf("%w: value %d of %d is zero", common.ErrDivisionByZero, i, len(values))
		}
		total += (values[i] - prev) / prev
	}
	return total / float64(len(values)-1), nil
}

// Confidence is the heuristic confidence percentage for the step-th
// projected month: 95 minus 5 per step, never below 60.
func Confidence(step int) int {
	return max(confidenceFloor, confidenceStart-confidenceStep*step)
}

// Generate projects horizon months past the latest sample in history.
// Growth comes from the trailing Window samples and compounds from the
// latest sample's values. The result is deterministic for equal inputs.
func Generate(history []model.HistoricalSample, horizon int) ([]model.ForecastSample, error) {
	if len(history) < MinSamples {
		return nil, fmt.Errorf("%w: need at least %d months, have %d",
			common.ErrInsufficientData, MinSamples, len(history))
	}
	if horizon < 1 {
		return nil, common.Invalid("horizon", "must be at least 1 month, got %d", horizon)
	}

	ordered := slices.Clone(history)
	slices.SortStableFunc(ordered, func(a, b model.HistoricalSample) int {
		return cmp.Compare(a.Month, b.Month)
	})
	recent := ordered[len(ordered)-Window:]

	revenue := make([]float64, len(recent))
	expenses := make([]float64, len(recent))
	for i, s := range recent {
		revenue[i] = s.Revenue
		expenses[i] = s.Expenses
	}

	revenueGrowth, err := GrowthRate(revenue)
	if err != nil {
		return nil, fmt.Errorf("revenue growth: %w", err)
	}
	expenseGrowth, err := GrowthRate(expenses)
	if err != nil {
		return nil, fmt.Errorf("expense growth: %w", err)
	}

	last := ordered[len(ordered)-1]
	anchor, err := time.Parse(model.MonthLayout, last.Month)
	if err != nil {
		return nil, common.Invalid("month", "%q is not a YYYY-MM month", last.Month)
	}

	out := make([]model.ForecastSample, 0, horizon)
	for i := 1; i <= horizon; i++ {
		rev := math.Round(last.Revenue * math.Pow(1+revenueGrowth, float64(i)))
		exp := math.Round(last.Expenses * math.Pow(1+expenseGrowth, float64(i)))
		out = append(out, model.ForecastSample{
			Month:             anchor.AddDate(0, i, 0).Format(model.MonthLayout),
			ProjectedRevenue:  rev,
			ProjectedExpenses: exp,
			ProjectedProfit:   rev - exp,
			Confidence:        Confidence(i),
		})
	}
	return out, nil
}

// Summary totals a projection.
type Summary struct {
	Months        int
	TotalRevenue  float64
	TotalExpenses float64
	TotalProfit   float64
}

// Totals sums projected revenue, expenses and profit.
func Totals(samples []model.ForecastSample) Summary {
	s := Summary{Months: len(samples)}
	for _, f := range samples {
		s.TotalRevenue += f.ProjectedRevenue
		s.TotalExpenses += f.ProjectedExpenses
		s.TotalProfit += f.ProjectedProfit
	}
	return s
}

// ConfidenceBand buckets a confidence percentage for display.
type ConfidenceBand int

// Confidence bands.
const (
	BandLow ConfidenceBand = iota
	BandMedium
	BandHigh
)

// Band returns high at 80% and above, medium from 60%, low below.
func Band(confidence int) ConfidenceBand {
	switch {
	case confidence >= 80:
		return BandHigh
	case confidence >= 60:
		return BandMedium
	default:
		return BandLow
	}
}

func (b ConfidenceBand) String() string {
	switch b {
	case BandHigh:
		return "high"
	case BandMedium:
		return "medium"
	default:
		return "low"
	}
}

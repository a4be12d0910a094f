package pipeline

import (
	"cmp"
	"slices"
	"strconv"

	"github.com/theirongolddev/bizdash/internal/forecast"
	"github.com/theirongolddev/bizdash/internal/model"
)

// AggregateMonths sums samples that share a month, so ledger-style files
// with several rows per month collapse into one sample each. The result is
// ordered by month.
func AggregateMonths(samples []model.HistoricalSample) []model.HistoricalSample {
	type totals struct{ revenue, expenses float64 }
	byMonth := make(map[string]*totals)

	for _, s := range samples {
		t, ok := byMonth[s.Month]
		if !ok {
			t = &totals{}
			byMonth[s.Month] = t
		}
		t.revenue += s.Revenue
		t.expenses += s.Expenses
	}

	out := make([]model.HistoricalSample, 0, len(byMonth))
	for month, t := range byMonth {
		out = append(out, forecast.NewSample(month, t.revenue, t.expenses))
	}
	slices.SortFunc(out, func(a, b model.HistoricalSample) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return out
}

// Plan is the outcome of matching imported months against the history.
type Plan struct {
	Add      []model.HistoricalSample // months the history lacks
	Existing []model.HistoricalSample // months already recorded, left alone
}

// PlanImport splits incoming by whether history already has the month.
// Samples are append-only, so a recorded month is never overwritten.
func PlanImport(history, incoming []model.HistoricalSample) Plan {
	have := make(map[string]struct{}, len(history))
	for _, h := range history {
		have[h.Month] = struct{}{}
	}

	var p Plan
	for _, s := range incoming {
		if _, ok := have[s.Month]; ok {
			p.Existing = append(p.Existing, s)
			continue
		}
		p.Add = append(p.Add, s)
	}
	return p
}

// Input converts a sample back into the form store.AddSample validates.
func Input(s model.HistoricalSample) forecast.SampleInput {
	return forecast.SampleInput{
		Month:    s.Month,
		Revenue:  strconv.FormatFloat(s.Revenue, 'f', -1, 64),
		Expenses: strconv.FormatFloat(s.Expenses, 'f', -1, 64),
	}
}

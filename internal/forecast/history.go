package forecast

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/model"
)

// SampleInput is one month of results as typed by the user.
type SampleInput struct {
	Month    string
	Revenue  string
	Expenses string
}

// NewSample builds a sample with its derived profit.
func NewSample(month string, revenue, expenses float64) model.HistoricalSample {
	return model.HistoricalSample{
		Month:    month,
		Revenue:  revenue,
		Expenses: expenses,
		Profit:   revenue - expenses,
	}
}

// ParseSample validates in. Month must be YYYY-MM; revenue and expenses
// must be present, numeric and non-negative.
func ParseSample(in SampleInput) (model.HistoricalSample, error) {
	var errs []error

	month, err := ParseMonth(in.Month)
	if err != nil {
		errs = append(errs, err)
	}
	revenue, err := parseFigure("revenue", in.Revenue)
	if err != nil {
		errs = append(errs, err)
	}
	expenses, err := parseFigure("expenses", in.Expenses)
	if err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return model.HistoricalSample{}, errors.Join(errs...)
	}
	return NewSample(month, revenue, expenses), nil
}

// ParseMonth normalizes a YYYY-MM month key.
func ParseMonth(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", common.Invalid("month", "is required")
	}
	t, err := time.Parse(model.MonthLayout, s)
	if err != nil {
		return "", common.Invalid("month", "%q is not a YYYY-MM month", s)
	}
	return t.Format(model.MonthLayout), nil
}

func parseFigure(field, s string) (float64, error) {
	s = strings.TrimPrefix(strings.TrimSpace(strings.ReplaceAll(s, ",", "")), "$")
	if s == "" {
		return 0, common.Invalid(field, "is required")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, common.Invalid(field, "%q is not a number", s)
	}
	if v < 0 {
		return 0, common.Invalid(field, "must not be negative")
	}
	return v, nil
}

// Insert returns a new history containing sample, ordered by month. The
// sort is stable, so a duplicate month lands after the existing entry.
func Insert(history []model.HistoricalSample, sample model.HistoricalSample) []model.HistoricalSample {
	out := make([]model.HistoricalSample, 0, len(history)+1)
	out = append(out, history...)
	out = append(out, sample)
	slices.SortStableFunc(out, func(a, b model.HistoricalSample) int {
		return cmp.Compare(a.Month, b.Month)
	})
	return out
}

// AddSample validates in and inserts it into history. history itself is
// never modified; on error it is returned unchanged alongside the error.
func AddSample(history []model.HistoricalSample, in SampleInput) ([]model.HistoricalSample, error) {
	sample, err := ParseSample(in)
	if err != nil {
		return history, err
	}
	return Insert(history, sample), nil
}

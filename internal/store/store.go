// Package store holds the budgets and revenue history a session works on.
package store

import (
	"fmt"

	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/forecast"
	"github.com/theirongolddev/bizdash/internal/model"
)

// Store is the set of collections behind the budget and forecast views.
// Budgets and samples are append-only.
type Store interface {
	// AddBudget stores b and makes it the current budget.
	AddBudget(b model.Budget) error
	// Budgets lists budgets in creation order.
	Budgets() ([]model.Budget, error)
	// SelectBudget makes the budget with the given ID current.
	SelectBudget(id string) error
	// CurrentBudget returns the selected budget, or common.ErrNoBudget.
	CurrentBudget() (model.Budget, error)
	// History lists samples ordered by month.
	History() ([]model.HistoricalSample, error)
	// AddSample validates in and appends it to the history.
	AddSample(in forecast.SampleInput) (model.HistoricalSample, error)
	// AddSamples appends all of ins, or none when any is invalid.
	AddSamples(ins []forecast.SampleInput) ([]model.HistoricalSample, error)
	Close() error
}

func checkBudget(b model.Budget) error {
	if b.ID == "" {
		return common.Invalid("id", "is required")
	}
	if len(b.Categories) == 0 {
		return common.Invalid("categories", "at least one category is required")
	}
	return nil
}

func parseSamples(ins []forecast.SampleInput) ([]model.HistoricalSample, error) {
	samples := make([]model.HistoricalSample, len(ins))
	for i, in := range ins {
		sample, err := forecast.ParseSample(in)
		if err != nil {
			return nil, fmt.Errorf("sample %d: %w", i+1, err)
		}
		samples[i] = sample
	}
	return samples, nil
}

func budgetNotFound(id string) error {
	return fmt.Errorf("selecting budget: %w", &common.NotFoundError{Kind: "budget", Ref: id})
}

package store

import (
	"fmt"
	"sync"

	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/forecast"
	"github.com/theirongolddev/bizdash/internal/model"
)

// Memory keeps everything in process memory for the lifetime of a session.
// It implements Store and pipeline.Tracker.
type Memory struct {
	mu      sync.Mutex
	budgets []model.Budget
	current string
	history []model.HistoricalSample

	imported map[string]model.ImportedFile
}

// NewMemory returns an empty store.
func NewMemory() *Memory {
	return &Memory{}
}

// AddBudget stores a copy of b and selects it.
func (m *Memory) AddBudget(b model.Budget) error {
	if err := checkBudget(b); err != nil {
		return fmt.Errorf("adding budget: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.budgets {
		if existing.ID == b.ID {
			return fmt.Errorf("adding budget: duplicate id %q: %w", b.ID, common.ErrValidation)
		}
	}
	m.budgets = append(m.budgets, b.Clone())
	m.current = b.ID
	return nil
}

// Budgets returns copies in creation order.
func (m *Memory) Budgets() ([]model.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.Budget, len(m.budgets))
	for i, b := range m.budgets {
		out[i] = b.Clone()
	}
	return out, nil
}

// SelectBudget makes the budget with the given ID current.
func (m *Memory) SelectBudget(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.budgets {
		if b.ID == id {
			m.current = id
			return nil
		}
	}
	return budgetNotFound(id)
}

// CurrentBudget returns the selected budget, or common.ErrNoBudget.
func (m *Memory) CurrentBudget() (model.Budget, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, b := range m.budgets {
		if b.ID == m.current {
			return b.Clone(), nil
		}
	}
	return model.Budget{}, common.ErrNoBudget
}

// History returns a copy of the samples ordered by month.
func (m *Memory) History() ([]model.HistoricalSample, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]model.HistoricalSample, len(m.history))
	copy(out, m.history)
	return out, nil
}

// AddSample validates in and inserts it in month order.
func (m *Memory) AddSample(in forecast.SampleInput) (model.HistoricalSample, error) {
	sample, err := forecast.ParseSample(in)
	if err != nil {
		return model.HistoricalSample{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = forecast.Insert(m.history, sample)
	return sample, nil
}

// AddSamples validates every input before inserting any of them.
func (m *Memory) AddSamples(ins []forecast.SampleInput) ([]model.HistoricalSample, error) {
	samples, err := parseSamples(ins)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, sample := range samples {
		m.history = forecast.Insert(m.history, sample)
	}
	return samples, nil
}

// Close is a no-op.
func (m *Memory) Close() error { return nil }

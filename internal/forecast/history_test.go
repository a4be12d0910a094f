package forecast

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/model"
)

func TestParseSample(t *testing.T) {
	s, err := ParseSample(SampleInput{Month: " 2024-07 ", Revenue: "$61,000", Expenses: "38000.50"})
	require.NoError(t, err)

	assert.Equal(t, "2024-07", s.Month)
	assert.Equal(t, 61000.0, s.Revenue)
	assert.Equal(t, 38000.5, s.Expenses)
	assert.Equal(t, s.Revenue-s.Expenses, s.Profit)
}

func TestParseSampleAllowsLoss(t *testing.T) {
	s, err := ParseSample(SampleInput{Month: "2024-07", Revenue: "0", Expenses: "500"})
	require.NoError(t, err)
	assert.Equal(t, -500.0, s.Profit)
}

func TestParseSampleValidation(t *testing.T) {
	tests := []struct {
		name string
		in   SampleInput
	}{
		{"missing month", SampleInput{Revenue: "1", Expenses: "1"}},
		{"bad month", SampleInput{Month: "July 2024", Revenue: "1", Expenses: "1"}},
		{"month out of range", SampleInput{Month: "2024-13", Revenue: "1", Expenses: "1"}},
		{"missing revenue", SampleInput{Month: "2024-07", Expenses: "1"}},
		{"non-numeric expenses", SampleInput{Month: "2024-07", Revenue: "1", Expenses: "abc"}},
		{"negative revenue", SampleInput{Month: "2024-07", Revenue: "-1", Expenses: "1"}},
		{"NaN", SampleInput{Month: "2024-07", Revenue: "NaN", Expenses: "1"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseSample(tt.in)
			assert.ErrorIs(t, err, common.ErrValidation)
		})
	}
}

func TestAddSampleKeepsHistoryUntouchedOnError(t *testing.T) {
	history := firstQuarter()
	got, err := AddSample(history, SampleInput{Month: "2024-04"})
	require.Error(t, err)
	assert.Equal(t, firstQuarter(), got)
}

func TestAddSampleSortsByMonth(t *testing.T) {
	history := firstQuarter()[1:] // Feb, Mar

	got, err := AddSample(history, SampleInput{Month: "2024-01", Revenue: "100000", Expenses: "80000"})
	require.NoError(t, err)

	months := []string{got[0].Month, got[1].Month, got[2].Month}
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, months)
	assert.Len(t, history, 2, "input slice must not grow")
	assert.Equal(t, "2024-02", history[0].Month)
}

func TestAddSampleDuplicateMonthKeepsInsertionOrder(t *testing.T) {
	history := firstQuarter()

	got, err := AddSample(history, SampleInput{Month: "2024-02", Revenue: "1", Expenses: "2"})
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, "2024-02", got[1].Month)
	assert.Equal(t, 110000.0, got[1].Revenue, "existing entry stays first")
	assert.Equal(t, "2024-02", got[2].Month)
	assert.Equal(t, 1.0, got[2].Revenue, "new entry follows")
}

func TestInsertAnyOrderStaysSorted(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 50; trial++ {
		var history []model.HistoricalSample
		for _, i := range rng.Perm(18) {
			month := fmt.Sprintf("%04d-%02d", 2023+i/12, i%12+1)
			history = Insert(history, NewSample(month, float64(i), 0))
		}
		require.Len(t, history, 18)
		for i := 1; i < len(history); i++ {
			require.LessOrEqual(t, history[i-1].Month, history[i].Month, "trial %d", trial)
		}
	}
}

func TestSnapshot(t *testing.T) {
	at := time.Date(2024, 4, 1, 8, 0, 0, 0, time.Local)
	r := Snapshot(nil, nil, 6, at)
	assert.NotNil(t, r.HistoricalData)
	assert.NotNil(t, r.ForecastData)
	assert.Equal(t, 6, r.ForecastPeriod)
	assert.True(t, r.GeneratedAt.Equal(at))
	assert.Equal(t, time.UTC, r.GeneratedAt.Location())
}

package export

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/bizdash/internal/budget"
	"github.com/theirongolddev/bizdash/internal/forecast"
	"github.com/theirongolddev/bizdash/internal/model"
)

func sampleBudget(t *testing.T) model.Budget {
	t.Helper()
	b, err := budget.New(budget.Draft{
		Name:        "Operations  Budget Q1",
		TotalAmount: "25000",
		Period:      "quarterly",
		StartDate:   "2024-01-01",
		EndDate:     "2024-03-31",
		Categories: []budget.CategoryDraft{
			{Name: "Office Rent", Allocated: "12000", Spent: "12000"},
			{Name: "Utilities", Allocated: "3000", Spent: "2800.55"},
			{Name: "Supplies", Allocated: "5000", Spent: "3200"},
			{Name: "Maintenance", Allocated: "5000", Spent: "1500"},
		},
	}, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return b
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "budget-report-marketing-budget-2024.json", BudgetFileName("Marketing Budget 2024"))
	assert.Equal(t, "budget-report-operations-budget-q1.json", BudgetFileName("  Operations \t Budget  Q1 "))
	assert.Equal(t, "budget-report-untitled.json", BudgetFileName("   "))

	at := time.Date(2024, 7, 4, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "financial-forecast-2024-07-04.json", ForecastFileName(at))
}

func TestBudgetReportRoundTrip(t *testing.T) {
	b := sampleBudget(t)
	report := budget.Snapshot(b, time.Date(2024, 2, 1, 10, 0, 0, 0, time.UTC))

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, report))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{"budget", "totalSpent", "variance", "generatedAt"} {
		assert.Contains(t, raw, key)
	}
	assert.JSONEq(t, `"2024-02-01T10:00:00Z"`, string(raw["generatedAt"]))

	var decoded budget.Report
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.True(t, decoded.TotalSpent.Equal(budget.TotalSpent(b)), "totalSpent %s", decoded.TotalSpent)
	assert.True(t, decoded.Variance.Equal(budget.Variance(b)), "variance %s", decoded.Variance)
	assert.True(t, decoded.Variance.Equal(decimal.RequireFromString("5499.45")))

	// Recomputing from the decoded budget agrees with the stored figures.
	assert.True(t, budget.TotalSpent(decoded.Budget).Equal(decoded.TotalSpent))
	assert.True(t, budget.Variance(decoded.Budget).Equal(decoded.Variance))
	assert.Equal(t, "2024-03-31", decoded.Budget.EndDate.String())
	assert.Equal(t, b.ID, decoded.Budget.ID)
}

func TestBudgetReportMoneyIsNumeric(t *testing.T) {
	b := sampleBudget(t)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, budget.Snapshot(b, time.Now())))

	var raw map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	assert.IsType(t, float64(0), raw["totalSpent"])
	assert.IsType(t, float64(0), raw["variance"])
	assert.InDelta(t, 19500.55, raw["totalSpent"], 1e-9)
	assert.InDelta(t, 5499.45, raw["variance"], 1e-9)

	doc, ok := raw["budget"].(map[string]any)
	require.True(t, ok)
	assert.IsType(t, float64(0), doc["totalAmount"])
	assert.Equal(t, 25000.0, doc["totalAmount"])

	categories, ok := doc["categories"].([]any)
	require.True(t, ok)
	require.Len(t, categories, 4)
	for _, c := range categories {
		cat := c.(map[string]any)
		assert.IsType(t, float64(0), cat["allocated"], "allocated of %v", cat["name"])
		assert.IsType(t, float64(0), cat["spent"], "spent of %v", cat["name"])
	}
}

func TestForecastReportKeys(t *testing.T) {
	history := []model.HistoricalSample{
		forecast.NewSample("2024-01", 100000, 80000),
		forecast.NewSample("2024-02", 110000, 82000),
		forecast.NewSample("2024-03", 121000, 84000),
	}
	projection, err := forecast.Generate(history, 3)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, forecast.Snapshot(history, projection, 3, time.Now())))

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &raw))
	for _, key := range []string{"historicalData", "forecastData", "generatedAt", "forecastPeriod"} {
		assert.Contains(t, raw, key)
	}
	assert.Equal(t, "3", string(raw["forecastPeriod"]))
	assert.True(t, strings.HasPrefix(buf.String(), "{\n  \""), "two-space indent")
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")
	b := sampleBudget(t)

	path, err := WriteFile(dir, BudgetFileName(b.Name), budget.Snapshot(b, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "budget-report-operations-budget-q1.json"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded budget.Report
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, b.Name, decoded.Budget.Name)

	// Overwrite in place and leave no temp files behind.
	_, err = WriteFile(dir, BudgetFileName(b.Name), budget.Snapshot(b, time.Now()))
	require.NoError(t, err)
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

package source

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/model"
)

// writeFile creates name in a temp dir and returns a DiscoveredFile for it.
func writeFile(t *testing.T, name string, lines ...string) DiscoveredFile {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), 0o600))
	format, ok := formatFor(path)
	require.True(t, ok)
	return DiscoveredFile{Path: path, Format: format}
}

func months(samples []model.HistoricalSample) []string {
	out := make([]string, len(samples))
	for i, s := range samples {
		out[i] = s.Month
	}
	return out
}

func TestParseFile_CSV(t *testing.T) {
	df := writeFile(t, "q1.csv",
		"Month,Revenue,Expenses,Notes",
		"2024-01,100000,80000,launch",
		`2024-02,"110,000",82000,`,
		"2024-03,121000,84000",
	)

	res := ParseFile(df)
	require.NoError(t, res.Err)
	assert.Zero(t, res.ParseErrors)
	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, months(res.Samples))
	assert.Equal(t, 110000.0, res.Samples[1].Revenue)
	assert.Equal(t, 28000.0, res.Samples[1].Profit)
}

func TestParseFile_CSVDateColumn(t *testing.T) {
	df := writeFile(t, "ledger.csv",
		"date,revenue,expenses",
		"2024-01-15,500,200",
		"2024-01-31,250,100",
		"15/02/2024,1,1",
	)

	res := ParseFile(df)
	require.NoError(t, res.Err)
	assert.Equal(t, 1, res.ParseErrors)
	assert.Equal(t, []string{"2024-01", "2024-01"}, months(res.Samples))
}

func TestParseFile_CSVBadRows(t *testing.T) {
	df := writeFile(t, "bad.csv",
		"month,revenue,expenses",
		"2024-01,100",
		"2024-02,abc,10",
		"2024-03,-5,10",
		"2024-04,10,10",
	)

	res := ParseFile(df)
	require.NoError(t, res.Err)
	assert.Equal(t, 3, res.ParseErrors)
	assert.Equal(t, []string{"2024-04"}, months(res.Samples))
}

func TestParseFile_CSVMissingColumn(t *testing.T) {
	df := writeFile(t, "bad.csv", "month,revenue", "2024-01,100")

	res := ParseFile(df)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, common.ErrValidation)
}

func TestParseFile_JSONL(t *testing.T) {
	df := writeFile(t, "figures.jsonl",
		`{"month":"2024-01","revenue":100000,"expenses":80000}`,
		``,
		`{"date":"2024-02-10","revenue":"110000","expenses":82000}`,
		`not json at all`,
		`{"month":"2024-03","revenue":121000}`,
	)

	res := ParseFile(df)
	require.NoError(t, res.Err)
	assert.Equal(t, 2, res.ParseErrors)
	assert.Equal(t, []string{"2024-01", "2024-02"}, months(res.Samples))
}

func TestParseFile_ForecastReport(t *testing.T) {
	df := writeFile(t, "financial-forecast-2024-04-10.json", `{
  "historicalData": [
    {"month": "2024-02", "revenue": 110000, "expenses": 82000, "profit": 1},
    {"month": "2024-01", "revenue": 100000, "expenses": 80000, "profit": 20000}
  ],
  "forecastData": [],
  "generatedAt": "2024-04-10T12:00:00Z",
  "forecastPeriod": 6
}`)

	res := ParseFile(df)
	require.NoError(t, res.Err)
	require.Len(t, res.Samples, 2)
	assert.Equal(t, 28000.0, res.Samples[0].Profit, "profit is recomputed, not trusted")
}

func TestParseFile_BudgetReportRejected(t *testing.T) {
	df := writeFile(t, "budget-report-ops.json", `{"budget": {"id": "x"}, "totalSpent": "1", "variance": "2"}`)

	res := ParseFile(df)
	assert.ErrorIs(t, res.Err, common.ErrValidation)
}

func TestParseFile_EmptyFile(t *testing.T) {
	res := ParseFile(writeFile(t, "empty.csv"))
	require.NoError(t, res.Err)
	assert.Empty(t, res.Samples)
}

func TestParseFile_Missing(t *testing.T) {
	res := ParseFile(DiscoveredFile{Path: filepath.Join(t.TempDir(), "nope.csv")})
	assert.Error(t, res.Err)
}

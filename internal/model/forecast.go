package model

// MonthLayout is the year-month key format used by samples.
const MonthLayout = "2006-01"

// HistoricalSample is one month of recorded results. Profit is always
// Revenue - Expenses; construct samples through the forecast package.
type HistoricalSample struct {
	Month    string  `json:"month"`
	Revenue  float64 `json:"revenue"`
	Expenses float64 `json:"expenses"`
	Profit   float64 `json:"profit"`
}

// ForecastSample is one projected month.
type ForecastSample struct {
	Month             string  `json:"month"`
	ProjectedRevenue  float64 `json:"projectedRevenue"`
	ProjectedExpenses float64 `json:"projectedExpenses"`
	ProjectedProfit   float64 `json:"projectedProfit"`
	Confidence        int     `json:"confidence"` // percent
}

package forecast

import (
	"slices"
	"time"

	"github.com/theirongolddev/bizdash/internal/model"
)

// Report is the exported snapshot of the forecast view.
type Report struct {
	HistoricalData []model.HistoricalSample `json:"historicalData"`
	ForecastData   []model.ForecastSample   `json:"forecastData"`
	GeneratedAt    time.Time                `json:"generatedAt"`
	ForecastPeriod int                      `json:"forecastPeriod"`
}

// Snapshot bundles history and a projection into a Report stamped at at.
func Snapshot(history []model.HistoricalSample, projection []model.ForecastSample, horizon int, at time.Time) Report {
	r := Report{
		HistoricalData: slices.Clone(history),
		ForecastData:   slices.Clone(projection),
		GeneratedAt:    at.UTC(),
		ForecastPeriod: horizon,
	}
	if r.HistoricalData == nil {
		r.HistoricalData = []model.HistoricalSample{}
	}
	if r.ForecastData == nil {
		r.ForecastData = []model.ForecastSample{}
	}
	return r
}

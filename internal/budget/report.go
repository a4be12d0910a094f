package budget

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bizdash/internal/model"
)

// Report is the exported snapshot of a single budget.
type Report struct {
	Budget      model.Budget    `json:"budget"`
	TotalSpent  decimal.Decimal `json:"totalSpent"`
	Variance    decimal.Decimal `json:"variance"`
	GeneratedAt time.Time       `json:"generatedAt"`
}

// Snapshot projects b into a Report stamped at at. It performs no I/O.
func Snapshot(b model.Budget, at time.Time) Report {
	return Report{
		Budget:      b.Clone(),
		TotalSpent:  TotalSpent(b),
		Variance:    Variance(b),
		GeneratedAt: at.UTC(),
	}
}

// Package model defines the records shared by the budget and forecast views.
package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Period is the planning cadence of a budget.
type Period string

// Budget periods.
const (
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
)

// Periods lists every valid period in display order.
var Periods = []Period{PeriodMonthly, PeriodQuarterly, PeriodYearly}

// ParsePeriod converts user input into a Period.
func ParsePeriod(s string) (Period, error) {
	p := Period(strings.ToLower(strings.TrimSpace(s)))
	for _, valid := range Periods {
		if p == valid {
			return p, nil
		}
	}
	return "", fmt.Errorf("unknown period %q (want monthly, quarterly or yearly)", s)
}

// Status is the lifecycle state of a budget.
type Status string

// Budget lifecycle states.
const (
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusCompleted Status = "completed"
)

// ParseStatus converts a stored value into a Status.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case StatusActive, StatusInactive, StatusCompleted:
		return st, nil
	default:
		return "", fmt.Errorf("unknown budget status %q", s)
	}
}

// BudgetCategory is one allocation line of a budget. Spent may exceed
// Allocated; overspend is reported, not rejected.
type BudgetCategory struct {
	Name      string          `json:"name"`
	Allocated decimal.Decimal `json:"allocated"`
	Spent     decimal.Decimal `json:"spent"`
}

// Budget is a named spending plan split into categories.
type Budget struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	TotalAmount decimal.Decimal  `json:"totalAmount"`
	Period      Period           `json:"period"`
	Categories  []BudgetCategory `json:"categories"`
	Status      Status           `json:"status"`
	StartDate   Date             `json:"startDate"`
	EndDate     Date             `json:"endDate"`
	CreatedAt   time.Time        `json:"created_at"`
}

// Clone returns a deep copy so callers can hand budgets across ownership
// boundaries without sharing the category slice.
func (b Budget) Clone() Budget {
	cp := b
	cp.Categories = append([]BudgetCategory(nil), b.Categories...)
	return cp
}

// CategoryStatus classifies a category's utilization.
type CategoryStatus string

// Category utilization levels.
const (
	CategoryOK      CategoryStatus = "ok"
	CategoryWarning CategoryStatus = "warning"
	CategoryOver    CategoryStatus = "over"
)

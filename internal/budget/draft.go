package budget

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/model"
)

// Draft is the raw create-budget input as typed into a form or flags.
type Draft struct {
	Name        string
	TotalAmount string
	Period      string
	StartDate   string
	EndDate     string
	Categories  []CategoryDraft
}

// CategoryDraft is one raw category row. Spent may be left empty.
type CategoryDraft struct {
	Name      string
	Allocated string
	Spent     string
}

// New validates d and builds an active budget created at now. Every
// rejected field is reported; the errors match common.ErrValidation.
func New(d Draft, now time.Time) (model.Budget, error) {
	var errs []error

	b := model.Budget{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(d.Name),
		Period:    model.PeriodMonthly,
		Status:    model.StatusActive,
		CreatedAt: now.UTC(),
	}

	if b.Name == "" {
		errs = append(errs, common.Invalid("name", "is required"))
	}

	total, err := parseAmount(d.TotalAmount, true)
	switch {
	case err != nil:
		errs = append(errs, common.Invalid("total amount", "%v", err))
	case !total.IsPositive():
		errs = append(errs, common.Invalid("total amount", "must be greater than zero"))
	default:
		b.TotalAmount = total
	}

	if strings.TrimSpace(d.Period) != "" {
		p, err := model.ParsePeriod(d.Period)
		if err != nil {
			errs = append(errs, common.Invalid("period", "%v", err))
		}
		b.Period = p
	}

	b.StartDate, err = parseRequiredDate(d.StartDate)
	if err != nil {
		errs = append(errs, common.Invalid("start date", "%v", err))
	}
	b.EndDate, err = parseRequiredDate(d.EndDate)
	if err != nil {
		errs = append(errs, common.Invalid("end date", "%v", err))
	}
	if !b.StartDate.IsZero() && !b.EndDate.IsZero() && b.EndDate.Before(b.StartDate.Time) {
		errs = append(errs, common.Invalid("end date", "must not be before start date"))
	}

	if len(d.Categories) == 0 {
		errs = append(errs, common.Invalid("categories", "at least one category is required"))
	}
	for i, cd := range d.Categories {
		c, err := parseCategory(cd)
		if err != nil {
			errs = append(errs, fmt.Errorf("category %d: %w", i+1, err))
			continue
		}
		b.Categories = append(b.Categories, c)
	}

	if len(errs) > 0 {
		return model.Budget{}, errors.Join(errs...)
	}
	return b, nil
}

func parseCategory(cd CategoryDraft) (model.BudgetCategory, error) {
	c := model.BudgetCategory{Name: strings.TrimSpace(cd.Name)}
	if c.Name == "" {
		return c, common.Invalid("name", "is required")
	}

	allocated, err := parseAmount(cd.Allocated, true)
	if err != nil {
		return c, common.Invalid("allocated", "%v", err)
	}
	spent, err := parseAmount(cd.Spent, false)
	if err != nil {
		return c, common.Invalid("spent", "%v", err)
	}
	c.Allocated = allocated
	c.Spent = spent
	return c, nil
}

// ParseCategory parses the "Name=allocated[:spent]" flag syntax.
func ParseCategory(spec string) (CategoryDraft, error) {
	name, amounts, found := strings.Cut(spec, "=")
	if !found || strings.TrimSpace(name) == "" {
		return CategoryDraft{}, common.Invalid("category", "%q must look like Name=allocated[:spent]", spec)
	}
	allocated, spent, _ := strings.Cut(amounts, ":")
	return CategoryDraft{
		Name:      strings.TrimSpace(name),
		Allocated: strings.TrimSpace(allocated),
		Spent:     strings.TrimSpace(spent),
	}, nil
}

func parseAmount(s string, required bool) (decimal.Decimal, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	s = strings.TrimPrefix(s, "$")
	if s == "" {
		if required {
			return decimal.Zero, errors.New("is required")
		}
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q is not a number", s)
	}
	if d.IsNegative() {
		return decimal.Zero, errors.New("must not be negative")
	}
	return d, nil
}

func parseRequiredDate(s string) (model.Date, error) {
	if strings.TrimSpace(s) == "" {
		return model.Date{}, errors.New("is required")
	}
	d, err := model.ParseDate(s)
	if err != nil {
		return model.Date{}, fmt.Errorf("%q is not a YYYY-MM-DD date", s)
	}
	return d, nil
}

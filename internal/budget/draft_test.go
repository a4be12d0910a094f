package budget

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theirongolddev/bizdash/internal/common"
	"github.com/theirongolddev/bizdash/internal/model"
)

func validDraft() Draft {
	return Draft{
		Name:        "Operations Budget Q1",
		TotalAmount: "25,000",
		Period:      "Quarterly",
		StartDate:   "2024-01-01",
		EndDate:     "2024-03-31",
		Categories: []CategoryDraft{
			{Name: "Office Rent", Allocated: "12000", Spent: "12000"},
			{Name: "Utilities", Allocated: "$3000"},
		},
	}
}

func TestNewBudget(t *testing.T) {
	now := time.Date(2024, 1, 2, 9, 30, 0, 0, time.UTC)

	b, err := New(validDraft(), now)
	require.NoError(t, err)

	_, err = uuid.Parse(b.ID)
	assert.NoError(t, err, "ID should be a UUID")
	assert.Equal(t, "Operations Budget Q1", b.Name)
	assert.True(t, b.TotalAmount.Equal(dec("25000")))
	assert.Equal(t, model.PeriodQuarterly, b.Period)
	assert.Equal(t, model.StatusActive, b.Status)
	assert.Equal(t, "2024-01-01", b.StartDate.String())
	assert.Equal(t, "2024-03-31", b.EndDate.String())
	assert.Equal(t, now, b.CreatedAt)

	require.Len(t, b.Categories, 2)
	assert.True(t, b.Categories[0].Spent.Equal(dec("12000")))
	assert.True(t, b.Categories[1].Allocated.Equal(dec("3000")))
	assert.True(t, b.Categories[1].Spent.IsZero(), "missing spent defaults to zero")
}

func TestNewBudgetDefaultsToMonthly(t *testing.T) {
	d := validDraft()
	d.Period = ""

	b, err := New(d, time.Now())
	require.NoError(t, err)
	assert.Equal(t, model.PeriodMonthly, b.Period)
}

func TestNewBudgetValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Draft)
		field  string
	}{
		{"missing name", func(d *Draft) { d.Name = "  " }, "name"},
		{"zero total", func(d *Draft) { d.TotalAmount = "0" }, "total amount"},
		{"missing total", func(d *Draft) { d.TotalAmount = "" }, "total amount"},
		{"negative total", func(d *Draft) { d.TotalAmount = "-5" }, "total amount"},
		{"non-numeric total", func(d *Draft) { d.TotalAmount = "lots" }, "total amount"},
		{"bad period", func(d *Draft) { d.Period = "weekly" }, "period"},
		{"missing start", func(d *Draft) { d.StartDate = "" }, "start date"},
		{"bad end", func(d *Draft) { d.EndDate = "03/31/2024" }, "end date"},
		{"end before start", func(d *Draft) { d.EndDate = "2023-12-31" }, "end date"},
		{"no categories", func(d *Draft) { d.Categories = nil }, "categories"},
		{"unnamed category", func(d *Draft) { d.Categories[0].Name = "" }, "name"},
		{"negative spent", func(d *Draft) { d.Categories[1].Spent = "-1" }, "spent"},
		{"missing allocation", func(d *Draft) { d.Categories[1].Allocated = "" }, "allocated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			d.Categories = append([]CategoryDraft(nil), d.Categories...)
			tt.mutate(&d)

			_, err := New(d, time.Now())
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrValidation)

			var ve *common.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
		})
	}
}

func TestNewBudgetReportsEveryField(t *testing.T) {
	_, err := New(Draft{}, time.Now())
	require.Error(t, err)
	for _, field := range []string{"name", "total amount", "start date", "end date", "categories"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestParseCategory(t *testing.T) {
	cd, err := ParseCategory("Digital Advertising=20000:15000")
	require.NoError(t, err)
	assert.Equal(t, CategoryDraft{Name: "Digital Advertising", Allocated: "20000", Spent: "15000"}, cd)

	cd, err = ParseCategory(" Tools = 5000 ")
	require.NoError(t, err)
	assert.Equal(t, CategoryDraft{Name: "Tools", Allocated: "5000"}, cd)

	_, err = ParseCategory("no amount")
	assert.ErrorIs(t, err, common.ErrValidation)
	_, err = ParseCategory("=100")
	assert.ErrorIs(t, err, common.ErrValidation)
}

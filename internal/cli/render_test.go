package cli

import (
	"testing"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestFormatCents(t *testing.T) {
	tests := []struct {
		cents    int64
		expected string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{100, "$1.00"},
		{123456, "$1,234.56"},
		{100000000, "$1,000,000.00"},
		{-123456, "-$1,234.56"},
		{-1, "-$0.01"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatCents(tt.cents))
		})
	}
}

func TestRenderSummary(t *testing.T) {
	summary := &model.BudgetSummary{
		Period: model.Period{
			Start: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC),
			Label: "June 2025",
			Type:  model.PeriodMonthly,
		},
		Rows: []model.SummaryRow{
			{
				Type:           model.RowSubcategory,
				ParentCategory: "Food",
				Name:           "Groceries",
				BudgetedCents:  80000,
				SpentCents:     65450,
			},
			{
				Type:             model.RowGoal,
				Name:             "Holiday Fund",
				ContributedCents: 20000,
				TargetCents:      100000,
			},
		},
		IncomeCents:   500000,
		BudgetedCents: 80000,
		SpentCents:    65450,
		TBBCents:      420000,
	}

	out := RenderSummary(summary)

	assert.Contains(t, out, "June 2025")
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "$800.00")
	assert.Contains(t, out, "$654.50")
	assert.Contains(t, out, "Holiday Fund")
	assert.Contains(t, out, "20%")
	assert.Contains(t, out, "To Be Budgeted")
}

func TestRenderSummary_EmptyRows(t *testing.T) {
	summary := &model.BudgetSummary{
		Period: model.Period{Label: "Week of 02 Jun 2025", Type: model.PeriodWeekly},
	}

	out := RenderSummary(summary)
	assert.Contains(t, out, "Totals")
	assert.NotContains(t, out, "Subcategory")
	assert.NotContains(t, out, "Goal / Asset")
}

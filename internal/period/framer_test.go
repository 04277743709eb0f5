package period

import (
	"testing"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestFrame(t *testing.T) {
	tests := []struct {
		name       string
		anchor     time.Time
		periodType model.PeriodType
		wantStart  time.Time
		wantEnd    time.Time
		wantLabel  string
		wantErr    bool
	}{
		{
			name:       "monthly mid-month anchor",
			anchor:     date(2025, time.June, 15),
			periodType: model.PeriodMonthly,
			wantStart:  date(2025, time.June, 1),
			wantEnd:    date(2025, time.June, 30),
			wantLabel:  "June 2025",
		},
		{
			name:       "monthly first day anchor",
			anchor:     date(2025, time.February, 1),
			periodType: model.PeriodMonthly,
			wantStart:  date(2025, time.February, 1),
			wantEnd:    date(2025, time.February, 28),
			wantLabel:  "February 2025",
		},
		{
			name:       "weekly anchored on a Wednesday starts Monday",
			anchor:     date(2025, time.June, 18),
			periodType: model.PeriodWeekly,
			wantStart:  date(2025, time.June, 16),
			wantEnd:    date(2025, time.June, 22),
			wantLabel:  "Week of 16 June 2025",
		},
		{
			name:       "weekly anchored on a Sunday stays in its week",
			anchor:     date(2025, time.June, 22),
			periodType: model.PeriodWeekly,
			wantStart:  date(2025, time.June, 16),
			wantEnd:    date(2025, time.June, 22),
			wantLabel:  "Week of 16 June 2025",
		},
		{
			name:       "fortnightly aligns to reference Monday",
			anchor:     date(2024, time.January, 20),
			periodType: model.PeriodFortnightly,
			wantStart:  date(2024, time.January, 15),
			wantEnd:    date(2024, time.January, 28),
			wantLabel:  "Fortnight of 15 January 2024",
		},
		{
			name:       "fortnightly before the reference date",
			anchor:     date(2023, time.December, 30),
			periodType: model.PeriodFortnightly,
			wantStart:  date(2023, time.December, 18),
			wantEnd:    date(2023, time.December, 31),
			wantLabel:  "Fortnight of 18 December 2023",
		},
		{
			name:       "unknown period type",
			anchor:     date(2025, time.June, 15),
			periodType: model.PeriodType("daily"),
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Frame(tt.anchor, tt.periodType)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, got.Start)
			assert.Equal(t, tt.wantEnd, got.End)
			assert.Equal(t, tt.wantLabel, got.Label)
		})
	}
}

func TestStep_Inverse(t *testing.T) {
	anchors := []time.Time{
		date(2025, time.June, 15),
		date(2025, time.January, 31),
		date(2024, time.February, 29),
		date(2023, time.December, 30),
	}
	periodTypes := []model.PeriodType{model.PeriodWeekly, model.PeriodFortnightly, model.PeriodMonthly}

	for _, anchor := range anchors {
		for _, pt := range periodTypes {
			forward, err := Step(anchor, pt, Next)
			require.NoError(t, err)
			back, err := Step(forward, pt, Prev)
			require.NoError(t, err)

			origPeriod, err := Frame(anchor, pt)
			require.NoError(t, err)
			roundTrip, err := Frame(back, pt)
			require.NoError(t, err)

			assert.Equal(t, origPeriod, roundTrip,
				"stepping %s forward then back left the %s period", anchor.Format("2006-01-02"), pt)
		}
	}
}

func TestStep_CrossesPeriodBoundary(t *testing.T) {
	next, err := Step(date(2025, time.January, 31), model.PeriodMonthly, Next)
	require.NoError(t, err)
	p, err := Frame(next, model.PeriodMonthly)
	require.NoError(t, err)
	assert.Equal(t, "February 2025", p.Label)
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2025-06-01", MonthKey(date(2025, time.June, 15)))
	assert.Equal(t, "2025-06-01", MonthKey(date(2025, time.June, 1)))
	assert.Equal(t, "2024-12-01", MonthKey(date(2024, time.December, 31)))
}

func TestPriorMonthKey(t *testing.T) {
	assert.Equal(t, "2025-05-01", PriorMonthKey(date(2025, time.June, 15)))
	assert.Equal(t, "2024-12-01", PriorMonthKey(date(2025, time.January, 3)))
}

func TestPeriodDays(t *testing.T) {
	p, err := Frame(date(2025, time.June, 15), model.PeriodMonthly)
	require.NoError(t, err)
	assert.Equal(t, 30, p.Days())

	p, err = Frame(date(2025, time.June, 15), model.PeriodWeekly)
	require.NoError(t, err)
	assert.Equal(t, 7, p.Days())
}

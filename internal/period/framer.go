// Package period computes budgeting period boundaries. Periods are derived
// from an anchor date on every call; nothing here is stateful.
package period

import (
	"fmt"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/common"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
)

// fortnightReference is a fixed Monday every fortnight boundary is measured
// from. Keeping it constant means the same anchor date always frames the same
// fortnight, and stepping is an exact inverse.
var fortnightReference = time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

// Direction of a period step.
type Direction int

// Step directions.
const (
	Next Direction = 1
	Prev Direction = -1
)

// Frame returns the period containing anchor for the given period type.
// Weeks start Monday, fortnights are anchored to a fixed reference Monday,
// and months are calendar months.
func Frame(anchor time.Time, periodType model.PeriodType) (model.Period, error) {
	day := truncate(anchor)

	switch periodType {
	case model.PeriodWeekly:
		start := startOfWeek(day)
		end := start.AddDate(0, 0, 6)
		return model.Period{
			Start: start,
			End:   end,
			Label: fmt.Sprintf("Week of %s", start.Format("2 January 2006")),
			Type:  periodType,
		}, nil

	case model.PeriodFortnightly:
		days := int(day.Sub(fortnightReference).Hours() / 24)
		n := floorDiv(days, 14)
		start := fortnightReference.AddDate(0, 0, n*14)
		end := start.AddDate(0, 0, 13)
		return model.Period{
			Start: start,
			End:   end,
			Label: fmt.Sprintf("Fortnight of %s", start.Format("2 January 2006")),
			Type:  periodType,
		}, nil

	case model.PeriodMonthly:
		start := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 1, -1)
		return model.Period{
			Start: start,
			End:   end,
			Label: start.Format("January 2006"),
			Type:  periodType,
		}, nil

	default:
		return model.Period{}, fmt.Errorf("%w: %q", common.ErrInvalidPeriodType, periodType)
	}
}

// Step shifts the anchor by exactly one period unit. Stepping forward then
// back always returns to the original date's period.
func Step(anchor time.Time, periodType model.PeriodType, dir Direction) (time.Time, error) {
	day := truncate(anchor)

	switch periodType {
	case model.PeriodWeekly:
		return day.AddDate(0, 0, int(dir)*7), nil
	case model.PeriodFortnightly:
		return day.AddDate(0, 0, int(dir)*14), nil
	case model.PeriodMonthly:
		// Normalize to the first of the month before shifting so day-of-month
		// clamping cannot skip a period.
		first := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC)
		return first.AddDate(0, int(dir), 0), nil
	default:
		return time.Time{}, fmt.Errorf("%w: %q", common.ErrInvalidPeriodType, periodType)
	}
}

// MonthKey reduces any date to the first day of its calendar month, formatted
// "YYYY-MM-01". Assignments are keyed by this regardless of the budget's
// period type, so weekly and fortnightly budgets still carry one assignment
// set per month.
func MonthKey(anchor time.Time) string {
	return time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02")
}

// PriorMonthKey returns the month key of the calendar month before anchor's,
// used for carryover lookups.
func PriorMonthKey(anchor time.Time) string {
	first := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, -1, 0).Format("2006-01-02")
}

func truncate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfWeek(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7 // Monday = 0
	return day.AddDate(0, 0, -offset)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

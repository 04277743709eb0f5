// Package model defines the core domain models used throughout the application.
package model

import "time"

// PeriodType identifies the budgeting cycle length.
type PeriodType string

// Supported period types.
const (
	PeriodWeekly      PeriodType = "weekly"
	PeriodFortnightly PeriodType = "fortnightly"
	PeriodMonthly     PeriodType = "monthly"
)

// Valid reports whether the period type is one of the supported cycles.
func (p PeriodType) Valid() bool {
	switch p {
	case PeriodWeekly, PeriodFortnightly, PeriodMonthly:
		return true
	}
	return false
}

// Period is a single budgeting cycle. It is derived from an anchor date on
// every call and never stored.
type Period struct {
	Start time.Time
	End   time.Time
	Label string
	Type  PeriodType
}

// Contains reports whether d falls inside the period (inclusive bounds).
func (p Period) Contains(d time.Time) bool {
	day := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
	return !day.Before(p.Start) && !day.After(p.End)
}

// Days returns the inclusive length of the period in days.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours()/24) + 1
}

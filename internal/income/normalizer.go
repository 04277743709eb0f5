// Package income converts heterogeneous income records into a single
// period-equivalent figure.
package income

import (
	"math"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
)

// Scope filters income sources by ownership.
type Scope string

// Ownership scopes.
const (
	ScopeSelf     Scope = "self"
	ScopePartner  Scope = "partner"
	ScopeCombined Scope = "combined"
)

// Filter selects which income sources count toward a summary.
type Filter struct {
	OwnerUserID string
	Scope       Scope
}

// Average pay-cycle lengths in days. Monthly and longer cycles use calendar
// averages so a year of any frequency sums to the same annual figure.
var frequencyDays = map[model.PayFrequency]float64{
	model.PayWeekly:      7,
	model.PayFortnightly: 14,
	model.PayMonthly:     365.25 / 12,
	model.PayQuarterly:   365.25 / 4,
	model.PayYearly:      365.25,
}

// Normalize returns the period-equivalent income in cents for the sources
// matching the filter.
//
// Recurring salaries are prorated by the flat frequency ratio: the source
// contributes amount x periodDays / frequencyDays, rounded half up. The rule
// deliberately ignores recorded pay dates so that equal snapshots always
// produce equal figures. One-off sources count only when received inside the
// period. Zero matching sources yields zero, never an error.
func Normalize(sources []model.IncomeSource, p model.Period, f Filter) int64 {
	var total int64

	for _, src := range sources {
		if !src.IsActive || !matchesScope(src, f) {
			continue
		}

		switch src.SourceType {
		case model.IncomeRecurringSalary:
			total += prorate(src.AmountCents, src.Frequency, p)
		case model.IncomeOneOff:
			if src.IsReceived && src.ReceivedDate != nil && p.Contains(*src.ReceivedDate) {
				total += src.AmountCents
			}
		}
	}

	return total
}

// ExpectedOneOffs sums unreceived one-off sources matching the filter. These
// contribute nothing to income but stay visible to callers as "expected."
func ExpectedOneOffs(sources []model.IncomeSource, f Filter) int64 {
	var total int64
	for _, src := range sources {
		if !src.IsActive || !matchesScope(src, f) {
			continue
		}
		if src.SourceType == model.IncomeOneOff && !src.IsReceived {
			total += src.AmountCents
		}
	}
	return total
}

func matchesScope(src model.IncomeSource, f Filter) bool {
	switch f.Scope {
	case ScopeSelf:
		return src.OwnerUserID == f.OwnerUserID && !src.IsManualPartnerIncome
	case ScopePartner:
		return src.OwnerUserID != f.OwnerUserID || src.IsManualPartnerIncome
	default:
		return true
	}
}

func prorate(amountCents int64, freq model.PayFrequency, p model.Period) int64 {
	days, ok := frequencyDays[freq]
	if !ok {
		return 0
	}
	return int64(math.Floor(float64(amountCents)*float64(p.Days())/days + 0.5))
}

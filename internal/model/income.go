package model

import "time"

// PayFrequency is how often a recurring income source pays out.
type PayFrequency string

// Supported pay frequencies.
const (
	PayWeekly      PayFrequency = "weekly"
	PayFortnightly PayFrequency = "fortnightly"
	PayMonthly     PayFrequency = "monthly"
	PayQuarterly   PayFrequency = "quarterly"
	PayYearly      PayFrequency = "yearly"
)

// IncomeSourceType distinguishes regular salaries from one-off receipts.
type IncomeSourceType string

// Income source types.
const (
	IncomeRecurringSalary IncomeSourceType = "recurring-salary"
	IncomeOneOff          IncomeSourceType = "one-off"
)

// IncomeSource is a single stream of money coming into a budget. Sources are
// soft-deleted (deactivated) rather than removed while referenced.
type IncomeSource struct {
	ReceivedDate          *time.Time
	ID                    string
	Name                  string
	OwnerUserID           string
	Frequency             PayFrequency
	SourceType            IncomeSourceType
	AmountCents           int64
	IsManualPartnerIncome bool
	IsReceived            bool
	IsActive              bool
}

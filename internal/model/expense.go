package model

// RecurrenceType is how often a recurring expense is due.
type RecurrenceType string

// Recurrence types for expense definitions.
const (
	RecurWeekly      RecurrenceType = "weekly"
	RecurFortnightly RecurrenceType = "fortnightly"
	RecurMonthly     RecurrenceType = "monthly"
	RecurQuarterly   RecurrenceType = "quarterly"
	RecurYearly      RecurrenceType = "yearly"
)

// ExpenseDefinition describes a recurring bill. Its category is never stored
// directly: it is inferred by majority vote over the categories of its
// matched transactions, so the definition follows wherever the bank actually
// files the bill.
type ExpenseDefinition struct {
	ID                  string
	Name                string
	RecurrenceType      RecurrenceType
	MatchedTransactions []Transaction
	ExpectedAmountCents int64
	IsActive            bool
}

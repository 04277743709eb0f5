package model

// SplitScope is the level a split setting applies at. Expense-definition
// settings beat category settings, which beat the partnership default.
type SplitScope string

// Split scopes, most specific first.
const (
	SplitScopeExpenseDefinition SplitScope = "expenseDefinition"
	SplitScopeCategory          SplitScope = "category"
	SplitScopeDefault           SplitScope = "default"
)

// SplitType is how a shared amount is apportioned between partners.
type SplitType string

// Split types.
const (
	SplitEqual             SplitType = "equal"
	SplitCustom            SplitType = "custom"
	SplitIndividualOwner   SplitType = "individual-owner"
	SplitIndividualPartner SplitType = "individual-partner"
)

// SplitSetting apportions a shared amount between the budget owner and their
// partner. At most one active row exists per scope key; the natural key
// contains nullable columns, so persistence is delete-then-insert.
type SplitSetting struct {
	Scope               SplitScope
	CategoryName        string
	ExpenseDefinitionID string
	Type                SplitType
	OwnerPercentage     float64
}

// BudgetView selects whether amounts are shown whole or apportioned to the
// viewing partner.
type BudgetView string

// Budget views.
const (
	ViewShared     BudgetView = "shared"
	ViewIndividual BudgetView = "individual"
)

// CarryoverMode controls whether last month's leftover rolls forward.
type CarryoverMode string

// Carryover modes.
const (
	CarryoverRollover CarryoverMode = "rollover"
	CarryoverNone     CarryoverMode = "none"
)

package model

// RowType identifies what a summary row represents.
type RowType string

// Summary row types.
const (
	RowSubcategory RowType = "subcategory"
	RowGoal        RowType = "goal"
	RowAsset       RowType = "asset"
)

// SummaryRow is one line of a budget summary: a subcategory with budgeted and
// spent totals, or a goal/asset with its contribution progress. Spent amounts
// are positive magnitudes; the sign convention of raw transactions does not
// leak into the output.
type SummaryRow struct {
	Type             RowType
	Name             string
	ParentCategory   string
	Icon             string
	GoalID           string
	AssetID          string
	BudgetedCents    int64
	SpentCents       int64
	ContributedCents int64
	TargetCents      int64
}

// BudgetSummary is the complete picture of one budgeting period. It is purely
// derived and never persisted by the engine.
type BudgetSummary struct {
	Period         Period
	MonthKey       string
	Rows           []SummaryRow
	Sections       []MethodologySection
	IncomeCents    int64
	BudgetedCents  int64
	SpentCents     int64
	CarryoverCents int64
	// TBBCents is "to be budgeted": income plus carryover minus budgeted.
	TBBCents int64
}

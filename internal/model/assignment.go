package model

// AssignmentType distinguishes envelope assignments from goal and asset
// contributions. Goal and asset assignments never enter percentage-based
// methodology math.
type AssignmentType string

// Assignment types.
const (
	AssignCategory AssignmentType = "category"
	AssignGoal     AssignmentType = "goal"
	AssignAsset    AssignmentType = "asset"
)

// Assignment allocates money to a category, goal, or asset for one budget and
// one calendar month. Weekly and fortnightly budgets still key assignments by
// month, so MonthKey is always a "YYYY-MM-01" date string.
type Assignment struct {
	ID              string
	BudgetID        string
	MonthKey        string
	CategoryName    string
	SubcategoryName string
	GoalID          string
	AssetID         string
	Type            AssignmentType
	AssignedCents   int64
}

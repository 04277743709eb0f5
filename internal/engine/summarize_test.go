package engine

import (
	"testing"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/income"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/methodology"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func june2025() model.Period {
	return model.Period{
		Start: time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2025, time.June, 30, 0, 0, 0, 0, time.UTC),
		Label: "June 2025",
		Type:  model.PeriodMonthly,
	}
}

func baseInput() SummaryInput {
	return SummaryInput{
		PeriodType:    model.PeriodMonthly,
		BudgetView:    model.ViewShared,
		CarryoverMode: model.CarryoverRollover,
		Methodology:   methodology.ZeroBased,
		OwnerUserID:   "u1",
		ViewerUserID:  "u1",
		IncomeScope:   income.ScopeCombined,
		Period:        june2025(),
		CategoryMappings: []model.CategoryMapping{
			{RawCategoryID: "catA", ParentName: "Essentials", ChildName: "Groceries", Icon: "🛒"},
			{RawCategoryID: "catB", ParentName: "Essentials", ChildName: "Utilities", Icon: "💡"},
			{RawCategoryID: "catC", ParentName: "Lifestyle", ChildName: "Dining Out", Icon: "🍜"},
		},
	}
}

func expense(id, rawCategory string, cents int64, day int) model.Transaction {
	return model.Transaction{
		ID:            id,
		AmountCents:   -cents,
		RawCategoryID: rawCategory,
		SettledAt:     time.Date(2025, time.June, day, 0, 0, 0, 0, time.UTC),
	}
}

func findRow(t *testing.T, rows []model.SummaryRow, rowType model.RowType, name string) model.SummaryRow {
	t.Helper()
	for _, r := range rows {
		if r.Type == rowType && r.Name == name {
			return r
		}
	}
	t.Fatalf("no %s row named %q in %+v", rowType, name, rows)
	return model.SummaryRow{}
}

func TestSummarize_EmptySnapshot(t *testing.T) {
	resp, err := Summarize(baseInput())
	require.NoError(t, err)

	s := resp.Summary
	assert.Zero(t, s.IncomeCents)
	assert.Zero(t, s.BudgetedCents)
	assert.Zero(t, s.SpentCents)
	assert.Zero(t, s.TBBCents)
	assert.Empty(t, s.Rows)
	assert.Equal(t, "2025-06-01", s.MonthKey)
	assert.NotEmpty(t, s.Sections)
}

func TestSummarize_Idempotent(t *testing.T) {
	input := baseInput()
	input.IncomeSources = []model.IncomeSource{
		{ID: "i1", OwnerUserID: "u1", AmountCents: 100_000, Frequency: model.PayWeekly, SourceType: model.IncomeRecurringSalary, IsActive: true},
	}
	input.Transactions = []model.Transaction{
		expense("t1", "catA", 12_000, 3),
		expense("t2", "catC", 4_500, 10),
		expense("t3", "zzz", 900, 12),
	}
	input.Assignments = []model.Assignment{
		{ID: "a1", MonthKey: "2025-06-01", CategoryName: "Essentials", SubcategoryName: "Groceries", Type: model.AssignCategory, AssignedCents: 40_000},
		{ID: "a2", MonthKey: "2025-06-01", CategoryName: "Lifestyle", SubcategoryName: "Dining Out", Type: model.AssignCategory, AssignedCents: 15_000},
	}
	input.CarryoverCents = 2_500

	first, err := Summarize(input)
	require.NoError(t, err)
	second, err := Summarize(input)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSummarize_RowAssignmentConservation(t *testing.T) {
	input := baseInput()
	input.Assignments = []model.Assignment{
		{ID: "a1", MonthKey: "2025-06-01", CategoryName: "Essentials", SubcategoryName: "Groceries", Type: model.AssignCategory, AssignedCents: 40_000},
		{ID: "a2", MonthKey: "2025-06-01", CategoryName: "Essentials", SubcategoryName: "Utilities", Type: model.AssignCategory, AssignedCents: 22_000},
		{ID: "a3", MonthKey: "2025-06-01", CategoryName: "Lifestyle", SubcategoryName: "Dining Out", Type: model.AssignCategory, AssignedCents: 15_000},
		{ID: "a4", MonthKey: "2025-06-01", Type: model.AssignGoal, GoalID: "g1", AssignedCents: 50_000},
	}

	resp, err := Summarize(input)
	require.NoError(t, err)

	var rowTotal int64
	for _, row := range resp.Summary.Rows {
		if row.Type == model.RowSubcategory {
			rowTotal += row.BudgetedCents
		}
	}
	assert.Equal(t, int64(77_000), rowTotal)
	assert.Equal(t, int64(77_000), resp.Summary.BudgetedCents)

	// Goal assignments never enter the category budgeted total.
	goalRow := resp.Summary.Rows[len(resp.Summary.Rows)-1]
	assert.Equal(t, model.RowGoal, goalRow.Type)
	assert.Equal(t, int64(50_000), goalRow.BudgetedCents)
}

func TestSummarize_TBBIdentity(t *testing.T) {
	input := baseInput()
	input.IncomeSources = []model.IncomeSource{
		{ID: "i1", OwnerUserID: "u1", AmountCents: 420_000, Frequency: model.PayMonthly, SourceType: model.IncomeRecurringSalary, IsActive: true},
	}
	input.Assignments = []model.Assignment{
		{ID: "a1", MonthKey: "2025-06-01", CategoryName: "Essentials", SubcategoryName: "Groceries", Type: model.AssignCategory, AssignedCents: 40_000},
	}
	input.CarryoverCents = -3_000 // overspend rolls forward as-is

	resp, err := Summarize(input)
	require.NoError(t, err)
	s := resp.Summary
	assert.Equal(t, s.IncomeCents+s.CarryoverCents-s.BudgetedCents, s.TBBCents)
	assert.Equal(t, int64(-3_000), s.CarryoverCents)

	// carryover mode none forces carryover to zero regardless of the stored value.
	input.CarryoverMode = model.CarryoverNone
	resp, err = Summarize(input)
	require.NoError(t, err)
	s = resp.Summary
	assert.Zero(t, s.CarryoverCents)
	assert.Equal(t, s.IncomeCents-s.BudgetedCents, s.TBBCents)
}

func TestSummarize_UnmappedSpendBucketsAsUncategorized(t *testing.T) {
	input := baseInput()
	input.Transactions = []model.Transaction{
		expense("t1", "mystery", 2_000, 5),
	}

	resp, err := Summarize(input)
	require.NoError(t, err)
	row := findRow(t, resp.Summary.Rows, model.RowSubcategory, model.UncategorizedName)
	assert.Equal(t, model.UncategorizedName, row.ParentCategory)
	assert.Equal(t, int64(2_000), row.SpentCents)
}

func TestSummarize_ExcludesTransfersPositiveAndOutOfPeriod(t *testing.T) {
	input := baseInput()
	input.Transactions = []model.Transaction{
		expense("t1", "catA", 10_000, 5),
		{ID: "t2", AmountCents: -5_000, RawCategoryID: "catA", SettledAt: time.Date(2025, time.July, 1, 0, 0, 0, 0, time.UTC)},
		{ID: "t3", AmountCents: 7_000, RawCategoryID: "catA", SettledAt: time.Date(2025, time.June, 8, 0, 0, 0, 0, time.UTC)},
		{ID: "t4", AmountCents: -9_000, RawCategoryID: "catA", SettledAt: time.Date(2025, time.June, 9, 0, 0, 0, 0, time.UTC), IsInternalTransfer: true, TransferAccountID: "acc-x"},
	}

	resp, err := Summarize(input)
	require.NoError(t, err)
	row := findRow(t, resp.Summary.Rows, model.RowSubcategory, "Groceries")
	assert.Equal(t, int64(10_000), row.SpentCents)
	assert.Equal(t, int64(10_000), resp.Summary.SpentCents)
}

func TestSummarize_RecurringBillShortfall(t *testing.T) {
	matched := []model.Transaction{
		expense("m1", "catB", 8_000, 2),                // this period
		{ID: "m2", AmountCents: -8_000, RawCategoryID: "catB", SettledAt: time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)}, // prior period
	}

	input := baseInput()
	input.Transactions = matched[:1]
	input.ExpenseDefinitions = []model.ExpenseDefinition{
		{ID: "e1", Name: "Power", ExpectedAmountCents: 12_000, RecurrenceType: model.RecurMonthly, IsActive: true, MatchedTransactions: matched},
	}

	resp, err := Summarize(input)
	require.NoError(t, err)

	// 8000 actual spend plus the 4000 still expected this period.
	row := findRow(t, resp.Summary.Rows, model.RowSubcategory, "Utilities")
	assert.Equal(t, int64(12_000), row.SpentCents)
}

func TestSummarize_RecurringBillBetweenMatches(t *testing.T) {
	// No transaction this period at all: the bill still shows at its full
	// expected amount, in its majority-vote category.
	matched := []model.Transaction{
		{ID: "m1", AmountCents: -8_000, RawCategoryID: "catB", SettledAt: time.Date(2025, time.May, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "m2", AmountCents: -8_000, RawCategoryID: "catA", SettledAt: time.Date(2025, time.April, 2, 0, 0, 0, 0, time.UTC)},
		{ID: "m3", AmountCents: -8_000, RawCategoryID: "catB", SettledAt: time.Date(2025, time.March, 2, 0, 0, 0, 0, time.UTC)},
	}

	input := baseInput()
	input.ExpenseDefinitions = []model.ExpenseDefinition{
		{ID: "e1", Name: "Power", ExpectedAmountCents: 8_000, RecurrenceType: model.RecurMonthly, IsActive: true, MatchedTransactions: matched},
	}

	resp, err := Summarize(input)
	require.NoError(t, err)
	row := findRow(t, resp.Summary.Rows, model.RowSubcategory, "Utilities")
	assert.Equal(t, int64(8_000), row.SpentCents)
}

func TestSummarize_DefinitionWithNoMatchesBucketsAsUncategorized(t *testing.T) {
	input := baseInput()
	input.ExpenseDefinitions = []model.ExpenseDefinition{
		{ID: "e1", Name: "New Gym", ExpectedAmountCents: 6_000, RecurrenceType: model.RecurMonthly, IsActive: true},
	}

	resp, err := Summarize(input)
	require.NoError(t, err)
	row := findRow(t, resp.Summary.Rows, model.RowSubcategory, model.UncategorizedName)
	assert.Equal(t, int64(6_000), row.SpentCents)
}

func TestSummarize_IndividualViewSplitsBothSides(t *testing.T) {
	input := baseInput()
	input.BudgetView = model.ViewIndividual
	input.SplitSettings = []model.SplitSetting{
		{Scope: model.SplitScopeCategory, CategoryName: "Groceries", Type: model.SplitCustom, OwnerPercentage: 70},
	}
	input.Transactions = []model.Transaction{
		expense("t1", "catA", 10_000, 5), // $100 grocery spend
	}
	input.Assignments = []model.Assignment{
		{ID: "a1", MonthKey: "2025-06-01", CategoryName: "Essentials", SubcategoryName: "Groceries", Type: model.AssignCategory, AssignedCents: 20_000},
	}

	resp, err := Summarize(input)
	require.NoError(t, err)
	row := findRow(t, resp.Summary.Rows, model.RowSubcategory, "Groceries")
	assert.Equal(t, int64(7_000), row.SpentCents)
	assert.Equal(t, int64(14_000), row.BudgetedCents)
}

func TestSummarize_PartnerViewerGetsComplement(t *testing.T) {
	input := baseInput()
	input.ViewerUserID = "u2"
	input.BudgetView = model.ViewIndividual
	input.SplitSettings = []model.SplitSetting{
		{Scope: model.SplitScopeCategory, CategoryName: "Groceries", Type: model.SplitCustom, OwnerPercentage: 70},
	}
	input.Transactions = []model.Transaction{
		expense("t1", "catA", 10_000, 5),
	}

	resp, err := Summarize(input)
	require.NoError(t, err)
	row := findRow(t, resp.Summary.Rows, model.RowSubcategory, "Groceries")
	assert.Equal(t, int64(3_000), row.SpentCents)
}

func TestSummarize_GoalRow(t *testing.T) {
	input := baseInput()
	input.Goals = []model.Goal{
		{ID: "g1", Name: "House Deposit", LinkedAccountID: "acc-save", TargetCents: 5_000_000},
	}
	input.Assignments = []model.Assignment{
		{ID: "a1", MonthKey: "2025-06-01", Type: model.AssignGoal, GoalID: "g1", AssignedCents: 50_000},
	}
	input.Transactions = []model.Transaction{
		{ID: "t1", AmountCents: -20_000, SettledAt: time.Date(2025, time.June, 14, 0, 0, 0, 0, time.UTC), IsInternalTransfer: true, TransferAccountID: "acc-save"},
		{ID: "t2", AmountCents: -10_000, SettledAt: time.Date(2025, time.May, 14, 0, 0, 0, 0, time.UTC), IsInternalTransfer: true, TransferAccountID: "acc-save"},
		{ID: "t3", AmountCents: -9_999, SettledAt: time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC), IsInternalTransfer: true, TransferAccountID: "acc-other"},
	}

	resp, err := Summarize(input)
	require.NoError(t, err)
	require.Len(t, resp.Summary.Rows, 1)
	row := resp.Summary.Rows[0]
	assert.Equal(t, model.RowGoal, row.Type)
	assert.Equal(t, int64(50_000), row.BudgetedCents)
	assert.Equal(t, int64(20_000), row.ContributedCents)
	assert.Equal(t, int64(5_000_000), row.TargetCents)

	// Goal assignments stay out of the category budgeted figure and tbb.
	assert.Zero(t, resp.Summary.BudgetedCents)
}

func TestSummarize_GoalWithdrawalNotCounted(t *testing.T) {
	input := baseInput()
	input.Goals = []model.Goal{
		{ID: "g1", Name: "House Deposit", LinkedAccountID: "acc-save", TargetCents: 5_000_000},
	}
	input.Assignments = []model.Assignment{
		{ID: "a1", MonthKey: "2025-06-01", Type: model.AssignGoal, GoalID: "g1", AssignedCents: 50_000},
	}
	// A deposit followed by a full withdrawal: only the inbound leg counts,
	// so the contributed figure is the deposit, not the summed magnitudes.
	input.Transactions = []model.Transaction{
		{ID: "t1", AmountCents: -20_000, SettledAt: time.Date(2025, time.June, 10, 0, 0, 0, 0, time.UTC), IsInternalTransfer: true, TransferAccountID: "acc-save"},
		{ID: "t2", AmountCents: 20_000, SettledAt: time.Date(2025, time.June, 20, 0, 0, 0, 0, time.UTC), IsInternalTransfer: true, TransferAccountID: "acc-save"},
	}

	resp, err := Summarize(input)
	require.NoError(t, err)
	require.Len(t, resp.Summary.Rows, 1)
	assert.Equal(t, int64(20_000), resp.Summary.Rows[0].ContributedCents)
}

func TestSummarize_DeletedGoalStillEmitsRow(t *testing.T) {
	input := baseInput()
	input.Assignments = []model.Assignment{
		{ID: "a1", MonthKey: "2025-06-01", Type: model.AssignGoal, GoalID: "gone", AssignedCents: 50_000},
	}

	resp, err := Summarize(input)
	require.NoError(t, err)
	require.Len(t, resp.Summary.Rows, 1)
	row := resp.Summary.Rows[0]
	assert.Equal(t, "gone", row.GoalID)
	assert.Empty(t, row.Name)
	assert.Zero(t, row.ContributedCents)
}

func TestSummarize_AssetRow(t *testing.T) {
	input := baseInput()
	input.Assets = []model.Asset{{ID: "as1", Name: "Index Fund", CurrentValueCents: 1_200_000}}
	input.Assignments = []model.Assignment{
		{ID: "a1", MonthKey: "2025-06-01", Type: model.AssignAsset, AssetID: "as1", AssignedCents: 30_000},
	}
	input.AssetContributions = []model.AssetContribution{
		{AssetID: "as1", AmountCents: 25_000, OccurredAt: time.Date(2025, time.June, 5, 0, 0, 0, 0, time.UTC)},
		{AssetID: "as1", AmountCents: 11_000, OccurredAt: time.Date(2025, time.July, 5, 0, 0, 0, 0, time.UTC)},
	}

	resp, err := Summarize(input)
	require.NoError(t, err)
	row := resp.Summary.Rows[0]
	assert.Equal(t, model.RowAsset, row.Type)
	assert.Equal(t, int64(30_000), row.BudgetedCents)
	assert.Equal(t, int64(25_000), row.ContributedCents)
}

func TestSummarize_HiddenSubcategoryExcluded(t *testing.T) {
	input := baseInput()
	input.Customization = &model.MethodologyCustomization{
		PartnershipID:       "p1",
		UserID:              "u1",
		HiddenSubcategories: []string{"Groceries"},
	}
	input.Transactions = []model.Transaction{
		expense("t1", "catA", 10_000, 5),
		expense("t2", "catB", 4_000, 6),
	}
	input.Assignments = []model.Assignment{
		{ID: "a1", MonthKey: "2025-06-01", Type: model.AssignCategory, CategoryName: "Essentials", SubcategoryName: "Groceries", AssignedCents: 80_000},
		{ID: "a2", MonthKey: "2025-06-01", Type: model.AssignCategory, CategoryName: "Essentials", SubcategoryName: "Utilities", AssignedCents: 20_000},
	}

	resp, err := Summarize(input)
	require.NoError(t, err)

	// The hidden subcategory produces no row and its amounts stay out of
	// the totals, so tbb reflects only the visible envelopes.
	for _, r := range resp.Summary.Rows {
		assert.NotEqual(t, "Groceries", r.Name)
	}
	row := findRow(t, resp.Summary.Rows, model.RowSubcategory, "Utilities")
	assert.Equal(t, int64(4_000), row.SpentCents)
	assert.Equal(t, int64(20_000), row.BudgetedCents)
	assert.Equal(t, int64(4_000), resp.Summary.SpentCents)
	assert.Equal(t, int64(20_000), resp.Summary.BudgetedCents)
	assert.Equal(t, resp.Summary.IncomeCents+resp.Summary.CarryoverCents-resp.Summary.BudgetedCents, resp.Summary.TBBCents)
}

func TestSummarize_OtherMonthsAssignmentsIgnored(t *testing.T) {
	input := baseInput()
	input.Assignments = []model.Assignment{
		{ID: "a1", MonthKey: "2025-05-01", CategoryName: "Essentials", SubcategoryName: "Groceries", Type: model.AssignCategory, AssignedCents: 99_000},
		{ID: "a2", MonthKey: "2025-06-01", CategoryName: "Essentials", SubcategoryName: "Groceries", Type: model.AssignCategory, AssignedCents: 40_000},
	}

	resp, err := Summarize(input)
	require.NoError(t, err)
	assert.Equal(t, int64(40_000), resp.Summary.BudgetedCents)
}

func TestSummarize_BoundaryErrors(t *testing.T) {
	input := baseInput()
	input.Methodology = methodology.Name("astrology")
	_, err := Summarize(input)
	require.Error(t, err)

	input = baseInput()
	input.PeriodType = model.PeriodType("daily")
	_, err = Summarize(input)
	require.Error(t, err)
}

func TestSummarize_RowsSortedDeterministically(t *testing.T) {
	input := baseInput()
	input.Transactions = []model.Transaction{
		expense("t1", "catC", 1_000, 3),
		expense("t2", "catA", 2_000, 4),
		expense("t3", "catB", 3_000, 5),
	}

	resp, err := Summarize(input)
	require.NoError(t, err)
	require.Len(t, resp.Summary.Rows, 3)
	assert.Equal(t, "Groceries", resp.Summary.Rows[0].Name)
	assert.Equal(t, "Utilities", resp.Summary.Rows[1].Name)
	assert.Equal(t, "Dining Out", resp.Summary.Rows[2].Name)
}

func TestSummarize_ExpectedOneOffs(t *testing.T) {
	input := baseInput()
	input.IncomeSources = []model.IncomeSource{
		{ID: "i1", OwnerUserID: "u1", AmountCents: 80_000, SourceType: model.IncomeOneOff, IsReceived: false, IsActive: true},
	}

	resp, err := Summarize(input)
	require.NoError(t, err)
	assert.Zero(t, resp.Summary.IncomeCents)
	assert.Equal(t, int64(80_000), resp.ExpectedOneOffCents)
}

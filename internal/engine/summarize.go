// Package engine computes budget summaries. Summarize is a pure function
// over its input snapshot: no I/O, no shared state, and bit-identical output
// for identical input, so callers may invoke it concurrently without
// coordination.
package engine

import (
	"fmt"
	"sort"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/income"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/methodology"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/period"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/split"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/taxonomy"
)

// SummaryInput is the full snapshot one summary is computed from. Everything
// the calculation needs is threaded in explicitly; the engine never reads
// ambient request state.
type SummaryInput struct {
	Customization      *model.MethodologyCustomization
	PeriodType         model.PeriodType
	BudgetView         model.BudgetView
	CarryoverMode      model.CarryoverMode
	Methodology        methodology.Name
	OwnerUserID        string
	ViewerUserID       string
	IncomeScope        income.Scope
	Period             model.Period
	IncomeSources      []model.IncomeSource
	Assignments        []model.Assignment
	Transactions       []model.Transaction
	ExpenseDefinitions []model.ExpenseDefinition
	SplitSettings      []model.SplitSetting
	CategoryMappings   []model.CategoryMapping
	Goals              []model.Goal
	Assets             []model.Asset
	AssetContributions []model.AssetContribution
	CarryoverCents     int64
}

// SummaryResponse wraps the computed summary with figures the UI shows
// alongside it.
type SummaryResponse struct {
	Summary model.BudgetSummary
	// ExpectedOneOffCents is unreceived one-off income: not counted in
	// income, still shown as expected.
	ExpectedOneOffCents int64
}

type rowAccum struct {
	parent   string
	child    string
	budgeted int64
	spent    int64
}

// Summarize computes the full budget summary for one (budget, period) pair.
//
// The only hard failures are boundary ones: an unknown methodology or period
// type. Malformed individual records degrade instead — unmapped categories
// bucket as Uncategorized, assignments referencing deleted goals or assets
// still produce rows, and an empty snapshot yields a summary of zeros.
func Summarize(input SummaryInput) (SummaryResponse, error) {
	if !input.PeriodType.Valid() {
		return SummaryResponse{}, fmt.Errorf("summarize: unrecognized period type %q", input.PeriodType)
	}

	sections, err := methodology.Resolve(input.Methodology, input.Customization)
	if err != nil {
		return SummaryResponse{}, fmt.Errorf("summarize: %w", err)
	}

	monthKey := period.MonthKey(input.Period.Start)
	viewerIsOwner := input.ViewerUserID == input.OwnerUserID

	incomeFilter := income.Filter{OwnerUserID: input.OwnerUserID, Scope: input.IncomeScope}
	incomeCents := income.Normalize(input.IncomeSources, input.Period, incomeFilter)
	expectedOneOffs := income.ExpectedOneOffs(input.IncomeSources, incomeFilter)

	tax := taxonomy.NewResolver(input.CategoryMappings)
	splitter := split.NewResolver(input.SplitSettings, input.BudgetView)

	// Subcategories hidden by the customization are excluded from the view
	// entirely: their spend and assignments stay out of the rows and totals,
	// so the to-be-budgeted figure reflects only what the viewer sees.
	hidden := make(map[string]struct{})
	if input.Customization != nil {
		for _, name := range input.Customization.HiddenSubcategories {
			hidden[name] = struct{}{}
		}
	}

	buckets := make(map[string]*rowAccum)
	bucket := func(parent, child string) *rowAccum {
		key := parent + "\x00" + child
		b, ok := buckets[key]
		if !ok {
			b = &rowAccum{parent: parent, child: child}
			buckets[key] = b
		}
		return b
	}

	// Spending: in-period, non-transfer, negative-amount transactions.
	for _, txn := range input.Transactions {
		if !input.Period.Contains(txn.SettledAt) || !txn.IsExpense() {
			continue
		}
		parent, child := classify(tax, txn)
		if _, skip := hidden[child]; skip {
			continue
		}
		spend := -txn.AmountCents
		share := splitter.Share(spend, child, txn.MatchedExpenseDefinitionID, viewerIsOwner)
		bucket(parent, child).spent += share
	}

	// Recurring bills: fold each active definition's unmatched expected
	// amount into its inferred subcategory, so the bill shows up even
	// between matching transactions. Already-matched in-period spend is
	// subtracted to avoid counting the bill twice.
	for _, def := range input.ExpenseDefinitions {
		if !def.IsActive {
			continue
		}
		parent, child := model.UncategorizedName, model.UncategorizedName
		if cls, ok := tax.InferCategory(def); ok {
			parent, child = cls.ParentName, cls.ChildName
		}
		if _, skip := hidden[child]; skip {
			continue
		}

		var matchedThisPeriod int64
		for _, txn := range def.MatchedTransactions {
			if input.Period.Contains(txn.SettledAt) && txn.IsExpense() {
				matchedThisPeriod += -txn.AmountCents
			}
		}
		if shortfall := def.ExpectedAmountCents - matchedThisPeriod; shortfall > 0 {
			share := splitter.Share(shortfall, child, def.ID, viewerIsOwner)
			bucket(parent, child).spent += share
		}
	}

	// This month's assignments, separated into category rows vs goal/asset rows.
	var goalRows, assetRows []model.SummaryRow
	goalsByID := make(map[string]model.Goal, len(input.Goals))
	for _, g := range input.Goals {
		goalsByID[g.ID] = g
	}
	assetsByID := make(map[string]model.Asset, len(input.Assets))
	for _, a := range input.Assets {
		assetsByID[a.ID] = a
	}

	for _, assignment := range input.Assignments {
		if assignment.MonthKey != "" && assignment.MonthKey != monthKey {
			continue
		}

		switch assignment.Type {
		case model.AssignGoal:
			row := model.SummaryRow{
				Type:          model.RowGoal,
				GoalID:        assignment.GoalID,
				BudgetedCents: assignment.AssignedCents,
			}
			// A deleted goal still gets a row; the name stays empty for the
			// caller's annotate stage to resolve or leave.
			if goal, ok := goalsByID[assignment.GoalID]; ok {
				row.TargetCents = goal.TargetCents
				row.ContributedCents = goalContributions(input.Transactions, input.Period, goal)
			}
			goalRows = append(goalRows, row)

		case model.AssignAsset:
			row := model.SummaryRow{
				Type:          model.RowAsset,
				AssetID:       assignment.AssetID,
				BudgetedCents: assignment.AssignedCents,
			}
			if _, ok := assetsByID[assignment.AssetID]; ok {
				row.ContributedCents = assetContributions(input.AssetContributions, input.Period, assignment.AssetID)
			}
			assetRows = append(assetRows, row)

		default:
			parent := assignment.CategoryName
			child := assignment.SubcategoryName
			if child == "" {
				child = assignment.CategoryName
			}
			if _, skip := hidden[child]; skip {
				continue
			}
			share := splitter.Share(assignment.AssignedCents, child, "", viewerIsOwner)
			bucket(parent, child).budgeted += share
		}
	}

	rows := make([]model.SummaryRow, 0, len(buckets)+len(goalRows)+len(assetRows))
	var budgeted, spent int64
	for _, b := range buckets {
		rows = append(rows, model.SummaryRow{
			Type:           model.RowSubcategory,
			Name:           b.child,
			ParentCategory: b.parent,
			BudgetedCents:  b.budgeted,
			SpentCents:     b.spent,
		})
		budgeted += b.budgeted
		spent += b.spent
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].ParentCategory != rows[j].ParentCategory {
			return rows[i].ParentCategory < rows[j].ParentCategory
		}
		return rows[i].Name < rows[j].Name
	})
	rows = append(rows, goalRows...)
	rows = append(rows, assetRows...)

	carryover := input.CarryoverCents
	if input.CarryoverMode == model.CarryoverNone {
		carryover = 0
	}

	return SummaryResponse{
		Summary: model.BudgetSummary{
			Period:         input.Period,
			MonthKey:       monthKey,
			Rows:           rows,
			Sections:       sections,
			IncomeCents:    incomeCents,
			BudgetedCents:  budgeted,
			SpentCents:     spent,
			CarryoverCents: carryover,
			TBBCents:       incomeCents + carryover - budgeted,
		},
		ExpectedOneOffCents: expectedOneOffs,
	}, nil
}

func classify(tax *taxonomy.Resolver, txn model.Transaction) (parent, child string) {
	cls, ok := tax.Classify(txn)
	if !ok {
		return model.UncategorizedName, model.UncategorizedName
	}
	return cls.ParentName, cls.ChildName
}

// goalContributions sums internal transfers into the goal's linked account
// within the period. Only the inbound direction counts: money moves into the
// linked account when the funding-side transaction is negative. A withdrawal
// back out shows as a positive counterpart and never inflates the figure.
func goalContributions(transactions []model.Transaction, p model.Period, goal model.Goal) int64 {
	if goal.LinkedAccountID == "" {
		return 0
	}
	var total int64
	for _, txn := range transactions {
		if !txn.IsInternalTransfer || txn.TransferAccountID != goal.LinkedAccountID {
			continue
		}
		if !p.Contains(txn.SettledAt) || txn.AmountCents >= 0 {
			continue
		}
		total += -txn.AmountCents
	}
	return total
}

func assetContributions(contributions []model.AssetContribution, p model.Period, assetID string) int64 {
	var total int64
	for _, c := range contributions {
		if c.AssetID == assetID && p.Contains(c.OccurredAt) {
			total += c.AmountCents
		}
	}
	return total
}

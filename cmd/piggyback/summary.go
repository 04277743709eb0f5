package main

import (
	"fmt"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/cli"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/engine"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/income"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/methodology"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/period"
	"github.com/spf13/cobra"
)

func summaryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Compute the budget summary for a period",
		Long: `Compute the budget summary for the period containing a given date.

Examples:
  # This month's summary
  piggyback summary

  # The fortnight containing a specific date
  piggyback summary --period fortnightly --date 2025-06-15

  # Your side of a shared budget
  piggyback summary --view individual --viewer alice`,
		RunE: runSummary,
	}

	cmd.Flags().StringP("period", "p", "monthly", "period type (weekly, fortnightly, monthly)")
	cmd.Flags().StringP("date", "d", "", "anchor date inside the period (YYYY-MM-DD, default today)")
	cmd.Flags().String("view", "shared", "budget view (shared, individual)")
	cmd.Flags().String("viewer", "", "viewing user id (default: budget owner)")
	cmd.Flags().String("income-scope", "combined", "income scope (self, partner, combined)")
	cmd.Flags().StringP("methodology", "m", "zero-based", "budgeting methodology")
	cmd.Flags().String("carryover", "rollover", "carryover mode (rollover, none)")

	return cmd
}

func runSummary(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	periodFlag, _ := cmd.Flags().GetString("period")
	dateFlag, _ := cmd.Flags().GetString("date")
	viewFlag, _ := cmd.Flags().GetString("view")
	viewerFlag, _ := cmd.Flags().GetString("viewer")
	scopeFlag, _ := cmd.Flags().GetString("income-scope")
	methodologyFlag, _ := cmd.Flags().GetString("methodology")
	carryoverFlag, _ := cmd.Flags().GetString("carryover")

	anchor := time.Now().UTC()
	if dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", dateFlag, err)
		}
		anchor = parsed
	}

	p, err := period.Frame(anchor, model.PeriodType(periodFlag))
	if err != nil {
		return err
	}

	view := model.BudgetView(viewFlag)
	if view != model.ViewShared && view != model.ViewIndividual {
		return fmt.Errorf("invalid view %q: must be shared or individual", viewFlag)
	}

	scope := income.Scope(scopeFlag)
	switch scope {
	case income.ScopeSelf, income.ScopePartner, income.ScopeCombined:
	default:
		return fmt.Errorf("invalid income scope %q: must be self, partner, or combined", scopeFlag)
	}

	carryover := model.CarryoverMode(carryoverFlag)
	if carryover != model.CarryoverRollover && carryover != model.CarryoverNone {
		return fmt.Errorf("invalid carryover mode %q: must be rollover or none", carryoverFlag)
	}

	methodologyName := methodology.Name(methodologyFlag)
	if !methodologyName.Valid() {
		return fmt.Errorf("unknown methodology %q (known: %v)", methodologyFlag, methodology.Names())
	}

	viewer := viewerFlag
	if viewer == "" {
		viewer = ownerUserID()
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	snapshot, err := store.LoadSnapshot(ctx, budgetID(), string(methodologyName), partnershipID(), viewer, p)
	if err != nil {
		return fmt.Errorf("failed to load snapshot: %w", err)
	}

	resp, err := engine.Summarize(engine.SummaryInput{
		Customization:      snapshot.Customization,
		PeriodType:         p.Type,
		BudgetView:         view,
		CarryoverMode:      carryover,
		Methodology:        methodologyName,
		OwnerUserID:        ownerUserID(),
		ViewerUserID:       viewer,
		IncomeScope:        scope,
		Period:             p,
		IncomeSources:      snapshot.IncomeSources,
		Assignments:        snapshot.Assignments,
		Transactions:       snapshot.Transactions,
		ExpenseDefinitions: snapshot.ExpenseDefinitions,
		SplitSettings:      snapshot.SplitSettings,
		CategoryMappings:   snapshot.CategoryMappings,
		Goals:              snapshot.Goals,
		Assets:             snapshot.Assets,
		AssetContributions: snapshot.AssetContributions,
		CarryoverCents:     snapshot.CarryoverCents,
	})
	if err != nil {
		return err
	}

	idx := engine.BuildNameIndex(snapshot.Goals, snapshot.Assets, snapshot.CategoryMappings)
	summary := engine.Annotate(resp.Summary, idx)

	fmt.Print(cli.RenderSummary(&summary))

	if resp.ExpectedOneOffCents > 0 {
		fmt.Println(cli.FormatInfo("Expected one-off income not yet received: " + cli.FormatCents(resp.ExpectedOneOffCents)))
	}

	// Persist this period's leftover so the next month can roll it forward.
	if carryover == model.CarryoverRollover && p.Type == model.PeriodMonthly {
		leftover := resp.Summary.TBBCents
		if err := store.SaveCarryover(ctx, budgetID(), resp.Summary.MonthKey, leftover); err != nil {
			return fmt.Errorf("failed to save carryover: %w", err)
		}
	}

	return nil
}

package main

import (
	"fmt"
	"math"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/cli"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/period"
	"github.com/spf13/cobra"
)

func assignCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign money to categories, goals, and assets",
	}

	cmd.AddCommand(assignCategoryCmd())
	cmd.AddCommand(assignGoalCmd())
	cmd.AddCommand(assignAssetCmd())
	cmd.AddCommand(assignListCmd())

	return cmd
}

// parseMonthKey accepts "YYYY-MM" or "YYYY-MM-DD" and returns the canonical
// first-of-month key. Empty input means the current month.
func parseMonthKey(input string) (string, error) {
	if input == "" {
		return period.MonthKey(time.Now().UTC()), nil
	}
	for _, layout := range []string{"2006-01", "2006-01-02"} {
		if parsed, err := time.Parse(layout, input); err == nil {
			return period.MonthKey(parsed), nil
		}
	}
	return "", fmt.Errorf("invalid month %q: want YYYY-MM", input)
}

func dollarsFlagToCents(amount float64) int64 {
	return int64(math.Floor(amount*100 + 0.5))
}

func assignCategoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "category <parent> <subcategory>",
		Short: "Assign money to a subcategory for a month",
		Long: `Assign money to a subcategory envelope for one calendar month.

Examples:
  piggyback assign category Food Groceries --amount 800
  piggyback assign category Housing Rent --amount 2400 --month 2025-07`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, _ := cmd.Flags().GetFloat64("amount")
			month, _ := cmd.Flags().GetString("month")
			return upsertAssignment(cmd, model.Assignment{
				Type:            model.AssignCategory,
				CategoryName:    args[0],
				SubcategoryName: args[1],
			}, amount, month)
		},
	}

	cmd.Flags().Float64("amount", 0, "amount in dollars")
	cmd.Flags().String("month", "", "target month (YYYY-MM, default current)")

	return cmd
}

func assignGoalCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goal <goal-id>",
		Short: "Assign money to a savings goal for a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, _ := cmd.Flags().GetFloat64("amount")
			month, _ := cmd.Flags().GetString("month")
			return upsertAssignment(cmd, model.Assignment{
				Type:   model.AssignGoal,
				GoalID: args[0],
			}, amount, month)
		},
	}

	cmd.Flags().Float64("amount", 0, "amount in dollars")
	cmd.Flags().String("month", "", "target month (YYYY-MM, default current)")

	return cmd
}

func assignAssetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset <asset-id>",
		Short: "Assign money to an investment asset for a month",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, _ := cmd.Flags().GetFloat64("amount")
			month, _ := cmd.Flags().GetString("month")
			return upsertAssignment(cmd, model.Assignment{
				Type:    model.AssignAsset,
				AssetID: args[0],
			}, amount, month)
		},
	}

	cmd.Flags().Float64("amount", 0, "amount in dollars")
	cmd.Flags().String("month", "", "target month (YYYY-MM, default current)")

	return cmd
}

func upsertAssignment(cmd *cobra.Command, assignment model.Assignment, amount float64, month string) error {
	ctx := cmd.Context()

	if amount < 0 {
		return fmt.Errorf("amount cannot be negative")
	}

	monthKey, err := parseMonthKey(month)
	if err != nil {
		return err
	}

	assignment.ID = newID("asg")
	assignment.BudgetID = budgetID()
	assignment.MonthKey = monthKey
	assignment.AssignedCents = dollarsFlagToCents(amount)

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.UpsertAssignment(ctx, &assignment); err != nil {
		return fmt.Errorf("failed to save assignment: %w", err)
	}

	target := assignment.SubcategoryName
	if target == "" {
		target = assignment.GoalID + assignment.AssetID
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Assigned %s to %s for %s",
		cli.FormatCents(assignment.AssignedCents), target, monthKey)))

	return nil
}

func assignListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List assignments for a month",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			month, _ := cmd.Flags().GetString("month")

			monthKey, err := parseMonthKey(month)
			if err != nil {
				return err
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			assignments, err := store.GetAssignmentsForMonth(ctx, budgetID(), monthKey)
			if err != nil {
				return fmt.Errorf("failed to list assignments: %w", err)
			}

			if len(assignments) == 0 {
				fmt.Println(cli.FormatInfo("No assignments for " + monthKey))
				return nil
			}

			fmt.Println(cli.FormatTitle("Assignments for " + monthKey))
			fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-10s %-34s %12s", "Type", "Target", "Amount")))

			var total int64
			for _, a := range assignments {
				target := ""
				switch a.Type {
				case model.AssignCategory:
					target = a.CategoryName + " / " + a.SubcategoryName
				case model.AssignGoal:
					target = "goal " + a.GoalID
				case model.AssignAsset:
					target = "asset " + a.AssetID
				}
				total += a.AssignedCents
				fmt.Printf("%-10s %-34s %12s\n", a.Type, target, cli.FormatCents(a.AssignedCents))
			}

			fmt.Printf("%-10s %-34s %12s\n", "", cli.BoldStyle.Render("Total"), cli.FormatCents(total))
			return nil
		},
	}

	cmd.Flags().String("month", "", "target month (YYYY-MM, default current)")

	return cmd
}

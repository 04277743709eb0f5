package main

import (
	"fmt"
	"math"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/cli"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/taxonomy"
	"github.com/spf13/cobra"
)

func expensesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "expenses",
		Short: "Manage recurring expense definitions",
		Long: `Manage recurring bills. A definition carries no category of its own;
its category is inferred from the transactions matched to it.`,
	}

	cmd.AddCommand(expensesAddCmd())
	cmd.AddCommand(expensesListCmd())
	cmd.AddCommand(expensesMatchCmd())

	return cmd
}

func expensesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a recurring expense definition",
		Long: `Add a recurring expense definition.

Examples:
  piggyback expenses add "Electricity" --amount 120 --recurrence monthly
  piggyback expenses add "Car insurance" --amount 80.50 --recurrence fortnightly`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			amount, _ := cmd.Flags().GetFloat64("amount")
			recurrence, _ := cmd.Flags().GetString("recurrence")

			if amount <= 0 {
				return fmt.Errorf("amount must be positive")
			}

			def := model.ExpenseDefinition{
				ID:                  newID("exp"),
				Name:                args[0],
				RecurrenceType:      model.RecurrenceType(recurrence),
				ExpectedAmountCents: int64(math.Floor(amount*100 + 0.5)),
				IsActive:            true,
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveExpenseDefinition(ctx, &def); err != nil {
				return fmt.Errorf("failed to save expense definition: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added expense %q (%s, %s %s)",
				def.Name, def.ID, cli.FormatCents(def.ExpectedAmountCents), def.RecurrenceType)))
			return nil
		},
	}

	cmd.Flags().Float64("amount", 0, "expected amount in dollars per occurrence")
	cmd.Flags().String("recurrence", "monthly", "recurrence (weekly, fortnightly, monthly, quarterly, yearly)")

	return cmd
}

func expensesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active expense definitions with inferred categories",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			defs, err := store.GetActiveExpenseDefinitions(ctx)
			if err != nil {
				return fmt.Errorf("failed to list expense definitions: %w", err)
			}

			if len(defs) == 0 {
				fmt.Println(cli.FormatInfo("No active expense definitions"))
				return nil
			}

			mappings, err := store.GetCategoryMappings(ctx)
			if err != nil {
				return fmt.Errorf("failed to load mappings: %w", err)
			}
			resolver := taxonomy.NewResolver(mappings)

			fmt.Println(cli.FormatTitle("Recurring Expenses"))
			fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-12s %-24s %-14s %12s %8s %-24s",
				"ID", "Name", "Recurrence", "Expected", "Matched", "Inferred Category")))
			for _, def := range defs {
				inferred := "(no matches yet)"
				if c, ok := resolver.InferCategory(def); ok {
					inferred = c.ParentName + " / " + c.ChildName
				}
				fmt.Printf("%-12s %-24s %-14s %12s %8d %-24s\n",
					def.ID,
					def.Name,
					def.RecurrenceType,
					cli.FormatCents(def.ExpectedAmountCents),
					len(def.MatchedTransactions),
					inferred)
			}

			return nil
		},
	}
}

func expensesMatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "match <transaction-id> <expense-id>",
		Short: "Match a transaction to an expense definition",
		Long: `Match a settled transaction to a recurring expense definition. Matched
transactions drive the definition's category inference and offset its
expected amount within their period.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.MatchTransactionToExpense(ctx, args[0], args[1]); err != nil {
				return fmt.Errorf("failed to match transaction: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Matched transaction %s to expense %s", args[0], args[1])))
			return nil
		},
	}
}

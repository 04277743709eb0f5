package main

import (
	"fmt"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/cli"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/spf13/cobra"
)

func splitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "split",
		Short: "Manage ownership split settings",
		Long: `Manage how shared amounts are apportioned between partners.

Settings are layered: an expense-definition setting beats a category
setting, which beats the partnership default. Without any setting
amounts split equally.`,
	}

	cmd.AddCommand(splitSetCmd())
	cmd.AddCommand(splitListCmd())

	return cmd
}

func splitSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Set a split rule",
		Long: `Set a split rule at default, category, or expense-definition scope.

Examples:
  # Groceries split 70/30 in the owner's favour
  piggyback split set --category Groceries --type custom --owner-percentage 70

  # One bill is entirely the partner's
  piggyback split set --expense exp_123 --type individual-partner

  # Partnership default
  piggyback split set --type equal`,
		RunE: runSplitSet,
	}

	cmd.Flags().String("category", "", "apply at category scope")
	cmd.Flags().String("expense", "", "apply at expense-definition scope")
	cmd.Flags().String("type", "equal", "split type (equal, custom, individual-owner, individual-partner)")
	cmd.Flags().Float64("owner-percentage", 50, "owner's share for custom splits (0-100)")

	return cmd
}

func runSplitSet(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	category, _ := cmd.Flags().GetString("category")
	expense, _ := cmd.Flags().GetString("expense")
	splitType, _ := cmd.Flags().GetString("type")
	ownerPct, _ := cmd.Flags().GetFloat64("owner-percentage")

	if category != "" && expense != "" {
		return fmt.Errorf("specify --category or --expense, not both")
	}

	setting := model.SplitSetting{
		Scope:           model.SplitScopeDefault,
		Type:            model.SplitType(splitType),
		OwnerPercentage: ownerPct,
	}
	switch {
	case expense != "":
		setting.Scope = model.SplitScopeExpenseDefinition
		setting.ExpenseDefinitionID = expense
	case category != "":
		setting.Scope = model.SplitScopeCategory
		setting.CategoryName = category
	}

	switch setting.Type {
	case model.SplitEqual, model.SplitIndividualOwner, model.SplitIndividualPartner:
	case model.SplitCustom:
		if ownerPct < 0 || ownerPct > 100 {
			return fmt.Errorf("owner percentage must be between 0 and 100")
		}
	default:
		return fmt.Errorf("invalid split type %q", splitType)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.ReplaceSplitSetting(ctx, setting); err != nil {
		return fmt.Errorf("failed to save split setting: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Set %s split at %s scope", setting.Type, setting.Scope)))
	return nil
}

func splitListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List split rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			settings, err := store.GetSplitSettings(ctx)
			if err != nil {
				return fmt.Errorf("failed to list split settings: %w", err)
			}

			if len(settings) == 0 {
				fmt.Println(cli.FormatInfo("No split rules; everything splits equally"))
				return nil
			}

			fmt.Println(cli.FormatTitle("Split Rules"))
			fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-20s %-28s %-20s %8s",
				"Scope", "Target", "Type", "Owner %")))
			for _, s := range settings {
				target := "-"
				switch s.Scope {
				case model.SplitScopeCategory:
					target = s.CategoryName
				case model.SplitScopeExpenseDefinition:
					target = s.ExpenseDefinitionID
				case model.SplitScopeDefault:
				}

				ownerPct := ""
				if s.Type == model.SplitCustom {
					ownerPct = fmt.Sprintf("%.0f", s.OwnerPercentage)
				}

				fmt.Printf("%-20s %-28s %-20s %8s\n", s.Scope, target, s.Type, ownerPct)
			}

			return nil
		},
	}
}

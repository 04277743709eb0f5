package main

import (
	"fmt"
	"math"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/cli"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/spf13/cobra"
)

func goalsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "goals",
		Short: "Manage savings goals",
	}

	cmd.AddCommand(goalsAddCmd())
	cmd.AddCommand(goalsListCmd())

	return cmd
}

func goalsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a savings goal",
		Long: `Add a savings goal. Linking a goal to an account makes internal
transfers into that account count as contributions.

Examples:
  piggyback goals add "Holiday" --target 5000 --account acct-902 --icon 🏖️`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			target, _ := cmd.Flags().GetFloat64("target")
			account, _ := cmd.Flags().GetString("account")
			icon, _ := cmd.Flags().GetString("icon")

			if target <= 0 {
				return fmt.Errorf("target must be positive")
			}

			goal := model.Goal{
				ID:              newID("goal"),
				Name:            args[0],
				Icon:            icon,
				LinkedAccountID: account,
				TargetCents:     int64(math.Floor(target*100 + 0.5)),
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveGoal(ctx, &goal); err != nil {
				return fmt.Errorf("failed to save goal: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added goal %q (%s, target %s)",
				goal.Name, goal.ID, cli.FormatCents(goal.TargetCents))))
			return nil
		},
	}

	cmd.Flags().Float64("target", 0, "target amount in dollars")
	cmd.Flags().String("account", "", "linked account id for transfer tracking")
	cmd.Flags().String("icon", "", "display icon")

	return cmd
}

func goalsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List savings goals",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			goals, err := store.GetGoals(ctx)
			if err != nil {
				return fmt.Errorf("failed to list goals: %w", err)
			}

			if len(goals) == 0 {
				fmt.Println(cli.FormatInfo("No savings goals"))
				return nil
			}

			fmt.Println(cli.FormatTitle("Savings Goals"))
			fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-12s %-26s %12s %12s %9s",
				"ID", "Name", "Saved", "Target", "Progress")))
			for _, g := range goals {
				name := g.Name
				if g.Icon != "" {
					name = g.Icon + " " + name
				}
				progress := ""
				if g.TargetCents > 0 {
					progress = fmt.Sprintf("%.0f%%", float64(g.CurrentCents)/float64(g.TargetCents)*100)
				}
				fmt.Printf("%-12s %-26s %12s %12s %9s\n",
					g.ID, name, cli.FormatCents(g.CurrentCents), cli.FormatCents(g.TargetCents), progress)
			}

			return nil
		},
	}
}

func assetsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "Manage investment assets",
	}

	cmd.AddCommand(assetsAddCmd())
	cmd.AddCommand(assetsListCmd())
	cmd.AddCommand(assetsContributeCmd())

	return cmd
}

func assetsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an investment asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			value, _ := cmd.Flags().GetFloat64("value")
			icon, _ := cmd.Flags().GetString("icon")

			asset := model.Asset{
				ID:                newID("asset"),
				Name:              args[0],
				Icon:              icon,
				CurrentValueCents: int64(math.Floor(value*100 + 0.5)),
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveAsset(ctx, &asset); err != nil {
				return fmt.Errorf("failed to save asset: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added asset %q (%s)", asset.Name, asset.ID)))
			return nil
		},
	}

	cmd.Flags().Float64("value", 0, "current value in dollars")
	cmd.Flags().String("icon", "", "display icon")

	return cmd
}

func assetsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List investment assets",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			assets, err := store.GetAssets(ctx)
			if err != nil {
				return fmt.Errorf("failed to list assets: %w", err)
			}

			if len(assets) == 0 {
				fmt.Println(cli.FormatInfo("No investment assets"))
				return nil
			}

			fmt.Println(cli.FormatTitle("Investment Assets"))
			fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-12s %-26s %14s", "ID", "Name", "Value")))
			for _, a := range assets {
				name := a.Name
				if a.Icon != "" {
					name = a.Icon + " " + name
				}
				fmt.Printf("%-12s %-26s %14s\n", a.ID, name, cli.FormatCents(a.CurrentValueCents))
			}

			return nil
		},
	}
}

func assetsContributeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contribute <asset-id>",
		Short: "Record a contribution into an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			amount, _ := cmd.Flags().GetFloat64("amount")
			dateFlag, _ := cmd.Flags().GetString("date")

			if amount <= 0 {
				return fmt.Errorf("amount must be positive")
			}

			occurredAt := time.Now().UTC()
			if dateFlag != "" {
				parsed, err := time.Parse("2006-01-02", dateFlag)
				if err != nil {
					return fmt.Errorf("invalid date %q: %w", dateFlag, err)
				}
				occurredAt = parsed
			}

			contribution := model.AssetContribution{
				OccurredAt:  occurredAt,
				AssetID:     args[0],
				AmountCents: int64(math.Floor(amount*100 + 0.5)),
			}

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.SaveAssetContribution(ctx, contribution); err != nil {
				return fmt.Errorf("failed to save contribution: %w", err)
			}

			fmt.Println(cli.FormatSuccess(fmt.Sprintf("Recorded %s into asset %s",
				cli.FormatCents(contribution.AmountCents), contribution.AssetID)))
			return nil
		},
	}

	cmd.Flags().Float64("amount", 0, "amount in dollars")
	cmd.Flags().String("date", "", "contribution date (YYYY-MM-DD, default today)")

	return cmd
}

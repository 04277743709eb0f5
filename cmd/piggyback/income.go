package main

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/cli"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/spf13/cobra"
)

func incomeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "income",
		Short: "Manage income sources",
	}

	cmd.AddCommand(incomeAddCmd())
	cmd.AddCommand(incomeListCmd())
	cmd.AddCommand(incomeDeactivateCmd())

	return cmd
}

func incomeAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add an income source",
		Long: `Add a recurring salary or a one-off income source.

Examples:
  # Weekly salary of $1,000
  piggyback income add "Salary" --amount 1000 --frequency weekly

  # A one-off payment expected on a date
  piggyback income add "Tax refund" --amount 850.50 --type one-off --received-date 2025-06-20`,
		Args: cobra.ExactArgs(1),
		RunE: runIncomeAdd,
	}

	cmd.Flags().Float64("amount", 0, "amount in dollars per pay cycle")
	cmd.Flags().String("frequency", "monthly", "pay frequency (weekly, fortnightly, monthly, quarterly, yearly)")
	cmd.Flags().String("type", "recurring-salary", "source type (recurring-salary, one-off)")
	cmd.Flags().String("owner", "", "owning user id (default: budget owner)")
	cmd.Flags().Bool("partner-manual", false, "mark as manually entered partner income")
	cmd.Flags().String("received-date", "", "date a one-off was or will be received (YYYY-MM-DD)")
	cmd.Flags().Bool("received", false, "mark a one-off as already received")

	return cmd
}

func runIncomeAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	amount, _ := cmd.Flags().GetFloat64("amount")
	frequency, _ := cmd.Flags().GetString("frequency")
	sourceType, _ := cmd.Flags().GetString("type")
	owner, _ := cmd.Flags().GetString("owner")
	partnerManual, _ := cmd.Flags().GetBool("partner-manual")
	receivedDate, _ := cmd.Flags().GetString("received-date")
	received, _ := cmd.Flags().GetBool("received")

	if amount <= 0 {
		return fmt.Errorf("amount must be positive")
	}
	if owner == "" {
		owner = ownerUserID()
	}

	source := model.IncomeSource{
		ID:                    newID("inc"),
		Name:                  args[0],
		OwnerUserID:           owner,
		Frequency:             model.PayFrequency(frequency),
		SourceType:            model.IncomeSourceType(sourceType),
		AmountCents:           int64(math.Floor(amount*100 + 0.5)),
		IsManualPartnerIncome: partnerManual,
		IsReceived:            received,
		IsActive:              true,
	}

	if receivedDate != "" {
		parsed, err := time.Parse("2006-01-02", receivedDate)
		if err != nil {
			return fmt.Errorf("invalid received date %q: %w", receivedDate, err)
		}
		source.ReceivedDate = &parsed
	}

	if source.SourceType == model.IncomeOneOff && source.ReceivedDate == nil {
		return fmt.Errorf("one-off income requires --received-date")
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer func() { _ = store.Close() }()

	if err := store.SaveIncomeSource(ctx, &source); err != nil {
		return fmt.Errorf("failed to save income source: %w", err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added income source %q (%s, %s per %s)",
		source.Name, source.ID, cli.FormatCents(source.AmountCents), source.Frequency)))

	return nil
}

func incomeListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List active income sources",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			sources, err := store.GetActiveIncomeSources(ctx)
			if err != nil {
				return fmt.Errorf("failed to list income sources: %w", err)
			}

			if len(sources) == 0 {
				fmt.Println(cli.FormatInfo("No active income sources"))
				return nil
			}

			fmt.Println(cli.FormatTitle("Income Sources"))
			fmt.Println(cli.TableHeaderStyle.Render(fmt.Sprintf("%-12s %-24s %-10s %-18s %12s",
				"ID", "Name", "Owner", "Frequency", "Amount")))
			for _, src := range sources {
				frequency := string(src.Frequency)
				if src.SourceType == model.IncomeOneOff {
					frequency = "one-off"
					if src.ReceivedDate != nil {
						frequency += " " + src.ReceivedDate.Format("2006-01-02")
					}
				}
				fmt.Printf("%-12s %-24s %-10s %-18s %12s\n",
					src.ID, src.Name, src.OwnerUserID, frequency, cli.FormatCents(src.AmountCents))
			}

			return nil
		},
	}
}

func incomeDeactivateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Deactivate an income source",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer func() { _ = store.Close() }()

			if err := store.DeactivateIncomeSource(ctx, args[0]); err != nil {
				return fmt.Errorf("failed to deactivate income source: %w", err)
			}

			fmt.Println(cli.FormatSuccess("Deactivated income source " + args[0]))
			return nil
		},
	}
}

// newID builds a timestamp-based identifier for locally created records.
func newID(prefix string) string {
	return prefix + "_" + strconv.FormatInt(time.Now().UnixNano(), 36)
}

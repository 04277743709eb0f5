package main

import (
	"fmt"
	"time"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/cli"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/period"
	"github.com/spf13/cobra"
)

func periodsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "periods",
		Short: "Show budgeting periods around a date",
		Long: `Show the period containing a date, plus surrounding periods.

Examples:
  # The current month
  piggyback periods

  # Six fortnights starting from the one containing 2025-06-15
  piggyback periods --period fortnightly --date 2025-06-15 --count 6`,
		RunE: runPeriods,
	}

	cmd.Flags().StringP("period", "p", "monthly", "period type (weekly, fortnightly, monthly)")
	cmd.Flags().StringP("date", "d", "", "anchor date (YYYY-MM-DD, default today)")
	cmd.Flags().IntP("count", "n", 1, "number of consecutive periods to show")
	cmd.Flags().Bool("back", false, "step backwards instead of forwards")

	return cmd
}

func runPeriods(cmd *cobra.Command, _ []string) error {
	periodFlag, _ := cmd.Flags().GetString("period")
	dateFlag, _ := cmd.Flags().GetString("date")
	count, _ := cmd.Flags().GetInt("count")
	back, _ := cmd.Flags().GetBool("back")

	if count < 1 {
		return fmt.Errorf("count must be at least 1")
	}

	anchor := time.Now().UTC()
	if dateFlag != "" {
		parsed, err := time.Parse("2006-01-02", dateFlag)
		if err != nil {
			return fmt.Errorf("invalid date %q: %w", dateFlag, err)
		}
		anchor = parsed
	}

	periodType := model.PeriodType(periodFlag)
	dir := period.Next
	if back {
		dir = period.Prev
	}

	fmt.Println(cli.FormatTitle("Budget Periods"))

	for i := 0; i < count; i++ {
		p, err := period.Frame(anchor, periodType)
		if err != nil {
			return err
		}

		marker := " "
		if p.Contains(time.Now().UTC()) {
			marker = cli.SuccessStyle.Render("*")
		}

		fmt.Printf("%s %-22s %s to %s (%d days, month key %s)\n",
			marker,
			p.Label,
			p.Start.Format("2006-01-02"),
			p.End.Format("2006-01-02"),
			p.Days(),
			period.MonthKey(p.Start))

		anchor, err = period.Step(p.Start, periodType, dir)
		if err != nil {
			return err
		}
	}

	return nil
}

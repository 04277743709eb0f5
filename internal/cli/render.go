package cli

import (
	"fmt"
	"strings"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/charmbracelet/lipgloss"
)

// FormatCents renders integer cents as a dollar amount with thousands
// separators, e.g. 123456 -> "$1,234.56".
func FormatCents(cents int64) string {
	negative := cents < 0
	if negative {
		cents = -cents
	}

	dollars := cents / 100
	remainder := cents % 100

	digits := fmt.Sprintf("%d", dollars)
	var b strings.Builder
	for i, r := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	out := fmt.Sprintf("$%s.%02d", b.String(), remainder)
	if negative {
		return "-" + out
	}
	return out
}

// RenderSummary renders a budget summary as a styled terminal report.
func RenderSummary(summary *model.BudgetSummary) string {
	var sections []string

	sections = append(sections, FormatTitle("Budget Summary: "+summary.Period.Label))
	sections = append(sections, renderTotals(summary))

	if rows := subcategoryRows(summary.Rows); len(rows) > 0 {
		sections = append(sections, renderCategoryTable(rows))
	}
	if rows := progressRows(summary.Rows); len(rows) > 0 {
		sections = append(sections, renderProgressTable(rows))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...) + "\n"
}

func renderTotals(summary *model.BudgetSummary) string {
	tbb := FormatCents(summary.TBBCents)
	if summary.TBBCents >= 0 {
		tbb = SuccessStyle.Render(tbb)
	} else {
		tbb = ErrorStyle.Render(tbb)
	}

	lines := []string{
		fmt.Sprintf("%-16s %s", "Income", FormatCents(summary.IncomeCents)),
		fmt.Sprintf("%-16s %s", "Budgeted", FormatCents(summary.BudgetedCents)),
		fmt.Sprintf("%-16s %s", "Spent", FormatCents(summary.SpentCents)),
		fmt.Sprintf("%-16s %s", "Carryover", FormatCents(summary.CarryoverCents)),
		fmt.Sprintf("%-16s %s", "To Be Budgeted", tbb),
	}

	return RenderBox("Totals", strings.Join(lines, "\n"))
}

func subcategoryRows(rows []model.SummaryRow) []model.SummaryRow {
	out := make([]model.SummaryRow, 0, len(rows))
	for _, row := range rows {
		if row.Type == model.RowSubcategory {
			out = append(out, row)
		}
	}
	return out
}

func progressRows(rows []model.SummaryRow) []model.SummaryRow {
	out := make([]model.SummaryRow, 0, len(rows))
	for _, row := range rows {
		if row.Type == model.RowGoal || row.Type == model.RowAsset {
			out = append(out, row)
		}
	}
	return out
}

func renderCategoryTable(rows []model.SummaryRow) string {
	header := TableHeaderStyle.Render(fmt.Sprintf("%-18s %-22s %12s %12s %12s",
		"Category", "Subcategory", "Budgeted", "Spent", "Remaining"))

	lines := []string{header}
	for _, row := range rows {
		name := row.Name
		if row.Icon != "" {
			name = row.Icon + " " + name
		}

		remaining := row.BudgetedCents - row.SpentCents
		remainingStr := FormatCents(remaining)
		if remaining < 0 {
			remainingStr = ErrorStyle.Render(remainingStr)
		}

		lines = append(lines, fmt.Sprintf("%-18s %-22s %12s %12s %12s",
			row.ParentCategory,
			name,
			FormatCents(row.BudgetedCents),
			FormatCents(row.SpentCents),
			remainingStr))
	}

	return strings.Join(lines, "\n")
}

func renderProgressTable(rows []model.SummaryRow) string {
	header := TableHeaderStyle.Render(fmt.Sprintf("%-26s %12s %14s %12s %9s",
		"Goal / Asset", "Budgeted", "Contributed", "Target", "Progress"))

	lines := []string{header}
	for _, row := range rows {
		icon := GoalIcon
		if row.Type == model.RowAsset {
			icon = ChartIcon
		}

		progress := ""
		if row.TargetCents > 0 {
			progress = fmt.Sprintf("%.0f%%", float64(row.ContributedCents)/float64(row.TargetCents)*100)
		}

		lines = append(lines, fmt.Sprintf("%-26s %12s %14s %12s %9s",
			icon+" "+row.Name,
			FormatCents(row.BudgetedCents),
			FormatCents(row.ContributedCents),
			FormatCents(row.TargetCents),
			progress))
	}

	return strings.Join(lines, "\n")
}

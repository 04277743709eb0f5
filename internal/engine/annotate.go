package engine

import "github.com/BenLaurenson/PiggyBack-sub005/internal/model"

// NameIndex is a read-only display index: names and icons for goals, assets,
// and subcategories. Build one from the same snapshot the summary came from.
type NameIndex struct {
	Goals         map[string]model.Goal
	Assets        map[string]model.Asset
	CategoryIcons map[string]string
}

// BuildNameIndex assembles a NameIndex from raw records. Category icons are
// keyed by parent and child name.
func BuildNameIndex(goals []model.Goal, assets []model.Asset, mappings []model.CategoryMapping) NameIndex {
	idx := NameIndex{
		Goals:         make(map[string]model.Goal, len(goals)),
		Assets:        make(map[string]model.Asset, len(assets)),
		CategoryIcons: make(map[string]string, len(mappings)),
	}
	for _, g := range goals {
		idx.Goals[g.ID] = g
	}
	for _, a := range assets {
		idx.Assets[a.ID] = a
	}
	for _, m := range mappings {
		key := iconKey(m.ParentName, m.ChildName)
		if _, exists := idx.CategoryIcons[key]; !exists {
			idx.CategoryIcons[key] = m.Icon
		}
	}
	return idx
}

// Annotate fills display names and icons onto a copy of the summary. The
// input summary is never mutated; rows whose ids are absent from the index
// keep their empty names.
func Annotate(summary model.BudgetSummary, idx NameIndex) model.BudgetSummary {
	annotated := summary
	annotated.Rows = make([]model.SummaryRow, len(summary.Rows))

	for i, row := range summary.Rows {
		switch row.Type {
		case model.RowGoal:
			if goal, ok := idx.Goals[row.GoalID]; ok {
				row.Name = goal.Name
				row.Icon = goal.Icon
			}
		case model.RowAsset:
			if asset, ok := idx.Assets[row.AssetID]; ok {
				row.Name = asset.Name
				row.Icon = asset.Icon
			}
		default:
			row.Icon = idx.CategoryIcons[iconKey(row.ParentCategory, row.Name)]
		}
		annotated.Rows[i] = row
	}

	return annotated
}

func iconKey(parent, child string) string {
	return parent + "\x00" + child
}

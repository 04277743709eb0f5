// Package split apportions shared amounts between the budget owner and their
// partner when a budget is viewed individually.
package split

import (
	"math"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
)

// Resolver answers "what share of this amount belongs to the viewer" from a
// snapshot of split settings. The most specific setting wins: one scoped to
// the expense definition, else one scoped to the category, else the
// partnership default. No setting at all means an equal split.
type Resolver struct {
	byExpense  map[string]model.SplitSetting
	byCategory map[string]model.SplitSetting
	fallback   *model.SplitSetting
	view       model.BudgetView
}

// NewResolver indexes the settings for one engine invocation.
func NewResolver(settings []model.SplitSetting, view model.BudgetView) *Resolver {
	r := &Resolver{
		byExpense:  make(map[string]model.SplitSetting),
		byCategory: make(map[string]model.SplitSetting),
		view:       view,
	}
	for _, s := range settings {
		switch s.Scope {
		case model.SplitScopeExpenseDefinition:
			r.byExpense[s.ExpenseDefinitionID] = s
		case model.SplitScopeCategory:
			r.byCategory[s.CategoryName] = s
		case model.SplitScopeDefault:
			setting := s
			r.fallback = &setting
		}
	}
	return r
}

// Share returns the viewer's portion of amountCents for spend or assignment
// attributed to categoryName (and optionally a specific expense definition).
// In shared view the full amount comes back untouched; the same resolver is
// applied to both the spent and budgeted sides of a row so percentages stay
// comparable.
func (r *Resolver) Share(amountCents int64, categoryName, expenseDefinitionID string, viewerIsOwner bool) int64 {
	if r.view != model.ViewIndividual {
		return amountCents
	}

	setting := r.lookup(categoryName, expenseDefinitionID)
	return apportion(amountCents, setting, viewerIsOwner)
}

func (r *Resolver) lookup(categoryName, expenseDefinitionID string) model.SplitSetting {
	if expenseDefinitionID != "" {
		if s, ok := r.byExpense[expenseDefinitionID]; ok {
			return s
		}
	}
	if s, ok := r.byCategory[categoryName]; ok {
		return s
	}
	if r.fallback != nil {
		return *r.fallback
	}
	return model.SplitSetting{Type: model.SplitEqual}
}

func apportion(amountCents int64, setting model.SplitSetting, viewerIsOwner bool) int64 {
	switch setting.Type {
	case model.SplitCustom:
		pct := setting.OwnerPercentage
		if !viewerIsOwner {
			pct = 100 - pct
		}
		return roundHalfUp(float64(amountCents) * pct / 100)
	case model.SplitIndividualOwner:
		if viewerIsOwner {
			return amountCents
		}
		return 0
	case model.SplitIndividualPartner:
		if viewerIsOwner {
			return 0
		}
		return amountCents
	default:
		// equal, and anything unrecognized degrades to equal
		return roundHalfUp(float64(amountCents) / 2)
	}
}

// roundHalfUp rounds symmetrically away from zero at .5 so that negative
// spend amounts split the same way positive ones do.
func roundHalfUp(v float64) int64 {
	if v < 0 {
		return -int64(math.Floor(-v + 0.5))
	}
	return int64(math.Floor(v + 0.5))
}

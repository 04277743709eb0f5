// Package taxonomy resolves raw bank-feed category ids into the two-level
// parent/child category name space.
package taxonomy

import (
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
)

// Classification is a resolved parent/child pair for a transaction or
// expense definition.
type Classification struct {
	ParentName string
	ChildName  string
}

// Resolver is a read-only index over category mappings. Build one per engine
// invocation from the snapshot's mappings.
type Resolver struct {
	byRaw  map[string]model.CategoryMapping
	byName map[string]model.CategoryMapping
}

// NewResolver builds the lookup tables from raw mapping records. Later
// duplicates of a raw category id are ignored so resolution is stable over
// the input order.
func NewResolver(mappings []model.CategoryMapping) *Resolver {
	r := &Resolver{
		byRaw:  make(map[string]model.CategoryMapping, len(mappings)),
		byName: make(map[string]model.CategoryMapping, len(mappings)),
	}
	for _, m := range mappings {
		if _, exists := r.byRaw[m.RawCategoryID]; !exists {
			r.byRaw[m.RawCategoryID] = m
		}
		key := nameKey(m.ParentName, m.ChildName)
		if _, exists := r.byName[key]; !exists {
			r.byName[key] = m
		}
	}
	return r
}

// Classify resolves a transaction's raw category id. ok is false when the id
// is unmapped; callers bucket those as Uncategorized rather than dropping them.
func (r *Resolver) Classify(t model.Transaction) (Classification, bool) {
	m, ok := r.byRaw[t.RawCategoryID]
	if !ok {
		return Classification{}, false
	}
	return Classification{ParentName: m.ParentName, ChildName: m.ChildName}, true
}

// Icon returns the icon registered for a parent/child pair, or empty when the
// pair is unknown.
func (r *Resolver) Icon(parentName, childName string) string {
	return r.byName[nameKey(parentName, childName)].Icon
}

// InferCategory picks an expense definition's category by majority vote over
// its matched transactions: the most common raw category id wins, ties broken
// by first-encountered order. Unmapped ids vote too, so a definition matched
// mostly to an unknown id falls through to the Uncategorized bucket the same
// way a single transaction with that id would. A definition with no matched
// transactions resolves to nothing. Given the same ordered transaction list
// the result is always the same.
func (r *Resolver) InferCategory(def model.ExpenseDefinition) (Classification, bool) {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)

	for i, txn := range def.MatchedTransactions {
		counts[txn.RawCategoryID]++
		if _, seen := firstSeen[txn.RawCategoryID]; !seen {
			firstSeen[txn.RawCategoryID] = i
		}
	}

	var winner string
	found := false
	bestCount := 0
	bestIndex := 0
	for id, count := range counts {
		if !found || count > bestCount || (count == bestCount && firstSeen[id] < bestIndex) {
			winner = id
			found = true
			bestCount = count
			bestIndex = firstSeen[id]
		}
	}

	m, mapped := r.byRaw[winner]
	if !found || !mapped {
		return Classification{}, false
	}
	return Classification{ParentName: m.ParentName, ChildName: m.ChildName}, true
}

func nameKey(parent, child string) string {
	return parent + "\x00" + child
}

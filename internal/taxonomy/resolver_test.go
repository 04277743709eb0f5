package taxonomy

import (
	"testing"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMappings() []model.CategoryMapping {
	return []model.CategoryMapping{
		{RawCategoryID: "catA", ParentName: "Essentials", ChildName: "Groceries", Icon: "🛒", DisplayOrder: 1},
		{RawCategoryID: "catB", ParentName: "Essentials", ChildName: "Utilities", Icon: "💡", DisplayOrder: 2},
		{RawCategoryID: "catC", ParentName: "Lifestyle", ChildName: "Dining Out", Icon: "🍜", DisplayOrder: 3},
	}
}

func TestClassify(t *testing.T) {
	r := NewResolver(testMappings())

	got, ok := r.Classify(model.Transaction{RawCategoryID: "catA"})
	require.True(t, ok)
	assert.Equal(t, "Essentials", got.ParentName)
	assert.Equal(t, "Groceries", got.ChildName)

	_, ok = r.Classify(model.Transaction{RawCategoryID: "nope"})
	assert.False(t, ok)
}

func TestIcon(t *testing.T) {
	r := NewResolver(testMappings())

	assert.Equal(t, "💡", r.Icon("Essentials", "Utilities"))
	assert.Equal(t, "", r.Icon("Essentials", "Unknown"))
}

func TestInferCategory(t *testing.T) {
	txn := func(raw string) model.Transaction {
		return model.Transaction{RawCategoryID: raw}
	}

	tests := []struct {
		name       string
		matched    []model.Transaction
		wantChild  string
		wantParent string
		wantOK     bool
	}{
		{
			name:       "clear majority wins",
			matched:    []model.Transaction{txn("catA"), txn("catB"), txn("catA")},
			wantParent: "Essentials",
			wantChild:  "Groceries",
			wantOK:     true,
		},
		{
			name:       "tie goes to first encountered",
			matched:    []model.Transaction{txn("catA"), txn("catB")},
			wantParent: "Essentials",
			wantChild:  "Groceries",
			wantOK:     true,
		},
		{
			name:       "tie goes to first encountered regardless of id order",
			matched:    []model.Transaction{txn("catC"), txn("catA")},
			wantParent: "Lifestyle",
			wantChild:  "Dining Out",
			wantOK:     true,
		},
		{
			name:   "no matched transactions resolves to nothing",
			wantOK: false,
		},
		{
			name:    "only unmapped transactions resolves to nothing",
			matched: []model.Transaction{txn("zzz"), txn("yyy")},
			wantOK:  false,
		},
		{
			name:    "unmapped majority resolves to nothing",
			matched: []model.Transaction{txn("zzz"), txn("zzz"), txn("catA")},
			wantOK:  false,
		},
		{
			name:       "mapped majority beats unmapped minority",
			matched:    []model.Transaction{txn("zzz"), txn("catB"), txn("catB")},
			wantParent: "Essentials",
			wantChild:  "Utilities",
			wantOK:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewResolver(testMappings())
			got, ok := r.InferCategory(model.ExpenseDefinition{ID: "e1", MatchedTransactions: tt.matched})
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantParent, got.ParentName)
				assert.Equal(t, tt.wantChild, got.ChildName)
			}
		})
	}
}

func TestInferCategory_Deterministic(t *testing.T) {
	r := NewResolver(testMappings())
	def := model.ExpenseDefinition{
		ID: "e1",
		MatchedTransactions: []model.Transaction{
			{RawCategoryID: "catA"}, {RawCategoryID: "catC"}, {RawCategoryID: "catB"}, {RawCategoryID: "catC"}, {RawCategoryID: "catA"},
		},
	}

	first, ok := r.InferCategory(def)
	require.True(t, ok)
	for i := 0; i < 50; i++ {
		got, ok := r.InferCategory(def)
		require.True(t, ok)
		assert.Equal(t, first, got)
	}
}

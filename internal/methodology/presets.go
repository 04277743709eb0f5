// Package methodology defines the preset budgeting methodologies and merges
// user customizations over them.
package methodology

import "github.com/BenLaurenson/PiggyBack-sub005/internal/model"

// Name identifies a budgeting methodology.
type Name string

// Supported methodologies.
const (
	ZeroBased         Name = "zero-based"
	FiftyThirtyTwenty Name = "50-30-20"
	Envelope          Name = "envelope"
	PayYourselfFirst  Name = "pay-yourself-first"
	EightyTwenty      Name = "80-20"
)

// Valid reports whether the name is a known methodology.
func (n Name) Valid() bool {
	_, ok := presets[n]
	return ok
}

// PercentageBased reports whether the methodology validates section
// percentages against 100.
func (n Name) PercentageBased() bool {
	switch n {
	case FiftyThirtyTwenty, PayYourselfFirst, EightyTwenty:
		return true
	}
	return false
}

// ModernCategories is the fixed vocabulary customizations may group. Every
// underlyingCategories entry must name one of these.
var ModernCategories = []string{
	"Housing",
	"Utilities",
	"Groceries",
	"Transport",
	"Dining Out",
	"Entertainment",
	"Health",
	"Insurance",
	"Subscriptions",
	"Personal Care",
	"Shopping",
	"Education",
	"Travel",
	"Savings",
	"Investments",
	"Debt Repayment",
	"Giving",
	"Pets",
	"Kids",
	model.UncategorizedName,
}

var presets = map[Name][]model.MethodologySection{
	ZeroBased: {
		{Name: "Bills", Color: "#E76F51", UnderlyingCategories: []string{"Housing", "Utilities", "Insurance", "Subscriptions"}, DisplayOrder: 1},
		{Name: "Everyday", Color: "#F4A261", UnderlyingCategories: []string{"Groceries", "Transport", "Health", "Personal Care"}, DisplayOrder: 2},
		{Name: "Fun", Color: "#2A9D8F", UnderlyingCategories: []string{"Dining Out", "Entertainment", "Shopping", "Travel"}, DisplayOrder: 3},
		{Name: "Future", Color: "#264653", UnderlyingCategories: []string{"Savings", "Investments", "Debt Repayment"}, DisplayOrder: 4},
	},
	FiftyThirtyTwenty: {
		{Name: "Needs", Color: "#E76F51", Percentage: 50, HasPercentage: true, UnderlyingCategories: []string{"Housing", "Utilities", "Groceries", "Transport", "Health", "Insurance"}, DisplayOrder: 1},
		{Name: "Wants", Color: "#F4A261", Percentage: 30, HasPercentage: true, UnderlyingCategories: []string{"Dining Out", "Entertainment", "Shopping", "Subscriptions", "Travel", "Personal Care"}, DisplayOrder: 2},
		{Name: "Savings", Color: "#264653", Percentage: 20, HasPercentage: true, UnderlyingCategories: []string{"Savings", "Investments", "Debt Repayment"}, DisplayOrder: 3},
	},
	Envelope: {
		{Name: "Essentials", Color: "#E76F51", UnderlyingCategories: []string{"Housing", "Utilities", "Groceries", "Transport"}, DisplayOrder: 1},
		{Name: "Lifestyle", Color: "#F4A261", UnderlyingCategories: []string{"Dining Out", "Entertainment", "Shopping", "Personal Care"}, DisplayOrder: 2},
		{Name: "Irregular", Color: "#E9C46A", UnderlyingCategories: []string{"Insurance", "Health", "Travel", "Giving"}, DisplayOrder: 3},
		{Name: "Savings", Color: "#264653", UnderlyingCategories: []string{"Savings", "Investments"}, DisplayOrder: 4},
	},
	PayYourselfFirst: {
		{Name: "Pay Yourself", Color: "#264653", Percentage: 20, HasPercentage: true, UnderlyingCategories: []string{"Savings", "Investments"}, DisplayOrder: 1},
		{Name: "Essentials", Color: "#E76F51", Percentage: 50, HasPercentage: true, UnderlyingCategories: []string{"Housing", "Utilities", "Groceries", "Transport", "Insurance"}, DisplayOrder: 2},
		{Name: "Everything Else", Color: "#F4A261", Percentage: 30, HasPercentage: true, UnderlyingCategories: []string{"Dining Out", "Entertainment", "Shopping", "Travel"}, DisplayOrder: 3},
	},
	EightyTwenty: {
		{Name: "Spending", Color: "#F4A261", Percentage: 80, HasPercentage: true, UnderlyingCategories: []string{"Housing", "Utilities", "Groceries", "Transport", "Dining Out", "Entertainment", "Shopping"}, DisplayOrder: 1},
		{Name: "Savings", Color: "#264653", Percentage: 20, HasPercentage: true, UnderlyingCategories: []string{"Savings", "Investments", "Debt Repayment"}, DisplayOrder: 2},
	},
}

// Preset returns a copy of the named methodology's preset sections.
func Preset(name Name) ([]model.MethodologySection, bool) {
	sections, ok := presets[name]
	if !ok {
		return nil, false
	}
	out := make([]model.MethodologySection, len(sections))
	copy(out, sections)
	return out, true
}

// Names lists the known methodologies in a stable order.
func Names() []Name {
	return []Name{ZeroBased, FiftyThirtyTwenty, Envelope, PayYourselfFirst, EightyTwenty}
}

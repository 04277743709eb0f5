package model

// UncategorizedName is the bucket for transactions whose raw category id has
// no mapping. Unmapped spend is grouped here rather than dropped.
const UncategorizedName = "Uncategorized"

// CategoryMapping maps a raw bank-feed category id onto the two-level
// parent/child taxonomy. Mappings are maintained by an administrator and are
// immutable within one engine invocation.
type CategoryMapping struct {
	RawCategoryID string
	ParentName    string
	ChildName     string
	Icon          string
	DisplayOrder  int
}

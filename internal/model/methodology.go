package model

// MethodologySection is one operative grouping after presets and
// customizations are merged: a display bucket of underlying categories with
// an optional target percentage.
type MethodologySection struct {
	Name                 string
	Color                string
	UnderlyingCategories []string
	Percentage           float64
	DisplayOrder         int
	HasPercentage        bool
}

// CustomCategory overrides one preset methodology section. It matches the
// preset entry by OriginalName; nil fields leave the preset value in place.
type CustomCategory struct {
	Percentage           *float64
	DisplayOrder         *int
	OriginalName         string
	Name                 string
	Color                string
	UnderlyingCategories []string
	IsHidden             bool
}

// MethodologyCustomization is a partnership's (and optionally one user's)
// edits over a preset methodology. User-specific customizations win over
// partnership-wide ones.
type MethodologyCustomization struct {
	PartnershipID       string
	UserID              string
	CustomCategories    []CustomCategory
	HiddenSubcategories []string
}

package methodology

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/common"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
)

// percentTolerance is how far a percentage-based methodology's section total
// may drift from 100 before a customization is rejected.
const percentTolerance = 0.01

// Resolve merges a customization over the named preset and returns the
// operative sections: customized entries override their preset match by
// originalName, the result is sorted by display order, and hidden entries are
// dropped. Customizations are validated at write time, so Resolve never sees
// an invalid merge.
func Resolve(name Name, customization *model.MethodologyCustomization) ([]model.MethodologySection, error) {
	preset, ok := Preset(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", common.ErrUnknownMethodology, name)
	}

	if customization == nil {
		sortSections(preset)
		return preset, nil
	}

	byOriginal := make(map[string]model.CustomCategory, len(customization.CustomCategories))
	for _, c := range customization.CustomCategories {
		byOriginal[c.OriginalName] = c
	}

	merged := make([]model.MethodologySection, 0, len(preset))
	for _, section := range preset {
		custom, found := byOriginal[section.Name]
		if !found {
			merged = append(merged, section)
			continue
		}
		if custom.IsHidden {
			continue
		}
		merged = append(merged, applyOverride(section, custom))
	}

	sortSections(merged)
	return merged, nil
}

func applyOverride(section model.MethodologySection, custom model.CustomCategory) model.MethodologySection {
	if custom.Name != "" {
		section.Name = custom.Name
	}
	if custom.Color != "" {
		section.Color = custom.Color
	}
	if custom.Percentage != nil {
		section.Percentage = *custom.Percentage
		section.HasPercentage = true
	}
	if custom.DisplayOrder != nil {
		section.DisplayOrder = *custom.DisplayOrder
	}
	if custom.UnderlyingCategories != nil {
		section.UnderlyingCategories = custom.UnderlyingCategories
	}
	return section
}

func sortSections(sections []model.MethodologySection) {
	sort.SliceStable(sections, func(i, j int) bool {
		return sections[i].DisplayOrder < sections[j].DisplayOrder
	})
}

// Validate checks a customization against the named methodology's rules. It
// runs at write time: a failing customization is rejected with a descriptive
// message and never persisted.
func Validate(name Name, customization *model.MethodologyCustomization) error {
	if !name.Valid() {
		return fmt.Errorf("%w: %q", common.ErrUnknownMethodology, name)
	}
	if customization == nil {
		return nil
	}

	merged, err := Resolve(name, customization)
	if err != nil {
		return err
	}

	seen := make(map[string]bool, len(merged))
	for _, section := range merged {
		if seen[section.Name] {
			return fmt.Errorf("%w: duplicate category name %q", common.ErrInvalidCustomization, section.Name)
		}
		seen[section.Name] = true

		for _, underlying := range section.UnderlyingCategories {
			if !knownModernCategory(underlying) {
				return fmt.Errorf("%w: unknown category %q in %q", common.ErrInvalidCustomization, underlying, section.Name)
			}
		}
	}

	if name.PercentageBased() {
		var total float64
		for _, section := range merged {
			total += section.Percentage
		}
		if math.Abs(total-100) > percentTolerance {
			return fmt.Errorf("%w: percentages for %s sum to %.2f, want 100", common.ErrInvalidCustomization, name, total)
		}
	}

	return nil
}

func knownModernCategory(name string) bool {
	for _, c := range ModernCategories {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

package methodology

import (
	"testing"

	"github.com/BenLaurenson/PiggyBack-sub005/internal/common"
	"github.com/BenLaurenson/PiggyBack-sub005/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func TestResolve_PresetPassThrough(t *testing.T) {
	sections, err := Resolve(FiftyThirtyTwenty, nil)
	require.NoError(t, err)
	require.Len(t, sections, 3)
	assert.Equal(t, "Needs", sections[0].Name)
	assert.Equal(t, "Wants", sections[1].Name)
	assert.Equal(t, "Savings", sections[2].Name)

	var total float64
	for _, s := range sections {
		total += s.Percentage
	}
	assert.InDelta(t, 100, total, 0.01)
}

func TestResolve_UnknownMethodology(t *testing.T) {
	_, err := Resolve(Name("70-20-10"), nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrUnknownMethodology)
}

func TestResolve_CustomizationMerge(t *testing.T) {
	custom := &model.MethodologyCustomization{
		PartnershipID: "p1",
		CustomCategories: []model.CustomCategory{
			{
				OriginalName: "Wants",
				Name:         "Treats",
				Percentage:   floatPtr(25),
				Color:        "#FFAA00",
			},
			{
				OriginalName: "Savings",
				Percentage:   floatPtr(25),
				DisplayOrder: intPtr(0),
			},
		},
	}

	sections, err := Resolve(FiftyThirtyTwenty, custom)
	require.NoError(t, err)
	require.Len(t, sections, 3)

	// Savings moved to the front via display order override.
	assert.Equal(t, "Savings", sections[0].Name)
	assert.Equal(t, float64(25), sections[0].Percentage)

	// Needs untouched.
	assert.Equal(t, "Needs", sections[1].Name)
	assert.Equal(t, float64(50), sections[1].Percentage)

	// Wants renamed and recolored.
	assert.Equal(t, "Treats", sections[2].Name)
	assert.Equal(t, "#FFAA00", sections[2].Color)
	assert.Equal(t, float64(25), sections[2].Percentage)
}

func TestResolve_HiddenSectionsDropped(t *testing.T) {
	custom := &model.MethodologyCustomization{
		CustomCategories: []model.CustomCategory{
			{OriginalName: "Irregular", IsHidden: true},
		},
	}

	sections, err := Resolve(Envelope, custom)
	require.NoError(t, err)
	require.Len(t, sections, 3)
	for _, s := range sections {
		assert.NotEqual(t, "Irregular", s.Name)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name          string
		methodology   Name
		customization *model.MethodologyCustomization
		wantErr       error
	}{
		{
			name:        "nil customization always valid",
			methodology: FiftyThirtyTwenty,
		},
		{
			name:        "unknown methodology rejected",
			methodology: Name("mystery"),
			wantErr:     common.ErrUnknownMethodology,
		},
		{
			name:        "percentages summing away from 100 rejected",
			methodology: FiftyThirtyTwenty,
			customization: &model.MethodologyCustomization{
				CustomCategories: []model.CustomCategory{
					{OriginalName: "Wants", Percentage: floatPtr(40)},
				},
			},
			wantErr: common.ErrInvalidCustomization,
		},
		{
			name:        "rebalanced percentages accepted",
			methodology: FiftyThirtyTwenty,
			customization: &model.MethodologyCustomization{
				CustomCategories: []model.CustomCategory{
					{OriginalName: "Wants", Percentage: floatPtr(20)},
					{OriginalName: "Savings", Percentage: floatPtr(30)},
				},
			},
		},
		{
			name:        "hiding a percentage section must rebalance",
			methodology: EightyTwenty,
			customization: &model.MethodologyCustomization{
				CustomCategories: []model.CustomCategory{
					{OriginalName: "Savings", IsHidden: true},
				},
			},
			wantErr: common.ErrInvalidCustomization,
		},
		{
			name:        "duplicate names rejected",
			methodology: FiftyThirtyTwenty,
			customization: &model.MethodologyCustomization{
				CustomCategories: []model.CustomCategory{
					{OriginalName: "Wants", Name: "Needs"},
				},
			},
			wantErr: common.ErrInvalidCustomization,
		},
		{
			name:        "unknown underlying category rejected",
			methodology: Envelope,
			customization: &model.MethodologyCustomization{
				CustomCategories: []model.CustomCategory{
					{OriginalName: "Lifestyle", UnderlyingCategories: []string{"Groceries", "Yachts"}},
				},
			},
			wantErr: common.ErrInvalidCustomization,
		},
		{
			name:        "non-percentage methodology skips the sum check",
			methodology: Envelope,
			customization: &model.MethodologyCustomization{
				CustomCategories: []model.CustomCategory{
					{OriginalName: "Savings", IsHidden: true},
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.methodology, tt.customization)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestPresets_PercentageInvariant(t *testing.T) {
	for _, name := range Names() {
		if !name.PercentageBased() {
			continue
		}
		sections, err := Resolve(name, nil)
		require.NoError(t, err)

		var total float64
		for _, s := range sections {
			total += s.Percentage
		}
		assert.InDelta(t, 100, total, 0.01, "preset %s", name)
	}
}

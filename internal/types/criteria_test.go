package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fptr(v float64) *float64 { return &v }
func iptr(v int) *int         { return &v }

func TestCriteriaValidate(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		wantErr  bool
	}{
		{
			name:     "minimal property criteria",
			criteria: Criteria{Kind: KindProperty},
		},
		{
			name: "full property criteria",
			criteria: Criteria{
				Kind:               KindProperty,
				Query:              "2kk Praha",
				MaxBudget:          fptr(30000),
				MinBedrooms:        iptr(1),
				MaxBedrooms:        iptr(3),
				MinSizeM2:          fptr(40),
				MaxSizeM2:          fptr(80),
				PreferredLocations: []string{"Praha 2", "Praha 3"},
				MustHaveAmenities:  []string{"balcony"},
			},
		},
		{
			name:     "job criteria",
			criteria: Criteria{Kind: KindJob, Query: "golang developer"},
		},
		{
			name:     "missing kind",
			criteria: Criteria{Query: "anything"},
			wantErr:  true,
		},
		{
			name:     "unknown kind",
			criteria: Criteria{Kind: "boat"},
			wantErr:  true,
		},
		{
			name:     "negative budget",
			criteria: Criteria{Kind: KindProperty, MaxBudget: fptr(-1)},
			wantErr:  true,
		},
		{
			name:     "negative bedrooms",
			criteria: Criteria{Kind: KindProperty, MinBedrooms: iptr(-2)},
			wantErr:  true,
		},
		{
			name:     "bedroom range inverted",
			criteria: Criteria{Kind: KindProperty, MinBedrooms: iptr(3), MaxBedrooms: iptr(1)},
			wantErr:  true,
		},
		{
			name:     "size range inverted",
			criteria: Criteria{Kind: KindProperty, MinSizeM2: fptr(90), MaxSizeM2: fptr(40)},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPreferencesValidate(t *testing.T) {
	valid := DefaultPreferences()
	require.NoError(t, valid.Validate())

	negative := Preferences{PriceWeight: -0.1, SizeWeight: 1}
	assert.Error(t, negative.Validate())

	allZero := Preferences{}
	assert.Error(t, allZero.Validate())
}

func TestPreferencesTotalWeight(t *testing.T) {
	p := Preferences{PriceWeight: 0.4, SizeWeight: 0.3, LocationWeight: 0.2, AmenityWeight: 0.1}
	assert.InDelta(t, 1.0, p.TotalWeight(), 1e-9)

	assert.Equal(t, 0.0, Preferences{}.TotalWeight())
}

func TestDefaultPreferences(t *testing.T) {
	p := DefaultPreferences()
	assert.Equal(t, 0.4, p.PriceWeight)
	assert.Equal(t, 0.3, p.SizeWeight)
	assert.Equal(t, 0.3, p.LocationWeight)
	assert.Equal(t, 0.0, p.AmenityWeight)
	assert.NoError(t, p.Validate())
}

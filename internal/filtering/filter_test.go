package filtering

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin/listing-hunter/internal/types"
)

func f64(v float64) *float64 { return &v }
func i(v int) *int           { return &v }

func listing(title string, price float64, bedrooms int, location string) types.Listing {
	return types.Listing{
		Kind:     types.KindProperty,
		Title:    title,
		Price:    price,
		Bedrooms: bedrooms,
		Location: location,
		Link:     "https://example.com/" + title,
	}
}

func TestApply_NoCriteriaPassesThrough(t *testing.T) {
	listings := []types.Listing{
		listing("a", 400000, 2, "Praha 1"),
		listing("b", 450000, 3, "Praha 2"),
	}

	kept := Apply(listings, types.Criteria{})
	assert.Equal(t, listings, kept, "absent criteria impose no constraint")
}

func TestApply_BudgetAndBedrooms(t *testing.T) {
	listings := []types.Listing{
		listing("cheap", 400000, 2, "Praha 3"),
		listing("mid", 450000, 1, "Praha 3"),
		listing("expensive", 600000, 3, "Praha 3"),
	}
	criteria := types.Criteria{
		MaxBudget:   f64(500000),
		MinBedrooms: i(2),
	}

	kept := Apply(listings, criteria)

	require.Len(t, kept, 1)
	assert.Equal(t, "cheap", kept[0].Title)
}

func TestMatches_MissingFieldRejected(t *testing.T) {
	// A listing without a price cannot satisfy a budget criterion.
	noPrice := listing("unknown", 0, 2, "Praha 5")
	assert.False(t, Matches(noPrice, types.Criteria{MaxBudget: f64(500000)}))

	// The same listing passes without the criterion.
	assert.True(t, Matches(noPrice, types.Criteria{}))

	noBedrooms := listing("studio", 300000, 0, "Praha 5")
	assert.False(t, Matches(noBedrooms, types.Criteria{MinBedrooms: i(1)}))
}

func TestMatches_SizeRange(t *testing.T) {
	l := listing("flat", 300000, 2, "Praha 7")
	l.SizeM2 = 62

	assert.True(t, Matches(l, types.Criteria{MinSizeM2: f64(50)}))
	assert.False(t, Matches(l, types.Criteria{MinSizeM2: f64(70)}))
	assert.True(t, Matches(l, types.Criteria{MaxSizeM2: f64(70)}))
	assert.False(t, Matches(l, types.Criteria{MaxSizeM2: f64(50)}))

	l.SizeM2 = 0
	assert.False(t, Matches(l, types.Criteria{MinSizeM2: f64(50)}), "unknown size rejected when size matters")
}

func TestMatches_Location(t *testing.T) {
	l := listing("flat", 300000, 2, "Malešická, Praha 3 - Žižkov")

	assert.True(t, Matches(l, types.Criteria{PreferredLocations: []string{"Praha 3", "Praha 7"}}))
	assert.True(t, Matches(l, types.Criteria{PreferredLocations: []string{"žižkov"}}), "case-insensitive")
	assert.False(t, Matches(l, types.Criteria{PreferredLocations: []string{"Praha 6"}}))
}

func TestMatches_PropertyType(t *testing.T) {
	l := listing("flat", 300000, 1, "Praha 2")
	l.PropertyType = "1+KK Studio"

	assert.True(t, Matches(l, types.Criteria{PropertyType: "studio"}))
	assert.False(t, Matches(l, types.Criteria{PropertyType: "house"}))

	l.PropertyType = ""
	assert.False(t, Matches(l, types.Criteria{PropertyType: "studio"}), "unknown type rejected when type matters")
}

func TestMatches_Amenities(t *testing.T) {
	l := listing("flat", 300000, 2, "Praha 2")
	l.Amenities = []string{"Balcony", "Parking"}
	l.Description = "Quiet flat with a cellar"

	assert.True(t, Matches(l, types.Criteria{MustHaveAmenities: []string{"balcony"}}))
	assert.True(t, Matches(l, types.Criteria{MustHaveAmenities: []string{"cellar"}}), "description counts")
	assert.False(t, Matches(l, types.Criteria{MustHaveAmenities: []string{"balcony", "elevator"}}), "all must match")
}

func TestApply_EmptyInput(t *testing.T) {
	kept := Apply(nil, types.Criteria{MaxBudget: f64(100)})
	assert.Empty(t, kept)
	assert.NotNil(t, kept)
}

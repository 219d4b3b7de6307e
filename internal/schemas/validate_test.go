package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin/listing-hunter/internal/types"
)

func TestValidateListing_Valid(t *testing.T) {
	listing := types.Listing{
		Kind:         types.KindProperty,
		Title:        "2+kk with balcony",
		Location:     "Malešická, Praha 3 - Žižkov",
		Link:         "https://example.com/listing/1",
		Price:        23400,
		SizeM2:       45,
		Bedrooms:     2,
		Amenities:    []string{"balcony"},
		PropertyType: "2+kk",
	}
	assert.NoError(t, ValidateListing(listing))
}

func TestValidateListing_JobVariant(t *testing.T) {
	listing := types.Listing{
		Kind:     types.KindJob,
		Title:    "Backend Engineer",
		Location: "Praha",
		Link:     "https://example.com/job/1",
		Company:  "Acme",
		Salary:   "90-120k CZK",
		Tags:     []string{"go", "postgres"},
	}
	assert.NoError(t, ValidateListing(listing))
}

func TestValidateListing_MissingRequiredField(t *testing.T) {
	listing := types.Listing{
		Kind:     types.KindProperty,
		Title:    "no location",
		Location: "",
		Link:     "https://example.com/listing/2",
	}

	err := ValidateListing(listing)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.NotEmpty(t, vErr.Errors)
}

func TestValidateListing_UnknownKind(t *testing.T) {
	listing := types.Listing{
		Kind:     "boat",
		Title:    "houseboat",
		Location: "Vltava",
		Link:     "https://example.com/listing/3",
	}
	assert.Error(t, ValidateListing(listing))
}

func TestValidateListing_ScoreOutOfRange(t *testing.T) {
	listing := types.Listing{
		Kind:     types.KindProperty,
		Title:    "overscored",
		Location: "Praha 1",
		Link:     "https://example.com/listing/4",
		Scored:   true,
		Score:    101,
	}
	assert.Error(t, ValidateListing(listing))
}

func TestValidateListings_ReportsPosition(t *testing.T) {
	good := types.Listing{
		Kind:     types.KindProperty,
		Title:    "fine",
		Location: "Praha 2",
		Link:     "https://example.com/listing/5",
	}
	bad := types.Listing{Kind: types.KindProperty, Title: "broken"}

	err := ValidateListings([]types.Listing{good, good, bad})

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, 2, vErr.Index)
	assert.Contains(t, err.Error(), "listing 2")
}

func TestValidateListings_EmptyIsValid(t *testing.T) {
	assert.NoError(t, ValidateListings(nil))
}

package mock

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/martin/listing-hunter/internal/schemas"
	"github.com/martin/listing-hunter/internal/types"
)

func TestSearch_EmptyQueryReturnsAllProperties(t *testing.T) {
	s := NewSearcher()

	listings, err := s.Search(context.Background(), types.Criteria{Kind: types.KindProperty})

	require.NoError(t, err)
	assert.NotEmpty(t, listings)
	for _, l := range listings {
		assert.Equal(t, types.KindProperty, l.Kind)
	}
}

func TestSearch_KeywordMatch(t *testing.T) {
	s := NewSearcher()

	listings, err := s.Search(context.Background(), types.Criteria{
		Kind:  types.KindProperty,
		Query: "Žižkov",
	})

	require.NoError(t, err)
	require.NotEmpty(t, listings)
	all, _ := s.Search(context.Background(), types.Criteria{Kind: types.KindProperty})
	assert.Less(t, len(listings), len(all), "keyword narrows the fixture set")
}

func TestSearch_NoMatchFallsBackToFullSet(t *testing.T) {
	s := NewSearcher()

	listings, err := s.Search(context.Background(), types.Criteria{
		Kind:  types.KindProperty,
		Query: "zzz-no-such-place",
	})

	require.NoError(t, err)
	all, _ := s.Search(context.Background(), types.Criteria{Kind: types.KindProperty})
	assert.Len(t, listings, len(all))
}

func TestSearch_JobKind(t *testing.T) {
	s := NewSearcher()

	listings, err := s.Search(context.Background(), types.Criteria{Kind: types.KindJob})

	require.NoError(t, err)
	require.NotEmpty(t, listings)
	for _, l := range listings {
		assert.Equal(t, types.KindJob, l.Kind)
	}
}

func TestSearch_JobTagMatch(t *testing.T) {
	s := NewSearcher()

	listings, err := s.Search(context.Background(), types.Criteria{
		Kind:  types.KindJob,
		Query: "python",
	})

	require.NoError(t, err)
	require.NotEmpty(t, listings)
}

func TestSearch_ResultIsACopy(t *testing.T) {
	s := NewSearcher()

	first, err := s.Search(context.Background(), types.Criteria{Kind: types.KindProperty})
	require.NoError(t, err)
	require.NotEmpty(t, first)
	original := first[0].Title
	first[0].Title = "mutated"

	second, err := s.Search(context.Background(), types.Criteria{Kind: types.KindProperty})
	require.NoError(t, err)
	assert.Equal(t, original, second[0].Title, "callers cannot corrupt the fixtures")
}

func TestFixturesPassSchemaValidation(t *testing.T) {
	s := NewSearcher()

	for _, kind := range []types.ListingKind{types.KindProperty, types.KindJob} {
		listings, err := s.Search(context.Background(), types.Criteria{Kind: kind})
		require.NoError(t, err)
		assert.NoError(t, schemas.ValidateListings(listings))
	}
}

package stages

import (
	"context"

	"github.com/martin/listing-hunter/internal/scoring"
	"github.com/martin/listing-hunter/internal/state"
)

// Score annotates the filtered listings with weighted sub-scores and
// writes them sorted by total score descending. Deterministic for
// fixed inputs; equal scores keep their original relative order.
type Score struct{}

// NewScore creates the score stage.
func NewScore() *Score {
	return &Score{}
}

func (s *Score) Name() string { return "score" }

func (s *Score) Inputs() []string {
	return []string{KeyFilteredListings, KeyPreferences, KeyCriteria}
}

func (s *Score) Outputs() []string { return []string{KeyScoredListings} }

func (s *Score) Execute(_ context.Context, store *state.Store) error {
	listings, err := listingsFrom(store, KeyFilteredListings)
	if err != nil {
		return err
	}
	prefs, err := preferencesFrom(store)
	if err != nil {
		return err
	}
	criteria, err := criteriaFrom(store)
	if err != nil {
		return err
	}

	store.Set(KeyScoredListings, scoring.Rank(listings, prefs, criteria.MustHaveAmenities))
	return nil
}

package stages

import (
	"context"

	"github.com/martin/listing-hunter/internal/filtering"
	"github.com/martin/listing-hunter/internal/state"
)

// Filter applies the user criteria to the raw listing set. Pure
// predicate evaluation: no gateway calls, no side effects. Listings
// pass only if they satisfy every present criterion; absent criteria
// impose no constraint.
type Filter struct{}

// NewFilter creates the filter stage.
func NewFilter() *Filter {
	return &Filter{}
}

func (f *Filter) Name() string      { return "filter" }
func (f *Filter) Inputs() []string  { return []string{KeyRawListings, KeyCriteria} }
func (f *Filter) Outputs() []string { return []string{KeyFilteredListings} }

func (f *Filter) Execute(_ context.Context, store *state.Store) error {
	listings, err := listingsFrom(store, KeyRawListings)
	if err != nil {
		return err
	}
	criteria, err := criteriaFrom(store)
	if err != nil {
		return err
	}

	store.Set(KeyFilteredListings, filtering.Apply(listings, criteria))
	return nil
}

// Package stages implements the listing pipeline's stage variants:
// search, filter, score and notify. Each stage declares the store keys
// it reads and writes; the runner enforces the contract.
package stages

import (
	"fmt"

	"github.com/martin/listing-hunter/internal/state"
	"github.com/martin/listing-hunter/internal/types"
)

// Store keys shared by the listing stages. Entry parameters are seeded
// by the caller before the run starts; the remaining keys are stage
// outputs.
const (
	KeyCriteria         = "criteria"
	KeyPreferences      = "preferences"
	KeyLimit            = "limit"
	KeyRawListings      = "raw_listings"
	KeyFilteredListings = "filtered_listings"
	KeyScoredListings   = "scored_listings"
	KeyNotification     = "notification"
)

// DefaultTopK is the number of top listings delivered when the caller
// does not set a limit.
const DefaultTopK = 5

// criteriaFrom reads the typed criteria entry parameter. A wrong type
// under the key is an internal defect, not a user error.
func criteriaFrom(store *state.Store) (types.Criteria, error) {
	v, _ := store.Get(KeyCriteria)
	c, ok := v.(types.Criteria)
	if !ok {
		return types.Criteria{}, fmt.Errorf("store key %q holds %T, want types.Criteria", KeyCriteria, v)
	}
	return c, nil
}

func preferencesFrom(store *state.Store) (types.Preferences, error) {
	v, _ := store.Get(KeyPreferences)
	p, ok := v.(types.Preferences)
	if !ok {
		return types.Preferences{}, fmt.Errorf("store key %q holds %T, want types.Preferences", KeyPreferences, v)
	}
	return p, nil
}

func listingsFrom(store *state.Store, key string) ([]types.Listing, error) {
	v, _ := store.Get(key)
	listings, ok := v.([]types.Listing)
	if !ok {
		return nil, fmt.Errorf("store key %q holds %T, want []types.Listing", key, v)
	}
	return listings, nil
}

// limitFrom reads the optional listing-count limit, defaulting to
// DefaultTopK.
func limitFrom(store *state.Store) int {
	v, ok := store.Get(KeyLimit)
	if !ok {
		return DefaultTopK
	}
	limit, ok := v.(int)
	if !ok || limit <= 0 {
		return DefaultTopK
	}
	return limit
}

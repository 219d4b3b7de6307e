// Package gateway defines the capability boundary between the pipeline
// and the remote listing-search and notification services. The pipeline
// never hard-codes which backend answers an operation; implementations
// are swappable without changing stage or runner logic.
package gateway

import (
	"context"

	"github.com/martin/listing-hunter/internal/types"
)

// Searcher answers listing searches. An empty result is a valid, not
// erroneous, outcome. Implementations own their wire format and any
// retry policy; the pipeline core performs none.
type Searcher interface {
	Search(ctx context.Context, criteria types.Criteria) ([]types.Listing, error)
}

// Notifier delivers the final listing set to the user and returns a
// delivery confirmation. This is the only outward side effect the
// pipeline performs; re-sending on a re-run is accepted.
type Notifier interface {
	Notify(ctx context.Context, listings []types.Listing) (*types.Confirmation, error)
}

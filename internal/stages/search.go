package stages

import (
	"context"
	"log"

	"github.com/martin/listing-hunter/internal/gateway"
	"github.com/martin/listing-hunter/internal/pipeline"
	"github.com/martin/listing-hunter/internal/schemas"
	"github.com/martin/listing-hunter/internal/state"
)

// Search queries the listing backend through the gateway and writes the
// raw listing set. An empty result is valid. When a fallback searcher
// is configured (an explicit configuration choice, off by default), a
// gateway failure falls through to it instead of failing the run.
type Search struct {
	Gateway  gateway.Searcher
	Fallback gateway.Searcher
	Verbose  bool
}

// NewSearch creates the search stage over a primary searcher.
func NewSearch(gw gateway.Searcher) *Search {
	return &Search{Gateway: gw}
}

func (s *Search) Name() string      { return "search" }
func (s *Search) Inputs() []string  { return []string{KeyCriteria} }
func (s *Search) Outputs() []string { return []string{KeyRawListings} }

// Execute runs the search. Gateway errors (including timeouts) are
// wrapped as dependency failures; listing payloads are schema-validated
// before entering the store.
func (s *Search) Execute(ctx context.Context, store *state.Store) error {
	criteria, err := criteriaFrom(store)
	if err != nil {
		return err
	}

	listings, err := s.Gateway.Search(ctx, criteria)
	if err != nil {
		if s.Fallback == nil {
			return &pipeline.DependencyError{Stage: s.Name(), Operation: "search", Cause: err}
		}
		log.Printf("Warning: search backend failed (%v), falling back to mock data", err)
		listings, err = s.Fallback.Search(ctx, criteria)
		if err != nil {
			return &pipeline.DependencyError{Stage: s.Name(), Operation: "search (fallback)", Cause: err}
		}
	}

	if err := schemas.ValidateListings(listings); err != nil {
		return &pipeline.DependencyError{Stage: s.Name(), Operation: "search", Cause: err}
	}

	if s.Verbose {
		log.Printf("[search] %d listing(s) from backend", len(listings))
	}
	store.Set(KeyRawListings, listings)
	return nil
}

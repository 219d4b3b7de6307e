// Package mock provides an in-memory search backend with fixture data,
// used for development and as an explicit fallback when the remote
// toolbox is unavailable and the configuration allows it.
package mock

import (
	"context"
	"strings"

	"github.com/martin/listing-hunter/internal/gateway"
	"github.com/martin/listing-hunter/internal/types"
)

// Searcher serves fixture listings filtered by simple keyword matching.
type Searcher struct {
	properties []types.Listing
	jobs       []types.Listing
}

var _ gateway.Searcher = (*Searcher)(nil)

// NewSearcher creates a mock searcher with the built-in Prague fixtures.
func NewSearcher() *Searcher {
	return &Searcher{
		properties: propertyFixtures,
		jobs:       jobFixtures,
	}
}

// Search returns fixture listings whose location, type, title, company
// or description contains the query keyword (case-insensitive). With no
// matches or an empty query the full fixture set is returned.
func (s *Searcher) Search(_ context.Context, criteria types.Criteria) ([]types.Listing, error) {
	source := s.properties
	if criteria.Kind == types.KindJob {
		source = s.jobs
	}

	query := strings.ToLower(strings.TrimSpace(criteria.Query))
	if query == "" {
		return clone(source), nil
	}

	var matched []types.Listing
	for _, l := range source {
		if matchesQuery(l, query) {
			matched = append(matched, l)
		}
	}
	if len(matched) == 0 {
		return clone(source), nil
	}
	return matched, nil
}

func matchesQuery(l types.Listing, query string) bool {
	fields := []string{l.Title, l.Location, l.PropertyType, l.Company, l.Description, l.PriceRaw}
	for _, f := range fields {
		if f != "" && strings.Contains(strings.ToLower(f), query) {
			return true
		}
	}
	for _, tag := range l.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

func clone(listings []types.Listing) []types.Listing {
	out := make([]types.Listing, len(listings))
	copy(out, listings)
	return out
}

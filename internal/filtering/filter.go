// Package filtering provides pure predicate evaluation of listings
// against user criteria. It performs no gateway calls.
package filtering

import (
	"strings"

	"github.com/martin/listing-hunter/internal/types"
)

// Apply returns the listings satisfying every present criterion. Absent
// criteria impose no constraint; when all criteria are absent the input
// passes through unmodified. A listing missing a field that a present
// criterion needs is rejected.
func Apply(listings []types.Listing, criteria types.Criteria) []types.Listing {
	kept := make([]types.Listing, 0, len(listings))
	for _, l := range listings {
		if Matches(l, criteria) {
			kept = append(kept, l)
		}
	}
	return kept
}

// Matches evaluates all present criteria against a single listing.
func Matches(l types.Listing, c types.Criteria) bool {
	if c.MaxBudget != nil {
		if l.Price <= 0 || l.Price > *c.MaxBudget {
			return false
		}
	}
	if c.MinBedrooms != nil {
		if l.Bedrooms <= 0 || l.Bedrooms < *c.MinBedrooms {
			return false
		}
	}
	if c.MaxBedrooms != nil {
		if l.Bedrooms <= 0 || l.Bedrooms > *c.MaxBedrooms {
			return false
		}
	}
	if c.MinSizeM2 != nil {
		if l.SizeM2 <= 0 || l.SizeM2 < *c.MinSizeM2 {
			return false
		}
	}
	if c.MaxSizeM2 != nil {
		if l.SizeM2 <= 0 || l.SizeM2 > *c.MaxSizeM2 {
			return false
		}
	}
	if len(c.PreferredLocations) > 0 && !matchesLocation(l.Location, c.PreferredLocations) {
		return false
	}
	if c.PropertyType != "" && !matchesPropertyType(l.PropertyType, c.PropertyType) {
		return false
	}
	for _, amenity := range c.MustHaveAmenities {
		if !l.HasAmenity(amenity) {
			return false
		}
	}
	return true
}

// matchesLocation reports whether the listing location contains any of
// the preferred locations (case-insensitive).
func matchesLocation(location string, preferred []string) bool {
	loc := strings.ToLower(location)
	for _, p := range preferred {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" && strings.Contains(loc, p) {
			return true
		}
	}
	return false
}

// matchesPropertyType matches loosely: "studio" matches "1+KK Studio".
func matchesPropertyType(listingType, wanted string) bool {
	if listingType == "" {
		return false
	}
	return strings.Contains(strings.ToLower(listingType), strings.ToLower(strings.TrimSpace(wanted)))
}

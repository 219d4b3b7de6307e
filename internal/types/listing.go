// Package types defines the core data structures shared across the listing hunter pipeline.
package types

import "strings"

// ListingKind distinguishes the two listing variants handled by the pipeline.
type ListingKind string

const (
	KindProperty ListingKind = "property"
	KindJob      ListingKind = "job"
)

// Listing is a single search result enriched in place as it moves through
// the pipeline. Title, Location and Link are required for every kind;
// the remaining fields depend on the kind and the source backend.
type Listing struct {
	Kind     ListingKind `json:"kind"`
	Title    string      `json:"title"`
	Location string      `json:"location"`
	Link     string      `json:"link"`

	// Price is the monthly rent for properties and the offered salary
	// for jobs. PriceRaw keeps the original textual form when the
	// source does not provide a clean numeric value.
	Price    float64 `json:"price,omitempty"`
	PriceRaw string  `json:"price_raw,omitempty"`

	// Property fields
	PropertyType string   `json:"property_type,omitempty"`
	SizeM2       float64  `json:"size_m2,omitempty"`
	Bedrooms     int      `json:"bedrooms,omitempty"`
	Amenities    []string `json:"amenities,omitempty"`

	// Job fields
	Company string   `json:"company,omitempty"`
	Salary  string   `json:"salary,omitempty"`
	Tags    []string `json:"tags,omitempty"`

	Description string `json:"description,omitempty"`

	// Scoring annotations, written by the score stage. Score is in
	// [0,100]; SubScores holds the clamped per-dimension values.
	Scored    bool               `json:"scored,omitempty"`
	Score     float64            `json:"score,omitempty"`
	SubScores map[string]float64 `json:"sub_scores,omitempty"`
	Rationale string             `json:"rationale,omitempty"`
}

// District extracts the district component from a Prague-style location
// string such as "Malešická, Praha 3 - Žižkov" -> "Praha 3".
func (l *Listing) District() string {
	if l.Location == "" {
		return ""
	}
	segment := l.Location
	if idx := strings.LastIndex(segment, ","); idx >= 0 {
		segment = segment[idx+1:]
	}
	segment = strings.TrimSpace(segment)
	if idx := strings.Index(segment, " - "); idx >= 0 {
		segment = segment[:idx]
	}
	return strings.TrimSpace(segment)
}

// HasAmenity reports whether the listing mentions the amenity in its
// amenity list or free-text description (case-insensitive).
func (l *Listing) HasAmenity(amenity string) bool {
	needle := strings.ToLower(strings.TrimSpace(amenity))
	if needle == "" {
		return true
	}
	for _, a := range l.Amenities {
		if strings.ToLower(strings.TrimSpace(a)) == needle {
			return true
		}
	}
	return strings.Contains(strings.ToLower(l.Description), needle)
}

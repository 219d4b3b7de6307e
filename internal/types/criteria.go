package types

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Criteria holds the user-supplied search constraints for a run.
// Pointer fields distinguish "absent" from a zero value: an absent
// criterion imposes no constraint during filtering. Criteria are
// immutable once passed into the pipeline.
type Criteria struct {
	Kind  ListingKind `json:"kind" validate:"required,oneof=property job"`
	Query string      `json:"query,omitempty"`

	MaxBudget   *float64 `json:"max_budget,omitempty" validate:"omitempty,gte=0"`
	MinBedrooms *int     `json:"min_bedrooms,omitempty" validate:"omitempty,gte=0"`
	MaxBedrooms *int     `json:"max_bedrooms,omitempty" validate:"omitempty,gte=0"`
	MinSizeM2   *float64 `json:"min_size_m2,omitempty" validate:"omitempty,gte=0"`
	MaxSizeM2   *float64 `json:"max_size_m2,omitempty" validate:"omitempty,gte=0"`

	PreferredLocations []string `json:"preferred_locations,omitempty"`
	PropertyType       string   `json:"property_type,omitempty"`
	MustHaveAmenities  []string `json:"must_have_amenities,omitempty"`
}

// Preferences holds the named weighting coefficients used by the score
// stage. Weights must be non-negative; their sum is used as relative
// weight and is not required to equal 1.
type Preferences struct {
	PriceWeight    float64 `json:"price_weight" validate:"gte=0"`
	SizeWeight     float64 `json:"size_weight" validate:"gte=0"`
	LocationWeight float64 `json:"location_weight" validate:"gte=0"`
	AmenityWeight  float64 `json:"amenity_weight" validate:"gte=0"`
}

// TotalWeight returns the sum of all weight coefficients.
func (p Preferences) TotalWeight() float64 {
	return p.PriceWeight + p.SizeWeight + p.LocationWeight + p.AmenityWeight
}

// DefaultPreferences mirrors the weighting the scoring backend shipped
// with: price 0.4, size 0.3, location 0.3.
func DefaultPreferences() Preferences {
	return Preferences{
		PriceWeight:    0.4,
		SizeWeight:     0.3,
		LocationWeight: 0.3,
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks criteria field constraints and cross-field ranges.
func (c *Criteria) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid criteria: %w", err)
	}
	if c.MinBedrooms != nil && c.MaxBedrooms != nil && *c.MinBedrooms > *c.MaxBedrooms {
		return fmt.Errorf("invalid criteria: min_bedrooms (%d) exceeds max_bedrooms (%d)", *c.MinBedrooms, *c.MaxBedrooms)
	}
	if c.MinSizeM2 != nil && c.MaxSizeM2 != nil && *c.MinSizeM2 > *c.MaxSizeM2 {
		return fmt.Errorf("invalid criteria: min_size_m2 (%.0f) exceeds max_size_m2 (%.0f)", *c.MinSizeM2, *c.MaxSizeM2)
	}
	return nil
}

// Validate checks that every weight coefficient is non-negative and at
// least one is positive.
func (p *Preferences) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("invalid preferences: %w", err)
	}
	if p.TotalWeight() == 0 {
		return fmt.Errorf("invalid preferences: at least one weight must be positive")
	}
	return nil
}

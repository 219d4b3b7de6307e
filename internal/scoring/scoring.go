// Package scoring ranks listings by a weighted sum of normalized
// per-dimension sub-scores. Scoring is deterministic: the same inputs
// always produce the same ordering.
package scoring

import (
	"fmt"
	"math"
	"sort"

	"github.com/martin/listing-hunter/internal/types"
)

// Calibration constants for normalizing raw values into [0,1].
// Derived from the Prague rental data range the scoring backend was
// tuned against.
const (
	maxPricePerM2 = 1000.0
	maxSizeM2     = 50.0
	neutralScore  = 0.5
)

// Sub-score dimension names, used as keys in Listing.SubScores.
const (
	DimensionPrice     = "price"
	DimensionSize      = "size"
	DimensionLocation  = "location"
	DimensionAmenities = "amenities"
)

// Rank scores every listing and returns them sorted by total score
// descending. The sort is stable: listings with equal scores keep their
// original relative order. Wanted amenities (from the run criteria)
// drive the amenity-coverage dimension. The input slice is not
// modified.
func Rank(listings []types.Listing, prefs types.Preferences, wantedAmenities []string) []types.Listing {
	scored := make([]types.Listing, len(listings))
	copy(scored, listings)

	for i := range scored {
		annotate(&scored[i], prefs, wantedAmenities)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored
}

// annotate computes the sub-scores and the weighted total for one
// listing, writing the score annotations in place.
func annotate(l *types.Listing, prefs types.Preferences, wantedAmenities []string) {
	subScores := map[string]float64{
		DimensionPrice:     priceScore(l),
		DimensionSize:      sizeScore(l),
		DimensionLocation:  locationScore(l),
		DimensionAmenities: amenityScore(l, wantedAmenities),
	}

	total := prefs.TotalWeight()
	if total <= 0 {
		total = 1
	}
	weighted := prefs.PriceWeight*subScores[DimensionPrice] +
		prefs.SizeWeight*subScores[DimensionSize] +
		prefs.LocationWeight*subScores[DimensionLocation] +
		prefs.AmenityWeight*subScores[DimensionAmenities]

	l.Scored = true
	l.SubScores = subScores
	l.Score = round1(100 * weighted / total)
	l.Rationale = fmt.Sprintf("price %.2f, size %.2f, location %.2f, amenities %.2f (district %s)",
		subScores[DimensionPrice], subScores[DimensionSize],
		subScores[DimensionLocation], subScores[DimensionAmenities],
		l.District())
}

// priceScore rates price competitiveness: lower price per m² scores
// higher. Listings without usable price or size data get a neutral
// score rather than being dropped.
func priceScore(l *types.Listing) float64 {
	if l.Price <= 0 || l.SizeM2 <= 0 {
		return neutralScore
	}
	perM2 := l.Price / l.SizeM2
	return clamp01(1 - perM2/maxPricePerM2)
}

// sizeScore rates size match: larger scores higher up to maxSizeM2.
func sizeScore(l *types.Listing) float64 {
	if l.SizeM2 <= 0 {
		return neutralScore
	}
	return clamp01(l.SizeM2 / maxSizeM2)
}

// locationScore maps district desirability (0-100) into [0,1].
func locationScore(l *types.Listing) float64 {
	return clamp01(DistrictScore(l.District()) / 100)
}

// amenityScore is the fraction of wanted amenities the listing covers.
// With nothing wanted every listing has full coverage, which shifts all
// totals equally and leaves the ordering untouched.
func amenityScore(l *types.Listing, wanted []string) float64 {
	if len(wanted) == 0 {
		return 1
	}
	matched := 0
	for _, amenity := range wanted {
		if l.HasAmenity(amenity) {
			matched++
		}
	}
	return clamp01(float64(matched) / float64(len(wanted)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// round1 rounds to one decimal place, matching the scoring backend's
// display precision.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

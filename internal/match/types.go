// Package match computes neighborhood compatibility scores from a user's
// weighted lifestyle preferences.
//
// Scoring is a pure function over in-memory values: callers adapt their
// stored records into Neighborhood and Preferences (parsing amenity fields
// once, at that boundary) and call ScoreOne, Explain or RankAll. Nothing in
// this package touches storage, and every function is safe for concurrent
// use.
package match

import (
	"fmt"
	"math"
)

// Neighborhood is the read-only view of a neighborhood used for scoring.
// ID and Name are carried through to results untouched.
type Neighborhood struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	CrimeRate    float64    `json:"crime_rate"`
	WalkScore    int        `json:"walk_score"`
	TransitScore int        `json:"transit_score"`
	BikeScore    int        `json:"bike_score"` // not scored
	Amenities    AmenitySet `json:"amenities"`
}

// Validate checks the numeric fields scoring depends on
func (n Neighborhood) Validate() error {
	if math.IsNaN(n.CrimeRate) || math.IsInf(n.CrimeRate, 0) {
		return &MalformedDataError{NeighborhoodID: n.ID, Field: "crime_rate", Reason: "must be a finite number"}
	}
	if n.CrimeRate < 0 {
		return &MalformedDataError{NeighborhoodID: n.ID, Field: "crime_rate", Reason: fmt.Sprintf("must be >= 0, got %g", n.CrimeRate)}
	}
	return nil
}

// Preferences is the read-only view of a user's preference record.
//
// Weights are relative importances and need not sum to 1. Budget and
// CommuteTime are part of the stored record but are not read by scoring.
type Preferences struct {
	Amenities         AmenitySet `json:"amenities"`
	SafetyWeight      float64    `json:"safety_weight"`
	CommuteWeight     float64    `json:"commute_weight"`
	AmenitiesWeight   float64    `json:"amenities_weight"`
	WalkabilityWeight float64    `json:"walkability_weight"`
	Budget            float64    `json:"budget,omitempty"`
	CommuteTime       int        `json:"commute_time,omitempty"`
}

// Weights returns the four weights keyed by dimension
func (p Preferences) Weights() map[Dimension]float64 {
	return map[Dimension]float64{
		DimensionSafety:      p.SafetyWeight,
		DimensionCommute:     p.CommuteWeight,
		DimensionAmenities:   p.AmenitiesWeight,
		DimensionWalkability: p.WalkabilityWeight,
	}
}

// WeightSum returns the denominator of the weighted mean
func (p Preferences) WeightSum() float64 {
	return p.SafetyWeight + p.CommuteWeight + p.AmenitiesWeight + p.WalkabilityWeight
}

// Validate rejects negative or non-finite weights and an all-zero weight set
func (p Preferences) Validate() error {
	for _, d := range Dimensions {
		w := p.Weights()[d]
		field := string(d) + "_weight"
		if math.IsNaN(w) || math.IsInf(w, 0) {
			return &InvalidPreferenceError{Field: field, Reason: "must be a finite number"}
		}
		if w < 0 {
			return &InvalidPreferenceError{Field: field, Reason: fmt.Sprintf("must be >= 0, got %g", w)}
		}
	}

	sum := p.WeightSum()
	if sum == 0 {
		return &InvalidPreferenceError{Field: "weights", Reason: "at least one weight must be greater than zero"}
	}
	if math.IsInf(sum, 0) {
		return &InvalidPreferenceError{Field: "weights", Reason: "weights are too large to combine"}
	}
	return nil
}

// Breakdown holds the per-dimension sub-scores after normalization and
// clamping, and the unrounded weighted mean.
type Breakdown struct {
	Safety      float64 `json:"safety"`
	Commute     float64 `json:"commute"`
	Amenities   float64 `json:"amenities"`
	Walkability float64 `json:"walkability"`
	Raw         float64 `json:"raw"`
}

// Get returns the sub-score for a dimension
func (b Breakdown) Get(d Dimension) float64 {
	switch d {
	case DimensionSafety:
		return b.Safety
	case DimensionCommute:
		return b.Commute
	case DimensionAmenities:
		return b.Amenities
	case DimensionWalkability:
		return b.Walkability
	default:
		return 0
	}
}

// Result is one scored neighborhood
type Result struct {
	Neighborhood Neighborhood `json:"neighborhood"`
	Score        int          `json:"score"`
	Breakdown    Breakdown    `json:"breakdown"`
}

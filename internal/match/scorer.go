package match

import "math"

const (
	// MinScore and MaxScore bound every sub-score and the final score
	MinScore = 0.0
	MaxScore = 100.0

	// crimePenalty converts crime incidents into safety points
	crimePenalty = 10.0

	// precision drops float noise from the weighted mean before rounding so
	// that uniformly scaled weights produce the same integer score
	precision = 1e9
)

// Dimension identifies one sub-score
type Dimension string

const (
	DimensionSafety      Dimension = "safety"
	DimensionCommute     Dimension = "commute"
	DimensionAmenities   Dimension = "amenities"
	DimensionWalkability Dimension = "walkability"
)

// Dimensions lists every scored dimension in a fixed order
var Dimensions = []Dimension{
	DimensionSafety,
	DimensionCommute,
	DimensionAmenities,
	DimensionWalkability,
}

// scoreRange is the native range a raw sub-score is assumed to fall in
type scoreRange struct {
	min, max float64
}

// nativeRanges maps each dimension to the range its raw formula produces.
// All current formulas already land on 0..100.
var nativeRanges = map[Dimension]scoreRange{
	DimensionSafety:      {0, 100},
	DimensionCommute:     {0, 100},
	DimensionAmenities:   {0, 100},
	DimensionWalkability: {0, 100},
}

// safetyScore penalizes crime: 0 incidents is 100, 10 or more is 0 after clamping
func safetyScore(crimeRate float64) float64 {
	return MaxScore - crimeRate*crimePenalty
}

// commuteScore averages transit and walk scores
func commuteScore(transitScore, walkScore int) float64 {
	return float64(transitScore+walkScore) / 2
}

// amenitiesScore is the share of desired tags the neighborhood has, scaled
// to 100. No desired tags means no contribution.
func amenitiesScore(desired, present AmenitySet) float64 {
	if desired.Len() == 0 {
		return 0
	}
	return float64(desired.CountIn(present)) / float64(desired.Len()) * MaxScore
}

func walkabilityScore(walkScore int) float64 {
	return float64(walkScore)
}

// normalize rescales a raw sub-score from its dimension's native range onto 0..100
func normalize(d Dimension, score float64) float64 {
	r, ok := nativeRanges[d]
	if !ok || r.max == r.min {
		return score
	}
	return (score - r.min) / (r.max - r.min) * MaxScore
}

func clamp(v float64) float64 {
	return math.Max(MinScore, math.Min(MaxScore, v))
}

// subScores computes the four sub-scores, each normalized then clamped
func subScores(n Neighborhood, p Preferences) Breakdown {
	raw := map[Dimension]float64{
		DimensionSafety:      safetyScore(n.CrimeRate),
		DimensionCommute:     commuteScore(n.TransitScore, n.WalkScore),
		DimensionAmenities:   amenitiesScore(p.Amenities, n.Amenities),
		DimensionWalkability: walkabilityScore(n.WalkScore),
	}

	final := make(map[Dimension]float64, len(raw))
	for d, v := range raw {
		final[d] = clamp(normalize(d, v))
	}

	return Breakdown{
		Safety:      final[DimensionSafety],
		Commute:     final[DimensionCommute],
		Amenities:   final[DimensionAmenities],
		Walkability: final[DimensionWalkability],
	}
}

// aggregate combines sub-scores as a weighted mean. Callers must have
// validated p so the weight sum is positive and finite. Each weight is
// divided by the sum before multiplying so no intermediate can overflow.
func aggregate(b Breakdown, p Preferences) float64 {
	weights := p.Weights()
	total := p.WeightSum()

	var mean float64
	for _, d := range Dimensions {
		mean += b.Get(d) * (weights[d] / total)
	}
	return math.Round(mean*precision) / precision
}

// roundScore rounds half away from zero, which is half-up for the
// non-negative scores produced here: 86.5 becomes 87
func roundScore(v float64) int {
	return int(math.Round(v))
}

// Explain scores one neighborhood and returns the full breakdown
func Explain(n Neighborhood, p Preferences) (Result, error) {
	if err := p.Validate(); err != nil {
		return Result{}, err
	}
	return explain(n, p)
}

// explain skips preference validation; RankAll validates once up front
func explain(n Neighborhood, p Preferences) (Result, error) {
	if err := n.Validate(); err != nil {
		return Result{}, err
	}

	b := subScores(n, p)
	b.Raw = aggregate(b, p)

	return Result{
		Neighborhood: n,
		Score:        roundScore(b.Raw),
		Breakdown:    b,
	}, nil
}

// ScoreOne returns the 0..100 compatibility score of one neighborhood for
// one preference set.
//
// It fails with *InvalidPreferenceError when the weights cannot be combined
// and with *MalformedDataError when the neighborhood's fields are unusable.
// It never substitutes a fallback score.
func ScoreOne(n Neighborhood, p Preferences) (int, error) {
	r, err := Explain(n, p)
	if err != nil {
		return 0, err
	}
	return r.Score, nil
}

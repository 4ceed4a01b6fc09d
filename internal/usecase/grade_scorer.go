package usecase

import "github.com/ecomart/backend/internal/domain"

// gradeScores maps the categorical sustainability grades to integer
// scores. Any label outside this set is treated as Unknown (score 0),
// never as an error. The same table serves both eco and water grades.
var gradeScores = map[string]float64{
	"A+":      5,
	"A":       4,
	"B":       3,
	"C":       2,
	"D":       1,
	"Unknown": 0,
}

// Default scoring weights, applied per missing key.
const (
	defaultRatingWeight = 0.3
	defaultCarbonWeight = 0.4
	defaultWaterWeight  = 0.3
)

// GradeScore returns the numeric score for a sustainability grade label.
func GradeScore(grade string) float64 {
	return gradeScores[grade]
}

// ResolveWeights turns raw request weights into a WeightVector. The keys
// "eco" and "carbon" are interchangeable aliases for the same weight;
// "eco" wins when both are present. Missing keys fall back to the
// documented defaults {rating: 0.3, carbon: 0.4, water: 0.3}.
func ResolveWeights(raw map[string]float64) domain.WeightVector {
	w := domain.WeightVector{
		Rating: defaultRatingWeight,
		Carbon: defaultCarbonWeight,
		Water:  defaultWaterWeight,
	}
	if raw == nil {
		return w
	}
	if v, ok := raw["rating"]; ok {
		w.Rating = v
	}
	if v, ok := raw["eco"]; ok {
		w.Carbon = v
	} else if v, ok := raw["carbon"]; ok {
		w.Carbon = v
	}
	if v, ok := raw["water"]; ok {
		w.Water = v
	}
	return w
}

// SustainabilityScore computes the weighted sustainability score for one
// product row. Pure function: missing rating and unknown grades score 0,
// so a malformed row degrades to a neutral score instead of failing.
func SustainabilityScore(p domain.Product, w domain.WeightVector) float64 {
	return w.Rating*p.Rating +
		w.Carbon*GradeScore(p.EcoGrade) +
		w.Water*GradeScore(p.WaterGrade)
}

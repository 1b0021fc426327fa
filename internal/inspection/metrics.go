package inspection

import "math"

// Shelf-life estimates in days for each ripeness bracket.
const (
	shelfLifeVeryRipe = 1.5
	shelfLifeJustRipe = 4.0
	shelfLifeUnripe   = 8.0
)

// ShelfLifeDays converts a ripeness score (0-15, lower is riper) into an
// estimated number of days before the produce spoils. Bracket upper bounds
// are inclusive.
func ShelfLifeDays(score float64) float64 {
	switch {
	case score <= 3:
		return shelfLifeVeryRipe
	case score <= 7:
		return shelfLifeJustRipe
	default:
		return shelfLifeUnripe
	}
}

// QualityGradeFor grades a mean ripeness. Lower bounds are inclusive.
// These thresholds are independent of the shelf-life brackets.
func QualityGradeFor(meanRipeness float64) Grade {
	switch {
	case meanRipeness >= 7:
		return GradeExcellent
	case meanRipeness >= 4:
		return GradeGood
	default:
		return GradeNeedsAttention
	}
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

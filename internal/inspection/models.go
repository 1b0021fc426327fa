package inspection

import (
	"time"
)

// Grade is the qualitative label derived from a supplier's mean ripeness.
type Grade string

const (
	GradeExcellent      Grade = "Excellent"
	GradeGood           Grade = "Good"
	GradeNeedsAttention Grade = "Needs Attention"
)

// Record is a single produce inspection as stored by a data source.
// Every column is nullable upstream, so optional values are pointers.
type Record struct {
	ID                  string     `json:"id,omitempty" yaml:"id"`
	AnalyzedAt          *time.Time `json:"analyzed_at" yaml:"analyzed_at"`
	RipenessScore       *float64   `json:"ripeness_score" yaml:"ripeness_score"`
	Latitude            *float64   `json:"latitude,omitempty" yaml:"latitude"`
	Longitude           *float64   `json:"longitude,omitempty" yaml:"longitude"`
	LocationDescription *string    `json:"location_description,omitempty" yaml:"location_description"`
	FruitType           *string    `json:"fruit_type,omitempty" yaml:"fruit_type"`
}

// Plottable reports whether the record carries both a timestamp and a score.
func (r Record) Plottable() bool {
	return r.AnalyzedAt != nil && r.RipenessScore != nil
}

// Point is one (x, y) sample of a chart series.
type Point struct {
	X time.Time
	Y float64
}

// Series is an ordered sequence of points, ascending by X.
type Series []Point

// Max returns the largest Y value, or 0 for an empty series.
func (s Series) Max() float64 {
	var max float64
	for i, p := range s {
		if i == 0 || p.Y > max {
			max = p.Y
		}
	}
	return max
}

// Summary is the scalar overview returned by the supplier summary endpoint.
type Summary struct {
	TotalAnalyses    int        `json:"total_analyses"`
	AverageRipeness  float64    `json:"average_ripeness"`
	AverageShelfLife float64    `json:"average_shelf_life"`
	QualityGrade     Grade      `json:"quality_grade"`
	LatestEntry      *time.Time `json:"latest_entry"`
}

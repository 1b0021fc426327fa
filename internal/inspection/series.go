package inspection

import (
	"sort"
	"time"
)

// RipenessSeries returns one point per plottable record, keeping fetch order.
func RipenessSeries(records []Record) (Series, error) {
	series := make(Series, 0, len(records))
	for _, r := range records {
		if !r.Plottable() {
			continue
		}
		series = append(series, Point{X: *r.AnalyzedAt, Y: *r.RipenessScore})
	}
	if len(series) == 0 {
		return nil, ErrNoValidPoints
	}
	return series, nil
}

// ShelfLifeSeries buckets plottable records by UTC calendar date and returns
// the mean shelf-life estimate for each date, ascending. Points sit at UTC
// midnight of their date.
func ShelfLifeSeries(records []Record) (Series, error) {
	type dayKey string

	var (
		dayValues = make(map[dayKey][]float64)
		dayStarts = make(map[dayKey]time.Time)
	)

	for _, r := range records {
		if !r.Plottable() {
			continue
		}
		ts := r.AnalyzedAt.UTC()
		k := dayKey(ts.Format("2006-01-02"))

		dayValues[k] = append(dayValues[k], ShelfLifeDays(*r.RipenessScore))
		if _, exists := dayStarts[k]; !exists {
			dayStarts[k] = time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		}
	}

	if len(dayValues) == 0 {
		return nil, ErrNoValidPoints
	}

	keys := make([]string, 0, len(dayValues))
	for k := range dayValues {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)

	series := make(Series, 0, len(keys))
	for _, k := range keys {
		values := dayValues[dayKey(k)]
		var sum float64
		for _, v := range values {
			sum += v
		}
		series = append(series, Point{X: dayStarts[dayKey(k)], Y: sum / float64(len(values))})
	}
	return series, nil
}

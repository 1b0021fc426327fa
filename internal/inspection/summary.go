package inspection

// Summarize computes supplier statistics over records in fetch order.
// Only the ripeness score is required for a record to count towards the
// averages; TotalAnalyses counts every record that was fetched.
func Summarize(records []Record) (Summary, error) {
	var (
		sum    float64
		scored int
	)
	for _, r := range records {
		if r.RipenessScore == nil {
			continue
		}
		sum += *r.RipenessScore
		scored++
	}
	if scored == 0 {
		return Summary{}, ErrNoValidScores
	}

	mean := sum / float64(scored)

	return Summary{
		TotalAnalyses:    len(records),
		AverageRipeness:  roundTo(mean, 2),
		AverageShelfLife: roundTo(ShelfLifeDays(mean), 1),
		QualityGrade:     QualityGradeFor(mean),
		// Fetch order is ascending, so the last record is the newest.
		LatestEntry: records[len(records)-1].AnalyzedAt,
	}, nil
}

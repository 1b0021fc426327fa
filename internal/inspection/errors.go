package inspection

import "errors"

var (
	// ErrNoData is returned when neither the supplier's collection nor the
	// default collection produced any records.
	ErrNoData = errors.New("no data found")

	// ErrNoValidPoints is returned when records exist but none has both a
	// timestamp and a ripeness score.
	ErrNoValidPoints = errors.New("no valid data points")

	// ErrNoValidScores is returned when records exist but none has a ripeness score.
	ErrNoValidScores = errors.New("no valid ripeness scores")
)

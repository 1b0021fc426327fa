package chart

import (
	"math"
	"time"

	"gonum.org/v1/plot"

	"github.com/DhruvDarbha/Env/internal/inspection"
)

const (
	secondsPerDay = 24 * 60 * 60
	rotation45    = math.Pi / 4
	// tickLayout is the month/day format of the time-axis labels.
	tickLayout = "01/02"
)

func unixSeconds(t time.Time) float64 {
	return float64(t.Unix()) + float64(t.Nanosecond())/1e9
}

// floorDay truncates a unix timestamp to UTC midnight.
func floorDay(sec float64) float64 {
	return math.Floor(sec/secondsPerDay) * secondsPerDay
}

// dayTicker places one labelled tick at every UTC midnight within the axis.
type dayTicker struct{}

var _ plot.Ticker = dayTicker{}

func (dayTicker) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for day := floorDay(min); day <= max; day += secondsPerDay {
		if day < min {
			continue
		}
		ticks = append(ticks, plot.Tick{
			Value: day,
			Label: time.Unix(int64(day), 0).UTC().Format(tickLayout),
		})
	}
	return ticks
}

// timeRange returns the x-axis bounds for series: the data span padded by 5%
// on each side, widened to the first point's midnight when the padded span
// would otherwise hold no day tick.
func timeRange(series inspection.Series) (min, max float64) {
	lo, hi := unixSeconds(series[0].X), unixSeconds(series[0].X)
	for _, p := range series[1:] {
		x := unixSeconds(p.X)
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}

	span := hi - lo
	if span == 0 {
		span = secondsPerDay
	}
	pad := span * 0.05
	min, max = lo-pad, hi+pad

	if floorDay(max) < min {
		min = floorDay(lo)
	}
	return min, max
}

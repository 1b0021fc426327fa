package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/DhruvDarbha/Env/internal/inspection"
)

const (
	ripenessMin = 0
	ripenessMax = 15
)

var ripenessLineColor = color.NRGBA{R: 0xFF, G: 0x6B, B: 0x35, A: 0xFF}

// band is a translucent horizontal zone of the ripeness scale.
type band struct {
	label  string
	lo, hi float64
	color  color.NRGBA
}

// ripenessBands are drawn bottom-up at 20% opacity.
var ripenessBands = []band{
	{label: "Very Ripe (0-3)", lo: 0, hi: 3, color: color.NRGBA{R: 0xFF, A: 51}},
	{label: "Just Ripe (3-7)", lo: 3, hi: 7, color: color.NRGBA{R: 0xFF, G: 0xA5, A: 51}},
	{label: "Unripe (7-15)", lo: 7, hi: 15, color: color.NRGBA{G: 0x80, A: 51}},
}

func ripenessPlot(series inspection.Series, label string) (*plot.Plot, error) {
	p := newPlot(series, fmt.Sprintf("Ripeness Scores Over Time - %s", label), "Ripeness Score")
	p.Y.Min, p.Y.Max = ripenessMin, ripenessMax

	for _, b := range ripenessBands {
		poly, err := plotter.NewPolygon(plotter.XYs{
			{X: p.X.Min, Y: b.lo},
			{X: p.X.Max, Y: b.lo},
			{X: p.X.Max, Y: b.hi},
			{X: p.X.Min, Y: b.hi},
		})
		if err != nil {
			return nil, fmt.Errorf("chart: %s band: %w", b.label, err)
		}
		poly.Color = b.color
		poly.LineStyle.Width = 0
		p.Add(poly)
		p.Legend.Add(b.label, poly)
	}
	p.Legend.Top = true
	p.Legend.Left = false

	pts := xys(series)

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("chart: ripeness line: %w", err)
	}
	line.Color = ripenessLineColor
	line.Width = vg.Points(2)

	markers, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("chart: ripeness markers: %w", err)
	}
	markers.GlyphStyle = draw.GlyphStyle{
		Color:  ripenessLineColor,
		Radius: vg.Points(3),
		Shape:  draw.CircleGlyph{},
	}

	p.Add(line, markers)
	return p, nil
}

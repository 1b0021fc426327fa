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

// shelfLifeHeadroom leaves room above the highest point for its label.
const shelfLifeHeadroom = 1.2

var (
	shelfLifeLineColor = color.NRGBA{R: 0x4A, G: 0x90, B: 0xE2, A: 0xFF}
	shelfLifeFillColor = color.NRGBA{R: 0x4A, G: 0x90, B: 0xE2, A: 77}
)

func shelfLifePlot(series inspection.Series, label string) (*plot.Plot, error) {
	p := newPlot(series, fmt.Sprintf("Average Shelf Life Over Time - %s", label), "Average Shelf Life (Days)")
	p.Y.Min, p.Y.Max = 0, series.Max()*shelfLifeHeadroom

	pts := xys(series)

	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, fmt.Errorf("chart: shelf life line: %w", err)
	}
	line.Color = shelfLifeLineColor
	line.Width = vg.Points(3)
	line.FillColor = shelfLifeFillColor

	// White-faced markers with a coloured rim.
	faces, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("chart: shelf life markers: %w", err)
	}
	faces.GlyphStyle = draw.GlyphStyle{Color: color.White, Radius: vg.Points(4), Shape: draw.CircleGlyph{}}

	rims, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("chart: shelf life markers: %w", err)
	}
	rims.GlyphStyle = draw.GlyphStyle{Color: shelfLifeLineColor, Radius: vg.Points(4), Shape: draw.RingGlyph{}}

	texts := make([]string, len(series))
	for i, pt := range series {
		texts[i] = fmt.Sprintf("%.1f", pt.Y)
	}
	labels, err := plotter.NewLabels(plotter.XYLabels{XYs: pts, Labels: texts})
	if err != nil {
		return nil, fmt.Errorf("chart: shelf life labels: %w", err)
	}
	for i := range labels.TextStyle {
		labels.TextStyle[i].Font.Size = vg.Points(9)
		labels.TextStyle[i].XAlign = draw.XCenter
		labels.TextStyle[i].YAlign = draw.YBottom
	}
	labels.Offset = vg.Point{Y: vg.Points(10)}

	p.Add(line, faces, rims, labels)
	return p, nil
}

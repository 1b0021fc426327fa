// Package chart draws inspection series as PNG images.
//
// Every call builds its own plot and raster canvas, so renders are isolated
// from each other and the output depends only on the series and the label.
package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/DhruvDarbha/Env/internal/inspection"
)

// Figure geometry: 12x6 inches at 150 DPI, i.e. 1800x900 pixels.
const (
	figureWidth  = 12 * vg.Inch
	figureHeight = 6 * vg.Inch
	figureDPI    = 150
)

// ErrEmptySeries is returned when asked to draw a series without points.
var ErrEmptySeries = errors.New("chart: empty series")

var gridColor = color.NRGBA{R: 0xb0, G: 0xb0, B: 0xb0, A: 77}

// Renderer implements inspection.Renderer.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render draws kind over series and returns the PNG bytes.
func (r *Renderer) Render(kind inspection.ChartKind, series inspection.Series, label string) ([]byte, error) {
	return Render(kind, series, label)
}

// Render draws kind over series and returns the PNG bytes.
func Render(kind inspection.ChartKind, series inspection.Series, label string) ([]byte, error) {
	if len(series) == 0 {
		return nil, ErrEmptySeries
	}

	var (
		p   *plot.Plot
		err error
	)
	switch kind {
	case inspection.ChartRipeness:
		p, err = ripenessPlot(series, label)
	case inspection.ChartShelfLife:
		p, err = shelfLifePlot(series, label)
	default:
		return nil, fmt.Errorf("chart: unknown kind %q", kind)
	}
	if err != nil {
		return nil, err
	}
	return encodePNG(p)
}

// newPlot returns a plot with the conventions shared by every chart: title,
// axis labels, day ticks on a padded time axis and a faint grid.
func newPlot(series inspection.Series, title, yLabel string) *plot.Plot {
	p := plot.New()

	p.Title.Text = title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Title.TextStyle.Font.Weight = xfont.WeightBold
	p.Title.Padding = vg.Points(20)

	p.X.Label.Text = "Date"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)
	p.Y.Label.Text = yLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Min, p.X.Max = timeRange(series)
	p.X.Tick.Marker = dayTicker{}
	p.X.Tick.Label.Rotation = rotation45
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Vertical.Dashes = nil
	grid.Horizontal.Color = gridColor
	grid.Horizontal.Dashes = nil
	p.Add(grid)

	return p
}

// xys projects a series onto plot coordinates.
func xys(series inspection.Series) plotter.XYs {
	pts := make(plotter.XYs, len(series))
	for i, pt := range series {
		pts[i].X = unixSeconds(pt.X)
		pts[i].Y = pt.Y
	}
	return pts
}

func encodePNG(p *plot.Plot) ([]byte, error) {
	c := vgimg.NewWith(vgimg.UseWH(figureWidth, figureHeight), vgimg.UseDPI(figureDPI))
	p.Draw(draw.New(c))

	var buf bytes.Buffer
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("chart: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

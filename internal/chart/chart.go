// Package chart renders overlap histograms and the regression scatter plot
// to image files. The file extension (.png, .svg, .pdf) picks the format.
package chart

import (
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when there is nothing to draw.
var ErrNoData = errors.New("no data to plot")

const (
	width       = 6 * vg.Inch
	height      = 4 * vg.Inch
	DefaultBins = 10
)

var (
	pointColor = color.RGBA{R: 31, G: 119, B: 180, A: 128}
	fitColor   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// Histogram draws the distribution of values into path.
func Histogram(path, title, xLabel string, values []float64, bins int) error {
	if len(values) == 0 {
		return fmt.Errorf("histogram %s: %w", filepath.Base(path), ErrNoData)
	}
	if bins <= 0 {
		bins = DefaultBins
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Count"

	h, err := plotter.NewHist(plotter.Values(values), bins)
	if err != nil {
		return fmt.Errorf("build histogram: %w", err)
	}
	h.FillColor = pointColor
	p.Add(h)

	return save(p, path)
}

// ScatterWithFit draws the (x, y) points and overlays the fitted line given
// by (lineX, lineY).
func ScatterWithFit(path string, x, y, lineX, lineY []float64, xLabel, yLabel string) error {
	if len(x) == 0 || len(x) != len(y) {
		return fmt.Errorf("scatter %s: %w", filepath.Base(path), ErrNoData)
	}

	p := plot.New()
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel

	s, err := plotter.NewScatter(xys(x, y))
	if err != nil {
		return fmt.Errorf("build scatter: %w", err)
	}
	s.GlyphStyle.Color = pointColor
	p.Add(s)

	if len(lineX) > 0 {
		l, err := plotter.NewLine(xys(lineX, lineY))
		if err != nil {
			return fmt.Errorf("build fit line: %w", err)
		}
		l.LineStyle.Color = fitColor
		l.LineStyle.Width = vg.Points(1.5)
		p.Add(l)
	}

	return save(p, path)
}

func xys(x, y []float64) plotter.XYs {
	pts := make(plotter.XYs, len(x))
	for i := range x {
		pts[i].X = x[i]
		pts[i].Y = y[i]
	}
	return pts
}

func save(p *plot.Plot, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create chart dir: %w", err)
	}
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("save chart %s: %w", path, err)
	}
	return nil
}

// Ints converts an overlap id list to plot values.
func Ints(ids []int64) []float64 {
	out := make([]float64, len(ids))
	for i, v := range ids {
		out[i] = float64(v)
	}
	return out
}

// Package export writes the dashboard's charts and tables to files.
package export

import (
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/j-veylop/opskpi-dashboard-tui/internal/models"
)

var (
	skyBlue   = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	lineBlue  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	edgeBlack = color.RGBA{A: 255}
)

// WriteSalesTrendPNG plots daily sales as a line with circle markers.
func WriteSalesTrendPNG(path string, trend []models.DailySales) error {
	p := plot.New()
	p.Title.Text = "Daily Sales Trend"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = "Sales"

	p.X.Tick.Marker = plot.TimeTicks{Format: models.DateLayout}
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	p.X.Tick.Label.YAlign = draw.YCenter

	p.Add(plotter.NewGrid())

	if len(trend) > 0 {
		points := make(plotter.XYs, len(trend))
		for i, d := range trend {
			points[i].X = float64(d.Date.Unix())
			points[i].Y = float64(d.Sales)
		}

		line, scatter, err := plotter.NewLinePoints(points)
		if err != nil {
			return fmt.Errorf("failed to build sales trend: %w", err)
		}
		line.Color = lineBlue
		line.Width = vg.Points(1.5)
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Color = lineBlue
		scatter.GlyphStyle.Radius = vg.Points(3)

		p.Add(line, scatter)
	}

	if err := p.Save(10*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

// WriteRevenueHistogramPNG plots the revenue distribution as sky blue bars with black edges.
func WriteRevenueHistogramPNG(path string, hist models.Histogram) error {
	p := plot.New()
	p.Title.Text = "Revenue Distribution"
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.X.Label.Text = "Revenue"
	p.Y.Label.Text = "Frequency"

	p.Add(plotter.NewGrid())

	if len(hist.Bins) > 0 {
		bins := make([]plotter.HistogramBin, len(hist.Bins))
		for i, b := range hist.Bins {
			bins[i] = plotter.HistogramBin{Min: b.Min, Max: b.Max, Weight: float64(b.Count)}
		}

		h := &plotter.Histogram{
			Bins:      bins,
			Width:     hist.Bins[0].Max - hist.Bins[0].Min,
			FillColor: skyBlue,
			LineStyle: draw.LineStyle{
				Color: edgeBlack,
				Width: vg.Points(1),
			},
		}
		p.Add(h)
		p.Y.Min = 0
	}

	if err := p.Save(8*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}

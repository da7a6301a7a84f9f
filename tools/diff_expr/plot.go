package diff_expr

import (
	"bytes"
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	common "geo_buddy_go/utils"
)

// PlotOptions sizes the rendered figure.
type PlotOptions struct {
	Width  vg.Length
	Height vg.Length
}

// DefaultPlotOptions matches an 8x6 inch figure.
var DefaultPlotOptions = PlotOptions{Width: 8 * vg.Inch, Height: 6 * vg.Inch}

var supportedPlotFormats = map[string]bool{
	"eps": true, "jpg": true, "jpeg": true, "pdf": true,
	"png": true, "svg": true, "tif": true, "tiff": true,
}

// Set2-like box colours, one per group
var boxColors = []color.RGBA{
	{R: 102, G: 194, B: 165, A: 255},
	{R: 252, G: 141, B: 98, A: 255},
}

// PlotFileName builds the default output name for a comparison.
func PlotFileName(c *Comparison, format string) string {
	name := fmt.Sprintf("%s_%s_vs_%s.%s", c.Probe, c.Group1, c.Group2, strings.ToLower(format))
	return common.SafeFileName(name)
}

// newBoxPlot builds the two-box figure with the raw values overlaid.
func newBoxPlot(c *Comparison) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("Comparison: %s\n%s vs %s (p=%s)", c.Probe, c.Group1, c.Group2, formatP(c.Welch.P))
	p.X.Label.Text = "Group"
	p.Y.Label.Text = "Expression"
	p.Add(plotter.NewGrid())

	for i, values := range [][]float64{c.Values1, c.Values2} {
		box, err := plotter.NewBoxPlot(vg.Points(60), float64(i), plotter.Values(values))
		if err != nil {
			return nil, err
		}
		box.FillColor = boxColors[i]
		box.MedianStyle.Width = vg.Points(2)

		points := make(plotter.XYs, len(values))
		for j, v := range values {
			points[j].X = float64(i) + jitter(j, len(values))
			points[j].Y = v
		}
		scatter, err := plotter.NewScatter(points)
		if err != nil {
			return nil, err
		}
		scatter.GlyphStyle.Shape = draw.CircleGlyph{}
		scatter.GlyphStyle.Radius = vg.Points(2.5)
		scatter.GlyphStyle.Color = color.RGBA{R: 60, G: 60, B: 60, A: 200}

		p.Add(box, scatter)
	}
	p.NominalX(c.Group1, c.Group2)
	return p, nil
}

// jitter spreads n points evenly over +/-0.15 of the box centre so that
// repeated values stay visible. Deterministic, so identical inputs render
// identical plots.
func jitter(i, n int) float64 {
	if n < 2 {
		return 0
	}
	return -0.15 + 0.3*float64(i)/float64(n-1)
}

// RenderBoxPlot writes the comparison boxplot to path. The format follows the
// file extension.
func RenderBoxPlot(c *Comparison, path string, opts PlotOptions) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if !supportedPlotFormats[ext] {
		return fmt.Errorf("unsupported plot format %q (use png, svg, pdf, eps, jpg or tif)", ext)
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultPlotOptions
	}

	p, err := newBoxPlot(c)
	if err != nil {
		return err
	}
	if err := common.EnsureDir(path); err != nil {
		return err
	}
	return p.Save(opts.Width, opts.Height, path)
}

// BoxPlotSVG renders the comparison boxplot as an SVG document.
func BoxPlotSVG(c *Comparison, opts PlotOptions) (string, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		opts = DefaultPlotOptions
	}
	p, err := newBoxPlot(c)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	writer, err := p.WriterTo(opts.Width, opts.Height, "svg")
	if err != nil {
		return "", err
	}
	_, err = writer.WriteTo(&buf)
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

func formatP(p float64) string {
	if math.IsNaN(p) {
		return "NaN"
	}
	return fmt.Sprintf("%.4g", p)
}

// Package surface draws each scheduler metric as a surface over the two
// scheduling quanta.
package surface

import (
	"fmt"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/sarchlab/schedbench/metrics"
)

// Interpolate samples the metric over a size x size grid spanning the
// observed quanta. The table must not be empty.
func Interpolate(
	table metrics.Table,
	metric metrics.Field,
	method Method,
	size int,
) (*Grid, error) {
	if table.IsEmpty() {
		return nil, fmt.Errorf("cannot interpolate %s: no records", metric.Name())
	}
	if size < 2 {
		return nil, fmt.Errorf("grid size must be at least 2, got %d", size)
	}

	q1 := table.Column(metrics.Quantum1)
	q2 := table.Column(metrics.Quantum2)
	zs := table.Column(metric)

	xLo, xHi, xFlat := axisRange(q1)
	yLo, yHi, yFlat := axisRange(q2)

	samples := dedupe(q1, q2, zs)
	in := newInterpolator(method, samples, xFlat, yFlat)

	g := &Grid{
		Xs:     linspace(xLo, xHi, size),
		Ys:     linspace(yLo, yHi, size),
		Values: make([][]float64, size),
	}
	for r, y := range g.Ys {
		g.Values[r] = make([]float64, size)
		for c, x := range g.Xs {
			g.Values[r][c] = in.At(x, y)
		}
	}

	return g, nil
}

// RenderResult tells what Render did for one metric.
type RenderResult struct {
	Metric  metrics.Field
	Path    string
	Grid    *Grid
	Skipped bool
	Reason  string
}

// VisualizerBuilder can create new visualizers.
type VisualizerBuilder struct {
	outputDir string
	method    Method
	gridSize  int
	format    string
	width     vg.Length
	height    vg.Length
}

// NewVisualizerBuilder returns a builder with a linear 30x30 grid saved as
// PNG under "surfaces".
func NewVisualizerBuilder() VisualizerBuilder {
	return VisualizerBuilder{
		outputDir: "surfaces",
		method:    Linear,
		gridSize:  30,
		format:    "png",
		width:     8 * vg.Inch,
		height:    6 * vg.Inch,
	}
}

// WithOutputDir sets the directory images are saved to.
func (b VisualizerBuilder) WithOutputDir(dir string) VisualizerBuilder {
	b.outputDir = dir
	return b
}

// WithMethod sets the interpolation method.
func (b VisualizerBuilder) WithMethod(m Method) VisualizerBuilder {
	b.method = m
	return b
}

// WithGridSize sets the number of samples along each axis.
func (b VisualizerBuilder) WithGridSize(n int) VisualizerBuilder {
	if n < 2 {
		panic("grid size must be at least 2")
	}
	b.gridSize = n
	return b
}

// WithFormat sets the image format, given as a file extension.
func (b VisualizerBuilder) WithFormat(ext string) VisualizerBuilder {
	b.format = ext
	return b
}

// WithSize sets the image dimensions.
func (b VisualizerBuilder) WithSize(width, height vg.Length) VisualizerBuilder {
	b.width = width
	b.height = height
	return b
}

// Build creates a visualizer.
func (b VisualizerBuilder) Build() *Visualizer {
	return &Visualizer{
		outputDir: b.outputDir,
		method:    b.method,
		gridSize:  b.gridSize,
		format:    b.format,
		width:     b.width,
		height:    b.height,
	}
}

// Visualizer renders metric surfaces to image files.
type Visualizer struct {
	outputDir string
	method    Method
	gridSize  int
	format    string
	width     vg.Length
	height    vg.Length
}

// Render interpolates one metric and saves it as <metric>.<format>. An empty
// table, or one whose samples leave the whole grid undefined, is skipped
// without writing anything.
func (v *Visualizer) Render(table metrics.Table, metric metrics.Field) (RenderResult, error) {
	res := RenderResult{Metric: metric}

	if table.IsEmpty() {
		res.Skipped = true
		res.Reason = "no metric records"
		slog.Warn("skipping surface", "metric", metric.Name(), "reason", res.Reason)
		return res, nil
	}

	g, err := Interpolate(table, metric, v.method, v.gridSize)
	if err != nil {
		return res, err
	}
	res.Grid = g

	if g.Finite() == 0 {
		res.Skipped = true
		res.Reason = "interpolation left no defined cells"
		slog.Warn("skipping surface", "metric", metric.Name(), "reason", res.Reason)
		return res, nil
	}

	p, err := v.plot(table, metric, g)
	if err != nil {
		return res, err
	}

	if err := os.MkdirAll(v.outputDir, 0o755); err != nil {
		return res, fmt.Errorf("failed to create output dir: %w", err)
	}

	res.Path = filepath.Join(v.outputDir, metric.Name()+"."+v.format)
	if err := p.Save(v.width, v.height, res.Path); err != nil {
		return res, fmt.Errorf("failed to save %s: %w", res.Path, err)
	}

	slog.Info("surface saved",
		"metric", metric.Name(),
		"path", res.Path,
		"method", v.method.Name())

	return res, nil
}

// RenderAll renders every plotted metric. It stops at the first error.
func (v *Visualizer) RenderAll(table metrics.Table) ([]RenderResult, error) {
	results := make([]RenderResult, 0, len(metrics.PlottedFields))

	for _, f := range metrics.PlottedFields {
		res, err := v.Render(table, f)
		if err != nil {
			return results, err
		}
		results = append(results, res)
	}

	return results, nil
}

func (v *Visualizer) plot(table metrics.Table, metric metrics.Field, g *Grid) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = "Surface: " + metric.Name()
	p.X.Label.Text = "Quantum 1"
	p.Y.Label.Text = "Quantum 2"

	h := plotter.NewHeatMap(g, palette.Heat(32, 1))
	h.NaN = color.Transparent
	h.Min, h.Max = g.Min(), g.Max()
	if h.Min == h.Max {
		h.Min -= 0.5
		h.Max += 0.5
	}
	p.Add(h)

	pts := make(plotter.XYs, table.Len())
	for i, r := range table.Records {
		pts[i].X = r.Quantum1
		pts[i].Y = r.Quantum2
	}

	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("failed to plot samples: %w", err)
	}
	s.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	s.GlyphStyle.Radius = vg.Points(3)
	s.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(s)

	return p, nil
}

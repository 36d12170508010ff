package surface

import (
	"fmt"
	"log/slog"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"
)

// Method is the scheme used to fill the grid from scattered samples.
type Method int

const (
	// Linear interpolates over a Delaunay triangulation. Cells outside the
	// convex hull of the samples are NaN.
	Linear Method = iota
	// Cubic fits a cubic radial basis surface through every sample.
	Cubic
)

// Name returns the configuration name of the method.
func (m Method) Name() string {
	switch m {
	case Linear:
		return "linear"
	case Cubic:
		return "cubic"
	default:
		panic("invalid method")
	}
}

// ParseMethod finds a method by its configuration name.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return Linear, nil
	case "cubic":
		return Cubic, nil
	default:
		return 0, fmt.Errorf("unknown interpolation method %q", name)
	}
}

type sample struct {
	point
	z float64
}

type interpolator interface {
	At(x, y float64) float64
}

// dedupe merges samples at the same coordinates into their mean.
func dedupe(xs, ys, zs []float64) []sample {
	type acc struct {
		sum float64
		n   int
	}

	index := make(map[point]int)
	var (
		pts  []point
		accs []acc
	)

	for i := range xs {
		p := point{xs[i], ys[i]}
		k, ok := index[p]
		if !ok {
			k = len(pts)
			index[p] = k
			pts = append(pts, p)
			accs = append(accs, acc{})
		}
		accs[k].sum += zs[i]
		accs[k].n++
	}

	out := make([]sample, len(pts))
	for i, p := range pts {
		out[i] = sample{point: p, z: accs[i].sum / float64(accs[i].n)}
	}

	return out
}

// newInterpolator picks the interpolator for the samples. When one axis
// carries a single value the surface only varies along the other axis.
func newInterpolator(m Method, samples []sample, xFlat, yFlat bool) interpolator {
	switch {
	case len(samples) == 1 || (xFlat && yFlat):
		return constant(meanZ(samples))
	case xFlat:
		return newAlongAxis(m, samples, false)
	case yFlat:
		return newAlongAxis(m, samples, true)
	}

	if m == Cubic {
		rbf, err := newCubicRBF(samples)
		if err == nil {
			return rbf
		}

		slog.Warn("cubic fit failed, falling back to linear", "err", err)
	}

	return newTriangulated(samples)
}

type constant float64

func (c constant) At(x, y float64) float64 {
	return float64(c)
}

func meanZ(samples []sample) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += s.z
	}

	return sum / float64(len(samples))
}

// alongAxis is a one-dimensional fit used when the other axis is flat.
type alongAxis struct {
	useX bool
	fit  interp.Predictor
	lo   float64
	hi   float64
}

func newAlongAxis(m Method, samples []sample, useX bool) interpolator {
	byCoord := make(map[float64][]float64)
	for _, s := range samples {
		c := s.y
		if useX {
			c = s.x
		}
		byCoord[c] = append(byCoord[c], s.z)
	}

	coords := make([]float64, 0, len(byCoord))
	for c := range byCoord {
		coords = append(coords, c)
	}
	sort.Float64s(coords)

	if len(coords) == 1 {
		return constant(meanZ(samples))
	}

	values := make([]float64, len(coords))
	for i, c := range coords {
		sum := 0.0
		for _, z := range byCoord[c] {
			sum += z
		}
		values[i] = sum / float64(len(byCoord[c]))
	}

	var fp interp.FittablePredictor = &interp.PiecewiseLinear{}
	if m == Cubic && len(coords) >= 3 {
		fp = &interp.NaturalCubic{}
	}

	if err := fp.Fit(coords, values); err != nil {
		slog.Warn("axis fit failed, using mean", "err", err)
		return constant(meanZ(samples))
	}

	return alongAxis{
		useX: useX,
		fit:  fp,
		lo:   coords[0],
		hi:   coords[len(coords)-1],
	}
}

func (a alongAxis) At(x, y float64) float64 {
	c := y
	if a.useX {
		c = x
	}

	return a.fit.Predict(math.Max(a.lo, math.Min(a.hi, c)))
}

// triangulated is piecewise linear over a Delaunay triangulation.
type triangulated struct {
	pts  []point
	zs   []float64
	tris []triangle
}

func newTriangulated(samples []sample) triangulated {
	t := triangulated{
		pts: make([]point, len(samples)),
		zs:  make([]float64, len(samples)),
	}
	for i, s := range samples {
		t.pts[i] = s.point
		t.zs[i] = s.z
	}

	t.tris = triangulate(t.pts)
	if len(t.tris) == 0 {
		slog.Warn("samples are collinear, linear surface is empty",
			"samples", len(samples))
	}

	return t
}

func (t triangulated) At(x, y float64) float64 {
	p := point{x, y}
	for _, tri := range t.tris {
		l1, l2, l3, ok := tri.barycentric(t.pts, p)
		if !ok {
			continue
		}

		return l1*t.zs[tri.a] + l2*t.zs[tri.b] + l3*t.zs[tri.c]
	}

	return math.NaN()
}

// cubicRBF is s(p) = sum w_i |p - p_i|^3 + c0 + c1 x + c2 y, fitted on
// coordinates scaled to the unit square.
type cubicRBF struct {
	pts    []point
	w      []float64
	c      [3]float64
	x0, sx float64
	y0, sy float64
}

func newCubicRBF(samples []sample) (*cubicRBF, error) {
	n := len(samples)
	if n < 3 {
		return nil, fmt.Errorf("need at least 3 samples, got %d", n)
	}

	if collinear(samples) {
		return nil, fmt.Errorf("samples are collinear")
	}

	r := &cubicRBF{pts: make([]point, n)}
	r.x0, r.sx = scaleOf(samples, func(s sample) float64 { return s.x })
	r.y0, r.sy = scaleOf(samples, func(s sample) float64 { return s.y })

	for i, s := range samples {
		r.pts[i] = r.scale(s.x, s.y)
	}

	size := n + 3
	a := mat.NewDense(size, size, nil)
	b := mat.NewVecDense(size, nil)

	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			a.Set(i, j, phi(r.pts[i], r.pts[j]))
		}
		a.Set(i, n, 1)
		a.Set(i, n+1, r.pts[i].x)
		a.Set(i, n+2, r.pts[i].y)
		a.Set(n, i, 1)
		a.Set(n+1, i, r.pts[i].x)
		a.Set(n+2, i, r.pts[i].y)
		b.SetVec(i, samples[i].z)
	}

	var sol mat.VecDense
	if err := sol.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("failed to solve cubic system: %w", err)
	}

	r.w = make([]float64, n)
	for i := range r.w {
		r.w[i] = sol.AtVec(i)
	}
	for k := range r.c {
		r.c[k] = sol.AtVec(n + k)
	}

	return r, nil
}

func (r *cubicRBF) scale(x, y float64) point {
	return point{(x - r.x0) / r.sx, (y - r.y0) / r.sy}
}

func (r *cubicRBF) At(x, y float64) float64 {
	p := r.scale(x, y)

	v := r.c[0] + r.c[1]*p.x + r.c[2]*p.y
	for i, q := range r.pts {
		v += r.w[i] * phi(p, q)
	}

	return v
}

func phi(p, q point) float64 {
	d := math.Hypot(p.x-q.x, p.y-q.y)
	return d * d * d
}

func scaleOf(samples []sample, get func(sample) float64) (origin, span float64) {
	lo, hi := get(samples[0]), get(samples[0])
	for _, s := range samples[1:] {
		lo = math.Min(lo, get(s))
		hi = math.Max(hi, get(s))
	}

	if hi == lo {
		return lo, 1
	}

	return lo, hi - lo
}

// collinear reports whether all samples lie on one line, in which case the
// linear tail of the cubic system is singular.
func collinear(samples []sample) bool {
	a := samples[0].point

	var b point
	found := false
	for _, s := range samples[1:] {
		if s.point != a {
			b, found = s.point, true
			break
		}
	}
	if !found {
		return true
	}

	scale := math.Hypot(b.x-a.x, b.y-a.y)
	for _, s := range samples {
		cross := (b.x-a.x)*(s.y-a.y) - (b.y-a.y)*(s.x-a.x)
		if math.Abs(cross) > 1e-12*scale*math.Max(1, math.Hypot(s.x-a.x, s.y-a.y)) {
			return false
		}
	}

	return true
}

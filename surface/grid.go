package surface

import "math"

// Grid is a regular sampling of an interpolated metric. Values is indexed
// [row][column], rows following Ys and columns following Xs.
type Grid struct {
	Xs     []float64
	Ys     []float64
	Values [][]float64
}

// Dims returns the number of columns and rows.
func (g *Grid) Dims() (c, r int) {
	return len(g.Xs), len(g.Ys)
}

// Z returns the value of a cell.
func (g *Grid) Z(c, r int) float64 {
	return g.Values[r][c]
}

// X returns the Quantum1 coordinate of a column.
func (g *Grid) X(c int) float64 {
	return g.Xs[c]
}

// Y returns the Quantum2 coordinate of a row.
func (g *Grid) Y(r int) float64 {
	return g.Ys[r]
}

// Min returns the smallest finite cell value, or NaN if there is none.
func (g *Grid) Min() float64 {
	lo, _ := g.bounds()
	return lo
}

// Max returns the largest finite cell value, or NaN if there is none.
func (g *Grid) Max() float64 {
	_, hi := g.bounds()
	return hi
}

// Finite counts the cells that hold a finite value.
func (g *Grid) Finite() int {
	n := 0
	for _, row := range g.Values {
		for _, v := range row {
			if !math.IsNaN(v) && !math.IsInf(v, 0) {
				n++
			}
		}
	}

	return n
}

func (g *Grid) bounds() (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, row := range g.Values {
		for _, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}

	if lo > hi {
		return math.NaN(), math.NaN()
	}

	return lo, hi
}

// axisRange returns the span of the values. A span of zero width is widened
// so that a grid can still be laid over it; the second result tells whether
// that happened.
func axisRange(values []float64) (lo, hi float64, degenerate bool) {
	lo, hi = values[0], values[0]
	for _, v := range values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	if hi > lo {
		return lo, hi, false
	}

	w := math.Max(0.5, math.Abs(lo)*1e-3)

	return lo - w, hi + w, true
}

// linspace returns n evenly spaced values from lo to hi inclusive. n is at
// least 2.
func linspace(lo, hi float64, n int) []float64 {
	step := (hi - lo) / float64(n-1)
	out := make([]float64, n)
	for i := range out {
		out[i] = lo + float64(i)*step
	}
	out[n-1] = hi

	return out
}

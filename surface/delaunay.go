package surface

import (
	"math"

	"github.com/fogleman/delaunay"
)

type point struct {
	x, y float64
}

// triangle holds the indices of its corners in the triangulated points.
type triangle struct {
	a, b, c int
}

// triangulate builds a Delaunay triangulation of the points. Points must be
// distinct. Collinear input yields no triangles. Zero-area slivers are
// dropped since they cannot weight a cell.
func triangulate(pts []point) []triangle {
	if len(pts) < 3 {
		return nil
	}

	in := make([]delaunay.Point, len(pts))
	for i, p := range pts {
		in[i] = delaunay.Point{X: p.x, Y: p.y}
	}

	tr, err := delaunay.Triangulate(in)
	if err != nil {
		return nil
	}

	tris := make([]triangle, 0, len(tr.Triangles)/3)
	for i := 0; i+2 < len(tr.Triangles); i += 3 {
		t := triangle{tr.Triangles[i], tr.Triangles[i+1], tr.Triangles[i+2]}
		if t.area(pts) == 0 {
			continue
		}
		tris = append(tris, t)
	}

	return tris
}

func (t triangle) area(pts []point) float64 {
	a, b, c := pts[t.a], pts[t.b], pts[t.c]

	return math.Abs((b.x-a.x)*(c.y-a.y)-(c.x-a.x)*(b.y-a.y)) / 2
}

// barycentric returns the weights of p relative to the triangle's corners.
func (t triangle) barycentric(pts []point, p point) (l1, l2, l3 float64, ok bool) {
	a, b, c := pts[t.a], pts[t.b], pts[t.c]

	det := (b.y-c.y)*(a.x-c.x) + (c.x-b.x)*(a.y-c.y)
	if det == 0 {
		return 0, 0, 0, false
	}

	l1 = ((b.y-c.y)*(p.x-c.x) + (c.x-b.x)*(p.y-c.y)) / det
	l2 = ((c.y-a.y)*(p.x-c.x) + (a.x-c.x)*(p.y-c.y)) / det
	l3 = 1 - l1 - l2

	const eps = -1e-9

	return l1, l2, l3, l1 >= eps && l2 >= eps && l3 >= eps
}

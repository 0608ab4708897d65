package grid

import (
	"iter"

	"github.com/mhersche/isoline/pkg/contour"
)

// Mesh is the default triangle source for rectangular grids: every cell
// is split into two triangles along its bottom-left/top-right diagonal.
// Mesh implements contour.Source.
type Mesh struct {
	g *Grid
}

// NewMesh triangulates g. The grid is not copied; it must not be mutated
// while the mesh is in use.
func NewMesh(g *Grid) *Mesh {
	return &Mesh{g: g}
}

// Bounds returns the underlying grid's bounding rectangle.
func (m *Mesh) Bounds() contour.Bounds {
	return m.g.Bounds()
}

// Triangles iterates the triangulation: two triangles per cell,
// (2·(cols-1)·(rows-1)) in total. A grid with a single row or column has
// no cells and yields nothing.
func (m *Mesh) Triangles() iter.Seq[contour.Triangle] {
	return func(yield func(contour.Triangle) bool) {
		for r := 0; r < m.g.Rows()-1; r++ {
			for c := 0; c < m.g.Cols()-1; c++ {
				bl := m.g.At(c, r)
				br := m.g.At(c+1, r)
				tl := m.g.At(c, r+1)
				tr := m.g.At(c+1, r+1)
				if !yield(triangle{bl, br, tr}) {
					return
				}
				if !yield(triangle{bl, tr, tl}) {
					return
				}
			}
		}
	}
}

// triangle is one triangle of a mesh with linearly interpolated values.
type triangle struct {
	a, b, c Sample
}

// IntersectAt returns the oriented segment where the triangle's surface
// crosses the level. The segment is oriented so that higher values lie to
// the right of the walk from the first point to the second, which keeps
// stitched chains consistently oriented and makes boundary closure
// enclose the high side. Edges whose endpoints both sit exactly on the
// level produce no crossing, and a crossing that degenerates to a single
// point (the level passing exactly through a vertex) is suppressed.
func (t triangle) IntersectAt(level float64) (contour.Point, contour.Point, bool) {
	p1, ok1 := crossEdge(level, t.a, t.b)
	p2, ok2 := crossEdge(level, t.b, t.c)
	p3, ok3 := crossEdge(level, t.c, t.a)

	var p, q contour.Point
	switch {
	case ok1 && ok2:
		p, q = p1, p2
	case ok1 && ok3:
		p, q = p1, p3
	case ok2 && ok3:
		p, q = p2, p3
	default:
		return contour.Point{}, contour.Point{}, false
	}
	if p == q {
		return contour.Point{}, contour.Point{}, false
	}
	if !t.highOnRight(p, q) {
		p, q = q, p
	}
	return p, q, true
}

// crossEdge interpolates the point where the value along edge s0→s1
// passes through level. Flat edges never cross, even at the level itself.
func crossEdge(level float64, s0, s1 Sample) (contour.Point, bool) {
	if s0.Value == s1.Value {
		return contour.Point{}, false
	}
	t := (level - s0.Value) / (s1.Value - s0.Value)
	if t < 0 || t > 1 {
		return contour.Point{}, false
	}
	return contour.Point{
		X: s0.X + t*(s1.X-s0.X),
		Y: s0.Y + t*(s1.Y-s0.Y),
	}, true
}

// highOnRight reports whether the triangle's value gradient points to the
// right of the walk p→q. The gradient of the interpolating plane is
// computed unnormalized from the two edge vectors; only its sign relative
// to the walk direction matters, so the division by the (possibly
// negative) triangle determinant reduces to a sign flip.
func (t triangle) highOnRight(p, q contour.Point) bool {
	dx1, dy1, dv1 := t.b.X-t.a.X, t.b.Y-t.a.Y, t.b.Value-t.a.Value
	dx2, dy2, dv2 := t.c.X-t.a.X, t.c.Y-t.a.Y, t.c.Value-t.a.Value

	gx := dv1*dy2 - dv2*dy1
	gy := dv2*dx1 - dv1*dx2
	det := dx1*dy2 - dx2*dy1

	dxw, dyw := q.X-p.X, q.Y-p.Y
	num := dyw*gx - dxw*gy // rightNormal(walk) · gradient, times det
	return num*det >= 0
}

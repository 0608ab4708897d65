package contour

// DefaultEpsilon is the squared-distance tolerance under which two points
// are considered the same endpoint. Crossing segments are computed
// independently per triangle, so two segments that meet at a shared
// triangle edge produce the same point only up to floating-point error;
// this tolerance absorbs that error. It can be overridden per trace via
// [Options.Epsilon].
const DefaultEpsilon = 1e-20

// Point is a position in the field's coordinate space.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// coincident reports whether p and q are the same endpoint under the
// squared-distance tolerance eps2. NaN coordinates compare false and
// therefore never coincide with anything, including themselves.
func (p Point) coincident(q Point, eps2 float64) bool {
	dx := p.X - q.X
	dy := p.Y - q.Y
	return dx*dx+dy*dy < eps2
}

// Bounds is the bounding rectangle of a scalar field. Boundary closure
// routes along these four edges.
type Bounds struct {
	MinX float64 `json:"minx"`
	MinY float64 `json:"miny"`
	MaxX float64 `json:"maxx"`
	MaxY float64 `json:"maxy"`
}

// onLine reports whether coordinate a lies on the axis line at b under the
// same squared tolerance used for point coincidence.
func onLine(a, b, eps2 float64) bool {
	d := a - b
	return d*d < eps2
}

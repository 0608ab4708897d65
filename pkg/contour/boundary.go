package contour

import (
	"cmp"
	"slices"
)

// Boundary closure. A chain left open after the triangle scan has both
// ends on the bounding rectangle. Open chains are ordered by the
// clockwise position of their entry point around the perimeter and
// connected end to end through synthetic corner points, producing closed
// polygons.

// Perimeter edge indices, in clockwise priority order. A point is
// assigned the first edge it lies on, so a corner point codes to the
// earlier edge. A point on no edge at all codes to (left, 0), which
// silently sorts it to the start of the perimeter ordering; that
// tie-break is load-bearing for downstream consumers and is kept as is.
const (
	edgeLeft = iota
	edgeTop
	edgeRight
	edgeBottom
)

// perimCode is a sortable clockwise position around the bounding
// rectangle, starting at the bottom-left end of the left edge. The
// coordinate is signed so that it increases along the travel direction of
// its edge: y up the left edge, x along the top, -y down the right,
// -x along the bottom.
type perimCode struct {
	edge  int
	coord float64
}

func codeFor(p Point, b Bounds, eps2 float64) perimCode {
	switch {
	case onLine(p.X, b.MinX, eps2):
		return perimCode{edgeLeft, p.Y}
	case onLine(p.Y, b.MaxY, eps2):
		return perimCode{edgeTop, p.X}
	case onLine(p.X, b.MaxX, eps2):
		return perimCode{edgeRight, -p.Y}
	case onLine(p.Y, b.MinY, eps2):
		return perimCode{edgeBottom, -p.X}
	}
	return perimCode{edgeLeft, 0}
}

func (c perimCode) compare(o perimCode) int {
	if c.edge != o.edge {
		return cmp.Compare(c.edge, o.edge)
	}
	return cmp.Compare(c.coord, o.coord)
}

// cornerAt returns the corner point at the clockwise end of edge e, i.e.
// the junction between edge e and edge e+1.
func cornerAt(e int, b Bounds) Point {
	switch e % 4 {
	case edgeLeft:
		return Point{b.MinX, b.MaxY}
	case edgeTop:
		return Point{b.MaxX, b.MaxY}
	case edgeRight:
		return Point{b.MaxX, b.MinY}
	default:
		return Point{b.MinX, b.MinY}
	}
}

// openChain is one open chain prepared for closure: its point walk plus
// the perimeter codes of its first and last point.
type openChain struct {
	pts  []Point
	head perimCode
	tail perimCode
}

// closeOpen stitches the open chains of one level into closed polygons.
//
// Chains are sorted by the code of their head (entry) point, then walked
// pairwise: each chain's tail exit is connected to the next chain's head
// entry by inserting the rectangle corners that lie between them on the
// clockwise path. A connection whose target entry point lies behind the
// current exit point would have to circle past the starting chain, so it
// instead closes the current ring back to the ring's first entry point
// and starts a new ring; each maximal wrap therefore yields its own
// closed polyline. The final pair always closes the last ring.
//
// Zero chains produce nothing. A single chain is closed onto itself,
// inserting whatever corners lie between its own tail and head.
func closeOpen(chains []openChain, b Bounds) [][]Point {
	if len(chains) == 0 {
		return nil
	}
	slices.SortFunc(chains, func(x, y openChain) int {
		return x.head.compare(y.head)
	})

	var rings [][]Point
	start := 0
	ring := slices.Clone(chains[0].pts)
	for i := range chains {
		next := i + 1
		if next == len(chains) || chains[next].head.compare(chains[i].tail) < 0 {
			// Close the current ring back to its first entry point.
			ring = appendCorners(ring, chains[i].tail, chains[start].head, b)
			ring = append(ring, ring[0])
			rings = append(rings, ring)
			if next < len(chains) {
				start = next
				ring = slices.Clone(chains[next].pts)
			}
			continue
		}
		ring = appendCorners(ring, chains[i].tail, chains[next].head, b)
		ring = append(ring, chains[next].pts...)
	}
	return rings
}

// appendCorners inserts the rectangle corners passed when traveling
// clockwise from perimeter position `from` to position `to`: one corner
// per edge boundary crossed. When the target edge index is numerically
// smaller (or the target sits behind on the same edge), the path has
// circled the rectangle, which is accounted for by adding 4.
func appendCorners(pts []Point, from, to perimCode, b Bounds) []Point {
	target := to.edge
	if target < from.edge || (target == from.edge && to.coord < from.coord) {
		target += 4
	}
	for e := from.edge; e < target; e++ {
		pts = append(pts, cornerAt(e, b))
	}
	return pts
}

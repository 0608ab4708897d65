package contour

import (
	"iter"
	"sync"
)

// Triangle is one triangle of the field's triangulation. IntersectAt
// reports the segment where the triangle's surface crosses the given
// level, or ok=false when the triangle does not cross it. A triangle
// yields at most one crossing segment per level.
type Triangle interface {
	IntersectAt(level float64) (a, b Point, ok bool)
}

// Source supplies the triangulated field. The package makes no assumption
// about the triangulation scheme beyond the one-segment-per-level
// contract of [Triangle]. grid.Mesh is the default implementation for
// rectangular grids.
type Source interface {
	// Bounds is the field's bounding rectangle, used to close contours
	// that run off the edge of the field.
	Bounds() Bounds

	// Triangles iterates the triangulation. The sequence may be consumed
	// once per level and must be re-iterable.
	Triangles() iter.Seq[Triangle]
}

// Contour is one closed isoline polyline. Level is the index of the
// producing threshold in the levels slice passed to [Trace] (output is
// sorted by this key, not by Value), Value is the threshold itself, and
// Points starts and ends on the same point.
type Contour struct {
	Level  int     `json:"level"`
	Value  float64 `json:"value"`
	Points []Point `json:"points"`
}

// Options tunes a trace. The zero value (or nil) means defaults.
type Options struct {
	// Epsilon is the squared-distance tolerance for endpoint coincidence
	// and boundary-edge tests. Defaults to [DefaultEpsilon]. Tests use a
	// smaller value to stress coincidence edge cases and a larger one to
	// exercise merge robustness under noisy input.
	Epsilon float64

	// Workers is the number of levels traced concurrently. Values below 2
	// trace sequentially. Levels share no mutable state, so this affects
	// throughput only, never results.
	Workers int
}

func (o *Options) epsilon() float64 {
	if o == nil || o.Epsilon <= 0 {
		return DefaultEpsilon
	}
	return o.Epsilon
}

func (o *Options) workers() int {
	if o == nil || o.Workers < 1 {
		return 1
	}
	return o.Workers
}

// Trace extracts the isolines of src at every level and returns them as
// closed polylines sorted by level index. Levels are processed
// independently; an empty source or level list yields no contours.
func Trace(src Source, levels []float64, opts *Options) []Contour {
	if src == nil || len(levels) == 0 {
		return nil
	}
	eps2 := opts.epsilon()
	bounds := src.Bounds()

	perLevel := make([][]Contour, len(levels))
	if w := opts.workers(); w > 1 {
		var wg sync.WaitGroup
		sem := make(chan struct{}, w)
		for li, v := range levels {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sem <- struct{}{}
				defer func() { <-sem }()
				perLevel[li] = traceLevel(src, bounds, li, v, eps2)
			}()
		}
		wg.Wait()
	} else {
		for li, v := range levels {
			perLevel[li] = traceLevel(src, bounds, li, v, eps2)
		}
	}

	var out []Contour
	for _, cs := range perLevel {
		out = append(out, cs...)
	}
	return out
}

// traceLevel runs the scan for a single level: every triangle is asked
// for its crossing segment, segments are stitched by the builder, closed
// chains become contours directly, and the remaining open chains are
// closed along the boundary.
func traceLevel(src Source, bounds Bounds, level int, value, eps2 float64) []Contour {
	b := newBuilder(eps2)
	for tri := range src.Triangles() {
		if p, q, ok := tri.IntersectAt(value); ok {
			b.addSegment(p, q)
		}
	}

	var out []Contour
	var open []openChain
	b.each(func(ci int, c *chainRec) {
		pts := b.points(ci)
		if c.closed {
			out = append(out, Contour{Level: level, Value: value, Points: pts})
			return
		}
		open = append(open, openChain{
			pts:  pts,
			head: codeFor(pts[0], bounds, eps2),
			tail: codeFor(pts[len(pts)-1], bounds, eps2),
		})
	})

	for _, ring := range closeOpen(open, bounds) {
		out = append(out, Contour{Level: level, Value: value, Points: ring})
	}
	return out
}

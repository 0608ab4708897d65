package contour

import (
	"iter"
	"reflect"
	"slices"
	"testing"
)

// segTriangle is a canned triangle: it reports a fixed segment for the
// levels it crosses and nothing otherwise.
type segTriangle struct {
	segs map[float64][2]Point
}

func (t segTriangle) IntersectAt(level float64) (Point, Point, bool) {
	s, ok := t.segs[level]
	return s[0], s[1], ok
}

// segSource is a canned Source over a unit square.
type segSource struct {
	tris []segTriangle
}

func (s segSource) Bounds() Bounds {
	return Bounds{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}
}

func (s segSource) Triangles() iter.Seq[Triangle] {
	return func(yield func(Triangle) bool) {
		for _, t := range s.tris {
			if !yield(t) {
				return
			}
		}
	}
}

// at is shorthand for a one-level segTriangle.
func at(level float64, a, b Point) segTriangle {
	return segTriangle{segs: map[float64][2]Point{level: {a, b}}}
}

func TestTrace_OpenChainClosedAlongBoundary(t *testing.T) {
	// Two segments crossing the field from right to left at mid height.
	src := segSource{tris: []segTriangle{
		at(0.5, Point{1, 0.5}, Point{0.5, 0.5}),
		at(0.5, Point{0.5, 0.5}, Point{0, 0.5}),
	}}

	got := Trace(src, []float64{0.5}, nil)
	if len(got) != 1 {
		t.Fatalf("got %d contours, want 1", len(got))
	}
	want := []Point{{1, 0.5}, {0.5, 0.5}, {0, 0.5}, {0, 1}, {1, 1}, {1, 0.5}}
	if !slices.Equal(got[0].Points, want) {
		t.Errorf("points = %v, want %v", got[0].Points, want)
	}
	if got[0].Level != 0 || got[0].Value != 0.5 {
		t.Errorf("level/value = %d/%v, want 0/0.5", got[0].Level, got[0].Value)
	}
}

func TestTrace_ClosedLoopEmittedDirectly(t *testing.T) {
	// Four segments forming an interior square: no boundary closure.
	pa := Point{0.2, 0.2}
	pb := Point{0.8, 0.2}
	pc := Point{0.8, 0.8}
	pd := Point{0.2, 0.8}
	src := segSource{tris: []segTriangle{
		at(1, pa, pb), at(1, pb, pc), at(1, pc, pd), at(1, pd, pa),
	}}

	got := Trace(src, []float64{1}, nil)
	if len(got) != 1 {
		t.Fatalf("got %d contours, want 1", len(got))
	}
	pts := got[0].Points
	if pts[0] != pts[len(pts)-1] {
		t.Errorf("loop does not start and end on the same point: %v", pts)
	}
	want := []Point{pd, pa, pb, pc, pd}
	if !slices.Equal(pts, want) {
		t.Errorf("points = %v, want %v", pts, want)
	}
}

func TestTrace_LevelsIndependentAndOrdered(t *testing.T) {
	// One triangle crossing two levels; a second only the first level.
	t1 := segTriangle{segs: map[float64][2]Point{
		0.25: {Point{1, 0.25}, Point{0, 0.25}},
		0.75: {Point{1, 0.75}, Point{0, 0.75}},
	}}
	src := segSource{tris: []segTriangle{t1}}

	got := Trace(src, []float64{0.25, 0.75}, nil)
	if len(got) != 2 {
		t.Fatalf("got %d contours, want 2", len(got))
	}
	for i, c := range got {
		if c.Level != i {
			t.Errorf("contour %d has level %d, want %d", i, c.Level, i)
		}
	}
	if got[0].Value != 0.25 || got[1].Value != 0.75 {
		t.Errorf("values = %v, %v, want 0.25, 0.75", got[0].Value, got[1].Value)
	}
}

func TestTrace_MultiLevelEqualsConcatenatedSingleLevels(t *testing.T) {
	// Tracing two levels together must match tracing each alone and
	// concatenating in level order.
	t1 := segTriangle{segs: map[float64][2]Point{
		0.25: {Point{1, 0.25}, Point{0, 0.25}},
		0.75: {Point{1, 0.75}, Point{0, 0.75}},
	}}
	src := segSource{tris: []segTriangle{t1}}

	combined := Trace(src, []float64{0.25, 0.75}, nil)

	lo := Trace(src, []float64{0.25}, nil)
	hi := Trace(src, []float64{0.75}, nil)
	// A single-level run indexes its level as 0; relabel before comparing.
	for i := range hi {
		hi[i].Level = 1
	}
	want := append(lo, hi...)

	if !reflect.DeepEqual(combined, want) {
		t.Errorf("combined trace differs from concatenated runs:\n%v\n%v", combined, want)
	}
}

func TestTrace_WorkersDoNotChangeResults(t *testing.T) {
	t1 := segTriangle{segs: map[float64][2]Point{
		0.2: {Point{1, 0.2}, Point{0, 0.2}},
		0.4: {Point{1, 0.4}, Point{0, 0.4}},
		0.6: {Point{1, 0.6}, Point{0, 0.6}},
		0.8: {Point{1, 0.8}, Point{0, 0.8}},
	}}
	src := segSource{tris: []segTriangle{t1}}
	levels := []float64{0.2, 0.4, 0.6, 0.8}

	sequential := Trace(src, levels, nil)
	parallel := Trace(src, levels, &Options{Workers: 4})
	if !reflect.DeepEqual(sequential, parallel) {
		t.Errorf("parallel trace differs from sequential:\n%v\n%v", parallel, sequential)
	}
}

func TestTrace_EmptyInputs(t *testing.T) {
	src := segSource{}
	if got := Trace(nil, []float64{0.5}, nil); got != nil {
		t.Errorf("Trace(nil source) = %v, want nil", got)
	}
	if got := Trace(src, nil, nil); got != nil {
		t.Errorf("Trace(no levels) = %v, want nil", got)
	}
	if got := Trace(src, []float64{0.5}, nil); len(got) != 0 {
		t.Errorf("Trace(no triangles) = %v, want none", got)
	}
}

func TestTrace_CustomEpsilon(t *testing.T) {
	// An interior loop whose final segment misses the start by 1e-3.
	// Under the default tolerance the loop never closes and the chain is
	// rung through the degenerate boundary fallback, keeping the stray
	// endpoint; under a loose tolerance the gap closes cleanly.
	pa := Point{0.2, 0.2}
	pb := Point{0.8, 0.2}
	pc := Point{0.8, 0.8}
	pd := Point{0.2, 0.8}
	stray := Point{0.2 + 1e-3, 0.2}
	src := segSource{tris: []segTriangle{
		at(1, pa, pb), at(1, pb, pc), at(1, pc, pd), at(1, pd, stray),
	}}

	strict := Trace(src, []float64{1}, nil)
	if len(strict) != 1 || len(strict[0].Points) != 6 {
		t.Errorf("default epsilon: got %v, want one 6-point ring", strict)
	}

	loose := Trace(src, []float64{1}, &Options{Epsilon: 1e-4})
	if len(loose) != 1 || len(loose[0].Points) != 5 {
		t.Errorf("loose epsilon: got %v, want one 5-point loop", loose)
	}
}

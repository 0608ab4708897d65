package contour

import (
	"slices"
	"testing"
)

var unitBounds = Bounds{MinX: 0, MinY: 0, MaxX: 1, MaxY: 1}

func TestCodeFor(t *testing.T) {
	tests := []struct {
		name string
		p    Point
		want perimCode
	}{
		{"left edge", Point{0, 0.5}, perimCode{edgeLeft, 0.5}},
		{"top edge", Point{0.5, 1}, perimCode{edgeTop, 0.5}},
		{"right edge", Point{1, 0.5}, perimCode{edgeRight, -0.5}},
		{"bottom edge", Point{0.5, 0}, perimCode{edgeBottom, -0.5}},

		// Corner points code to the first edge in priority order.
		{"top-left corner", Point{0, 1}, perimCode{edgeLeft, 1}},
		{"top-right corner", Point{1, 1}, perimCode{edgeTop, 1}},
		{"bottom-right corner", Point{1, 0}, perimCode{edgeRight, 0}},
		{"bottom-left corner", Point{0, 0}, perimCode{edgeLeft, 0}},

		// Off the perimeter entirely: the documented fallback.
		{"interior point", Point{0.5, 0.5}, perimCode{edgeLeft, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := codeFor(tt.p, unitBounds, DefaultEpsilon); got != tt.want {
				t.Errorf("codeFor(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestPerimCode_Compare(t *testing.T) {
	// Clockwise from the bottom-left corner: up the left edge, along the
	// top, down the right, back along the bottom.
	ordered := []perimCode{
		{edgeLeft, 0},
		{edgeLeft, 0.7},
		{edgeTop, 0.2},
		{edgeTop, 0.9},
		{edgeRight, -1},
		{edgeRight, -0.1},
		{edgeBottom, -0.8},
		{edgeBottom, -0.1},
	}
	for i := 1; i < len(ordered); i++ {
		if ordered[i-1].compare(ordered[i]) >= 0 {
			t.Errorf("%v should sort before %v", ordered[i-1], ordered[i])
		}
	}
}

func TestCornerAt(t *testing.T) {
	tests := []struct {
		edge int
		want Point
	}{
		{edgeLeft, Point{0, 1}},
		{edgeTop, Point{1, 1}},
		{edgeRight, Point{1, 0}},
		{edgeBottom, Point{0, 0}},
		{4, Point{0, 1}}, // wraps
	}
	for _, tt := range tests {
		if got := cornerAt(tt.edge, unitBounds); got != tt.want {
			t.Errorf("cornerAt(%d) = %v, want %v", tt.edge, got, tt.want)
		}
	}
}

func TestAppendCorners(t *testing.T) {
	tests := []struct {
		name     string
		from, to perimCode
		want     []Point
	}{
		{
			name: "same edge forward",
			from: perimCode{edgeLeft, 0.2},
			to:   perimCode{edgeLeft, 0.8},
			want: nil,
		},
		{
			name: "adjacent edge",
			from: perimCode{edgeLeft, 0.5},
			to:   perimCode{edgeTop, 0.5},
			want: []Point{{0, 1}},
		},
		{
			name: "opposite edge",
			from: perimCode{edgeLeft, 0.5},
			to:   perimCode{edgeRight, -0.5},
			want: []Point{{0, 1}, {1, 1}},
		},
		{
			name: "wrap to earlier edge",
			from: perimCode{edgeBottom, -0.2},
			to:   perimCode{edgeLeft, 0.5},
			want: []Point{{0, 0}},
		},
		{
			name: "same edge behind wraps all the way",
			from: perimCode{edgeLeft, 0.8},
			to:   perimCode{edgeLeft, 0.2},
			want: []Point{{0, 1}, {1, 1}, {1, 0}, {0, 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := appendCorners(nil, tt.from, tt.to, unitBounds)
			if !slices.Equal(got, tt.want) {
				t.Errorf("appendCorners(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestCloseOpen_SingleChain(t *testing.T) {
	// A chain running from the right edge to the left edge across the
	// middle of the field. Closure travels clockwise from the left-edge
	// exit back to the right-edge entry, passing two corners.
	chain := openChain{
		pts:  []Point{{1, 0.5}, {0.5, 0.5}, {0, 0.5}},
		head: codeFor(Point{1, 0.5}, unitBounds, DefaultEpsilon),
		tail: codeFor(Point{0, 0.5}, unitBounds, DefaultEpsilon),
	}

	rings := closeOpen([]openChain{chain}, unitBounds)
	if len(rings) != 1 {
		t.Fatalf("got %d rings, want 1", len(rings))
	}
	want := []Point{{1, 0.5}, {0.5, 0.5}, {0, 0.5}, {0, 1}, {1, 1}, {1, 0.5}}
	if !slices.Equal(rings[0], want) {
		t.Errorf("ring = %v, want %v", rings[0], want)
	}
}

func TestCloseOpen_SingleChainSameEdge(t *testing.T) {
	// Both ends on the left edge with the entry clockwise-after the exit:
	// the ring closes without corners.
	chain := openChain{
		pts:  []Point{{0, 0.8}, {0.4, 0.5}, {0, 0.2}},
		head: codeFor(Point{0, 0.8}, unitBounds, DefaultEpsilon),
		tail: codeFor(Point{0, 0.2}, unitBounds, DefaultEpsilon),
	}

	rings := closeOpen([]openChain{chain}, unitBounds)
	if len(rings) != 1 {
		t.Fatalf("got %d rings, want 1", len(rings))
	}
	want := []Point{{0, 0.8}, {0.4, 0.5}, {0, 0.2}, {0, 0.8}}
	if !slices.Equal(rings[0], want) {
		t.Errorf("ring = %v, want %v", rings[0], want)
	}
}

func TestCloseOpen_TwoChainsOneRing(t *testing.T) {
	// Two chains whose exits hand over to each other's entries without
	// wrapping: a single ring containing both.
	c1 := openChain{
		pts:  []Point{{0, 0.5}, {0.3, 0.7}, {0.5, 1}},
		head: codeFor(Point{0, 0.5}, unitBounds, DefaultEpsilon),
		tail: codeFor(Point{0.5, 1}, unitBounds, DefaultEpsilon),
	}
	c2 := openChain{
		pts:  []Point{{0.8, 1}, {0.5, 0.5}, {0, 0.2}},
		head: codeFor(Point{0.8, 1}, unitBounds, DefaultEpsilon),
		tail: codeFor(Point{0, 0.2}, unitBounds, DefaultEpsilon),
	}

	rings := closeOpen([]openChain{c2, c1}, unitBounds)
	if len(rings) != 1 {
		t.Fatalf("got %d rings, want 1", len(rings))
	}
	want := []Point{
		{0, 0.5}, {0.3, 0.7}, {0.5, 1}, // first chain
		{0.8, 1}, {0.5, 0.5}, {0, 0.2}, // second chain, no corners between
		{0, 0.5}, // closed back to the first entry
	}
	if !slices.Equal(rings[0], want) {
		t.Errorf("ring = %v, want %v", rings[0], want)
	}
}

func TestCloseOpen_WrapSplitsRings(t *testing.T) {
	// The second chain's entry lies behind the first chain's exit on the
	// perimeter, so connecting them would circle past the start: each
	// chain closes into its own ring instead.
	c1 := openChain{
		pts:  []Point{{0, 0.2}, {0.5, 0.5}, {0, 0.8}},
		head: codeFor(Point{0, 0.2}, unitBounds, DefaultEpsilon),
		tail: codeFor(Point{0, 0.8}, unitBounds, DefaultEpsilon),
	}
	c2 := openChain{
		pts:  []Point{{0, 0.5}, {0.2, 0.6}, {0, 0.9}},
		head: codeFor(Point{0, 0.5}, unitBounds, DefaultEpsilon),
		tail: codeFor(Point{0, 0.9}, unitBounds, DefaultEpsilon),
	}

	rings := closeOpen([]openChain{c1, c2}, unitBounds)
	if len(rings) != 2 {
		t.Fatalf("got %d rings, want 2", len(rings))
	}

	// Both rings wrap the full rectangle back to their own entry.
	corners := []Point{{0, 1}, {1, 1}, {1, 0}, {0, 0}}
	want1 := append(append(slices.Clone(c1.pts), corners...), c1.pts[0])
	want2 := append(append(slices.Clone(c2.pts), corners...), c2.pts[0])
	if !slices.Equal(rings[0], want1) {
		t.Errorf("ring 1 = %v, want %v", rings[0], want1)
	}
	if !slices.Equal(rings[1], want2) {
		t.Errorf("ring 2 = %v, want %v", rings[1], want2)
	}
}

func TestCloseOpen_Empty(t *testing.T) {
	if rings := closeOpen(nil, unitBounds); rings != nil {
		t.Errorf("closeOpen(nil) = %v, want nil", rings)
	}
}

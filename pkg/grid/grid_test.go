package grid

import (
	"slices"
	"testing"

	"github.com/mhersche/isoline/pkg/errors"
)

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name       string
		samples    int
		cols, rows int
	}{
		{"zero cols", 0, 0, 2},
		{"zero rows", 0, 2, 0},
		{"count mismatch", 5, 2, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(make([]Sample, tt.samples), tt.cols, tt.rows)
			if !errors.Is(err, errors.ErrCodeInvalidGrid) {
				t.Errorf("New() error = %v, want INVALID_GRID", err)
			}
		})
	}
}

func TestFromRows(t *testing.T) {
	g, err := FromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}, UnitSpacing)
	if err != nil {
		t.Fatal(err)
	}

	if g.Cols() != 3 || g.Rows() != 2 {
		t.Fatalf("dims = %dx%d, want 3x2", g.Cols(), g.Rows())
	}

	// Bottom row first, positions on the unit lattice.
	want := Sample{X: 1, Y: 0, Value: 2}
	if got := g.At(1, 0); got != want {
		t.Errorf("At(1, 0) = %v, want %v", got, want)
	}
	want = Sample{X: 2, Y: 1, Value: 6}
	if got := g.At(2, 1); got != want {
		t.Errorf("At(2, 1) = %v, want %v", got, want)
	}
}

func TestFromRows_RaggedMatrix(t *testing.T) {
	_, err := FromRows([][]float64{{1, 2}, {3}}, UnitSpacing)
	if !errors.Is(err, errors.ErrCodeInvalidGrid) {
		t.Errorf("error = %v, want INVALID_GRID", err)
	}
}

func TestFromColumns_MatchesTransposedRows(t *testing.T) {
	byRows, err := FromRows([][]float64{
		{1, 2, 3},
		{4, 5, 6},
	}, UnitSpacing)
	if err != nil {
		t.Fatal(err)
	}
	byCols, err := FromColumns([][]float64{
		{1, 4},
		{2, 5},
		{3, 6},
	}, UnitSpacing)
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(byRows.Samples(), byCols.Samples()) {
		t.Errorf("column-major ingest = %v, want %v", byCols.Samples(), byRows.Samples())
	}
}

func TestFromFunc_Spacing(t *testing.T) {
	sp := Spacing{OriginX: 10, OriginY: -5, DX: 2, DY: 0.5}
	g, err := FromFunc(3, 2, sp, func(x, y float64) float64 { return x + y })
	if err != nil {
		t.Fatal(err)
	}

	s := g.At(2, 1)
	if s.X != 14 || s.Y != -4.5 {
		t.Errorf("At(2, 1) position = (%v, %v), want (14, -4.5)", s.X, s.Y)
	}
	if s.Value != 9.5 {
		t.Errorf("At(2, 1) value = %v, want 9.5", s.Value)
	}

	b := g.Bounds()
	if b.MinX != 10 || b.MaxX != 14 || b.MinY != -5 || b.MaxY != -4.5 {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestValueRangeAndLevels(t *testing.T) {
	g, err := FromRows([][]float64{
		{0, 1},
		{2, 3},
	}, UnitSpacing)
	if err != nil {
		t.Fatal(err)
	}

	min, max := g.ValueRange()
	if min != 0 || max != 3 {
		t.Fatalf("ValueRange() = %v, %v, want 0, 3", min, max)
	}

	levels := g.Levels(2)
	if !slices.Equal(levels, []float64{1, 2}) {
		t.Errorf("Levels(2) = %v, want [1 2]", levels)
	}
	if got := g.Levels(0); got != nil {
		t.Errorf("Levels(0) = %v, want nil", got)
	}
}

func TestLevelsConstantField(t *testing.T) {
	g, err := FromRows([][]float64{
		{5, 5},
		{5, 5},
	}, UnitSpacing)
	if err != nil {
		t.Fatal(err)
	}

	// No interior exists between min and max, so no thresholds either.
	if got := g.Levels(3); got != nil {
		t.Errorf("Levels(3) on constant field = %v, want nil", got)
	}
}

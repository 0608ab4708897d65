package grid

import (
	"math"

	"github.com/mhersche/isoline/pkg/contour"
	"github.com/mhersche/isoline/pkg/errors"
)

// Sample is one grid point: a position and the field value sampled there.
type Sample struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Value float64 `json:"value"`
}

// Grid is a rectangular scalar field: cols×rows samples stored row by
// row, bottom row first. Positions are arbitrary as long as the samples
// form a rectangular lattice; the constructors in this package place
// sample (c, r) at origin + (c·dx, r·dy).
type Grid struct {
	samples []Sample
	cols    int
	rows    int
}

// Spacing positions a grid in field coordinates.
type Spacing struct {
	OriginX float64 `json:"origin_x"`
	OriginY float64 `json:"origin_y"`
	DX      float64 `json:"dx"`
	DY      float64 `json:"dy"`
}

// UnitSpacing places sample (c, r) at (c, r).
var UnitSpacing = Spacing{DX: 1, DY: 1}

func (s Spacing) normalized() Spacing {
	if s.DX == 0 {
		s.DX = 1
	}
	if s.DY == 0 {
		s.DY = 1
	}
	return s
}

// New creates a grid from pre-positioned samples in row-major order
// (bottom row first). len(samples) must equal cols*rows.
func New(samples []Sample, cols, rows int) (*Grid, error) {
	if cols < 1 || rows < 1 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid must have at least one column and one row, got %dx%d", cols, rows)
	}
	if len(samples) != cols*rows {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "got %d samples for a %dx%d grid, want %d", len(samples), cols, rows, cols*rows)
	}
	return &Grid{samples: samples, cols: cols, rows: rows}, nil
}

// FromRows creates a grid from a row-major value matrix: values[r][c] is
// the sample in row r, column c. All rows must have equal length.
func FromRows(values [][]float64, sp Spacing) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "empty value matrix")
	}
	sp = sp.normalized()
	rows, cols := len(values), len(values[0])
	samples := make([]Sample, 0, rows*cols)
	for r, row := range values {
		if len(row) != cols {
			return nil, errors.New(errors.ErrCodeInvalidGrid, "row %d has %d values, want %d", r, len(row), cols)
		}
		for c, v := range row {
			samples = append(samples, Sample{
				X:     sp.OriginX + float64(c)*sp.DX,
				Y:     sp.OriginY + float64(r)*sp.DY,
				Value: v,
			})
		}
	}
	return &Grid{samples: samples, cols: cols, rows: rows}, nil
}

// FromColumns creates a grid from a column-major value matrix:
// values[c][r] is the sample in column c, row r. The matrix is transposed
// on ingest; the resulting grid is indistinguishable from one built with
// [FromRows].
func FromColumns(values [][]float64, sp Spacing) (*Grid, error) {
	if len(values) == 0 || len(values[0]) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "empty value matrix")
	}
	cols, rows := len(values), len(values[0])
	transposed := make([][]float64, rows)
	for r := range transposed {
		transposed[r] = make([]float64, cols)
		for c := range values {
			if len(values[c]) != rows {
				return nil, errors.New(errors.ErrCodeInvalidGrid, "column %d has %d values, want %d", c, len(values[c]), rows)
			}
			transposed[r][c] = values[c][r]
		}
	}
	return FromRows(transposed, sp)
}

// FromFunc samples f at every lattice position of a cols×rows grid.
func FromFunc(cols, rows int, sp Spacing, f func(x, y float64) float64) (*Grid, error) {
	if cols < 1 || rows < 1 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "grid must have at least one column and one row, got %dx%d", cols, rows)
	}
	sp = sp.normalized()
	samples := make([]Sample, 0, cols*rows)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			x := sp.OriginX + float64(c)*sp.DX
			y := sp.OriginY + float64(r)*sp.DY
			samples = append(samples, Sample{X: x, Y: y, Value: f(x, y)})
		}
	}
	return &Grid{samples: samples, cols: cols, rows: rows}, nil
}

// Cols returns the number of columns.
func (g *Grid) Cols() int { return g.cols }

// Rows returns the number of rows.
func (g *Grid) Rows() int { return g.rows }

// At returns the sample in column c, row r.
func (g *Grid) At(c, r int) Sample { return g.samples[r*g.cols+c] }

// Samples returns the flat row-major sample sequence.
func (g *Grid) Samples() []Sample { return g.samples }

// Bounds computes the bounding rectangle over all sample positions.
func (g *Grid) Bounds() contour.Bounds {
	b := contour.Bounds{
		MinX: math.Inf(1), MinY: math.Inf(1),
		MaxX: math.Inf(-1), MaxY: math.Inf(-1),
	}
	for _, s := range g.samples {
		b.MinX = math.Min(b.MinX, s.X)
		b.MinY = math.Min(b.MinY, s.Y)
		b.MaxX = math.Max(b.MaxX, s.X)
		b.MaxY = math.Max(b.MaxY, s.Y)
	}
	return b
}

// ValueRange returns the smallest and largest sample value.
func (g *Grid) ValueRange() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, s := range g.samples {
		min = math.Min(min, s.Value)
		max = math.Max(max, s.Value)
	}
	return min, max
}

// Levels returns n thresholds evenly spaced strictly inside the grid's
// value range. The endpoints themselves are excluded: an isoline at the
// exact minimum or maximum degenerates to the extreme samples. A
// constant field has no interior, so it yields no levels.
func (g *Grid) Levels(n int) []float64 {
	if n < 1 {
		return nil
	}
	min, max := g.ValueRange()
	if min == max {
		return nil
	}
	step := (max - min) / float64(n+1)
	levels := make([]float64, n)
	for i := range levels {
		levels[i] = min + float64(i+1)*step
	}
	return levels
}

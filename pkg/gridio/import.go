package gridio

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"github.com/mhersche/isoline/pkg/errors"
	"github.com/mhersche/isoline/pkg/grid"
)

// gridFile is the on-disk JSON shape of a field.
type gridFile struct {
	Cols    int           `json:"cols"`
	Rows    int           `json:"rows"`
	Values  [][]float64   `json:"values"`
	Spacing *grid.Spacing `json:"spacing,omitempty"`
}

// ReadGridJSON decodes a JSON field from r. The value matrix is
// row-major with the bottom row first; cols and rows, when present, must
// agree with the matrix shape.
func ReadGridJSON(r io.Reader) (*grid.Grid, error) {
	var data gridFile
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode field JSON")
	}
	if len(data.Values) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "field file has no values")
	}
	if data.Rows != 0 && data.Rows != len(data.Values) {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "field file declares %d rows but holds %d", data.Rows, len(data.Values))
	}
	if data.Cols != 0 && data.Cols != len(data.Values[0]) {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "field file declares %d cols but holds %d", data.Cols, len(data.Values[0]))
	}

	sp := grid.UnitSpacing
	if data.Spacing != nil {
		sp = *data.Spacing
	}
	return grid.FromRows(data.Values, sp)
}

// ReadGridCSV decodes a CSV field from r: one row of values per line,
// top row first. Rows are reversed on ingest.
func ReadGridCSV(r io.Reader, sp grid.Spacing) (*grid.Grid, error) {
	records, err := csv.NewReader(r).ReadAll()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode field CSV")
	}
	if len(records) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidGrid, "field file has no values")
	}

	values := make([][]float64, len(records))
	for i, record := range records {
		row := make([]float64, len(record))
		for j, cell := range record {
			v, err := strconv.ParseFloat(strings.TrimSpace(cell), 64)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "row %d, column %d: %q", i+1, j+1, cell)
			}
			row[j] = v
		}
		values[i] = row
	}
	slices.Reverse(values)
	return grid.FromRows(values, sp)
}

// ImportGrid reads a field file at path, dispatching on the file
// extension: .json for the JSON format, .csv for CSV on the unit
// lattice.
func ImportGrid(path string) (*grid.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return ReadGridJSON(f)
	case ".csv":
		return ReadGridCSV(f, grid.UnitSpacing)
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported field file extension %q (supported: .json, .csv)", ext)
	}
}

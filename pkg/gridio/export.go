package gridio

import (
	"encoding/json"
	"io"
	"os"

	"github.com/mhersche/isoline/pkg/contour"
	"github.com/mhersche/isoline/pkg/errors"
	"github.com/mhersche/isoline/pkg/grid"
)

// Contour export formats accepted by [ExportContours].
const (
	FormatJSON    = "json"
	FormatGeoJSON = "geojson"
)

// contourFile is the on-disk JSON shape of a trace result.
type contourFile struct {
	Contours []contour.Contour `json:"contours"`
}

// WriteContours encodes traced contours as indented JSON.
// The output can be consumed directly or fed to external plotting tools.
func WriteContours(contours []contour.Contour, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(contourFile{Contours: contours}); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode contours")
	}
	return nil
}

type geoFeature struct {
	Type       string         `json:"type"`
	Properties map[string]any `json:"properties"`
	Geometry   geoGeometry    `json:"geometry"`
}

type geoGeometry struct {
	Type        string       `json:"type"`
	Coordinates [][2]float64 `json:"coordinates"`
}

type geoCollection struct {
	Type     string       `json:"type"`
	Features []geoFeature `json:"features"`
}

// WriteGeoJSON encodes traced contours as a GeoJSON FeatureCollection:
// one closed LineString per contour, with the level index and threshold
// value as feature properties.
func WriteGeoJSON(contours []contour.Contour, w io.Writer) error {
	fc := geoCollection{Type: "FeatureCollection", Features: make([]geoFeature, len(contours))}
	for i, c := range contours {
		coords := make([][2]float64, len(c.Points))
		for j, p := range c.Points {
			coords[j] = [2]float64{p.X, p.Y}
		}
		fc.Features[i] = geoFeature{
			Type: "Feature",
			Properties: map[string]any{
				"level": c.Level,
				"value": c.Value,
			},
			Geometry: geoGeometry{Type: "LineString", Coordinates: coords},
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(fc); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode GeoJSON")
	}
	return nil
}

// ExportContours writes traced contours to a file at path in the given
// format, one of [FormatJSON] or [FormatGeoJSON].
func ExportContours(contours []contour.Contour, path, format string) error {
	if err := errors.ValidateFormat(format, FormatJSON, FormatGeoJSON); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()

	switch format {
	case FormatGeoJSON:
		return WriteGeoJSON(contours, f)
	default:
		return WriteContours(contours, f)
	}
}

// WriteGrid encodes a field as indented JSON in the format read by
// [ReadGridJSON]. Spacing is inferred from the first samples of the
// lattice.
func WriteGrid(g *grid.Grid, w io.Writer) error {
	values := make([][]float64, g.Rows())
	for r := range values {
		row := make([]float64, g.Cols())
		for c := range row {
			row[c] = g.At(c, r).Value
		}
		values[r] = row
	}

	origin := g.At(0, 0)
	sp := grid.Spacing{OriginX: origin.X, OriginY: origin.Y, DX: 1, DY: 1}
	if g.Cols() > 1 {
		sp.DX = g.At(1, 0).X - origin.X
	}
	if g.Rows() > 1 {
		sp.DY = g.At(0, 1).Y - origin.Y
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	out := gridFile{Cols: g.Cols(), Rows: g.Rows(), Values: values, Spacing: &sp}
	if err := enc.Encode(out); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode field")
	}
	return nil
}

// ExportGrid writes a field to a JSON file at path.
func ExportGrid(g *grid.Grid, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "create %s", path)
	}
	defer f.Close()
	return WriteGrid(g, f)
}

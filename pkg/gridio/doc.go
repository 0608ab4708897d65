// Package gridio provides file import and export for scalar fields and
// traced contours.
//
// # Overview
//
// This package moves data across the toolkit's boundary:
//
//   - Grid import: JSON and CSV field files into [grid.Grid]
//   - Grid export: JSON field files, re-importable for round trips
//   - Contour export: JSON and GeoJSON polylines for external tooling
//
// # Grid JSON Format
//
// A field file is a JSON object with a value matrix and optional
// placement:
//
//	{
//	  "cols": 3,
//	  "rows": 2,
//	  "values": [[0, 0, 0], [1, 1, 1]],
//	  "spacing": {"origin_x": 0, "origin_y": 0, "dx": 1, "dy": 1}
//	}
//
// The value matrix is row-major with the bottom row first, matching
// [grid.FromRows]. Spacing defaults to the unit lattice when omitted.
//
// # Grid CSV Format
//
// A CSV field file holds one row of samples per line, ordered top to
// bottom the way the field reads on screen. Rows are reversed on ingest
// so the resulting grid is bottom-row-first like every other
// constructor.
//
// # Contour Export
//
// [WriteContours] emits traced contours as JSON; [WriteGeoJSON] emits a
// GeoJSON FeatureCollection with one LineString feature per contour and
// the level index and threshold value as properties. Every polyline is
// closed, so the first and last coordinate of each feature coincide.
package gridio

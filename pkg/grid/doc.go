// Package grid provides rectangular scalar-field grids, their default
// triangulation, and synthetic field generators.
//
// # Overview
//
// A [Grid] is a flat, ordered sequence of {x, y, value} samples laid out
// in rows. Constructors accept row-major ([FromRows]) or column-major
// ([FromColumns]) value matrices; column-major input is transposed on
// ingest so the rest of the system only ever sees one layout.
//
// [Mesh] triangulates a grid for isoline extraction: every cell is split
// into two triangles along its bottom-left/top-right diagonal, and each
// triangle reports where its linearly interpolated surface crosses a
// level. Mesh implements contour.Source; nothing in the contour package
// depends on this particular scheme.
//
// # Generators
//
// [Slope], [Peak], and [Perlin] produce synthetic fields for tests and
// the `isoline gen` command: a linear gradient, a gaussian bump, and
// classic gradient-lattice perlin noise.
package grid

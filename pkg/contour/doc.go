// Package contour extracts isolines from scalar fields sampled on a grid.
//
// # Overview
//
// Given a triangulated scalar field and a list of threshold levels, the
// package finds every segment where a triangle's surface crosses a level,
// stitches those segments into continuous polylines, and closes any
// polyline that terminates on the field's outer boundary into a proper
// loop that follows the boundary rectangle.
//
// The package does not render anything and does not triangulate anything.
// Triangles are consumed through the [Source] interface, and the resulting
// [Contour] polylines are plain geometry handed to whatever consumes them.
// The default triangulation for rectangular grids lives in the grid
// package.
//
// # Basic Usage
//
// Build a source (for example grid.Mesh) and call [Trace]:
//
//	g := grid.FromRows([][]float64{{0, 0}, {1, 1}}, grid.UnitSpacing)
//	contours := contour.Trace(grid.NewMesh(g), []float64{0.5}, nil)
//	for _, c := range contours {
//	    fmt.Println(c.Level, c.Points)
//	}
//
// Each returned contour is a closed polyline (first point equals last
// point) tagged with the index of the level that produced it. Output is
// ordered by ascending level index; levels never interact with each other.
//
// # Stitching
//
// Crossing segments arrive in arbitrary order, one per triangle. The
// builder keeps a set of open chains per level and, for every incoming
// segment, matches its endpoints against existing chain ends within a
// small tolerance ([DefaultEpsilon], squared distance). Depending on which
// endpoints match it creates, extends, merges, or closes chains. Merging
// two chains may reverse one of them so the merged chain remains a single
// consistent head-to-tail walk.
//
// # Boundary Closure
//
// A chain that is still open after every triangle has been scanned must
// have both ends on the outer boundary: any interior endpoint would have
// been matched by a neighboring triangle's segment. Open chains are sorted
// by their clockwise position around the bounding rectangle and connected
// end to end, inserting one synthetic corner point for every 90 degrees of
// boundary traversed, producing closed polygons.
//
// # Degenerate Input
//
// The package deliberately does not repair degenerate geometry. NaN or
// infinite coordinates coming out of a source never match any chain end
// (the tolerance test is false for NaN) and therefore surface as spurious
// isolated chains. Endpoints that lie on no boundary edge sort as if they
// sat at the bottom-left corner. Downstream consumers rely on this exact
// tie-breaking, so it is kept rather than fixed.
//
// # Concurrency
//
// Levels are fully independent: each owns its own builder and chain set.
// [Options.Workers] enables parallel processing of levels; the final
// ordering by level index is unaffected. A single Trace call never shares
// mutable state between goroutines.
package contour

package contour_test

import (
	"fmt"

	"github.com/mhersche/isoline/pkg/contour"
	"github.com/mhersche/isoline/pkg/grid"
)

// Example traces the mid-level isoline of a tiny field whose value
// increases with height. The line runs across the field and is closed
// clockwise along the top boundary.
func Example() {
	g, err := grid.FromRows([][]float64{
		{0, 0},
		{1, 1},
	}, grid.UnitSpacing)
	if err != nil {
		panic(err)
	}

	contours := contour.Trace(grid.NewMesh(g), []float64{0.5}, nil)
	for _, c := range contours {
		fmt.Printf("level %g:", c.Value)
		for _, p := range c.Points {
			fmt.Printf(" (%g,%g)", p.X, p.Y)
		}
		fmt.Println()
	}
	// Output:
	// level 0.5: (1,0.5) (0.5,0.5) (0,0.5) (0,1) (1,1) (1,0.5)
}

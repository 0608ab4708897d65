package grid

import (
	"math"
	"math/rand"
)

// Slope generates a cols×rows linear gradient running diagonally from 0
// at the bottom-left sample toward 1 at the top-right sample. Its
// isolines are straight lines, which makes it the reference field for
// boundary-closure checks.
func Slope(cols, rows int, sp Spacing) (*Grid, error) {
	sp = sp.normalized()
	w := float64(cols-1) * sp.DX
	h := float64(rows-1) * sp.DY
	return FromFunc(cols, rows, sp, func(x, y float64) float64 {
		return ((x - sp.OriginX) + (y - sp.OriginY)) / (w + h)
	})
}

// Peak generates a cols×rows gaussian bump of height 1 centered on the
// grid, falling toward 0 at the edges. Its isolines are closed loops that
// never touch the boundary.
func Peak(cols, rows int, sp Spacing) (*Grid, error) {
	sp = sp.normalized()
	cx := sp.OriginX + float64(cols-1)*sp.DX/2
	cy := sp.OriginY + float64(rows-1)*sp.DY/2
	// Scale sigma with grid extent so the bump is well inside the field.
	sigma := math.Min(float64(cols-1)*sp.DX, float64(rows-1)*sp.DY) / 4
	if sigma == 0 {
		sigma = 1
	}
	return FromFunc(cols, rows, sp, func(x, y float64) float64 {
		dx := (x - cx) / sigma
		dy := (y - cy) / sigma
		return math.Exp(-(dx*dx + dy*dy) / 2)
	})
}

// Perlin generates a cols×rows field of classic perlin noise: a lattice
// of random unit gradients, dot products against the sample offset, and
// bilinear interpolation between the four surrounding lattice points.
// Values are roughly in [-1, 1]. The same seed reproduces the same field.
func Perlin(cols, rows int, sp Spacing, cell float64, seed int64) (*Grid, error) {
	sp = sp.normalized()
	if cell <= 0 {
		cell = 4
	}
	rnd := rand.New(rand.NewSource(seed))

	gw := int(math.Ceil(float64(cols)/cell)) + 2
	gh := int(math.Ceil(float64(rows)/cell)) + 2
	gradients := make([][2]float64, gw*gh)
	for i := range gradients {
		angle := rnd.Float64() * 2 * math.Pi
		gradients[i] = [2]float64{math.Cos(angle), math.Sin(angle)}
	}

	dot := func(gx, gy int, px, py float64) float64 {
		g := gradients[gy*gw+gx]
		return (px-float64(gx))*g[0] + (py-float64(gy))*g[1]
	}
	lerp := func(a, b, w float64) float64 { return (1-w)*a + w*b }

	return FromFunc(cols, rows, sp, func(x, y float64) float64 {
		px := (x - sp.OriginX) / (sp.DX * cell)
		py := (y - sp.OriginY) / (sp.DY * cell)
		x0, y0 := int(px), int(py)
		sx, sy := px-float64(x0), py-float64(y0)

		n0 := dot(x0, y0, px, py)
		n1 := dot(x0+1, y0, px, py)
		n2 := dot(x0, y0+1, px, py)
		n3 := dot(x0+1, y0+1, px, py)
		return lerp(lerp(n0, n1, sx), lerp(n2, n3, sx), sy)
	})
}

package morphology

import "github.com/ironsheep/shape-count/internal/bitmap"

// Negate returns a new grid where every cell v becomes 1-v.
func Negate(g *bitmap.Grid) *bitmap.Grid {
	out := g.Clone()
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			out.Set(x, y, 1-g.Get(x, y))
		}
	}
	return out
}

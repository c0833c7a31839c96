package detection

import "github.com/ironsheep/shape-count/internal/bitmap"

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// EraseComponent performs an iterative flood fill from (x0, y0), setting every
// foreground cell of the connected region to 0. It returns the number of
// cells erased.
//
// Parameters:
//   - g: Grid to modify in place. Must not be shared with other goroutines.
//   - x0, y0: Seed coordinate. A seed outside the grid or on a 0 cell erases
//     nothing.
//   - m: Neighbourhood mask. Every active cell except the center is a
//     neighbour offset.
//
// # Algorithm
//
// Uses a stack-based approach (not recursive) to avoid stack overflow on
// large regions. A popped coordinate outside the grid or on a 0 cell is
// discarded; otherwise the cell is zeroed and all mask neighbours are pushed.
// Zeroing the cell is the visit marker.
//
// The neighbour relation follows the mask as given. Full and Plus are
// symmetric, so the erased region is the connected component. With an
// asymmetric mask the traversal is directed: the erased region is what is
// reachable from the seed, and the result is still deterministic.
//
// Complexity: O(region size x mask area).
func EraseComponent(g *bitmap.Grid, x0, y0 int, m bitmap.Mask) int {
	offsets := m.Offsets()
	stack := []Point{{X: x0, Y: y0}}
	erased := 0

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !g.InBounds(p.X, p.Y) {
			continue
		}
		if g.Get(p.X, p.Y) == 0 {
			continue
		}

		g.Set(p.X, p.Y, 0)
		erased++

		for _, d := range offsets {
			stack = append(stack, Point{X: p.X + d.DX, Y: p.Y + d.DY})
		}
	}

	return erased
}

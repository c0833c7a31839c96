package detection

import "github.com/ironsheep/shape-count/internal/bitmap"

// ScanOrder selects the order in which seeds are discovered.
type ScanOrder int

const (
	// ColumnMajor scans x in the outer loop and y in the inner loop.
	ColumnMajor ScanOrder = iota
	// RowMajor scans y in the outer loop and x in the inner loop.
	RowMajor
)

// CountComponents returns the number of maximal connected regions of
// foreground cells under m, scanning in ColumnMajor order. g is not modified.
func CountComponents(g *bitmap.Grid, m bitmap.Mask) int {
	return len(ComponentSizesOrder(g, m, ColumnMajor))
}

// CountComponentsOrder is CountComponents with an explicit scan order.
// The count does not depend on the order; only the traversal sequence does.
func CountComponentsOrder(g *bitmap.Grid, m bitmap.Mask, order ScanOrder) int {
	return len(ComponentSizesOrder(g, m, order))
}

// ComponentSizes returns the area of every component in ColumnMajor
// discovery order.
func ComponentSizes(g *bitmap.Grid, m bitmap.Mask) []int {
	return ComponentSizesOrder(g, m, ColumnMajor)
}

// ComponentSizesOrder clones g, then scans it in the given order. Each time a
// foreground cell is found the whole component is erased and its size
// recorded.
func ComponentSizesOrder(g *bitmap.Grid, m bitmap.Mask, order ScanOrder) []int {
	work := g.Clone()
	sizes := make([]int, 0)

	visit := func(x, y int) {
		if work.Get(x, y) == 1 {
			sizes = append(sizes, EraseComponent(work, x, y, m))
		}
	}

	if order == RowMajor {
		for y := 0; y < work.Height(); y++ {
			for x := 0; x < work.Width(); x++ {
				visit(x, y)
			}
		}
		return sizes
	}

	for x := 0; x < work.Width(); x++ {
		for y := 0; y < work.Height(); y++ {
			visit(x, y)
		}
	}
	return sizes
}

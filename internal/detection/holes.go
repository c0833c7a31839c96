package detection

import (
	"fmt"

	"github.com/ironsheep/shape-count/internal/bitmap"
	"github.com/ironsheep/shape-count/internal/morphology"
)

// RemoveBackground returns a copy of g with every foreground region that
// touches the border erased under m.
//
// Seeds are scanned top row and bottom row first (per x), then left column
// and right column (per y). g is not modified.
func RemoveBackground(g *bitmap.Grid, m bitmap.Mask) *bitmap.Grid {
	work := g.Clone()
	w, h := work.Width(), work.Height()

	for x := 0; x < w; x++ {
		if work.Get(x, 0) == 1 {
			EraseComponent(work, x, 0, m)
		}
		if work.Get(x, h-1) == 1 {
			EraseComponent(work, x, h-1, m)
		}
	}
	for y := 0; y < h; y++ {
		if work.Get(0, y) == 1 {
			EraseComponent(work, 0, y, m)
		}
		if work.Get(w-1, y) == 1 {
			EraseComponent(work, w-1, y, m)
		}
	}

	return work
}

// ExtractHoles returns the interior holes of image: background cells that
// cannot reach the border under m. In the result 1 marks a hole pixel.
//
// The image is negated once, so background becomes foreground, and the
// border-connected part of it is removed with RemoveBackground.
func ExtractHoles(image *bitmap.Grid, m bitmap.Mask) *bitmap.Grid {
	return RemoveBackground(morphology.Negate(image), m)
}

// FillHoles returns original with every hole pixel set to 1.
func FillHoles(original, holes *bitmap.Grid) (*bitmap.Grid, error) {
	if original == nil || holes == nil {
		return nil, ErrNilGrid
	}
	if !original.SameSize(holes) {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d", morphology.ErrSizeMismatch,
			original.Width(), original.Height(), holes.Width(), holes.Height())
	}

	solid := original.Clone()
	for y := 0; y < holes.Height(); y++ {
		for x := 0; x < holes.Width(); x++ {
			if holes.Get(x, y) == 1 {
				solid.Set(x, y, 1)
			}
		}
	}
	return solid, nil
}

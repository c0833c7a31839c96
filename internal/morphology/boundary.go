package morphology

import (
	"fmt"

	"github.com/ironsheep/shape-count/internal/bitmap"
)

// BoundaryFromErosion returns the pixels that are foreground in original but
// were removed by erosion: the inward-facing contour layer.
//
// Returns ErrSizeMismatch if the grids differ in size.
func BoundaryFromErosion(original, eroded *bitmap.Grid) (*bitmap.Grid, error) {
	return difference(original, eroded)
}

// BoundaryFromDilation returns the pixels added by dilation: foreground in
// dilated, background in original. This is the outward-facing contour layer.
func BoundaryFromDilation(original, dilated *bitmap.Grid) (*bitmap.Grid, error) {
	return difference(dilated, original)
}

// Envelope transforms g with op and returns the matching boundary layer.
func Envelope(g *bitmap.Grid, m bitmap.Mask, op Operation) (*bitmap.Grid, error) {
	transformed, err := op.Apply(g, m)
	if err != nil {
		return nil, err
	}
	return op.Boundary(g, transformed)
}

// difference returns a AND NOT b, pointwise.
func difference(a, b *bitmap.Grid) (*bitmap.Grid, error) {
	if a == nil || b == nil {
		return nil, ErrNilGrid
	}
	if !a.SameSize(b) {
		return nil, fmt.Errorf("%w: %dx%d vs %dx%d", ErrSizeMismatch, a.Width(), a.Height(), b.Width(), b.Height())
	}

	out, err := bitmap.New(a.Width(), a.Height())
	if err != nil {
		return nil, err
	}
	for y := 0; y < a.Height(); y++ {
		for x := 0; x < a.Width(); x++ {
			if a.Get(x, y) == 1 && b.Get(x, y) == 0 {
				out.Set(x, y, 1)
			}
		}
	}
	return out, nil
}

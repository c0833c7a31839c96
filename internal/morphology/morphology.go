package morphology

import (
	"fmt"
	"strings"

	"github.com/ironsheep/shape-count/internal/bitmap"
)

// Operation selects the morphological transform and its matching boundary rule.
type Operation int

const (
	// Erosion strips one mask layer from foreground regions.
	Erosion Operation = iota
	// Dilation grows foreground regions by one mask layer.
	Dilation
)

// ParseOperation accepts "erode", "erosion", "dilate" or "dilation" (any case).
func ParseOperation(s string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "erode", "erosion":
		return Erosion, nil
	case "dilate", "dilation":
		return Dilation, nil
	default:
		return 0, fmt.Errorf("%w: %q (want erode or dilate)", ErrUnknownOperation, s)
	}
}

// String returns "erosion" or "dilation".
func (op Operation) String() string {
	switch op {
	case Erosion:
		return "erosion"
	case Dilation:
		return "dilation"
	default:
		return fmt.Sprintf("Operation(%d)", int(op))
	}
}

// Valid reports whether op is Erosion or Dilation.
func (op Operation) Valid() bool {
	return op == Erosion || op == Dilation
}

// Apply runs the transform selected by op.
func (op Operation) Apply(g *bitmap.Grid, m bitmap.Mask) (*bitmap.Grid, error) {
	switch op {
	case Erosion:
		return Erode(g, m)
	case Dilation:
		return Dilate(g, m)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperation, int(op))
	}
}

// Boundary extracts the contour layer between original and its transform
// under op.
func (op Operation) Boundary(original, transformed *bitmap.Grid) (*bitmap.Grid, error) {
	switch op {
	case Erosion:
		return BoundaryFromErosion(original, transformed)
	case Dilation:
		return BoundaryFromDilation(original, transformed)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownOperation, int(op))
	}
}

// Erode returns the erosion of g by m.
//
// An evaluated pixel is 1 iff every active mask cell, anchored at the mask
// center, covers a foreground pixel. Pixels whose footprint would leave the
// grid are 0 (see the package border policy).
//
// Returns ErrNilGrid or ErrNilMask on missing inputs.
func Erode(g *bitmap.Grid, m bitmap.Mask) (*bitmap.Grid, error) {
	return transform(g, m, true)
}

// Dilate returns the dilation of g by m.
//
// An evaluated pixel is 1 iff any active mask cell, anchored at the mask
// center, covers a foreground pixel. The border policy matches Erode.
func Dilate(g *bitmap.Grid, m bitmap.Mask) (*bitmap.Grid, error) {
	return transform(g, m, false)
}

// transform evaluates every pixel with a full mask footprint. With requireAll
// the covered cells are ANDed (erosion), otherwise ORed (dilation).
func transform(g *bitmap.Grid, m bitmap.Mask, requireAll bool) (*bitmap.Grid, error) {
	if g == nil {
		return nil, ErrNilGrid
	}
	if m.IsZero() {
		return nil, ErrNilMask
	}

	out, err := bitmap.New(g.Width(), g.Height())
	if err != nil {
		return nil, err
	}

	cy, cx := m.Center()
	// Footprint extends cx left, cy up, and the remainder right/down.
	right := m.Width() - 1 - cx
	down := m.Height() - 1 - cy

	for y := cy; y < g.Height()-down; y++ {
		for x := cx; x < g.Width()-right; x++ {
			hit := requireAll
			for j := 0; j < m.Height() && hit == requireAll; j++ {
				for i := 0; i < m.Width(); i++ {
					if m.At(i, j) == 0 {
						continue
					}
					covered := g.Get(x+i-cx, y+j-cy) == 1
					if requireAll && !covered {
						hit = false
						break
					}
					if !requireAll && covered {
						hit = true
						break
					}
				}
			}
			if hit {
				out.Set(x, y, 1)
			}
		}
	}

	return out, nil
}

package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/anthonynsimon/bild/segment"
	"github.com/disintegration/imaging"
	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/shape-count/internal/bitmap"
	"github.com/ironsheep/shape-count/internal/morphology"
)

// ErrInvalidOptions is returned when BinarizeOptions cannot be applied.
var ErrInvalidOptions = errors.New("imaging: invalid binarize options")

// Mode selects how a raster pixel is classified as foreground.
type Mode int

const (
	// ModeThreshold marks pixels darker than Level as foreground.
	ModeThreshold Mode = iota
	// ModeInk marks pixels perceptually close to the Ink color as foreground.
	ModeInk
)

// String returns the flag spelling of the mode.
func (m Mode) String() string {
	switch m {
	case ModeThreshold:
		return "threshold"
	case ModeInk:
		return "ink"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ParseMode accepts "threshold" or "ink", case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "threshold":
		return ModeThreshold, nil
	case "ink":
		return ModeInk, nil
	default:
		return 0, fmt.Errorf("%w: unknown mode %q", ErrInvalidOptions, s)
	}
}

// BinarizeOptions controls conversion of a raster image to a binary grid.
type BinarizeOptions struct {
	// Mode selects the classification rule.
	Mode Mode

	// Level is the luminance cutoff for ModeThreshold. Pixels with
	// luminance below Level become 1.
	Level uint8

	// Ink is the foreground color for ModeInk, as "#rrggbb" or "#rgb".
	Ink string

	// Tolerance is the largest CIEDE2000 distance from Ink still counted as
	// foreground. Distances use go-colorful's scale, where 1.0 spans the
	// full lightness range.
	Tolerance float64

	// Invert swaps foreground and background after classification.
	Invert bool
}

// DefaultBinarizeOptions returns threshold mode at mid gray with black ink settings.
func DefaultBinarizeOptions() BinarizeOptions {
	return BinarizeOptions{
		Mode:      ModeThreshold,
		Level:     128,
		Ink:       "#000000",
		Tolerance: 0.1,
	}
}

// Binarize converts img to a grid the size of img's bounds.
//
// Parameters:
//   - img: Source raster. Transparent pixels are always background.
//   - opts: Classification options; see BinarizeOptions.
//
// Returns:
//   - *bitmap.Grid: 1 for foreground pixels, 0 for background.
//   - error: ErrInvalidOptions if the mode, ink color or tolerance is invalid.
func Binarize(img image.Image, opts BinarizeOptions) (*bitmap.Grid, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", ErrInvalidOptions)
	}

	var (
		g   *bitmap.Grid
		err error
	)
	switch opts.Mode {
	case ModeThreshold:
		g, err = binarizeThreshold(img, opts.Level)
	case ModeInk:
		g, err = binarizeInk(img, opts.Ink, opts.Tolerance)
	default:
		err = fmt.Errorf("%w: unknown mode %v", ErrInvalidOptions, opts.Mode)
	}
	if err != nil {
		return nil, err
	}

	if opts.Invert {
		g = morphology.Negate(g)
	}
	return g, nil
}

func binarizeThreshold(img image.Image, level uint8) (*bitmap.Grid, error) {
	b := img.Bounds()
	// Composite onto white so partially transparent pixels lighten instead of darken.
	flat := imaging.Overlay(imaging.New(b.Dx(), b.Dy(), color.White), img, image.Pt(0, 0), 1.0)
	bw := segment.Threshold(imaging.Grayscale(flat), level)

	g, err := bitmap.New(b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	for y := 0; y < b.Dy(); y++ {
		for x := 0; x < b.Dx(); x++ {
			if bw.GrayAt(x, y).Y == 0 {
				g.Set(x, y, 1)
			}
		}
	}
	return g, nil
}

func binarizeInk(img image.Image, ink string, tolerance float64) (*bitmap.Grid, error) {
	if tolerance < 0 {
		return nil, fmt.Errorf("%w: tolerance must be >= 0, got %g", ErrInvalidOptions, tolerance)
	}
	target, err := colorful.Hex(ink)
	if err != nil {
		return nil, fmt.Errorf("%w: ink color %q: %v", ErrInvalidOptions, ink, err)
	}

	b := img.Bounds()
	g, err := bitmap.New(b.Dx(), b.Dy())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidOptions, err)
	}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c, ok := colorful.MakeColor(img.At(x, y))
			if !ok {
				continue
			}
			if c.DistanceCIEDE2000(target) <= tolerance {
				g.Set(x-b.Min.X, y-b.Min.Y, 1)
			}
		}
	}
	return g, nil
}

package bitmap

import "errors"

var (
	// ErrEmptyGrid indicates a grid with zero (or negative) width or height.
	ErrEmptyGrid = errors.New("bitmap: grid must have at least one row and one column")
	// ErrTooLarge indicates a width x height that does not fit in an int.
	ErrTooLarge = errors.New("bitmap: grid dimensions overflow")
	// ErrNonRectangular indicates input rows of differing lengths.
	ErrNonRectangular = errors.New("bitmap: all rows must have the same length")
	// ErrInvalidCell indicates a textual cell that is not 0/1 (or ./#).
	ErrInvalidCell = errors.New("bitmap: invalid cell value")
	// ErrEmptyMask indicates a mask with no rows, no columns, or no active cell.
	ErrEmptyMask = errors.New("bitmap: mask must have at least one active cell")
	// ErrEvenMask indicates a mask with an even width or height, which has no center cell.
	ErrEvenMask = errors.New("bitmap: mask dimensions must be odd")
	// ErrRegion indicates an invalid or out-of-bounds crop region.
	ErrRegion = errors.New("bitmap: invalid region")
)

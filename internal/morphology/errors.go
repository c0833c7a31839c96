package morphology

import "errors"

var (
	// ErrNilGrid indicates a nil input grid.
	ErrNilGrid = errors.New("morphology: grid must not be nil")
	// ErrNilMask indicates a zero-value structuring element.
	ErrNilMask = errors.New("morphology: structuring element must not be empty")
	// ErrSizeMismatch indicates two grids of different dimensions.
	ErrSizeMismatch = errors.New("morphology: grids must have the same dimensions")
	// ErrUnknownOperation indicates an Operation outside {Erosion, Dilation}.
	ErrUnknownOperation = errors.New("morphology: unknown operation")
)

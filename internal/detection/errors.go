package detection

import "errors"

var (
	// ErrNilGrid indicates a nil input grid.
	ErrNilGrid = errors.New("detection: grid must not be nil")
	// ErrInvalidConfig indicates a Config that failed validation.
	ErrInvalidConfig = errors.New("detection: invalid config")
)

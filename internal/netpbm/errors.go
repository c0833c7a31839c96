package netpbm

import (
	"errors"
	"fmt"
)

// ErrMalformed is the sentinel all format errors unwrap to.
var ErrMalformed = errors.New("netpbm: malformed image")

// FormatError describes why an input is not a valid PBM image.
type FormatError struct {
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("netpbm: malformed image: %s", e.Reason)
}

// Unwrap returns ErrMalformed.
func (e *FormatError) Unwrap() error {
	return ErrMalformed
}

func malformed(format string, args ...interface{}) error {
	return &FormatError{Reason: fmt.Sprintf(format, args...)}
}

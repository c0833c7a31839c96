// Package morphology implements the binary morphology transforms used by the
// shape counter: negation, erosion, dilation and boundary (envelope)
// extraction.
//
// Every function returns a new grid and leaves its inputs untouched.
//
// # Border Policy
//
// Erosion and dilation only evaluate pixels whose whole mask footprint lies
// inside the grid. For the 3x3 masks that is every pixel except the outer
// one-pixel frame; frame pixels are always 0 in the output. The transforms
// never wrap or pad.
//
// # Operations
//
// Operation is a tagged choice between Erosion and Dilation. It pairs each
// transform with its boundary rule:
//
//   - Erosion:  boundary = original AND NOT eroded (inward contour)
//   - Dilation: boundary = dilated AND NOT original (outward contour)
//
// so callers hold one strategy value instead of two parallel code paths.
package morphology

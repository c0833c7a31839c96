// Package bitmap provides the binary pixel grid and the structuring elements
// (masks) used by the morphology and detection packages.
//
// # Grid
//
// A Grid is a fixed-size rectangle of single-bit cells stored row-major.
// Cells hold 0 (background) or 1 (foreground). Any non-zero value written with
// Set is stored as 1.
//
// Reads outside the grid return 0 and writes outside the grid are ignored.
// Traversal code relies on this: leaving the grid is the end of a branch,
// never an error.
//
// # Coordinate System
//
// Coordinates are 0-based with origin at the top-left corner:
//   - X: column, 0 to width-1
//   - Y: row, 0 to height-1
//
// # Masks
//
// A Mask is a small, odd-sized binary grid whose center is
// (height/2, width/2) using integer division. Every active cell other than the
// center is a neighbour offset. Two presets are provided:
//
//   - Full: 3x3 of ones, 8-connectivity
//   - Plus: the center cross, 4-connectivity
//
// Masks are immutable values; Full and Plus build a fresh Mask on every call.
//
// # Thread Safety
//
// Masks may be shared freely between goroutines. A Grid is not synchronized;
// concurrent readers are fine, but a Grid being written (for example by a
// flood fill) must not be shared.
package bitmap

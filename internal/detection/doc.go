// Package detection counts shapes and shapes-with-holes in binary images.
//
// The package builds on bitmap grids and the morphology transforms. It adds
// the connectivity algorithms and the full analysis pipeline:
//
//   - EraseComponent: iterative flood fill that zeroes one connected region
//   - CountComponents: counts connected regions under a mask
//   - RemoveBackground / ExtractHoles / FillHoles: separate interior holes
//     from the exterior background by border reachability
//   - Analyzer: the end-to-end pipeline producing a Result
//
// # Algorithm Overview
//
// Analyzer.Analyze runs:
//
//  1. Hole extraction: negate the image, then erase every background region
//     reachable from the border. What remains are interior holes.
//  2. Hole filling: OR the holes back into the image so each shape is solid.
//  3. Transform: erode (or dilate) the solid image with the structuring mask.
//  4. Envelope: keep the contour layer between the solid image and its
//     transform.
//  5. Counting: components of the envelope are shapes; components of the
//     hole map are holes. Shapes without holes is the difference.
//
// # Connectivity
//
// Neighbourhoods are defined by bitmap.Mask values held in Config. Hole
// extraction, the envelope count and the hole count each take their own
// mask. The defaults are 8-connectivity everywhere except the hole count,
// which uses 4-connectivity.
//
// # Flood Fill
//
// EraseComponent mutates its grid: setting a cell to 0 is the visit marker,
// so no separate visited set is kept. It uses an explicit stack, never
// recursion, so very large regions cannot overflow the call stack. Every
// other function works on a private clone and leaves its input untouched.
//
// # Limitations
//
// The hole count counts hole regions. A shape enclosing two separate holes
// contributes two to WithHoles.
package detection

// Package imaging turns image files into binary grids for shape counting.
//
// PBM files (P1 and P4) are decoded directly by the netpbm package. Any other
// file is decoded as a raster image (PNG, JPEG, GIF, BMP, TIFF, WebP) with EXIF
// auto-orientation applied, then binarized according to BinarizeOptions:
//
//   - ModeThreshold: pixels whose luminance is below Level become 1.
//   - ModeInk: pixels within Tolerance (CIEDE2000) of the Ink color become 1.
//
// Fully transparent pixels are background in both modes. Invert swaps the
// result, which is useful for light shapes on a dark background.
//
// # Coordinate System
//
// All pixel coordinates in this package are 0-based:
//   - X: horizontal position (0 = leftmost pixel)
//   - Y: vertical position (0 = topmost pixel)
//   - For regions, (x1,y1) is inclusive (top-left), (x2,y2) is exclusive (bottom-right)
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. Grids returned by Load are
// copies owned by the caller.
//
// # Performance Considerations
//
// For repeated operations on the same image, use ImageCache to avoid redundant
// disk reads. Large images may consume significant memory when cached.
// Consider using Evict() or Clear() to manage memory for long-running processes.
package imaging

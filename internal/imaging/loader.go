package imaging

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/shape-count/internal/bitmap"
	"github.com/ironsheep/shape-count/internal/netpbm"
)

// ErrUnsupported indicates a file that is neither PBM nor a decodable raster image.
var ErrUnsupported = errors.New("imaging: unsupported image format")

// source is one decoded file. Exactly one of grid and img is set.
type source struct {
	grid   *bitmap.Grid
	img    image.Image
	format string
}

// ImageCache provides thread-safe caching of decoded images to avoid redundant disk reads.
//
// PBM files are cached as decoded grids. Raster files (PNG, JPEG, GIF, BMP,
// TIFF, WebP) are cached as decoded images and binarized on every Load, so
// the same file can be analyzed with different BinarizeOptions without being
// read again.
//
// ImageCache is safe for concurrent use by multiple goroutines.
//
// # Memory Management
//
// Cached images remain in memory until explicitly removed via Evict() or Clear().
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	g, err := cache.Load("/path/to/shapes.pbm", imaging.DefaultBinarizeOptions())
//	if err != nil {
//	    log.Fatal(err)
//	}
type ImageCache struct {
	mu      sync.RWMutex
	sources map[string]*source
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		sources: make(map[string]*source),
	}
}

// Load returns the binary grid for the image at path.
//
// Parameters:
//   - path: File path. PBM files (P1/P4) are detected by their magic number,
//     not their extension; anything else is decoded as a raster image with
//     EXIF auto-orientation.
//   - opts: Binarization options. Ignored for PBM input, which is already binary.
//
// Returns:
//   - *bitmap.Grid: A grid owned by the caller; modifying it does not affect the cache.
//   - error: Non-nil if the file cannot be read, is malformed, or opts are invalid.
func (c *ImageCache) Load(path string, opts BinarizeOptions) (*bitmap.Grid, error) {
	src, err := c.source(path)
	if err != nil {
		return nil, err
	}
	if src.grid != nil {
		return src.grid.Clone(), nil
	}
	return Binarize(src.img, opts)
}

// source returns the cached decoded file, reading it on first use.
func (c *ImageCache) source(path string) (*source, error) {
	c.mu.RLock()
	if src, ok := c.sources[path]; ok {
		c.mu.RUnlock()
		return src, nil
	}
	c.mu.RUnlock()

	src, err := readSource(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.sources[path] = src
	c.mu.Unlock()

	return src, nil
}

func readSource(path string) (*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	prefix, _ := br.Peek(2)
	if netpbm.Sniff(prefix) {
		g, err := netpbm.Decode(br)
		if err != nil {
			return nil, fmt.Errorf("failed to decode image: %w", err)
		}
		return &source{grid: g, format: "pbm"}, nil
	}

	img, err := imaging.Decode(br, imaging.AutoOrientation(true))
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Base(path))
		}
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &source{img: img, format: rasterFormat(path)}, nil
}

// rasterFormat names the format from the file extension.
func rasterFormat(path string) string {
	if f, err := imaging.FormatFromFilename(path); err == nil {
		return strings.ToLower(f.String())
	}
	if strings.EqualFold(filepath.Ext(path), ".webp") {
		return "webp"
	}
	return "unknown"
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.sources = make(map[string]*source)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.sources, path)
	c.mu.Unlock()
}

// Len returns the number of cached files.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.sources)
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is "pbm" for Netpbm input, otherwise the raster format detected
	// from the file extension ("png", "jpeg", "gif", "bmp", "tiff", "webp")
	// or "unknown".
	Format string `json:"format"`

	// ForegroundPixels is the number of 1 cells after binarization.
	ForegroundPixels int `json:"foreground_pixels"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// Parameters:
//   - cache: The image cache to use for loading. Must not be nil.
//   - path: Path to the image file.
//   - opts: Binarization options used to compute ForegroundPixels.
//
// Returns:
//   - *ImageInfo: Metadata about the image.
//   - error: Non-nil if the image cannot be loaded or the file cannot be stat'd.
func LoadImageInfo(cache *ImageCache, path string, opts BinarizeOptions) (*ImageInfo, error) {
	g, err := cache.Load(path, opts)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	src, err := cache.source(path)
	if err != nil {
		return nil, err
	}

	return &ImageInfo{
		Width:            g.Width(),
		Height:           g.Height(),
		Format:           src.format,
		ForegroundPixels: g.Count(),
		FileSizeBytes:    stat.Size(),
	}, nil
}

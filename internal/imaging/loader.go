package imaging

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/ironsheep/icon-factory-mcp/internal/iconkit"
)

// decoder decodes one image format from a reader.
type decoder func(io.Reader) (image.Image, error)

// decoders maps a lower-case file extension to its format name and decoder.
// TGA has no magic number, so formats are chosen by extension rather than
// by sniffing the content.
var decoders = map[string]struct {
	format string
	decode decoder
}{
	".png":  {"png", png.Decode},
	".jpg":  {"jpeg", jpeg.Decode},
	".jpeg": {"jpeg", jpeg.Decode},
	".gif":  {"gif", gif.Decode},
	".bmp":  {"bmp", bmp.Decode},
	".tif":  {"tiff", tiff.Decode},
	".tiff": {"tiff", tiff.Decode},
	".webp": {"webp", webp.Decode},
	".tga":  {"tga", tga.Decode},
}

// FormatForPath returns the format name for a file path based on its
// extension, or "unknown".
func FormatForPath(path string) string {
	if d, ok := decoders[strings.ToLower(filepath.Ext(path))]; ok {
		return d.format
	}
	return "unknown"
}

// ImageCache provides thread-safe caching of decoded source images.
//
// The cache stores decoded image.Image objects keyed by their file path. Once an
// image is loaded, subsequent Load() calls for the same path return the cached
// copy without disk I/O.
//
// # Memory Management
//
// A cache created with a positive limit evicts the oldest entry once the limit
// is reached. A limit of zero means unbounded; callers then rely on Evict() or
// Clear().
//
// # Example Usage
//
//	cache := imaging.NewImageCache(32)
//	img, err := cache.Load("/path/to/logo.png")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	grid := iconkit.FromImage(img)
type ImageCache struct {
	mu     sync.RWMutex
	limit  int
	order  []string
	images map[string]image.Image
}

// NewImageCache creates an empty cache holding at most limit images
// (0 = unbounded).
func NewImageCache(limit int) *ImageCache {
	if limit < 0 {
		limit = 0
	}
	return &ImageCache{
		limit:  limit,
		images: make(map[string]image.Image),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// Parameters:
//   - path: File path to the image. Supported formats are PNG, JPEG, GIF,
//     BMP, TIFF, WebP and TGA, selected by extension. Other extensions fall
//     back to content sniffing through the registered standard decoders.
//
// Returns the decoded image, or an error if the file cannot be opened or
// decoded.
func (c *ImageCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.images[path]; !ok {
		c.order = append(c.order, path)
	}
	c.images[path] = img
	for c.limit > 0 && len(c.order) > c.limit {
		delete(c.images, c.order[0])
		c.order = c.order[1:]
	}
	return img, nil
}

// LoadGrid loads an image and converts it into a pipeline grid.
func (c *ImageCache) LoadGrid(path string) (*iconkit.PixelGrid, error) {
	img, err := c.Load(path)
	if err != nil {
		return nil, err
	}
	return iconkit.FromImage(img), nil
}

// Len returns the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

// Clear removes all images from the cache.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]image.Image)
	c.order = nil
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path. Unknown paths
// are ignored.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.images[path]; !ok {
		return
	}
	delete(c.images, path)
	for i, p := range c.order {
		if p == path {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	if d, ok := decoders[strings.ToLower(filepath.Ext(path))]; ok {
		img, err := d.decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode %s image: %w", d.format, err)
		}
		return img, nil
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format chosen from the file extension, or "unknown".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the decoded color model carries alpha.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// # Color Depth Detection
//
// Color depth is determined by the Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
//
// Paletted images report HasAlpha when any palette entry is not opaque.
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch m := img.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	case *image.Paletted:
		for _, c := range m.Palette {
			if _, _, _, a := c.RGBA(); a != 0xffff {
				hasAlpha = true
				break
			}
		}
	}

	bounds := img.Bounds()
	return &ImageInfo{
		Width:         bounds.Dx(),
		Height:        bounds.Dy(),
		Format:        FormatForPath(path),
		ColorDepth:    colorDepth,
		HasAlpha:      hasAlpha,
		FileSizeBytes: stat.Size(),
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &DimensionsResult{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
	}, nil
}

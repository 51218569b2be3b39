package imaging

import (
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

// writeTestImage encodes img to a file named name in a temp dir and returns
// its path.
func writeTestImage(t *testing.T, name string, img image.Image, encode func(io.Writer, image.Image) error) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create file: %v", err)
	}
	defer f.Close()
	if err := encode(f, img); err != nil {
		t.Fatalf("failed to encode %s: %v", name, err)
	}
	return path
}

// createTestImage creates a solid PNG file and returns its path.
func createTestImage(t *testing.T, width, height int, c color.Color) string {
	t.Helper()
	return writeTestImage(t, "test-image.png", createInMemoryImage(width, height, c), png.Encode)
}

func TestNewImageCache(t *testing.T) {
	cache := NewImageCache(0)
	if cache == nil {
		t.Fatal("NewImageCache returned nil")
	}
	if cache.images == nil {
		t.Fatal("NewImageCache did not initialize images map")
	}
	if NewImageCache(-3).limit != 0 {
		t.Error("negative limit should mean unbounded")
	}
}

func TestImageCache_Load(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := createTestImage(t, 100, 100, color.RGBA{255, 0, 0, 255})

	img1, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	bounds := img1.Bounds()
	if bounds.Dx() != 100 || bounds.Dy() != 100 {
		t.Errorf("unexpected dimensions: got %dx%d, want 100x100", bounds.Dx(), bounds.Dy())
	}

	img2, err := cache.Load(imgPath)
	if err != nil {
		t.Fatalf("second Load failed: %v", err)
	}
	if img1 != img2 {
		t.Error("second Load did not return cached image")
	}
}

func TestImageCache_LoadFormats(t *testing.T) {
	src := createPatternImage(16, 12)

	tests := []struct {
		name   string
		encode func(io.Writer, image.Image) error
		format string
	}{
		{"logo.png", png.Encode, "png"},
		{"logo.JPG", func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }, "jpeg"},
		{"logo.gif", func(w io.Writer, m image.Image) error { return gif.Encode(w, m, nil) }, "gif"},
		{"logo.bmp", bmp.Encode, "bmp"},
		{"logo.tiff", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }, "tiff"},
		{"logo.webp", func(w io.Writer, m image.Image) error { return nativewebp.Encode(w, m, nil) }, "webp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeTestImage(t, tt.name, src, tt.encode)
			cache := NewImageCache(0)

			img, err := cache.Load(path)
			if err != nil {
				t.Fatalf("Load failed: %v", err)
			}
			if img.Bounds().Dx() != 16 || img.Bounds().Dy() != 12 {
				t.Errorf("dimensions: got %v, want 16x12", img.Bounds())
			}
			if got := FormatForPath(path); got != tt.format {
				t.Errorf("format: got %s, want %s", got, tt.format)
			}
		})
	}
}

func TestFormatForPath(t *testing.T) {
	tests := map[string]string{
		"a.png":  "png",
		"a.jpeg": "jpeg",
		"a.TGA":  "tga",
		"a.tif":  "tiff",
		"a.xyz":  "unknown",
		"noext":  "unknown",
	}
	for path, want := range tests {
		if got := FormatForPath(path); got != want {
			t.Errorf("FormatForPath(%q) = %s, want %s", path, got, want)
		}
	}
}

func TestImageCache_LoadGrid(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := createTestImage(t, 8, 4, color.NRGBA{10, 20, 30, 255})

	grid, err := cache.LoadGrid(imgPath)
	if err != nil {
		t.Fatalf("LoadGrid failed: %v", err)
	}
	if grid.Width() != 8 || grid.Height() != 4 {
		t.Errorf("grid size: got %dx%d, want 8x4", grid.Width(), grid.Height())
	}
	if px := grid.At(3, 2); px.R != 10 || px.G != 20 || px.B != 30 || px.A != 255 {
		t.Errorf("pixel: got %+v", px)
	}
}

func TestImageCache_Load_NonExistent(t *testing.T) {
	cache := NewImageCache(0)
	if _, err := cache.Load("/nonexistent/path/to/image.png"); err == nil {
		t.Error("Load should fail for non-existent file")
	}
}

func TestImageCache_Load_InvalidImage(t *testing.T) {
	cache := NewImageCache(0)
	path := filepath.Join(t.TempDir(), "invalid-image.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}

	if _, err := cache.Load(path); err == nil {
		t.Error("Load should fail for invalid image data")
	}
}

func TestImageCache_Limit(t *testing.T) {
	cache := NewImageCache(2)
	dir := t.TempDir()
	paths := make([]string, 3)
	for i := range paths {
		paths[i] = filepath.Join(dir, string(rune('a'+i))+".png")
		f, err := os.Create(paths[i])
		if err != nil {
			t.Fatalf("failed to create file: %v", err)
		}
		png.Encode(f, createInMemoryImage(4, 4, color.White))
		f.Close()
	}

	for _, p := range paths {
		if _, err := cache.Load(p); err != nil {
			t.Fatalf("Load failed: %v", err)
		}
	}
	if cache.Len() != 2 {
		t.Fatalf("Len: got %d, want 2", cache.Len())
	}
	cache.mu.RLock()
	_, oldest := cache.images[paths[0]]
	cache.mu.RUnlock()
	if oldest {
		t.Error("oldest image should have been evicted")
	}
}

func TestImageCache_Clear(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 255, 0, 255})

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Clear()

	if cache.Len() != 0 {
		t.Errorf("Clear did not empty cache: %d images remain", cache.Len())
	}
}

func TestImageCache_Evict(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := createTestImage(t, 50, 50, color.RGBA{0, 0, 255, 255})

	if _, err := cache.Load(imgPath); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	cache.Evict(imgPath)

	cache.mu.RLock()
	_, exists := cache.images[imgPath]
	order := len(cache.order)
	cache.mu.RUnlock()

	if exists || order != 0 {
		t.Error("Evict did not remove image from cache")
	}

	// Unknown paths are ignored.
	cache.Evict("/nonexistent/path")
}

func TestImageCache_ConcurrentAccess(t *testing.T) {
	cache := NewImageCache(1)
	imgPath := createTestImage(t, 50, 50, color.RGBA{128, 128, 128, 255})

	var wg sync.WaitGroup
	errs := make(chan error, 100)

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(imgPath); err != nil {
				errs <- err
			}
		}()
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent Load error: %v", err)
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestLoadImageInfo(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := createTestImage(t, 200, 150, color.RGBA{255, 128, 64, 255})

	info, err := LoadImageInfo(cache, imgPath)
	if err != nil {
		t.Fatalf("LoadImageInfo failed: %v", err)
	}

	if info.Width != 200 || info.Height != 150 {
		t.Errorf("size: got %dx%d, want 200x150", info.Width, info.Height)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %s, want png", info.Format)
	}
	if info.FileSizeBytes <= 0 {
		t.Error("FileSizeBytes should be positive")
	}
}

func TestLoadImageInfo_NonExistent(t *testing.T) {
	if _, err := LoadImageInfo(NewImageCache(0), "/nonexistent/image.png"); err == nil {
		t.Error("LoadImageInfo should fail for non-existent file")
	}
}

func TestGetDimensions(t *testing.T) {
	cache := NewImageCache(0)
	imgPath := createTestImage(t, 300, 200, color.RGBA{100, 100, 100, 255})

	dims, err := GetDimensions(cache, imgPath)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 300 || dims.Height != 200 {
		t.Errorf("dimensions: got %dx%d, want 300x200", dims.Width, dims.Height)
	}
}

func TestGetDimensions_NonExistent(t *testing.T) {
	if _, err := GetDimensions(NewImageCache(0), "/nonexistent/image.png"); err == nil {
		t.Error("GetDimensions should fail for non-existent file")
	}
}

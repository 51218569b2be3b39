package imaging

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	colorful "github.com/lucasb-eyer/go-colorful"

	"github.com/ironsheep/icon-factory-mcp/internal/iconkit"
)

// RGBColor represents an RGB color with 8-bit components.
type RGBColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
}

// RGBAColor represents a non-premultiplied RGBA color with 8-bit components.
//
// The alpha component represents opacity:
//   - 0 = fully transparent
//   - 255 = fully opaque
type RGBAColor struct {
	R uint8 `json:"r"` // Red component (0-255)
	G uint8 `json:"g"` // Green component (0-255)
	B uint8 `json:"b"` // Blue component (0-255)
	A uint8 `json:"a"` // Alpha/opacity component (0-255)
}

// HSLColor represents a color in HSL (Hue, Saturation, Lightness) color space.
type HSLColor struct {
	H int `json:"h"` // Hue: 0-360 degrees (0=red, 120=green, 240=blue)
	S int `json:"s"` // Saturation: 0-100 percent (0=gray, 100=vivid)
	L int `json:"l"` // Lightness: 0-100 percent (0=black, 50=normal, 100=white)
}

// ColorResult contains a color value in multiple representations.
//
// Hex is the form accepted as a masking reference by the icon tools.
type ColorResult struct {
	Hex  string    `json:"hex"`  // Hex format "#RRGGBB" (no alpha)
	RGB  RGBColor  `json:"rgb"`  // RGB components
	RGBA RGBAColor `json:"rgba"` // RGBA components with alpha
	HSL  HSLColor  `json:"hsl"`  // HSL representation
}

// NewColorResult builds every representation of a pipeline color.
func NewColorResult(c iconkit.Color) ColorResult {
	return ColorResult{
		Hex:  c.Hex(),
		RGB:  RGBColor{R: c.R, G: c.G, B: c.B},
		RGBA: RGBAColor{R: c.R, G: c.G, B: c.B, A: c.A},
		HSL:  rgbToHSL(c.R, c.G, c.B),
	}
}

// SampleColor extracts the color value at a specific pixel coordinate.
//
// Parameters:
//   - img: The source image to sample from.
//   - x: X coordinate (0-based, 0 = leftmost pixel).
//   - y: Y coordinate (0-based, 0 = topmost pixel).
//
// Returns the color at (x, y), or an error if the coordinates are outside
// the image bounds.
//
// # Color Conversion
//
// The pixel is converted to non-premultiplied 8-bit RGBA, so a transparent
// pixel still reports the RGB it carries. That is the value the color
// masker compares against.
func SampleColor(img image.Image, x, y int) (*ColorResult, error) {
	bounds := img.Bounds()
	if x < bounds.Min.X || x >= bounds.Max.X || y < bounds.Min.Y || y >= bounds.Max.Y {
		return nil, fmt.Errorf("coordinates (%d,%d) outside image bounds", x, y)
	}

	result := NewColorResult(pixelAt(img, x, y))
	return &result, nil
}

// LabeledPoint represents a pixel coordinate with an optional descriptive label.
type LabeledPoint struct {
	X     int    // X coordinate (0-based)
	Y     int    // Y coordinate (0-based)
	Label string // Optional descriptive label for this point
}

// LabeledColorResult combines a color sample with its location and optional label.
type LabeledColorResult struct {
	Label string      `json:"label,omitempty"` // Optional label (empty if not provided)
	X     int         `json:"x"`               // X coordinate that was sampled
	Y     int         `json:"y"`               // Y coordinate that was sampled
	Color ColorResult `json:"color"`           // The color at this location
}

// MultiColorResult contains color samples from multiple points, in input order.
type MultiColorResult struct {
	Samples []LabeledColorResult `json:"samples"`
}

// SampleColorsMulti extracts colors at multiple pixel coordinates in a single call.
//
// On error no partial results are returned.
func SampleColorsMulti(img image.Image, points []LabeledPoint) (*MultiColorResult, error) {
	results := make([]LabeledColorResult, 0, len(points))

	for _, p := range points {
		c, err := SampleColor(img, p.X, p.Y)
		if err != nil {
			return nil, fmt.Errorf("failed to sample point (%d,%d): %w", p.X, p.Y, err)
		}
		results = append(results, LabeledColorResult{
			Label: p.Label,
			X:     p.X,
			Y:     p.Y,
			Color: *c,
		})
	}

	return &MultiColorResult{Samples: results}, nil
}

// BackgroundResult reports the detected background color and how many of the
// four corners agree on it.
type BackgroundResult struct {
	Color   ColorResult `json:"color"`
	Corners int         `json:"matching_corners"`
}

// BackgroundColor guesses the background color of an icon source from its
// corners.
//
// The four corner pixels are read as RGB (alpha ignored) and the most common
// one wins. Ties go to the earliest corner in the order top-left, top-right,
// bottom-left, bottom-right, so a source whose corners all differ reports
// its top-left color.
//
// Returns an error for an empty image.
func BackgroundColor(img image.Image) (*BackgroundResult, error) {
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("image has no pixels")
	}

	corners := []image.Point{
		{b.Min.X, b.Min.Y},
		{b.Max.X - 1, b.Min.Y},
		{b.Min.X, b.Max.Y - 1},
		{b.Max.X - 1, b.Max.Y - 1},
	}
	colors := make([]iconkit.Color, len(corners))
	for i, p := range corners {
		c := pixelAt(img, p.X, p.Y)
		colors[i] = iconkit.RGB(c.R, c.G, c.B)
	}

	best, bestCount := 0, 0
	for i, c := range colors {
		n := 0
		for _, o := range colors {
			if o == c {
				n++
			}
		}
		if n > bestCount {
			best, bestCount = i, n
		}
	}

	return &BackgroundResult{Color: NewColorResult(colors[best]), Corners: bestCount}, nil
}

// Region represents a rectangular region within an image.
//
// (X1, Y1) is inclusive, (X2, Y2) is exclusive.
type Region struct {
	X1 int
	Y1 int
	X2 int
	Y2 int
}

// ColorFrequency represents a color and its occurrence frequency in an image.
type ColorFrequency struct {
	Hex        string   `json:"hex"`        // Hex color "#RRGGBB" (quantized)
	Percentage float64  `json:"percentage"` // Percentage of counted pixels (0-100)
	RGB        RGBColor `json:"rgb"`        // RGB components (quantized)
}

// DominantColorsResult contains the most frequently occurring colors, most
// common first.
type DominantColorsResult struct {
	Colors []ColorFrequency `json:"colors"`
}

// DominantColors extracts the N most common visible colors from an image or
// region.
//
// Fully transparent pixels are skipped, so an already-masked icon reports
// only its foreground palette.
//
// # Color Quantization
//
// Each RGB component is rounded down to a multiple of 16 before counting:
//
//	quantized = (original / 16) * 16
//
// Ties in frequency are ordered by hex value so results are stable.
func DominantColors(img image.Image, count int, region *Region) (*DominantColorsResult, error) {
	bounds := img.Bounds()
	if region != nil {
		bounds = image.Rect(region.X1, region.Y1, region.X2, region.Y2).Intersect(bounds)
	}

	counts := make(map[RGBColor]int)
	total := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := pixelAt(img, x, y)
			if c.A == 0 {
				continue
			}
			counts[RGBColor{R: c.R / 16 * 16, G: c.G / 16 * 16, B: c.B / 16 * 16}]++
			total++
		}
	}

	colors := make([]ColorFrequency, 0, len(counts))
	for rgb, n := range counts {
		colors = append(colors, ColorFrequency{
			Hex:        iconkit.RGB(rgb.R, rgb.G, rgb.B).Hex(),
			Percentage: float64(n) / float64(total) * 100,
			RGB:        rgb,
		})
	}

	sort.Slice(colors, func(i, j int) bool {
		if colors[i].Percentage != colors[j].Percentage {
			return colors[i].Percentage > colors[j].Percentage
		}
		return colors[i].Hex < colors[j].Hex
	})

	if count >= 0 && len(colors) > count {
		colors = colors[:count]
	}

	return &DominantColorsResult{Colors: colors}, nil
}

// pixelAt reads a pixel as non-premultiplied 8-bit RGBA.
func pixelAt(img image.Image, x, y int) iconkit.Color {
	c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
	return iconkit.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// rgbToHSL converts 8-bit RGB values to HSL with integer degrees and
// percentages, truncating toward zero.
func rgbToHSL(r, g, b uint8) HSLColor {
	h, s, l := colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}.Hsl()
	return HSLColor{
		H: int(h),
		S: int(s * 100),
		L: int(l * 100),
	}
}

package imaging

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/disintegration/imaging"
	"github.com/muesli/smartcrop"
	"golang.org/x/sync/errgroup"
)

// StandardSizes is the default icon size set: Windows ICO (16, 32, 48,
// 256), macOS ICNS (16-1024) and the common 100px web size, ascending.
var StandardSizes = []int{16, 32, 48, 64, 100, 128, 256, 512, 1024}

// MaxIconSize bounds the side of a composed square.
const MaxIconSize = 4096

// FitMode selects how a non-square image is placed on a square canvas.
type FitMode string

const (
	// FitContain scales the whole image into the square, leaving
	// transparent bars.
	FitContain FitMode = "contain"
	// FitCover fills the square, cropping the overflow.
	FitCover FitMode = "cover"
)

// ParseFitMode maps a tool argument to a FitMode. Empty means contain.
func ParseFitMode(s string) (FitMode, error) {
	switch FitMode(s) {
	case "", FitContain:
		return FitContain, nil
	case FitCover:
		return FitCover, nil
	default:
		return "", fmt.Errorf("unknown fit mode: %s (want contain or cover)", s)
	}
}

// Compose places img on a transparent size×size canvas.
//
// Parameters:
//   - img: The source image, usually a pipeline result.
//   - size: Canvas side in pixels (1-4096).
//   - scale: Zoom factor applied after fitting. 1.0 fills the fit exactly,
//     0.9 leaves a 10% margin, values above 1 overflow and are clipped.
//   - fit: FitContain or FitCover.
//
// # Cover Mode
//
// For a non-square source, cover mode first asks smartcrop for the most
// interesting square region instead of blindly taking the center, then
// scales that square to the canvas.
func Compose(img image.Image, size int, scale float64, fit FitMode) (*image.NRGBA, error) {
	if size < 1 || size > MaxIconSize {
		return nil, fmt.Errorf("size %d out of range [1,%d]", size, MaxIconSize)
	}
	if scale <= 0 {
		return nil, fmt.Errorf("scale must be positive, got %g", scale)
	}
	canvas := imaging.New(size, size, color.NRGBA{})
	b := img.Bounds()
	if b.Empty() {
		return canvas, nil
	}

	src := img
	if fit == FitCover && b.Dx() != b.Dy() {
		src = squareCrop(img)
	}

	sb := src.Bounds()
	ratio := min(float64(size)/float64(sb.Dx()), float64(size)/float64(sb.Dy())) * scale
	w := max(1, int(math.Round(float64(sb.Dx())*ratio)))
	h := max(1, int(math.Round(float64(sb.Dy())*ratio)))
	resized := imaging.Resize(src, w, h, imaging.Lanczos)

	return imaging.PasteCenter(canvas, resized), nil
}

// squareCrop returns the best square region of img according to smartcrop,
// falling back to the center square if the analyzer fails.
func squareCrop(img image.Image) image.Image {
	b := img.Bounds()
	side := min(b.Dx(), b.Dy())

	analyzer := smartcrop.NewAnalyzer(lanczosResizer{})
	r, err := analyzer.FindBestCrop(img, side, side)
	if err != nil || r.Dx() <= 0 || r.Dy() <= 0 {
		x := b.Min.X + (b.Dx()-side)/2
		y := b.Min.Y + (b.Dy()-side)/2
		r = image.Rect(x, y, x+side, y+side)
	}
	// smartcrop may round the region off square by a pixel.
	if s := min(r.Dx(), r.Dy()); r.Dx() != r.Dy() {
		r.Max = r.Min.Add(image.Pt(s, s))
	}
	return imaging.Crop(img, r)
}

// lanczosResizer implements the smartcrop resizer on top of imaging.
type lanczosResizer struct{}

func (lanczosResizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), imaging.Lanczos)
}

// SizedIcon is one rendered icon size.
type SizedIcon struct {
	Size  int           `json:"size"`
	Image *EncodedImage `json:"image"`
}

// IconSizes renders img at each requested size and encodes the results.
//
// Parameters:
//   - img: The source, normally the output of the pipeline.
//   - sizes: Square sizes to render. Nil or empty means StandardSizes.
//   - scale, fit: Passed to Compose.
//   - format: "png" or "webp".
//
// Sizes are rendered concurrently and the result keeps the order of sizes.
// If any size fails, the first error is returned without a partial set.
func IconSizes(img image.Image, sizes []int, scale float64, fit FitMode, format string) ([]SizedIcon, error) {
	if len(sizes) == 0 {
		sizes = StandardSizes
	}
	out := make([]SizedIcon, len(sizes))

	var g errgroup.Group
	for i, size := range sizes {
		g.Go(func() error {
			composed, err := Compose(img, size, scale, fit)
			if err != nil {
				return fmt.Errorf("compose %dpx: %w", size, err)
			}
			enc, err := EncodeImage(composed, format)
			if err != nil {
				return fmt.Errorf("encode %dpx: %w", size, err)
			}
			out[i] = SizedIcon{Size: size, Image: enc}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

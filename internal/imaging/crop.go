package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"

	"github.com/ironsheep/icon-factory-mcp/internal/iconkit"
)

// Output formats accepted by EncodeImage.
const (
	FormatPNG  = "png"
	FormatWebP = "webp"
)

// EncodedImage is an image serialized for transport in a tool response.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodeImage serializes img as PNG or lossless WebP and base64-encodes it.
// An empty format means PNG.
func EncodeImage(img image.Image, format string) (*EncodedImage, error) {
	var buf bytes.Buffer
	var mime string

	switch format {
	case "", FormatPNG:
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("failed to encode png: %w", err)
		}
		mime = "image/png"
	case FormatWebP:
		if err := nativewebp.Encode(&buf, img, nil); err != nil {
			return nil, fmt.Errorf("failed to encode webp: %w", err)
		}
		mime = "image/webp"
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    mime,
	}, nil
}

// CropToBox cuts box out of img, optionally rescaling the result.
//
// The box must lie inside the image and have positive area. A scale other
// than 1 (and greater than 0) resizes with Lanczos resampling.
func CropToBox(img image.Image, box iconkit.BoundingBox, scale float64) (*image.NRGBA, error) {
	bounds := img.Bounds()
	r := box.Rect().Add(bounds.Min)

	if box.Empty() {
		return nil, fmt.Errorf("invalid crop region: width and height must be positive")
	}
	if !r.In(bounds) {
		return nil, fmt.Errorf("crop region (%d,%d)-(%d,%d) outside image bounds (%d,%d)-(%d,%d)",
			r.Min.X, r.Min.Y, r.Max.X, r.Max.Y, bounds.Min.X, bounds.Min.Y, bounds.Max.X, bounds.Max.Y)
	}

	cropped := imaging.Crop(img, r)
	if scale != 1.0 && scale > 0 {
		w := max(1, int(float64(cropped.Bounds().Dx())*scale))
		h := max(1, int(float64(cropped.Bounds().Dy())*scale))
		cropped = imaging.Resize(cropped, w, h, imaging.Lanczos)
	}
	return cropped, nil
}

// CropInfo summarizes how much of an image a crop box discards.
type CropInfo struct {
	OriginalWidth  int                 `json:"original_width"`
	OriginalHeight int                 `json:"original_height"`
	Box            iconkit.BoundingBox `json:"box"`
	CroppedWidth   int                 `json:"cropped_width"`
	CroppedHeight  int                 `json:"cropped_height"`
	WastePercent   float64             `json:"waste_percent"`
}

// NewCropInfo computes crop statistics for a box inside a width×height
// image. An empty box means "nothing to crop" and reports the full image
// with zero waste.
func NewCropInfo(width, height int, box iconkit.BoundingBox) CropInfo {
	info := CropInfo{OriginalWidth: width, OriginalHeight: height}
	if box.Empty() {
		info.Box = iconkit.BoundingBox{Width: width, Height: height}
		info.CroppedWidth, info.CroppedHeight = width, height
		return info
	}
	info.Box = box
	info.CroppedWidth, info.CroppedHeight = box.Width, box.Height
	if area := width * height; area > 0 {
		info.WastePercent = float64(area-box.Width*box.Height) / float64(area) * 100
	}
	return info
}

package iconkit

import (
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// PixelGrid is a width×height array of non-premultiplied 8-bit RGBA pixels.
//
// The grid owns its pixel storage. Every stage in this package reads a grid
// and returns a fresh one; no stage writes into the grid it was given.
type PixelGrid struct {
	img *image.NRGBA
}

// NewPixelGrid allocates a fully transparent grid.
func NewPixelGrid(width, height int) *PixelGrid {
	return &PixelGrid{img: image.NewNRGBA(image.Rect(0, 0, width, height))}
}

// FromImage copies any decoded image into a new grid with its origin at (0,0).
//
// The copy goes through imaging.Clone, which converts every color model
// (paletted, YCbCr, 16-bit, premultiplied) into non-premultiplied NRGBA.
func FromImage(img image.Image) *PixelGrid {
	if img == nil {
		return &PixelGrid{img: image.NewNRGBA(image.Rectangle{})}
	}
	return &PixelGrid{img: imaging.Clone(img)}
}

// Width returns the grid width in pixels.
func (g *PixelGrid) Width() int { return g.img.Rect.Dx() }

// Height returns the grid height in pixels.
func (g *PixelGrid) Height() int { return g.img.Rect.Dy() }

// Empty reports whether the grid has zero area.
func (g *PixelGrid) Empty() bool { return g == nil || g.Width() <= 0 || g.Height() <= 0 }

// Image returns the backing image. Callers must treat it as read-only.
func (g *PixelGrid) Image() *image.NRGBA { return g.img }

// Clone returns a deep copy of the grid.
func (g *PixelGrid) Clone() *PixelGrid {
	dst := image.NewNRGBA(g.img.Rect)
	copy(dst.Pix, g.img.Pix)
	return &PixelGrid{img: dst}
}

// At returns the pixel at (x, y). Coordinates must be inside the grid.
func (g *PixelGrid) At(x, y int) Color {
	i := g.img.PixOffset(x, y)
	p := g.img.Pix[i : i+4 : i+4]
	return Color{R: p[0], G: p[1], B: p[2], A: p[3]}
}

// Set writes the pixel at (x, y). Only stages that own g may call it.
func (g *PixelGrid) Set(x, y int, c Color) {
	i := g.img.PixOffset(x, y)
	p := g.img.Pix[i : i+4 : i+4]
	p[0], p[1], p[2], p[3] = c.R, c.G, c.B, c.A
}

// Alpha extracts the alpha channel as a standalone mask.
func (g *PixelGrid) Alpha() *AlphaMask {
	w, h := g.Width(), g.Height()
	m := NewAlphaMask(w, h)
	for y := 0; y < h; y++ {
		src := g.img.Pix[y*g.img.Stride:]
		dst := m.img.Pix[y*m.img.Stride:]
		for x := 0; x < w; x++ {
			dst[x] = src[x*4+3]
		}
	}
	return m
}

// WithAlpha returns a copy of g whose alpha channel is replaced by m.
func (g *PixelGrid) WithAlpha(m *AlphaMask) (*PixelGrid, error) {
	if m.Width() != g.Width() || m.Height() != g.Height() {
		return nil, fmt.Errorf("alpha mask %dx%d does not match grid %dx%d",
			m.Width(), m.Height(), g.Width(), g.Height())
	}
	out := g.Clone()
	w, h := g.Width(), g.Height()
	for y := 0; y < h; y++ {
		dst := out.img.Pix[y*out.img.Stride:]
		src := m.img.Pix[y*m.img.Stride:]
		for x := 0; x < w; x++ {
			dst[x*4+3] = src[x]
		}
	}
	return out, nil
}

// Crop returns a copy of the region described by box.
//
// The box is clamped to the grid first. An empty box yields an unchanged copy,
// since "nothing to crop" is not an error.
func (g *PixelGrid) Crop(box BoundingBox) *PixelGrid {
	r := box.Rect().Intersect(g.img.Rect)
	if r.Empty() {
		return g.Clone()
	}
	return &PixelGrid{img: imaging.Crop(g.img, r)}
}

// AlphaMask is a single-channel 0-255 field aligned 1:1 with a grid's alpha.
type AlphaMask struct {
	img *image.Gray
}

// NewAlphaMask allocates a fully transparent mask.
func NewAlphaMask(width, height int) *AlphaMask {
	return &AlphaMask{img: image.NewGray(image.Rect(0, 0, width, height))}
}

// Width returns the mask width in pixels.
func (m *AlphaMask) Width() int { return m.img.Rect.Dx() }

// Height returns the mask height in pixels.
func (m *AlphaMask) Height() int { return m.img.Rect.Dy() }

// At returns the mask value at (x, y), or 0 outside the mask.
func (m *AlphaMask) At(x, y int) uint8 {
	if x < 0 || y < 0 || x >= m.Width() || y >= m.Height() {
		return 0
	}
	return m.img.Pix[y*m.img.Stride+x]
}

// Set writes the mask value at (x, y).
func (m *AlphaMask) Set(x, y int, v uint8) {
	m.img.Pix[y*m.img.Stride+x] = v
}

// Clone returns a deep copy of the mask.
func (m *AlphaMask) Clone() *AlphaMask {
	dst := image.NewGray(m.img.Rect)
	copy(dst.Pix, m.img.Pix)
	return &AlphaMask{img: dst}
}

// Equal reports whether two masks have identical dimensions and values.
func (m *AlphaMask) Equal(o *AlphaMask) bool {
	if m.Width() != o.Width() || m.Height() != o.Height() {
		return false
	}
	for y := 0; y < m.Height(); y++ {
		for x := 0; x < m.Width(); x++ {
			if m.At(x, y) != o.At(x, y) {
				return false
			}
		}
	}
	return true
}

// Bytes returns the mask values in row-major order.
func (m *AlphaMask) Bytes() []byte {
	w, h := m.Width(), m.Height()
	out := make([]byte, 0, w*h)
	for y := 0; y < h; y++ {
		out = append(out, m.img.Pix[y*m.img.Stride:y*m.img.Stride+w]...)
	}
	return out
}

// Image returns the backing grayscale image. Callers must treat it as read-only.
func (m *AlphaMask) Image() *image.Gray { return m.img }

// padded returns the mask surrounded by pad transparent pixels on every side,
// as an RGBA image with R=G=B=value. The bild filters extend edges when they
// reach outside an image; padding with zeros makes out-of-bounds read as
// transparent instead.
func (m *AlphaMask) padded(pad int) *image.RGBA {
	return m.paddedBox(BoundingBox{Width: m.Width(), Height: m.Height()}, pad)
}

// paddedBox is padded restricted to the region box, which must lie inside
// the mask.
func (m *AlphaMask) paddedBox(box BoundingBox, pad int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, box.Width+2*pad, box.Height+2*pad))
	for i := 3; i < len(dst.Pix); i += 4 {
		dst.Pix[i] = 0xff
	}
	for y := 0; y < box.Height; y++ {
		for x := 0; x < box.Width; x++ {
			v := m.img.Pix[(box.Y+y)*m.img.Stride+box.X+x]
			dst.SetRGBA(x+pad, y+pad, color.RGBA{R: v, G: v, B: v, A: 0xff})
		}
	}
	return dst
}

// contentBox returns the tightest box around the non-zero values, or the
// empty box when the mask is all zero.
func (m *AlphaMask) contentBox() BoundingBox {
	w, h := m.Width(), m.Height()
	x0, y0, x1, y1 := w, h, -1, -1
	for y := 0; y < h; y++ {
		row := m.img.Pix[y*m.img.Stride : y*m.img.Stride+w]
		for x, v := range row {
			if v == 0 {
				continue
			}
			x0, x1 = min(x0, x), max(x1, x)
			y0, y1 = min(y0, y), max(y1, y)
		}
	}
	if x1 < 0 {
		return BoundingBox{}
	}
	return BoundingBox{X: x0, Y: y0, Width: x1 - x0 + 1, Height: y1 - y0 + 1}
}

// maskFromChannel reads the red channel of img inside the window starting at
// (pad, pad) and returns it as a w×h mask.
func maskFromChannel(img *image.RGBA, pad, w, h int) *AlphaMask {
	m := NewAlphaMask(w, h)
	for y := 0; y < h; y++ {
		row := img.Pix[(y+pad)*img.Stride:]
		for x := 0; x < w; x++ {
			m.img.Pix[y*m.img.Stride+x] = row[(x+pad)*4]
		}
	}
	return m
}

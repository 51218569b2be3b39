package iconkit

import (
	"image"
	"image/color"

	"github.com/anthonynsimon/bild/blur"
	"github.com/disintegration/imaging"
)

// DefaultGlowRadius is the blur radius AddGlow uses when none is given.
const DefaultGlowRadius = 3.0

// MaxGlowRadius bounds the glow blur radius.
const MaxGlowRadius = 32.0

// Glow describes a soft halo drawn behind the content of a grid.
type Glow struct {
	// Color is the halo color. A scales the halo opacity; 255 uses the
	// blurred alpha as is.
	Color Color

	// Radius is the Gaussian radius of the halo. Zero means DefaultGlowRadius.
	Radius float64
}

// AddGlow composites a blurred copy of g's silhouette in glow.Color behind g.
// The result has the same size as g, so a halo that spreads past the grid
// edge is clipped. g is not modified.
func AddGlow(g *PixelGrid, glow Glow) *PixelGrid {
	if g.Empty() {
		return g.Clone()
	}
	radius := glow.Radius
	if radius <= 0 {
		radius = DefaultGlowRadius
	}
	w, h := g.Width(), g.Height()
	halo := maskFromChannel(blur.Gaussian(g.Alpha().padded(0), radius), 0, w, h)

	layer := image.NewNRGBA(image.Rect(0, 0, w, h))
	c := glow.Color
	forRows(h, func(start, end int) {
		for y := start; y < end; y++ {
			row := layer.Pix[y*layer.Stride:]
			for x := 0; x < w; x++ {
				a := (int(halo.At(x, y))*int(c.A) + 127) / 255
				p := row[x*4 : x*4+4 : x*4+4]
				p[0], p[1], p[2], p[3] = c.R, c.G, c.B, uint8(a)
			}
		}
	})
	return &PixelGrid{img: imaging.Overlay(layer, g.img, image.Point{}, 1.0)}
}

// AddBackground flattens g onto a solid bg. With an opaque bg every output
// pixel is opaque. g is not modified.
func AddBackground(g *PixelGrid, bg Color) *PixelGrid {
	if g.Empty() {
		return g.Clone()
	}
	canvas := imaging.New(g.Width(), g.Height(), color.NRGBA{R: bg.R, G: bg.G, B: bg.B, A: bg.A})
	return &PixelGrid{img: imaging.Overlay(canvas, g.img, image.Point{}, 1.0)}
}

package iconkit

import (
	"image"

	"github.com/anthonynsimon/bild/effect"
)

// AdjustMask grows or shrinks the opaque area of a mask.
//
// Parameters:
//   - m: The source mask. It is not modified.
//   - radius: Positive values dilate by radius pixels, negative values erode
//     by |radius| pixels, zero returns an equal copy.
//
// Returns a new mask of the same size.
//
// # Structuring Element
//
// The element is the (2r+1)×(2r+1) square used by bild's spatial filters:
// dilation takes the maximum over that window, erosion the minimum. Output
// values are always in [0,255] because they are picked from the input.
//
// # Borders
//
// Neighbours outside the grid count as fully transparent. The mask is padded
// with zeros before filtering and the padding is cut away afterwards, so the
// image never wraps and edge pixels erode inward from the boundary.
func AdjustMask(m *AlphaMask, radius int) *AlphaMask {
	if radius == 0 {
		return m.Clone()
	}
	r := radius
	if r < 0 {
		r = -r
	}

	src := m.padded(r + 1)
	var out *image.RGBA
	if radius > 0 {
		out = effect.Dilate(src, float64(r))
	} else {
		out = effect.Erode(src, float64(r))
	}
	return maskFromChannel(out, r+1, m.Width(), m.Height())
}

// AdjustGrid applies AdjustMask to the alpha channel of g. RGB is unchanged.
func AdjustGrid(g *PixelGrid, radius int) (*PixelGrid, error) {
	if radius == 0 {
		return g.Clone(), nil
	}
	return g.WithAlpha(AdjustMask(g.Alpha(), radius))
}

package iconkit

var (
	white = RGB(255, 255, 255)
	black = RGB(0, 0, 0)
	red   = RGB(200, 30, 30)
)

// solidGrid returns a w×h grid filled with c.
func solidGrid(w, h int, c Color) *PixelGrid {
	g := NewPixelGrid(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			g.Set(x, y, c)
		}
	}
	return g
}

// fillRect paints the box [x, x+w) × [y, y+h) with c.
func fillRect(g *PixelGrid, box BoundingBox, c Color) {
	for y := box.Y; y < box.Y+box.Height; y++ {
		for x := box.X; x < box.X+box.Width; x++ {
			g.Set(x, y, c)
		}
	}
}

// maskFrom builds a mask from a predicate over coordinates.
func maskFrom(w, h int, fn func(x, y int) uint8) *AlphaMask {
	m := NewAlphaMask(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			m.Set(x, y, fn(x, y))
		}
	}
	return m
}

// squareMask returns a w×h mask with an opaque box.
func squareMask(w, h int, box BoundingBox) *AlphaMask {
	return maskFrom(w, h, func(x, y int) uint8 {
		if x >= box.X && x < box.X+box.Width && y >= box.Y && y < box.Y+box.Height {
			return 0xff
		}
		return 0
	})
}

// noisyMask is a deterministic mask with every alpha level represented.
func noisyMask(w, h int) *AlphaMask {
	return maskFrom(w, h, func(x, y int) uint8 {
		return uint8((x*37 + y*91 + x*y*13) % 256)
	})
}

package iconkit

// MaskWhole removes every pixel within tolerance of any of the references,
// wherever it sits in the image. Removed pixels get alpha 0; all others keep
// their original alpha. RGB values are left untouched.
func MaskWhole(g *PixelGrid, tolerance int, refs ...Color) *PixelGrid {
	out := g.Clone()
	if len(refs) == 0 || out.Empty() {
		return out
	}
	w := out.Width()
	forRows(out.Height(), func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				px := out.At(x, y)
				for _, ref := range refs {
					if Matches(px, ref, tolerance) {
						px.A = 0
						out.Set(x, y, px)
						break
					}
				}
			}
		}
	})
	return out
}

// MaskBorder removes only the pixels the flood fill reaches from the border
// (Magic Wand behaviour). A pixel that matches the reference but is enclosed
// by non-matching pixels is preserved.
func MaskBorder(g *PixelGrid, reference Color, tolerance int) *PixelGrid {
	out := g.Clone()
	visited := FloodFill(g, reference, tolerance)
	if visited.Len() == 0 {
		return out
	}
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			if visited.Contains(x, y) {
				px := out.At(x, y)
				px.A = 0
				out.Set(x, y, px)
			}
		}
	}
	return out
}

// BinaryAlpha snaps every alpha to 0 or 255: values above threshold become
// fully opaque. Some icon consumers render partial alpha poorly.
func BinaryAlpha(g *PixelGrid, threshold uint8) *PixelGrid {
	out := g.Clone()
	w := out.Width()
	forRows(out.Height(), func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				px := out.At(x, y)
				if px.A > threshold {
					px.A = 0xff
				} else {
					px.A = 0
				}
				out.Set(x, y, px)
			}
		}
	})
	return out
}

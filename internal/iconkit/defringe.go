package iconkit

import "math"

// Defringe pulls background tint out of semi-transparent edge pixels.
//
// Only pixels with 0 < alpha < 255 are touched. Each RGB channel is scaled by
// (alpha/255)^(1+strength). With strength 0 this is attenuation proportional
// to (255-alpha)/255: a pixel at half alpha keeps half its color. Larger
// strengths darken faint pixels faster. Fully opaque and fully transparent
// pixels are copied unchanged.
//
// The transform has no neighbour dependence, so rows are processed in
// parallel.
func Defringe(g *PixelGrid, strength float64) *PixelGrid {
	out := g.Clone()
	exp := 1 + strength
	w := out.Width()
	forRows(out.Height(), func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				px := out.At(x, y)
				if px.A == 0 || px.A == 0xff {
					continue
				}
				f := math.Pow(float64(px.A)/255, exp)
				px.R = scaleChannel(px.R, f)
				px.G = scaleChannel(px.G, f)
				px.B = scaleChannel(px.B, f)
				out.Set(x, y, px)
			}
		}
	})
	return out
}

// RemoveMatte un-blends a known matte color from semi-transparent pixels.
//
// A pixel composited over the matte satisfies c = fg·a + matte·(1-a); this
// solves for fg and clamps to [0,255]. Opaque and transparent pixels are
// unchanged.
func RemoveMatte(g *PixelGrid, matte Color) *PixelGrid {
	out := g.Clone()
	w := out.Width()
	forRows(out.Height(), func(start, end int) {
		for y := start; y < end; y++ {
			for x := 0; x < w; x++ {
				px := out.At(x, y)
				if px.A == 0 || px.A == 0xff {
					continue
				}
				a := float64(px.A) / 255
				px.R = unblend(px.R, matte.R, a)
				px.G = unblend(px.G, matte.G, a)
				px.B = unblend(px.B, matte.B, a)
				out.Set(x, y, px)
			}
		}
	})
	return out
}

func scaleChannel(c uint8, f float64) uint8 {
	return clamp8(float64(c) * f)
}

func unblend(c, matte uint8, a float64) uint8 {
	return clamp8((float64(c) - float64(matte)*(1-a)) / a)
}

func clamp8(v float64) uint8 {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v + 0.5)
}

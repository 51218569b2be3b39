package iconkit

import (
	"fmt"
	"strconv"
	"strings"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Color is an immutable 8-bit RGB triple with an optional reference alpha.
//
// A is the pixel alpha when the Color was read from a grid. When a Color is
// used as a masking reference, A only takes part in matching if MatchAlpha is
// set; otherwise matching looks at R, G and B alone.
type Color struct {
	R, G, B    uint8
	A          uint8
	MatchAlpha bool
}

// RGB returns an opaque color with the given components.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// Hex formats the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA" (the leading # is optional).
//
// The 8-digit form sets MatchAlpha so the alpha becomes part of the matching
// rule.
func ParseHexColor(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(hex) {
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		return RGB(uint8(v>>16), uint8(v>>8), uint8(v)), nil
	case 8:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
		}
		return Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v), MatchAlpha: true}, nil
	default:
		return Color{}, fmt.Errorf("invalid hex color %q: want 6 or 8 hex digits", s)
	}
}

// Distance returns the Euclidean distance between a and b over the RGB
// channels, in 8-bit units. The range is [0, 255·√3 ≈ 441.67].
func Distance(a, b Color) float64 {
	return toColorful(a).DistanceRgb(toColorful(b)) * 255
}

// Matches reports whether px lies within tol of the reference color.
//
// The comparison is inclusive and is done on the integer squared distance so
// that a pixel sitting exactly at the tolerance always matches. When the
// reference carries MatchAlpha, the pixel alpha must also lie within tol of
// the reference alpha.
func Matches(px, ref Color, tol int) bool {
	if tol < 0 {
		return false
	}
	dr := int(px.R) - int(ref.R)
	dg := int(px.G) - int(ref.G)
	db := int(px.B) - int(ref.B)
	if dr*dr+dg*dg+db*db > tol*tol {
		return false
	}
	if ref.MatchAlpha {
		da := int(px.A) - int(ref.A)
		if da < -tol || da > tol {
			return false
		}
	}
	return true
}

func toColorful(c Color) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

package iconkit

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDistance(t *testing.T) {
	colors := []Color{black, white, red, RGB(12, 200, 99), RGB(1, 2, 3)}

	t.Run("Identity", func(t *testing.T) {
		for _, c := range colors {
			assert.Zero(t, Distance(c, c), c.Hex())
		}
	})

	t.Run("Symmetry", func(t *testing.T) {
		for _, a := range colors {
			for _, b := range colors {
				assert.InDelta(t, Distance(a, b), Distance(b, a), 1e-9)
			}
		}
	})

	t.Run("Range", func(t *testing.T) {
		assert.InDelta(t, 255*math.Sqrt(3), Distance(black, white), 1e-6)
		assert.InDelta(t, 5.0, Distance(RGB(0, 0, 0), RGB(3, 4, 0)), 1e-9)
	})

	t.Run("IgnoresAlpha", func(t *testing.T) {
		a := Color{R: 10, G: 20, B: 30, A: 0}
		assert.Zero(t, Distance(a, RGB(10, 20, 30)))
	})
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name string
		px   Color
		ref  Color
		tol  int
		want bool
	}{
		{"exact at zero", white, white, 0, true},
		{"off by one at zero", RGB(254, 255, 255), white, 0, false},
		{"on the boundary", RGB(3, 4, 0), black, 5, true},
		{"just outside", RGB(3, 4, 0), black, 4, false},
		{"negative tolerance", white, white, -1, false},
		{"max tolerance", white, black, 255, false},
		{"alpha ignored by default", Color{R: 255, G: 255, B: 255, A: 0}, white, 0, true},
		{"alpha matched when asked", Color{R: 255, G: 255, B: 255, A: 0}, Color{R: 255, G: 255, B: 255, A: 255, MatchAlpha: true}, 10, false},
		{"alpha within tolerance", Color{R: 255, G: 255, B: 255, A: 250}, Color{R: 255, G: 255, B: 255, A: 255, MatchAlpha: true}, 10, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.px, tt.ref, tt.tol))
		})
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#FF8040")
	require.NoError(t, err)
	assert.Equal(t, RGB(255, 128, 64), c)
	assert.Equal(t, "#FF8040", c.Hex())

	c, err = ParseHexColor("ff804080")
	require.NoError(t, err)
	assert.Equal(t, Color{R: 255, G: 128, B: 64, A: 128, MatchAlpha: true}, c)

	for _, bad := range []string{"", "#FFF", "#GG0000", "#FF00001"} {
		_, err := ParseHexColor(bad)
		assert.Error(t, err, bad)
	}
}

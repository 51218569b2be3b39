package iconkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefringe(t *testing.T) {
	g := NewPixelGrid(3, 1)
	g.Set(0, 0, Color{R: 200, G: 100, B: 50, A: 0xff})
	g.Set(1, 0, Color{R: 200, G: 100, B: 50, A: 128})
	g.Set(2, 0, Color{R: 200, G: 100, B: 50, A: 0})

	t.Run("ProportionalAtZeroStrength", func(t *testing.T) {
		out := Defringe(g, 0)
		assert.Equal(t, g.At(0, 0), out.At(0, 0))
		assert.Equal(t, g.At(2, 0), out.At(2, 0))
		assert.Equal(t, Color{R: 100, G: 50, B: 25, A: 128}, out.At(1, 0))
	})

	t.Run("StrongerDarkensMore", func(t *testing.T) {
		out := Defringe(g, 1)
		assert.Equal(t, uint8(50), out.At(1, 0).R)
		assert.Equal(t, uint8(128), out.At(1, 0).A)
	})

	t.Run("InputUntouched", func(t *testing.T) {
		_ = Defringe(g, 0.7)
		assert.Equal(t, uint8(200), g.At(1, 0).R)
	})
}

func TestRemoveMatte(t *testing.T) {
	// (200,0,0) at alpha 128 composited over white.
	g := NewPixelGrid(2, 1)
	g.Set(0, 0, Color{R: 227, G: 127, B: 127, A: 128})
	g.Set(1, 0, Color{R: 255, G: 255, B: 255, A: 0xff})

	out := RemoveMatte(g, white)
	px := out.At(0, 0)
	assert.InDelta(t, 200, int(px.R), 1)
	assert.LessOrEqual(t, px.G, uint8(1))
	assert.LessOrEqual(t, px.B, uint8(1))
	assert.Equal(t, uint8(128), px.A)
	assert.Equal(t, white, out.At(1, 0))
}

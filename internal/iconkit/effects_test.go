package iconkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddGlow(t *testing.T) {
	g := NewPixelGrid(21, 21)
	fillRect(g, BoundingBox{X: 8, Y: 8, Width: 5, Height: 5}, black)
	before := g.Clone()

	out := AddGlow(g, Glow{Color: RGB(255, 255, 255), Radius: 2})
	require.Equal(t, 21, out.Width())
	assert.Equal(t, before.Image().Pix, g.Image().Pix, "input must not change")

	assert.Equal(t, black, out.At(10, 10), "content stays on top")

	halo := out.At(14, 10)
	assert.Greater(t, halo.A, uint8(0))
	assert.Less(t, halo.A, uint8(0xff))
	assert.Equal(t, uint8(255), halo.R)
	assert.Equal(t, uint8(255), halo.G)
	assert.Equal(t, uint8(255), halo.B)

	assert.Equal(t, uint8(0), out.At(0, 0).A, "halo stays within its radius")
}

func TestAddGlow_OpacityScales(t *testing.T) {
	g := NewPixelGrid(21, 21)
	fillRect(g, BoundingBox{X: 8, Y: 8, Width: 5, Height: 5}, black)

	full := AddGlow(g, Glow{Color: RGB(0, 0, 255), Radius: 2}).At(14, 10).A
	half := AddGlow(g, Glow{Color: Color{B: 255, A: 128}, Radius: 2}).At(14, 10).A
	none := AddGlow(g, Glow{Color: Color{B: 255}, Radius: 2}).At(14, 10).A

	assert.Less(t, half, full)
	assert.Greater(t, half, uint8(0))
	assert.Equal(t, uint8(0), none)
}

func TestAddGlow_Empty(t *testing.T) {
	assert.True(t, AddGlow(NewPixelGrid(0, 0), Glow{}).Empty())
}

func TestAddBackground(t *testing.T) {
	g := NewPixelGrid(4, 4)
	g.Set(1, 1, RGB(255, 0, 0))
	g.Set(2, 2, Color{R: 255, A: 128})

	out := AddBackground(g, RGB(255, 255, 255))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, uint8(0xff), out.At(x, y).A, "pixel (%d,%d) must be opaque", x, y)
		}
	}
	assert.Equal(t, RGB(255, 255, 255), out.At(0, 0))
	assert.Equal(t, RGB(255, 0, 0), out.At(1, 1))

	blend := out.At(2, 2)
	assert.InDelta(t, 255, int(blend.R), 1)
	assert.InDelta(t, 127, int(blend.G), 1)
	assert.InDelta(t, 127, int(blend.B), 1)
}

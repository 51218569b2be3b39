package iconkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloodFill_CenterNeverReached(t *testing.T) {
	border := RGB(0, 0, 255)
	center := RGB(255, 0, 0)
	g := solidGrid(3, 3, border)
	g.Set(1, 1, center)

	// Any tolerance below the border/center distance (~360.6).
	for _, tol := range []int{0, 1, 10, 100, 200, 255} {
		v := FloodFill(g, border, tol)
		assert.False(t, v.Contains(1, 1), "tolerance %d", tol)
		assert.Equal(t, 8, v.Len(), "tolerance %d", tol)
	}
}

func TestFloodFill_ZeroArea(t *testing.T) {
	for _, g := range []*PixelGrid{NewPixelGrid(0, 0), NewPixelGrid(0, 4), NewPixelGrid(4, 0)} {
		v := FloodFill(g, white, 255)
		assert.Zero(t, v.Len())
		assert.False(t, v.Contains(0, 0))
	}
}

func TestFloodFill_ExactMatchAtZeroTolerance(t *testing.T) {
	g := solidGrid(5, 5, RGB(254, 255, 255))
	g.Set(0, 2, white)
	g.Set(1, 2, white)

	v := FloodFill(g, white, 0)
	assert.Equal(t, 2, v.Len())
	assert.True(t, v.Contains(0, 2))
	assert.True(t, v.Contains(1, 2))

	v = FloodFill(g, white, 1)
	assert.Equal(t, 25, v.Len())
}

func TestFloodFill_NoDiagonalSteps(t *testing.T) {
	// A white pocket at (2,2) touches the white border region only at a
	// corner through (1,1).
	g := solidGrid(5, 5, black)
	g.Set(0, 0, white)
	g.Set(1, 1, white)
	g.Set(2, 2, white)

	v := FloodFill(g, white, 0)
	assert.True(t, v.Contains(0, 0))
	assert.False(t, v.Contains(1, 1))
	assert.False(t, v.Contains(2, 2))
}

func TestFloodFill_Corridor(t *testing.T) {
	g := solidGrid(7, 7, black)
	for x := 0; x <= 5; x++ {
		g.Set(x, 3, white)
	}
	g.Set(5, 4, white)
	g.Set(5, 5, white)

	v := FloodFill(g, white, 0)
	assert.Equal(t, 8, v.Len())
	assert.True(t, v.Contains(5, 5))
	assert.False(t, v.Contains(-1, 3))
	assert.False(t, v.Contains(7, 3))
}

package iconkit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveDebris(t *testing.T) {
	m := maskFrom(4, 1, func(x, _ int) uint8 { return []uint8{0, 9, 10, 200}[x] })

	out, cut := RemoveDebris(m, 10)
	assert.Equal(t, []byte{0, 0, 10, 200}, out.Bytes())
	assert.Equal(t, []int{1}, cut)
	assert.Equal(t, uint8(9), m.At(1, 0))

	out, cut = RemoveDebris(m, 0)
	assert.True(t, out.Equal(m))
	assert.Empty(t, cut)
}

func TestCleanEdges_Idempotent(t *testing.T) {
	m := noisyMask(23, 19)
	for _, threshold := range []int{0, 1, 10, 25, 50} {
		once := CleanEdges(m, threshold)
		twice := CleanEdges(once, threshold)
		require.True(t, twice.Equal(once), "threshold %d", threshold)
	}
}

func TestCleanEdges_NoDebrisBelowThreshold(t *testing.T) {
	m := noisyMask(23, 19)
	out := CleanEdges(m, 30)
	for y := 0; y < out.Height(); y++ {
		for x := 0; x < out.Width(); x++ {
			v := out.At(x, y)
			if v != 0 {
				assert.GreaterOrEqual(t, int(v), 30, "(%d,%d)", x, y)
			}
			if m.At(x, y) >= 30 {
				assert.Equal(t, m.At(x, y), v, "pixel above threshold changed at (%d,%d)", x, y)
			}
		}
	}
}

func TestCleanEdges_IsolatedSpeckRemoved(t *testing.T) {
	m := NewAlphaMask(9, 9)
	m.Set(4, 4, 5)
	assert.True(t, CleanEdges(m, 10).Equal(NewAlphaMask(9, 9)))
}

func TestCleanEdges_SoftensCutNextToShape(t *testing.T) {
	m := squareMask(12, 12, BoundingBox{X: 2, Y: 2, Width: 5, Height: 5})
	m.Set(7, 4, 5)

	out := CleanEdges(m, 10)
	v := out.At(7, 4)
	assert.Greater(t, v, uint8(10))
	assert.Less(t, v, uint8(0xff))
	assert.Equal(t, uint8(0xff), out.At(6, 4))
	assert.Equal(t, uint8(0), out.At(8, 4))
}

func TestCleanEdges_BinaryEdgeUnchanged(t *testing.T) {
	m := squareMask(16, 16, BoundingBox{X: 3, Y: 3, Width: 10, Height: 10})
	assert.True(t, CleanEdges(m, DefaultEdgeThreshold).Equal(m))
}

package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrowthStep(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{0, 1},
		{127, 1},
		{128, 32},
		{2047, 32},
		{2048, 256},
		{1 << 20, 256},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, GrowthStep(tt.n), "GrowthStep(%d)", tt.n)
	}
}

func TestCapacityFor(t *testing.T) {
	tests := []struct {
		n    int
		want int
	}{
		{-1, 0},
		{0, 0},
		{1, 1},
		{127, 127},
		{128, 128},
		{129, 160},
		{160, 160},
		{161, 192},
		{2048, 2048},
		{2049, 2304},
		{2304, 2304},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CapacityFor(tt.n), "CapacityFor(%d)", tt.n)
	}
}

func TestGrowBuffer(t *testing.T) {
	src := []float64{1, 2, 3}
	out := growBuffer(src, 3, 5)
	require.Len(t, out, 3)
	assert.Equal(t, 5, cap(out))
	assert.Equal(t, src, out)

	// shrinking below length keeps the prefix
	out = growBuffer(src, 3, 2)
	assert.Equal(t, []float64{1, 2}, out)

	out[0] = 9
	assert.Equal(t, 1.0, src[0], "growBuffer must not alias its input")
}

func TestMulOverflowSafe(t *testing.T) {
	got, ok := mulOverflowSafe(10, slotSize)
	require.True(t, ok)
	assert.Equal(t, 320, got)

	_, ok = mulOverflowSafe(math.MaxInt/2, 3)
	assert.False(t, ok, "expected overflow")
	_, ok = mulOverflowSafe(-1, 3)
	assert.False(t, ok, "negative operands are rejected")
	got, ok = mulOverflowSafe(0, math.MaxInt)
	assert.True(t, ok)
	assert.Zero(t, got)
}

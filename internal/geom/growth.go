package geom

import "math"

// DefaultPointLimit caps the capacity of a single part.
const DefaultPointLimit = 1 << 26

// bytes allocated per slot when every channel is present: x, y, z, m
const slotSize = 4 * 8

// GrowthStep returns the allocation granularity for a part holding n points.
func GrowthStep(n int) int {
	switch {
	case n < 128:
		return 1
	case n < 2048:
		return 32
	default:
		return 256
	}
}

// CapacityFor returns the smallest multiple of GrowthStep(n) that holds n points.
func CapacityFor(n int) int {
	if n <= 0 {
		return 0
	}
	step := GrowthStep(n)
	c := (n / step) * step
	if c < n {
		c += step
	}
	return c
}

// growBuffer returns a buffer of exactly capacity slots holding the first length
// values of s. Slots past len(s) are zero.
func growBuffer[T any](s []T, length, capacity int) []T {
	if length > capacity {
		length = capacity
	}
	out := make([]T, length, capacity)
	copy(out, s)
	return out
}

// mulOverflowSafe multiplies two non-negative ints, reporting ok = false on overflow.
func mulOverflowSafe(a, b int) (int, bool) {
	if a == 0 || b == 0 {
		return 0, true
	}
	if a < 0 || b < 0 || a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

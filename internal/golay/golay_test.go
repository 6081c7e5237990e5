package golay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

// flip24 flips the bits at the given positions of a 24-bit frame assembled
// as data(12 bits MSB-first) ++ check(11 bits MSB-first) ++ parity(1 bit),
// then splits it back into (data, check, parity).
func flip24(data, check uint16, parity bool, positions ...int) (uint16, uint16, bool) {
	var frame uint32
	frame |= uint32(data) << 12
	frame |= uint32(check) << 1
	if parity {
		frame |= 1
	}
	for _, pos := range positions {
		frame ^= 1 << uint(23-pos)
	}
	outData := uint16((frame >> 12) & 0xFFF)
	outCheck := uint16((frame >> 1) & 0x7FF)
	outParity := frame&1 != 0
	return outData, outCheck, outParity
}

// No transmission errors: decode recovers the original data with both
// flags clear.
func TestDecodeNoNoise(t *testing.T) {
	c := NewCodec()
	d := uint16(0xABC)
	check, parity := c.Encode(d)
	out, tec, qed := c.Decode(d, check, parity)
	assert.Equal(t, d, out)
	assert.False(t, tec)
	assert.False(t, qed)
}

// Three flips at known positions are corrected.
func TestCorrectsThreeErrorsAtKnownPositions(t *testing.T) {
	c := NewCodec()
	d := uint16(0x555)
	check, parity := c.Encode(d)

	cd, cc, cp := flip24(d, check, parity, 2, 10, 17)
	out, tec, qed := c.Decode(cd, cc, cp)
	assert.Equal(t, d, out)
	assert.True(t, tec)
	assert.False(t, qed)
}

// Four flips at known positions are detected, not corrected.
func TestDetectsFourErrorsAtKnownPositions(t *testing.T) {
	c := NewCodec()
	d := uint16(0x123)
	check, parity := c.Encode(d)

	cd, cc, cp := flip24(d, check, parity, 0, 5, 11, 19)
	_, tec, qed := c.Decode(cd, cc, cp)
	assert.False(t, tec)
	assert.True(t, qed)
}

// Property: round-trip with no noise recovers d with both flags clear.
func TestRoundTripNoNoise(t *testing.T) {
	c := NewCodec()
	rapid.Check(t, func(t *rapid.T) {
		d := uint16(rapid.IntRange(0, 0xFFF).Draw(t, "d"))
		check, parity := c.Encode(d)
		out, tec, qed := c.Decode(d, check, parity)
		assert.Equal(t, d, out)
		assert.False(t, tec)
		assert.False(t, qed)
	})
}

// Property: any 3 distinct flip positions in the 24-bit frame are corrected.
func TestCorrectsThreeErrors(t *testing.T) {
	c := NewCodec()
	rapid.Check(t, func(t *rapid.T) {
		d := uint16(rapid.IntRange(0, 0xFFF).Draw(t, "d"))
		check, parity := c.Encode(d)

		positions := rapid.SliceOfNDistinct(rapid.IntRange(0, 23), 3, 3, func(i int) int { return i }).Draw(t, "positions")
		cd, cc, cp := flip24(d, check, parity, positions...)

		out, tec, qed := c.Decode(cd, cc, cp)
		assert.Equal(t, d, out)
		assert.True(t, tec)
		assert.False(t, qed)
	})
}

// Property: any 4 distinct flip positions are flagged QED.
func TestDetectsFourErrors(t *testing.T) {
	c := NewCodec()
	rapid.Check(t, func(t *rapid.T) {
		d := uint16(rapid.IntRange(0, 0xFFF).Draw(t, "d"))
		check, parity := c.Encode(d)

		positions := rapid.SliceOfNDistinct(rapid.IntRange(0, 23), 4, 4, func(i int) int { return i }).Draw(t, "positions")
		cd, cc, cp := flip24(d, check, parity, positions...)

		_, tec, qed := c.Decode(cd, cc, cp)
		assert.False(t, tec)
		assert.True(t, qed)
	})
}

// The check word is an 11-bit quantity and the parity bit is reproducible:
// encoding the same data twice yields identical results (pure function).
func TestEncodeDeterministic(t *testing.T) {
	c := NewCodec()
	rapid.Check(t, func(t *rapid.T) {
		d := uint16(rapid.IntRange(0, 0xFFF).Draw(t, "d"))
		c1, p1 := c.Encode(d)
		c2, p2 := c.Encode(d)
		assert.Equal(t, c1, c2)
		assert.Equal(t, p1, p2)
		assert.Less(t, c1, uint16(1<<11))
	})
}

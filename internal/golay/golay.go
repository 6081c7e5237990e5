// Package golay implements the extended [24,12,8] binary Golay codec: a
// 12-bit message is protected by 11 check bits plus one overall-parity bit,
// for 24 bits total. The codec corrects up to three bit errors and flags
// four via the overall parity bit.
//
// The algebra follows Hank Wallace's widely used Golay(23,12) construction
// (polynomial remainder over GF(2), syndrome-weight trial-flip decoding),
// extended with an overall parity bit for the fourth-error flag. Several
// bit-reversal points exist because the reference mixes a "systematic
// encoding" derivation (LSB-first polynomial division) with an external
// MSB-first presentation; each reversal is called out below.
package golay

import "math/bits"

// Poly is the Golay(23,12) generator polynomial
// x^11 + x^9 + x^7 + x^6 + x^5 + x + 1, represented in 12 bits.
const Poly = 0xAE3

// BlockLen and MessageLen are the external dimensions of the extended code.
const (
	BlockLen   = 24
	MessageLen = 12
)

const (
	dataMask  = 0xFFF    // 12 bits
	checkMask = 0x7FF    // 11 bits
	cwMask    = 0x7FFFFF // 23 bits
)

// Codec is the extended Golay(24,12,8) codec. It carries no mutable state;
// the zero value is ready to use.
type Codec struct{}

// NewCodec returns a ready-to-use Golay codec.
func NewCodec() *Codec { return &Codec{} }

// Encode transforms 12-bit data into its 11-bit check word and overall
// parity bit.
func (Codec) Encode(data uint16) (check uint16, parity bool) {
	data &= dataMask

	dataRev := reverse(uint32(data), MessageLen)
	c := remainder(dataRev) & checkMask
	checkExt := uint16(reverse(c, 11))

	cw := (dataRev << 11) | c
	// A trailing zero bit doesn't change the ones-count, so checking parity
	// over (cw<<1) at 24 bits gives the same verdict as checking cw at 23
	// bits directly; written this way to mirror the 24-bit frame shape used
	// in parityVerdict below.
	parity = evenParityBit(cw<<1, BlockLen)
	return checkExt, parity
}

// Decode reassembles a received (data, check, parity) triple, attempts to
// correct up to three bit errors via syndrome-weight trial flipping, and
// reports whether a correction was applied (tec) or a four-error pattern
// was detected (qed).
func (Codec) Decode(data, check uint16, parity bool) (out uint16, tec, qed bool) {
	data &= dataMask
	check &= checkMask

	dataRev := reverse(uint32(data), MessageLen)
	checkRev := reverse(uint32(check), 11)
	cw0 := (dataRev<<11 | checkRev) & cwMask

	for j := -1; j < 23; j++ {
		var cw uint32
		var w int
		if j >= 0 {
			cw = (cw0 ^ (1 << uint(j))) & cwMask
			w = 2
		} else {
			cw = cw0
			w = 3
		}

		s := syndrome(cw)
		if s == 0 {
			errs := 0
			if j >= 0 {
				errs = 1
			}
			return finish(cw, parity, errs)
		}

		for i := 0; i < 24; i++ {
			errs := weight(s)
			if errs <= w {
				corrected := (cw ^ s) & cwMask
				corrected = rotr(corrected, uint(i))
				if j >= 0 {
					errs++
				}
				return finish(corrected, parity, errs)
			}
			cw = rotl(cw, 1)
			s = syndrome(cw)
		}
	}

	// Both loops exhausted without localizing an error pattern: fall back to
	// the original codeword and the originally received data, deriving the
	// flags from the parity verdict on the unmodified codeword.
	_, tec, qed = finish(cw0, parity, 0)
	return data, tec, qed
}

// finish applies the parity verdict to the (possibly corrected) codeword
// and deframes it into the externally-visible 12-bit data word.
func finish(cw uint32, parity bool, errs int) (uint16, bool, bool) {
	tec, qed := parityVerdict(cw, parity, errs)
	return deframe(cw), tec, qed
}

// parityVerdict classifies a decode attempt into TEC/QED flags: par_err is
// true iff the reassembled 24-bit frame (cw<<1 | parity) has odd parity.
func parityVerdict(cw uint32, parity bool, errs int) (tec, qed bool) {
	var p uint32
	if parity {
		p = 1
	}
	frame := (cw << 1) | p
	parErr := evenParityBit(frame, BlockLen) // odd ones-count -> needs a 1 to even out

	switch {
	case errs >= 3 && parErr:
		qed = true
	case parErr:
		tec = true
	case errs > 0 && errs <= 3:
		tec = true
	}
	return tec, qed
}

// deframe recovers the externally-visible 12-bit data word from the
// internal 23-bit codeword layout (data bits bit-reversed in the high 12
// bits, check bits bit-reversed in the low 11 bits).
func deframe(cw uint32) uint16 {
	dataRev := (cw >> 11) & dataMask
	return uint16(reverse(dataRev, MessageLen))
}

// syndrome computes rem(cw) aligned to the check-bit positions: the 11-bit
// remainder shifted left by 12.
func syndrome(cw uint32) uint32 {
	return remainder(cw) << 12
}

// remainder performs 12 rounds of GF(2) polynomial division of reg by Poly:
// if the LSB is set, XOR with Poly, then shift right by one. The result's
// low bits hold the remainder.
func remainder(reg uint32) uint32 {
	for i := 0; i < 12; i++ {
		if reg&1 != 0 {
			reg ^= Poly
		}
		reg >>= 1
	}
	return reg
}

// weight returns the number of 1-bits in the low 23 bits of cw, using the
// platform population-count intrinsic rather than a nibble-table fallback.
func weight(cw uint32) int {
	return bits.OnesCount32(cw & cwMask)
}

// rotl rotates a 23-bit codeword left by n bits, carrying bit 22 into bit 0.
func rotl(cw uint32, n uint) uint32 {
	n %= 23
	return ((cw << n) | (cw >> (23 - n))) & cwMask
}

// rotr rotates a 23-bit codeword right by n bits, carrying bit 0 into bit 22.
func rotr(cw uint32, n uint) uint32 {
	n %= 23
	return ((cw >> n) | (cw << (23 - n))) & cwMask
}

// reverse reverses the low `width` bits of v.
func reverse(v uint32, width int) uint32 {
	var out uint32
	for i := 0; i < width; i++ {
		out = (out << 1) | (v & 1)
		v >>= 1
	}
	return out
}

// evenParityBit returns true iff the low `width` bits of v contain an odd
// number of 1s (i.e. the bit that would need to be appended to reach even
// parity is 1).
func evenParityBit(v uint32, width int) bool {
	mask := uint32(1)<<uint(width) - 1
	return bits.OnesCount32(v&mask)%2 != 0
}

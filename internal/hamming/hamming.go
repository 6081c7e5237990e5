// Package hamming implements a generic extended Hamming SECDED
// (Single-Error-Correction, Double-Error-Detection) codec, parameterized by
// the number of data bits K. The number of parity bits P and the overall
// block length N are derived from K at construction time and never change
// afterward.
//
// Geometry follows the classic extended-Hamming layout: position 0 holds
// the overall parity bit, positions that are powers of two (1, 2, 4, ...)
// hold the P Hamming parity bits, and the remaining positions hold the K
// data bits in their original order. Bit 0 of the block is the MSB-first
// index 0 of the encoded block.
package hamming

import (
	"fmt"

	"github.com/dbehnke/fecgolay/internal/bits"
)

// Codec is an immutable extended-Hamming SECDED codec for a fixed number of
// data bits K.
type Codec struct {
	K int // number of data bits
	P int // number of Hamming parity bits (excludes the overall parity bit)
	N int // total block length, K + P + 1

	coverage [][]int // coverage[i] = C_i, the positions covered by parity bit i
}

// NewCodec constructs a Codec for k data bits, deriving P as the smallest
// integer such that k+1 <= 2^P - P.
func NewCodec(k int) (*Codec, error) {
	if k < 1 {
		return nil, fmt.Errorf("hamming: K must be >= 1, got %d", k)
	}

	p := parityBitsFor(k)
	n := k + p + 1

	c := &Codec{K: k, P: p, N: n}
	c.coverage = make([][]int, p)
	for i := 0; i < p; i++ {
		c.coverage[i] = coverageSet(i, n)
	}
	return c, nil
}

// parityBitsFor finds the smallest P >= 2 such that k+1 <= 2^P - P.
func parityBitsFor(k int) int {
	d := k + 1
	p := 2
	for d > (1<<uint(p))-p {
		p++
	}
	return p
}

// coverageSet returns C_i: the positions j in [0, n) whose bit i is 1.
func coverageSet(i, n int) []int {
	var set []int
	for j := 0; j < n; j++ {
		if (j>>uint(i))&1 == 1 {
			set = append(set, j)
		}
	}
	return set
}

// Encode transforms K data bits (MSB-first) into an N-bit extended-Hamming
// block, setting the Hamming parity bits and the overall parity bit.
func (c *Codec) Encode(data []bits.Bit) ([]bits.Bit, error) {
	if len(data) != c.K {
		return nil, fmt.Errorf("hamming: data length %d, want %d", len(data), c.K)
	}

	block := c.frame(data)
	c.setParities(block)
	return block, nil
}

// frame produces the length-N block with parity placeholder positions
// zeroed and the data bits placed into the remaining positions in order.
func (c *Codec) frame(data []bits.Bit) []bits.Bit {
	block := make([]bits.Bit, c.N)
	isParityPos := make([]bool, c.N)
	isParityPos[0] = true
	for i := 0; i < c.P; i++ {
		isParityPos[1<<uint(i)] = true
	}

	di := 0
	for j := 0; j < c.N; j++ {
		if isParityPos[j] {
			continue
		}
		block[j] = data[di]
		di++
	}
	return block
}

// setParities sets each Hamming parity bit to the even parity of its
// coverage set, then sets the overall parity bit over the whole block.
func (c *Codec) setParities(block []bits.Bit) {
	for i := 0; i < c.P; i++ {
		block[1<<uint(i)] = c.coverageParity(block, i)
	}
	block[0] = bits.Parity(block, true)
}

func (c *Codec) coverageParity(block []bits.Bit, i int) bits.Bit {
	covered := make([]bits.Bit, len(c.coverage[i]))
	for k, j := range c.coverage[i] {
		covered[k] = block[j]
	}
	return bits.Parity(covered, true)
}

// Decode classifies and corrects a received N-bit block, returning the K
// data bits, a single-error-corrected flag (sec), and a double-error-
// detected flag (ded).
func (c *Codec) Decode(block []bits.Bit) (data []bits.Bit, sec, ded bool, err error) {
	if len(block) != c.N {
		return nil, false, false, fmt.Errorf("hamming: block length %d, want %d", len(block), c.N)
	}

	working := append([]bits.Bit(nil), block...)

	pTotal := bits.Parity(working, true)
	syndrome := c.syndrome(working)

	switch {
	case pTotal == 0 && syndrome == 0:
		// zero errors
	case pTotal == 0 && syndrome != 0:
		ded = true
	default: // pTotal == 1: exactly one bit is wrong
		if syndrome < c.N {
			working[syndrome] ^= 1
			sec = true
		} else {
			// Syndrome points outside the block: more than one error is
			// present. Report it as detected-but-uncorrectable rather than
			// silently leaving the block unmodified.
			ded = true
		}
	}

	data = c.deframe(working)
	return data, sec, ded, nil
}

// syndrome computes S, the integer formed from s_{P-1} (MSB) down to s_0
// (LSB), where each s_i is the even-parity test of C_i within block.
func (c *Codec) syndrome(block []bits.Bit) int {
	s := 0
	for i := c.P - 1; i >= 0; i-- {
		s = (s << 1) | int(c.coverageParity(block, i))
	}
	return s
}

// deframe strips the overall parity bit and the Hamming parity bits,
// returning the K remaining data bits in order.
func (c *Codec) deframe(block []bits.Bit) []bits.Bit {
	isParityPos := make([]bool, c.N)
	isParityPos[0] = true
	for i := 0; i < c.P; i++ {
		isParityPos[1<<uint(i)] = true
	}

	data := make([]bits.Bit, 0, c.K)
	for j := 0; j < c.N; j++ {
		if isParityPos[j] {
			continue
		}
		data = append(data, block[j])
	}
	return data
}

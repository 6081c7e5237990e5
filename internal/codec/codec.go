// Package codec exposes a uniform Encode/Decode surface over both FEC
// codecs, so a caller (the demo CLI, the golden-vector generator) can drive
// either one with the same call shape, the same role
// internal/codec/conversion.go played for the teacher's five voice codecs,
// narrowed here to two error-correcting codecs.
package codec

import (
	"fmt"

	"github.com/dbehnke/fecgolay/internal/bits"
	"github.com/dbehnke/fecgolay/internal/golay"
	"github.com/dbehnke/fecgolay/internal/hamming"
)

// Flags generalizes the two codecs' correction/detection signals: SEC/DED
// for Hamming, TEC/QED for Golay.
type Flags struct {
	Corrected bool // SEC (Hamming) or TEC (Golay)
	Detected  bool // DED (Hamming) or QED (Golay)
}

// Codec is the uniform surface both codec adapters implement.
type Codec interface {
	// Encode transforms a data bit-vector into an encoded frame.
	Encode(data []bits.Bit) (frame []bits.Bit, err error)
	// Decode classifies and corrects a received frame, returning the
	// recovered data and the correction/detection flags.
	Decode(frame []bits.Bit) (data []bits.Bit, flags Flags, err error)
}

// HammingCodec adapts internal/hamming.Codec to the Codec interface.
type HammingCodec struct {
	inner *hamming.Codec
}

// NewHammingCodec constructs a façade over a K-data-bit Hamming codec.
func NewHammingCodec(k int) (*HammingCodec, error) {
	inner, err := hamming.NewCodec(k)
	if err != nil {
		return nil, err
	}
	return &HammingCodec{inner: inner}, nil
}

// K, P, N expose the underlying codec's derived dimensions.
func (h *HammingCodec) K() int { return h.inner.K }
func (h *HammingCodec) P() int { return h.inner.P }
func (h *HammingCodec) N() int { return h.inner.N }

func (h *HammingCodec) Encode(data []bits.Bit) ([]bits.Bit, error) {
	return h.inner.Encode(data)
}

func (h *HammingCodec) Decode(frame []bits.Bit) ([]bits.Bit, Flags, error) {
	data, sec, ded, err := h.inner.Decode(frame)
	if err != nil {
		return nil, Flags{}, err
	}
	return data, Flags{Corrected: sec, Detected: ded}, nil
}

// GolayCodec adapts internal/golay.Codec to the Codec interface. Its
// 24-bit external frame layout is [data:12][check:11][parity:1], MSB
// first, chosen so the façade's Encode/Decode can operate on a single
// bit-vector even though the underlying codec's native API is
// (data, check, parity) integers.
type GolayCodec struct {
	inner *golay.Codec
}

// NewGolayCodec constructs a façade over the extended Golay(24,12,8) codec.
func NewGolayCodec() *GolayCodec {
	return &GolayCodec{inner: golay.NewCodec()}
}

func (GolayCodec) BlockLen() int   { return golay.BlockLen }
func (GolayCodec) MessageLen() int { return golay.MessageLen }

func (g *GolayCodec) Encode(data []bits.Bit) ([]bits.Bit, error) {
	if len(data) != golay.MessageLen {
		return nil, fmt.Errorf("codec: golay data length %d, want %d", len(data), golay.MessageLen)
	}

	d := uint16(bits.Unpack(data))
	check, parity := g.inner.Encode(d)

	frame := make([]bits.Bit, 0, golay.BlockLen)
	frame = append(frame, bits.PackWidth(uint64(d), golay.MessageLen)...)
	frame = append(frame, bits.PackWidth(uint64(check), 11)...)
	var p bits.Bit
	if parity {
		p = 1
	}
	frame = append(frame, p)
	return frame, nil
}

func (g *GolayCodec) Decode(frame []bits.Bit) ([]bits.Bit, Flags, error) {
	if len(frame) != golay.BlockLen {
		return nil, Flags{}, fmt.Errorf("codec: golay frame length %d, want %d", len(frame), golay.BlockLen)
	}

	d := uint16(bits.Unpack(frame[0:12]))
	check := uint16(bits.Unpack(frame[12:23]))
	parity := frame[23] != 0

	out, tec, qed := g.inner.Decode(d, check, parity)
	return bits.PackWidth(uint64(out), golay.MessageLen), Flags{Corrected: tec, Detected: qed}, nil
}

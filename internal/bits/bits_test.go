package bits

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestPack(t *testing.T) {
	tests := []struct {
		name string
		n    uint64
		want []Bit
	}{
		{"zero", 0, []Bit{0}},
		{"one", 1, []Bit{1}},
		{"two", 2, []Bit{1, 0}},
		{"seven", 7, []Bit{1, 1, 1}},
		{"eleven", 11, []Bit{1, 0, 1, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Pack(tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("Pack(%d) = %v, want %v", tt.n, got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Pack(%d)[%d] = %d, want %d", tt.n, i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestUnpack(t *testing.T) {
	tests := []struct {
		name string
		bits []Bit
		want uint64
	}{
		{"zero", []Bit{0}, 0},
		{"one", []Bit{1}, 1},
		{"eleven", []Bit{1, 0, 1, 1}, 11},
		{"leading zero", []Bit{0, 1, 0, 1}, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Unpack(tt.bits); got != tt.want {
				t.Errorf("Unpack(%v) = %d, want %d", tt.bits, got, tt.want)
			}
		})
	}
}

func TestParity(t *testing.T) {
	if got := Parity([]Bit{1, 0, 0}, true); got != 1 {
		t.Errorf("Parity([1,0,0], even) = %d, want 1", got)
	}
	if got := Parity([]Bit{1, 0, 0, 1}, true); got != 0 {
		t.Errorf("Parity([1,0,0,1], even) = %d, want 0", got)
	}
	if got := Parity([]Bit{1, 0, 0, 1}, false); got != 1 {
		t.Errorf("Parity([1,0,0,1], odd) = %d, want 1", got)
	}
	if got := Parity([]Bit{1, 0, 1, 1}, false); got != 0 {
		t.Errorf("Parity([1,0,1,1], odd) = %d, want 0", got)
	}
}

func TestTransmitExplicitSpots(t *testing.T) {
	message := []Bit{0, 1, 1}
	if _, err := Transmit(message, 0, []int{0}, nil); err != nil {
		t.Fatalf("Transmit: %v", err)
	}
	assert.Equal(t, []Bit{1, 1, 1}, message)

	message = []Bit{0, 1, 1}
	if _, err := Transmit(message, 0, []int{0, 2}, nil); err != nil {
		t.Fatalf("Transmit: %v", err)
	}
	assert.Equal(t, []Bit{1, 1, 0}, message)
}

func TestTransmitZeroNoise(t *testing.T) {
	message := []Bit{0, 1, 1, 0}
	if _, err := Transmit(message, 0, nil, nil); err != nil {
		t.Fatalf("Transmit: %v", err)
	}
	assert.Equal(t, []Bit{0, 1, 1, 0}, message)
}

func TestTransmitRandomNoiseFlipsDistinctPositions(t *testing.T) {
	message := []Bit{0, 1, 1, 0, 0, 1, 1, 0}
	original := append([]Bit(nil), message...)

	rng := rand.New(rand.NewSource(42))
	if _, err := Transmit(message, 3, nil, rng); err != nil {
		t.Fatalf("Transmit: %v", err)
	}

	diff := 0
	for i := range message {
		if message[i] != original[i] {
			diff++
		}
	}
	assert.Equal(t, 3, diff, "expected exactly 3 distinct positions flipped")
}

// Property: unpack(pack(n)) == n for all n >= 0.
func TestPackUnpackRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.Uint64().Draw(t, "n")
		got := Unpack(Pack(n))
		assert.Equal(t, n, got)
	})
}

// Property: parity(bits ++ [parity(bits, even=true)], even=true) == 0.
func TestParityLaw(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 64).Draw(t, "len")
		block := make([]Bit, n)
		for i := range block {
			block[i] = Bit(rapid.IntRange(0, 1).Draw(t, "bit"))
		}

		p := Parity(block, true)
		extended := append(append([]Bit(nil), block...), p)
		assert.Equal(t, Bit(0), Parity(extended, true))
	})
}

package depth

import "testing"

func TestPackRGB(t *testing.T) {
	tests := []struct {
		r, g, b  uint8
		expected uint32
	}{
		{0, 0, 0, 0},
		{0, 0, 1, 1},
		{0, 1, 0, 256},
		{1, 0, 0, 65536},
		{255, 255, 255, 0xFFFFFF},
		{0x12, 0x34, 0x56, 0x123456},
	}

	for _, tt := range tests {
		if got := PackRGB(tt.r, tt.g, tt.b); got != tt.expected {
			t.Errorf("PackRGB(%d, %d, %d) = %#x, want %#x", tt.r, tt.g, tt.b, got, tt.expected)
		}
	}
}

func TestNewRangeRejectsInverted(t *testing.T) {
	tests := []struct{ lower, upper float64 }{
		{0.5, 0.5},
		{0.75, 0.25},
		{1, 0},
	}
	for _, tt := range tests {
		if _, err := NewRange(tt.lower, tt.upper); err != ErrInvalidRange {
			t.Errorf("NewRange(%g, %g) error = %v, want ErrInvalidRange", tt.lower, tt.upper, err)
		}
	}
}

func TestRescaleFullRange(t *testing.T) {
	rng, err := NewRange(0, 1)
	if err != nil {
		t.Fatal(err)
	}

	// A gray source pixel v packs to v*0x010101, which the full range maps
	// onto the usual 8-to-16-bit v*257 expansion.
	for _, v := range []uint8{0, 1, 2, 127, 254, 255} {
		mono := PackRGB(v, v, v)
		want := uint16(v) * 257
		if got := rng.Rescale(mono); got != want {
			t.Errorf("Rescale(gray %d) = %d, want %d", v, got, want)
		}
	}
}

func TestRescaleClampsBelow(t *testing.T) {
	rng, err := NewRange(0.5, 1)
	if err != nil {
		t.Fatal(err)
	}
	if got := rng.Rescale(0); got != 0 {
		t.Errorf("Rescale below range = %d, want 0", got)
	}
	if got := rng.Rescale(rng.Lower); got != 0 {
		t.Errorf("Rescale at lower bound = %d, want 0", got)
	}
}

func TestRescaleClampsAbove(t *testing.T) {
	// Halving the range doubles the multiplier, so the top of the 24-bit
	// domain overshoots 16 bits and must clamp.
	rng, err := NewRange(0, 0.5)
	if err != nil {
		t.Fatal(err)
	}
	if got := rng.Rescale(0xFFFFFF); got != 65535 {
		t.Errorf("Rescale above range = %d, want 65535", got)
	}
}

func TestRescaleMonotonic(t *testing.T) {
	rng, err := NewRange(0.25, 0.75)
	if err != nil {
		t.Fatal(err)
	}

	prev := uint16(0)
	for mono := uint32(0); mono <= 0xFFFFFF; mono += 0x1111 {
		got := rng.Rescale(mono)
		if got < prev {
			t.Fatalf("Rescale(%#x) = %d dropped below previous %d", mono, got, prev)
		}
		prev = got
	}
}

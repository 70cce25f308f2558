// Package depth converts 24-bit RGB-packed depth snapshots into 16-bit
// monochrome depth maps.
//
// The source renderer spreads depth precision across the R, G and B channels
// of an ordinary screenshot: R holds the high byte, B the low byte. Nothing
// common can open 24- or 32-bit monochrome images, so a chosen sub-range of
// the 24-bit domain is rescaled onto the 16-bit output domain instead.
package depth

import "errors"

// ErrInvalidRange is returned when the upper range fraction is not strictly
// greater than the lower one.
var ErrInvalidRange = errors.New("range upper bound must be greater than lower bound")

const maxMono = 0xFFFFFF

// PackRGB merges the three 8-bit channels into one 24-bit depth value.
func PackRGB(r, g, b uint8) uint32 {
	return uint32(r)<<16 | uint32(g)<<8 | uint32(b)
}

// Range maps a sub-range of the 24-bit depth domain onto 16 bits.
type Range struct {
	Lower      uint32
	Upper      uint32
	multiplier int64
}

// NewRange builds a Range from two fractions of the 24-bit domain.
// Both must lie in [0, 1] with upper strictly greater than lower; anything
// else would divide by zero or flip the mapping, so it is rejected up front.
func NewRange(lowerFrac, upperFrac float64) (Range, error) {
	if upperFrac <= lowerFrac {
		return Range{}, ErrInvalidRange
	}

	lower := uint32(maxMono * lowerFrac)
	upper := uint32(maxMono * upperFrac)
	return Range{
		Lower: lower,
		Upper: upper,
		// Saturates the selected range onto the full output domain.
		multiplier: maxMono / int64(upper-lower),
	}, nil
}

// Rescale maps one 24-bit depth value onto the 16-bit output domain,
// clamping values outside the selected range.
func (r Range) Rescale(mono uint32) uint16 {
	v := (int64(mono) - int64(r.Lower)) * r.multiplier / 256
	if v < 0 {
		return 0
	}
	if v > 65535 {
		return 65535
	}
	return uint16(v)
}

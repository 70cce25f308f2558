// Package bands spreads a scalar weight across overlapping weight bands.
package bands

// ToBands distributes a value in [0, 1] over numBands channels. Each band is
// a tent function centered on band i; a value exactly on a band center puts
// full weight there and nothing elsewhere. With one band the value passes
// through unchanged.
//
// Off the band centers the outputs do not sum to 1. That matches the
// behavior of existing baked maps, so it is intentionally left unnormalized.
func ToBands(value float64, numBands int) []float64 {
	if numBands == 1 {
		return []float64{value}
	}

	vals := make([]float64, numBands)
	scaled := value * float64(numBands-1)
	for i := range vals {
		dist := scaled - float64(i)
		if dist < 0 {
			dist = -dist
		}
		if dist > 1 {
			dist = 1
		}
		vals[i] = 1 - dist
	}
	return vals
}

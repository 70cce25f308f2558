// Package sampler reads averaged pixel neighborhoods at UV-derived
// coordinates, using a square or circular sample mask.
package sampler

import "errors"

// ErrRadiusTooLarge is returned when the sample neighborhood would exceed
// the image bounds even after wrap-extension.
var ErrRadiusTooLarge = errors.New("sample radius too large for image")

// Mask defines the shape of the sampled neighborhood. Cells hold 1 for
// active cells and 0 for inactive ones; Sum is the divisor for the channel
// averages. A nil Cells slice (radius 1) means a single-pixel lookup.
type Mask struct {
	Radius   int
	Diameter int
	Cells    [][]float64
	Sum      float64
}

// Square builds a full mask where every cell participates.
func Square(radius int) *Mask {
	d := 2*radius - 1
	m := &Mask{Radius: radius, Diameter: d, Sum: float64(d * d)}
	if radius == 1 {
		m.Sum = 1
		return m
	}

	m.Cells = make([][]float64, d)
	for i := range m.Cells {
		m.Cells[i] = make([]float64, d)
		for j := range m.Cells[i] {
			m.Cells[i][j] = 1
		}
	}
	return m
}

// Circle builds a point-symmetric circular mask. A quadrant cell (i, j) is
// active when i^2+j^2 < r^2-r, or when it lies on the quadrant's row or
// column 0 so the mask always has a full cross through the center. The
// undershoot of r^2 gives a rounder-looking shape at small radii and is kept
// as-is to stay compatible with maps baked by earlier versions.
func Circle(radius int) *Mask {
	d := 2*radius - 1
	m := &Mask{Radius: radius, Diameter: d}
	if radius == 1 {
		m.Sum = 1
		return m
	}

	m.Cells = make([][]float64, d)
	for i := range m.Cells {
		m.Cells[i] = make([]float64, d)
		for j := range m.Cells[i] {
			// Distance from the center cell, mirrored into one quadrant.
			di := i - (radius - 1)
			if di < 0 {
				di = -di
			}
			dj := j - (radius - 1)
			if dj < 0 {
				dj = -dj
			}
			if di == 0 || dj == 0 || di*di+dj*dj < radius*radius-radius {
				m.Cells[i][j] = 1
				m.Sum++
			}
		}
	}
	return m
}

// CheckRadius verifies that the mask extent fits within the image.
func CheckRadius(width, height, radius int) error {
	d := 2*radius - 1
	if d-1 > width || d-1 > height {
		return ErrRadiusTooLarge
	}
	return nil
}

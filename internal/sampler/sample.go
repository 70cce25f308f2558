package sampler

import (
	"math"

	"github.com/mesh-tools/weightbake/internal/pixel"
)

// Sample reads the averaged color under the mask at a UV coordinate.
//
// ext must be the grid returned by Extend(mask.Radius) on the source image;
// baseWidth/baseHeight are the extents of the un-extended image. The V
// component selects the row and U the column, wrapping modulo 1.0 in UV
// space and modulo the base extents in pixel space.
func Sample(ext *pixel.Grid, baseWidth, baseHeight int, u, v float64, m *Mask) [4]float64 {
	row := wrap(int(math.Floor(v*float64(baseHeight))), baseHeight)
	col := wrap(int(math.Floor(u*float64(baseWidth))), baseWidth)

	if m.Cells == nil {
		return ext.At(row, col)
	}

	// Window anchored so (row, col) sits at the mask center. The anchor is
	// wrapped on the base extents; the extension keeps the window in bounds.
	rowTop := wrap(row+1-m.Radius, baseHeight)
	colTop := wrap(col+1-m.Radius, baseWidth)

	var avg [4]float64
	for i := 0; i < m.Diameter; i++ {
		for j := 0; j < m.Diameter; j++ {
			w := m.Cells[i][j]
			if w == 0 {
				continue
			}
			px := ext.At(rowTop+i, colTop+j)
			avg[0] += w * px[0]
			avg[1] += w * px[1]
			avg[2] += w * px[2]
			avg[3] += w * px[3]
		}
	}
	for k := range avg {
		avg[k] /= m.Sum
	}
	return avg
}

func wrap(x, max int) int {
	x %= max
	if x < 0 {
		x += max
	}
	return x
}

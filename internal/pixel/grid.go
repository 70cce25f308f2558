// Package pixel provides the float pixel grid the baking pipeline samples from.
package pixel

import (
	"errors"
	"image"
)

// ErrEmptyImage is returned when an image with zero area is supplied.
var ErrEmptyImage = errors.New("image has no pixel data")

// Grid is an RGBA pixel grid with float64 channels nominally in [0, 1].
// Pixels are stored row-major, 4 channels per pixel. A Grid is treated as
// immutable once built; Extend returns a new Grid.
type Grid struct {
	Width  int
	Height int
	Pix    []float64 // len == Width*Height*4
}

// New creates an all-zero grid of the given extents.
func New(width, height int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}
	return &Grid{
		Width:  width,
		Height: height,
		Pix:    make([]float64, width*height*4),
	}, nil
}

// FromImage converts an image into a float grid, scaling channels to [0, 1].
func FromImage(img image.Image) (*Grid, error) {
	bounds := img.Bounds()
	g, err := New(bounds.Dx(), bounds.Dy())
	if err != nil {
		return nil, err
	}

	i := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, gc, b, a := img.At(x, y).RGBA()
			// RGBA() returns 16-bit values
			g.Pix[i] = float64(r) / 65535.0
			g.Pix[i+1] = float64(gc) / 65535.0
			g.Pix[i+2] = float64(b) / 65535.0
			g.Pix[i+3] = float64(a) / 65535.0
			i += 4
		}
	}

	return g, nil
}

// At returns the RGBA channels of the pixel at (row, col).
func (g *Grid) At(row, col int) [4]float64 {
	i := (row*g.Width + col) * 4
	return [4]float64{g.Pix[i], g.Pix[i+1], g.Pix[i+2], g.Pix[i+3]}
}

func (g *Grid) set(row, col int, px [4]float64) {
	i := (row*g.Width + col) * 4
	g.Pix[i] = px[0]
	g.Pix[i+1] = px[1]
	g.Pix[i+2] = px[2]
	g.Pix[i+3] = px[3]
}

// Extend returns a copy of the grid with 2*radius rows wrapped from the top
// onto the bottom and 2*radius columns wrapped from the left onto the right.
// Neighborhood reads anchored inside the original extents then stay in bounds
// without a per-pixel modulo. The column wrap copies from the already
// row-extended grid, matching how the sampler reads across the corner.
func (g *Grid) Extend(radius int) *Grid {
	overlap := 2 * radius

	rows := &Grid{
		Width:  g.Width,
		Height: g.Height + overlap,
		Pix:    make([]float64, g.Width*(g.Height+overlap)*4),
	}
	copy(rows.Pix, g.Pix)
	for r := 0; r < overlap; r++ {
		for c := 0; c < g.Width; c++ {
			rows.set(g.Height+r, c, g.At(r, c))
		}
	}

	out := &Grid{
		Width:  g.Width + overlap,
		Height: rows.Height,
		Pix:    make([]float64, (g.Width+overlap)*rows.Height*4),
	}
	for r := 0; r < out.Height; r++ {
		for c := 0; c < g.Width; c++ {
			out.set(r, c, rows.At(r, c))
		}
		for c := 0; c < overlap; c++ {
			out.set(r, g.Width+c, rows.At(r, c))
		}
	}

	return out
}

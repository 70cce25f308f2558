package depth

import (
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/mesh-tools/weightbake/internal/pixel"
	"github.com/mesh-tools/weightbake/internal/worker"
)

// rowConverter rescales one image row at a time. Rows never overlap, so
// workers write to the destination without locking.
type rowConverter struct {
	src image.Image
	dst *image.Gray16
	rng Range
}

func (c *rowConverter) ConvertRow(_ context.Context, row int) error {
	bounds := c.src.Bounds()
	y := bounds.Min.Y + row
	for x := bounds.Min.X; x < bounds.Max.X; x++ {
		r, g, b, _ := c.src.At(x, y).RGBA()
		mono := PackRGB(uint8(r>>8), uint8(g>>8), uint8(b>>8))
		c.dst.SetGray16(x-bounds.Min.X, row, color.Gray16{Y: c.rng.Rescale(mono)})
	}
	return nil
}

// Convert rescales a full RGB depth snapshot into a 16-bit monochrome image.
// Rows are converted in parallel by the given number of workers; onProgress
// may be nil.
func Convert(ctx context.Context, src image.Image, lowerFrac, upperFrac float64, workers int, onProgress worker.ProgressFunc) (*image.Gray16, error) {
	bounds := src.Bounds()
	if bounds.Dx() <= 0 || bounds.Dy() <= 0 {
		return nil, pixel.ErrEmptyImage
	}

	rng, err := NewRange(lowerFrac, upperFrac)
	if err != nil {
		return nil, err
	}

	dst := image.NewGray16(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	pool := worker.New(worker.Config{
		Workers:    workers,
		Converter:  &rowConverter{src: src, dst: dst, rng: rng},
		OnProgress: onProgress,
	})

	for _, res := range pool.RunRows(ctx, bounds.Dy()) {
		if res.Err != nil {
			return nil, fmt.Errorf("convert row %d: %w", res.Task.Row, res.Err)
		}
	}

	return dst, nil
}

// Preview reduces a 16-bit depth map to 8 bits for formats that image
// viewers handle more readily.
func Preview(src *image.Gray16) *image.Gray {
	bounds := src.Bounds()
	out := image.NewGray(bounds)
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			out.SetGray(x, y, color.Gray{Y: uint8(src.Gray16At(x, y).Y >> 8)})
		}
	}
	return out
}

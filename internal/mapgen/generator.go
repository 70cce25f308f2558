// Package mapgen generates deterministic synthetic weight maps, mainly for
// trying out bake settings without hand-painting an image.
package mapgen

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/aquilax/go-perlin"
	"golang.org/x/image/draw"
)

// Kind selects the map pattern.
type Kind string

const (
	// KindGradient is a linear 0→1 ramp along V (top row black, bottom
	// row white).
	KindGradient Kind = "gradient"
	// KindNoise is seeded Perlin noise normalized to [0, 1].
	KindNoise Kind = "noise"
)

// Params configure map generation.
type Params struct {
	Kind  Kind
	Size  int     // output side length in pixels
	Scale float64 // noise frequency control (smaller = more detail)
	Seed  int64
}

// workingSize is the resolution maps are generated at before resampling.
// Generating at a fixed size keeps the pattern independent of the output
// resolution for a given seed.
const workingSize = 512

// Generate renders a weight map and resamples it to the requested size.
func Generate(p Params) (*image.NRGBA, error) {
	if p.Size <= 0 {
		return nil, fmt.Errorf("size must be positive, got %d", p.Size)
	}

	var work *image.NRGBA
	switch p.Kind {
	case KindGradient:
		work = gradient(workingSize)
	case KindNoise:
		if p.Scale <= 0 {
			return nil, fmt.Errorf("noise scale must be positive, got %g", p.Scale)
		}
		work = noise(workingSize, p.Scale, p.Seed)
	default:
		return nil, fmt.Errorf("unknown map kind %q", p.Kind)
	}

	if p.Size == workingSize {
		return work, nil
	}

	dst := image.NewNRGBA(image.Rect(0, 0, p.Size, p.Size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), work, work.Bounds(), draw.Src, nil)
	return dst, nil
}

func gradient(size int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		v := uint8(float64(y) / float64(size-1) * 255)
		c := color.NRGBA{R: v, G: v, B: v, A: 255}
		for x := 0; x < size; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	return img
}

func noise(size int, scale float64, seed int64) *image.NRGBA {
	// alpha: persistence, beta: lacunarity, n: octaves
	p := perlin.NewPerlin(2.0, 2.0, 3, seed)

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			nx := float64(x) / scale
			ny := float64(y) / scale

			// Noise is roughly in [-1, 1]; normalize to [0, 255].
			val := p.Noise2D(nx, ny)
			normalized := (val + 1.0) / 2.0
			gray := uint8(math.Max(0, math.Min(255, normalized*255)))

			img.SetNRGBA(x, y, color.NRGBA{R: gray, G: gray, B: gray, A: 255})
		}
	}
	return img
}

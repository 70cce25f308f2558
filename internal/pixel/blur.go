package pixel

import (
	"image"

	"github.com/disintegration/gift"
)

// PreBlur applies a Gaussian blur to an image before it is converted to a
// grid. Useful for smoothing hard-edged maps before baking; sigma <= 0
// returns the input unchanged.
func PreBlur(img image.Image, sigma float32) image.Image {
	if sigma <= 0 {
		return img
	}

	g := gift.New(gift.GaussianBlur(sigma))
	dst := image.NewNRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}

package imgconv

import (
	"image"

	"golang.org/x/image/draw"
)

// Scale resamples img to width x height. Nearest-neighbor keeps pixel art
// crisp; everything else goes through Catmull-Rom.
func Scale(img image.Image, width, height int, nearest bool) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	var k draw.Interpolator = draw.CatmullRom
	if nearest {
		k = draw.NearestNeighbor
	}
	k.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	return dst
}

package bitmap

import (
	"image"

	"github.com/disintegration/imaging"
)

// Encode scales src to fill dst, cropping around the center, and thresholds
// it onto the dots. The previous canvas contents are overwritten.
func Encode(src image.Image, dst *Canvas) {
	b := dst.Bounds()
	img := src
	if src.Bounds().Size() != b.Size() {
		img = imaging.Fill(src, b.Dx(), b.Dy(), imaging.Center, imaging.Lanczos)
	}
	gray := imaging.Grayscale(img)
	gb := gray.Bounds()

	for x := 0; x < b.Dx(); x++ {
		for y := 0; y < b.Dy(); y++ {
			dst.Set(x, y, gray.At(gb.Min.X+x, gb.Min.Y+y))
		}
	}
}

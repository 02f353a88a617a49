package stdimg

import (
	"image"
	"image/color"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

func makeSolidNRGBA(w, h int, c color.NRGBA) *image.NRGBA {
	return raster.Solid(w, h, c)
}

// makeGradientNRGBA returns a w x h buffer with varying color and alpha so
// that filters have something to chew on.
func makeGradientNRGBA(w, h int) *image.NRGBA {
	img := raster.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+0] = uint8((x * 255) / max(1, w-1))
			img.Pix[i+1] = uint8((y * 255) / max(1, h-1))
			img.Pix[i+2] = uint8(((x + y) * 37) % 256)
			img.Pix[i+3] = uint8(((x*7 + y*13) % 200) + 55)
		}
	}
	return img
}

func pixelAt(img *image.NRGBA, x, y int) color.NRGBA {
	i := img.PixOffset(x, y)
	return color.NRGBA{R: img.Pix[i], G: img.Pix[i+1], B: img.Pix[i+2], A: img.Pix[i+3]}
}

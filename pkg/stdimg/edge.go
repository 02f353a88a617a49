package stdimg

import (
	"image"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

func isBorder(x, y, w, h int) bool {
	return x == 0 || y == 0 || x == w-1 || y == h-1
}

// LineArt draws black lines where the Sobel magnitude of the luminance
// (color composited over white) exceeds threshold, white elsewhere. The
// outermost ring is always white. colorBlend (percent) tints the drawing
// with the source colors, letting 0.20*colorBlend of the color through the
// lines; photoBlend (percent) then mixes the photo back in. Alpha is
// restored from src.
func LineArt(src *image.NRGBA, threshold, colorBlend, photoBlend float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	plane := make([]float64, w*h)
	for p := range plane {
		i := p * 4
		a := float64(src.Pix[i+3]) / 255
		over := func(c uint8) float64 { return float64(c)*a + 255*(1-a) }
		plane[p] = raster.Luminance(over(src.Pix[i]), over(src.Pix[i+1]), over(src.Pix[i+2]))
	}
	k := raster.Clamp01(colorBlend / 100)
	pb := raster.Clamp01(photoBlend / 100)

	out := raster.New(w, h)
	raster.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				bw := 255.0
				if !isBorder(x, y, w, h) && sobel(plane, w, x, y) > threshold {
					bw = 0
				}
				i := raster.Offset(out, x, y)
				for c := 0; c < 3; c++ {
					o := float64(src.Pix[i+c])
					v := bw
					if k > 0 {
						m := max(bw/255, 0.20)
						v = bw + (o*m-bw)*k
					}
					if pb > 0 {
						v = v*(1-pb) + o*pb
					}
					out.Pix[i+c] = raster.ToByte(v)
				}
				out.Pix[i+3] = src.Pix[i+3]
			}
		}
	})
	return out
}

// FindEdges replaces each color channel with its own Sobel magnitude times
// strength, blended back toward the source by blend percent. The outermost
// ring has no full neighborhood and is black before blending. Alpha is kept.
func FindEdges(src *image.NRGBA, strength, blend float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	bk := raster.Clamp01(blend / 100)
	out := raster.New(w, h)
	raster.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				i := raster.Offset(out, x, y)
				border := isBorder(x, y, w, h)
				for c := 0; c < 3; c++ {
					e := 0.0
					if !border {
						e = sobelChannel(src, c, x, y) * strength
					}
					out.Pix[i+c] = raster.ToByte(raster.Lerp(clamp255(e), float64(src.Pix[i+c]), bk))
				}
				out.Pix[i+3] = src.Pix[i+3]
			}
		}
	})
	return out
}

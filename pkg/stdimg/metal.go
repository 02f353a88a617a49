package stdimg

import (
	"image"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

var steelTint = [3]float64{0.92, 0.96, 1.05}

// Metal embosses src (2*center - 0.5*upper-left - 0.5*lower-right), turns
// the relief into tinted steel with boosted contrast and a specular lift on
// the brightest values, and mixes it over src by intensity percent.
func Metal(src *image.NRGBA, intensity float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	k := raster.Clamp01(intensity / 100)
	if k == 0 {
		return raster.Clone(src)
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := raster.New(w, h)
	raster.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				i := raster.Offset(src, x, y)
				tl := raster.PixelClamped(src, x-1, y-1)
				br := raster.PixelClamped(src, x+1, y+1)
				er := clamp255(2*float64(src.Pix[i]) - 0.5*float64(tl.R) - 0.5*float64(br.R))
				eg := clamp255(2*float64(src.Pix[i+1]) - 0.5*float64(tl.G) - 0.5*float64(br.G))
				eb := clamp255(2*float64(src.Pix[i+2]) - 0.5*float64(tl.B) - 0.5*float64(br.B))
				g := raster.Luminance(er, eg, eb)
				for c := 0; c < 3; c++ {
					v := (g*steelTint[c]-128)*1.4 + 128
					if g > 190 {
						v += (g - 190) * 1.6
					}
					out.Pix[i+c] = raster.ToByte(raster.Lerp(float64(src.Pix[i+c]), clamp255(v), k))
				}
				out.Pix[i+3] = src.Pix[i+3]
			}
		}
	})
	return out
}

package stdimg

import (
	"image"
	"math"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// blendChannel combines a halftone value h with the original o under mode.
func blendChannel(mode BlendMode, h, o float64) float64 {
	switch mode {
	case BlendMultiply:
		return h * o / 255
	case BlendDarken:
		return math.Min(h, o)
	case BlendOverlay:
		if o < 128 {
			return 2 * o * h / 255
		}
		return 255 - 2*(255-o)*(255-h)/255
	}
	return h
}

// Halftone renders src as dots on a grid of pitch size rotated by angle
// degrees. Each cell samples the source at its center; the dot radius grows
// with sqrt(darkness) up to half the pitch. Dots take the sampled color in
// color mode and are black otherwise, on a white ground. The dot layer is
// then combined with src by mode and pulled toward the source colors by
// colorBlend percent. Alpha is kept.
func Halftone(src *image.NRGBA, size, angle float64, colorMode bool, colorBlend float64, mode BlendMode) *image.NRGBA {
	if src == nil {
		return nil
	}
	size = math.Max(size, 2)
	theta := angle * math.Pi / 180
	cos, sin := math.Cos(theta), math.Sin(theta)
	k := raster.Clamp01(colorBlend / 100)
	w, h := src.Rect.Dx(), src.Rect.Dy()

	out := raster.New(w, h)
	raster.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				fx, fy := float64(x), float64(y)
				u := fx*cos + fy*sin
				v := -fx*sin + fy*cos
				cu := (math.Floor(u/size) + 0.5) * size
				cv := (math.Floor(v/size) + 0.5) * size
				sx := raster.ClampInt(int(raster.Round(cu*cos-cv*sin)), 0, w-1)
				sy := raster.ClampInt(int(raster.Round(cu*sin+cv*cos)), 0, h-1)
				si := raster.Offset(src, sx, sy)

				lum := raster.LuminanceAt(src.Pix, si)
				dark := (1 - lum/255) * float64(src.Pix[si+3]) / 255
				radius := math.Min(size/2, size*0.6*math.Sqrt(dark))

				dot := [3]float64{255, 255, 255}
				if math.Hypot(u-cu, v-cv) <= radius && radius > 0 {
					if colorMode {
						dot = [3]float64{float64(src.Pix[si]), float64(src.Pix[si+1]), float64(src.Pix[si+2])}
					} else {
						dot = [3]float64{0, 0, 0}
					}
				}

				i := raster.Offset(out, x, y)
				for c := 0; c < 3; c++ {
					o := float64(src.Pix[i+c])
					v := blendChannel(mode, dot[c], o)
					out.Pix[i+c] = raster.ToByte(v + (o-v)*k)
				}
				out.Pix[i+3] = src.Pix[i+3]
			}
		}
	})
	return out
}

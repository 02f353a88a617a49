package stdimg

import (
	"image"
	"math"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// fadePosition returns the normalized position t in [0,1] of (x,y) along dir.
func fadePosition(dir FadeDirection, x, y, w, h int) float64 {
	norm := func(v, n int) float64 {
		if n <= 1 {
			return 0
		}
		return float64(v) / float64(n-1)
	}
	switch dir {
	case FadeLeft:
		return 1 - norm(x, w)
	case FadeDown:
		return norm(y, h)
	case FadeUp:
		return 1 - norm(y, h)
	case FadeRadial:
		cx, cy := float64(w-1)/2, float64(h-1)/2
		dmax := math.Hypot(cx, cy)
		if dmax == 0 {
			return 0
		}
		return math.Hypot(float64(x)-cx, float64(y)-cy) / dmax
	}
	return norm(x, w)
}

// GradientFade multiplies alpha by 1 - t*amount/100 where t runs from 0 to
// 1 along dir. Color channels are untouched.
func GradientFade(src *image.NRGBA, dir FadeDirection, amount float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	out := raster.Clone(src)
	if amount <= 0 {
		return out
	}
	s := raster.Clamp01(amount / 100)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	raster.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				i := raster.Offset(out, x, y) + 3
				f := 1 - fadePosition(dir, x, y, w, h)*s
				out.Pix[i] = raster.ToByte(raster.Round(float64(src.Pix[i]) * f))
			}
		}
	})
	return out
}

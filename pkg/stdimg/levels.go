package stdimg

import (
	"image"
	"math"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// levelsCurve maps v through the black/white window and gamma into [0,255].
func levelsCurve(v, black, white, invGamma float64) float64 {
	n := raster.Clamp01((v - black) / (white - black))
	return math.Pow(n, invGamma) * 255
}

// ApplyLevels remaps channels through the black/white window with
// midtone gamma. In mono mode the pixel's luminance is remapped and written
// to all three channels. A collapsed window (white <= black) returns a copy.
func ApplyLevels(src *image.NRGBA, black, white, gamma float64, mono bool) *image.NRGBA {
	if src == nil {
		return nil
	}
	if white <= black {
		return raster.Clone(src)
	}
	invGamma := 1.0
	if gamma > 0 {
		invGamma = 1.0 / gamma
	}
	if mono {
		return mapRGB(src, func(r, g, b float64) (float64, float64, float64) {
			v := levelsCurve(raster.Luminance(r, g, b), black, white, invGamma)
			return v, v, v
		})
	}

	var lut [256]uint8
	for i := range lut {
		lut[i] = raster.ToByte(levelsCurve(float64(i), black, white, invGamma))
	}
	out := raster.Clone(src)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] = lut[out.Pix[i+0]]
		out.Pix[i+1] = lut[out.Pix[i+1]]
		out.Pix[i+2] = lut[out.Pix[i+2]]
	}
	return out
}

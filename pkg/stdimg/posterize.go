package stdimg

import (
	"image"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// quantize snaps v to the nearest of levels evenly spaced values in [0,255].
func quantize(v float64, levels int) float64 {
	step := 255.0 / float64(levels-1)
	return raster.Round(raster.Round(v/step) * step)
}

// Posterize reduces each color channel to `levels` values. Fewer than two
// levels returns a copy; 256 levels is the identity.
func Posterize(src *image.NRGBA, levels int) *image.NRGBA {
	if src == nil {
		return nil
	}
	if levels < 2 {
		return raster.Clone(src)
	}
	levels = min(levels, 256)
	return mapRGB(src, func(r, g, b float64) (float64, float64, float64) {
		return quantize(r, levels), quantize(g, levels), quantize(b, levels)
	})
}

var (
	duotoneDark  = [3]float64{20, 10, 80}
	duotoneLight = [3]float64{255, 200, 50}
)

// styleRecipe returns the fully styled color for one pixel.
func styleRecipe(style PosterStyle, r, g, b float64) (float64, float64, float64) {
	switch style {
	case StyleNeon:
		r, g, b = quantize(r, 4), quantize(g, 4), quantize(b, 4)
		h, s, l := raster.RGBToHSL(r, g, b)
		r8, g8, b8 := raster.HSLToRGB(h, min(1, s*1.8+0.2), 0.15+0.7*l)
		return float64(r8), float64(g8), float64(b8)
	case StyleRetro:
		r, g, b = quantize(r, 6), quantize(g, 6), quantize(b, 6)
		r = clamp255(r*1.08 + 10)
		g = clamp255(g*0.98 + 5)
		b = clamp255(b * 0.82)
		return r*0.9 + 12, g*0.9 + 12, b*0.9 + 12
	case StylePastel:
		r, g, b = quantize(r, 5), quantize(g, 5), quantize(b, 5)
		lum := raster.Luminance(r, g, b)
		r, g, b = r+(lum-r)*0.2, g+(lum-g)*0.2, b+(lum-b)*0.2
		return r + (255-r)*0.35, g + (255-g)*0.35, b + (255-b)*0.35
	case StyleDuotone:
		t := raster.Luminance(r, g, b) / 255
		return raster.Lerp(duotoneDark[0], duotoneLight[0], t),
			raster.Lerp(duotoneDark[1], duotoneLight[1], t),
			raster.Lerp(duotoneDark[2], duotoneLight[2], t)
	}
	return r, g, b
}

// PosterizeWithStyle applies one of the fixed posterize recipes and blends
// the result over src by intensity percent.
func PosterizeWithStyle(src *image.NRGBA, style PosterStyle, intensity float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	if style == StyleNone || intensity <= 0 {
		return raster.Clone(src)
	}
	k := raster.Clamp01(intensity / 100)
	return mapRGB(src, func(r, g, b float64) (float64, float64, float64) {
		sr, sg, sb := styleRecipe(style, r, g, b)
		return raster.Lerp(r, sr, k), raster.Lerp(g, sg, k), raster.Lerp(b, sb, k)
	})
}

// SeparateColors posterizes each channel with its own level count and
// mixes the result over src by mix percent.
func SeparateColors(src *image.NRGBA, redLevels, greenLevels, blueLevels int, mix float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	rl := raster.ClampInt(redLevels, 2, 256)
	gl := raster.ClampInt(greenLevels, 2, 256)
	bl := raster.ClampInt(blueLevels, 2, 256)
	k := raster.Clamp01(mix / 100)
	return mapRGB(src, func(r, g, b float64) (float64, float64, float64) {
		return raster.Lerp(r, quantize(r, rl), k), raster.Lerp(g, quantize(g, gl), k), raster.Lerp(b, quantize(b, bl), k)
	})
}

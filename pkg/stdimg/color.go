package stdimg

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// mapRGB applies fn to the color channels of every pixel, row-parallel.
// Alpha is copied from src.
func mapRGB(src *image.NRGBA, fn func(r, g, b float64) (float64, float64, float64)) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := raster.New(w, h)
	raster.Rows(h, func(y0, y1 int) {
		for i := y0 * src.Stride; i < y1*src.Stride; i += 4 {
			r, g, b := fn(float64(src.Pix[i]), float64(src.Pix[i+1]), float64(src.Pix[i+2]))
			out.Pix[i+0] = raster.ToByte(r)
			out.Pix[i+1] = raster.ToByte(g)
			out.Pix[i+2] = raster.ToByte(b)
			out.Pix[i+3] = src.Pix[i+3]
		}
	})
	return out
}

// AdjustBrightnessContrast scales each channel around 128 by
// 259(c+255)/(255(259-c)) and then adds brightness.
func AdjustBrightnessContrast(src *image.NRGBA, brightness, contrast float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	f := 259 * (contrast + 255) / (255 * (259 - contrast))
	return mapRGB(src, func(r, g, b float64) (float64, float64, float64) {
		return f*(r-128) + 128 + brightness, f*(g-128) + 128 + brightness, f*(b-128) + 128 + brightness
	})
}

// AdjustHueSaturation warms (temperature > 0) or cools the image by moving
// red and blue 0.8 per unit in opposite directions, then rotates hue by
// hue degrees and scales HSL saturation by 1+saturation/100.
func AdjustHueSaturation(src *image.NRGBA, hue, saturation, temperature float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	shift := temperature * 0.8
	hsl := hue != 0 || saturation != 0
	sf := 1 + saturation/100
	return mapRGB(src, func(r, g, b float64) (float64, float64, float64) {
		r = clamp255(r + shift)
		b = clamp255(b - shift)
		if !hsl {
			return r, g, b
		}
		h, s, l := raster.RGBToHSL(r, g, b)
		r8, g8, b8 := raster.HSLToRGB(h+hue, raster.Clamp01(s*sf), l)
		return float64(r8), float64(g8), float64(b8)
	})
}

// InvertColors maps every color channel to 255-v.
func InvertColors(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	out := raster.Clone(src)
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] = 255 - out.Pix[i+0]
		out.Pix[i+1] = 255 - out.Pix[i+1]
		out.Pix[i+2] = 255 - out.Pix[i+2]
	}
	return out
}

// ShiftChannels pushes color balance along three opposing axes; each
// slider value v moves channels by v*1.27.
func ShiftChannels(src *image.NRGBA, redGreen, yellowBlue, pinkCyan float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	rg, yb, pc := redGreen*1.27, yellowBlue*1.27, pinkCyan*1.27
	dr := rg + yb/2 + pc/2
	dg := -rg + yb/2 - pc
	db := -yb + pc/2
	return mapRGB(src, func(r, g, b float64) (float64, float64, float64) {
		return r + dr, g + dg, b + db
	})
}

// AdjustLayer scales each channel's distance from luminance by
// 1+saturation/100 (0 keeps the color, -100 gives gray) and then rotates
// hue by hueRotate degrees.
func AdjustLayer(src *image.NRGBA, hueRotate, saturation float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	k := max(0, 1+saturation/100)
	return mapRGB(src, func(r, g, b float64) (float64, float64, float64) {
		if k != 1 {
			lum := raster.Luminance(r, g, b)
			r = clamp255(lum + (r-lum)*k)
			g = clamp255(lum + (g-lum)*k)
			b = clamp255(lum + (b-lum)*k)
		}
		if hueRotate == 0 {
			return r, g, b
		}
		h, s, l := raster.RGBToHSL(r, g, b)
		r8, g8, b8 := raster.HSLToRGB(h+hueRotate, s, l)
		return float64(r8), float64(g8), float64(b8)
	})
}

func clamp255(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

var namedColors = map[string]string{
	"black":   "#000000",
	"white":   "#ffffff",
	"red":     "#ff0000",
	"green":   "#008000",
	"lime":    "#00ff00",
	"blue":    "#0000ff",
	"yellow":  "#ffff00",
	"cyan":    "#00ffff",
	"magenta": "#ff00ff",
	"orange":  "#ffa500",
	"purple":  "#800080",
	"pink":    "#ffc0cb",
	"gray":    "#808080",
	"grey":    "#808080",
	"navy":    "#000080",
	"teal":    "#008080",
	"gold":    "#ffd700",
}

// ParseColor accepts a handful of CSS color names, #rgb and #rrggbb.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("empty color")
	}
	if hex, ok := namedColors[s]; ok {
		s = hex
	}
	hex := strings.TrimPrefix(s, "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("unsupported color format: %s", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

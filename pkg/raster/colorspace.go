package raster

import "math"

// Luminance is the Rec. 601 weighting used by every luminance-driven filter.
func Luminance(r, g, b float64) float64 {
	return 0.299*r + 0.587*g + 0.114*b
}

// LuminanceAt returns the luminance of the pixel at Pix index i.
func LuminanceAt(pix []uint8, i int) float64 {
	return Luminance(float64(pix[i]), float64(pix[i+1]), float64(pix[i+2]))
}

// RGBToHSL converts 8-bit channels to hue in [0,360) and saturation and
// lightness in [0,1]. Achromatic input has zero hue and saturation.
func RGBToHSL(r, g, b float64) (h, s, l float64) {
	r /= 255
	g /= 255
	b /= 255
	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	l = (max + min) / 2
	if max == min {
		return 0, 0, l
	}
	d := max - min
	if l > 0.5 {
		s = d / (2.0 - max - min)
	} else {
		s = d / (max + min)
	}
	switch max {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60
	if h >= 360 {
		h -= 360
	}
	return h, s, l
}

func hueToRgb(p, q, t float64) float64 {
	if t < 0 {
		t += 1
	}
	if t > 1 {
		t -= 1
	}
	if t < 1.0/6.0 {
		return p + (q-p)*6*t
	}
	if t < 1.0/2.0 {
		return q
	}
	if t < 2.0/3.0 {
		return p + (q-p)*(2.0/3.0-t)*6
	}
	return p
}

// HSLToRGB converts hue (degrees, any value; taken modulo 360), saturation
// and lightness to rounded 8-bit channels.
func HSLToRGB(h, s, l float64) (r, g, b uint8) {
	if s == 0 {
		v := ToByte(Round(l * 255))
		return v, v, v
	}
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	h /= 360
	var q float64
	if l < 0.5 {
		q = l * (1 + s)
	} else {
		q = l + s - l*s
	}
	p := 2*l - q
	r = ToByte(Round(hueToRgb(p, q, h+1.0/3.0) * 255))
	g = ToByte(Round(hueToRgb(p, q, h) * 255))
	b = ToByte(Round(hueToRgb(p, q, h-1.0/3.0) * 255))
	return
}

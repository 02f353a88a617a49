package stdimg

import (
	"image"
	"math"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// grain returns a stable pseudo-random value in [-1,1] for (x,y).
func grain(x, y int) float64 {
	h := uint32(x)*374761393 + uint32(y)*668265263
	h = (h ^ (h >> 13)) * 1274126177
	h ^= h >> 16
	return float64(h)/float64(math.MaxUint32)*2 - 1
}

func posMod(a, m int) int {
	r := a % m
	if r < 0 {
		r += m
	}
	return r
}

// ApplyTexture overlays one of the brush/paper textures. scale is the
// pattern period in pixels and intensity (percent) its strength. Alpha is
// kept.
func ApplyTexture(src *image.NRGBA, typ TextureType, intensity float64, scale int) *image.NRGBA {
	if src == nil {
		return nil
	}
	k := raster.Clamp01(intensity / 100)
	if typ == TextureNone || k == 0 {
		return raster.Clone(src)
	}
	p := max(scale, 2)
	switch typ {
	case TextureCanvas:
		return canvasWeave(src, p, k)
	case TextureWatercolor:
		return watercolor(src, p, k)
	case TextureCrayon:
		return crayon(src, p, k)
	case TextureImpasto:
		return impasto(src, k)
	case TextureCrosshatch:
		return crosshatch(src, p)
	case TextureStipple:
		return stipple(src, p, k)
	}
	return raster.Clone(src)
}

// perPixel runs fn for every pixel with its coordinates; fn returns the new
// color channels.
func perPixel(src *image.NRGBA, fn func(x, y, i int) (float64, float64, float64)) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := raster.New(w, h)
	raster.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				i := raster.Offset(src, x, y)
				r, g, b := fn(x, y, i)
				out.Pix[i+0] = raster.ToByte(r)
				out.Pix[i+1] = raster.ToByte(g)
				out.Pix[i+2] = raster.ToByte(b)
				out.Pix[i+3] = src.Pix[i+3]
			}
		}
	})
	return out
}

func rgbAt(img *image.NRGBA, i int) (float64, float64, float64) {
	return float64(img.Pix[i]), float64(img.Pix[i+1]), float64(img.Pix[i+2])
}

// canvasWeave alternates horizontal and vertical sinusoidal threads in a
// checkerboard of p-sized blocks.
func canvasWeave(src *image.NRGBA, p int, k float64) *image.NRGBA {
	amp := 0.6 * k * 128
	return perPixel(src, func(x, y, i int) (float64, float64, float64) {
		var wave float64
		if (x/p+y/p)%2 == 0 {
			wave = math.Sin(2 * math.Pi * float64(x) / float64(p))
		} else {
			wave = math.Sin(2 * math.Pi * float64(y) / float64(p))
		}
		d := wave * amp
		r, g, b := rgbAt(src, i)
		return r + d, g + d, b + d
	})
}

// watercolor bleeds colors with a soft blur, pools pigment along edges and
// lifts the paper tone.
func watercolor(src *image.NRGBA, p int, k float64) *image.NRGBA {
	blurred := GaussianBlur(src, float64(p)/2)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	plane := lumaPlane(blurred)
	return perPixel(src, func(x, y, i int) (float64, float64, float64) {
		edge := 0.0
		if !isBorder(x, y, w, h) {
			edge = raster.Clamp01(sobel(plane, w, x, y) / 255)
		}
		dark := 1 - 0.25*k*edge
		var c [3]float64
		for ch := 0; ch < 3; ch++ {
			v := raster.Lerp(float64(src.Pix[i+ch]), float64(blurred.Pix[i+ch]), 0.6*k) * dark
			c[ch] = v + (255-v)*0.1*k
		}
		return c[0], c[1], c[2]
	})
}

// crayon darkens diagonal hatch bands and adds waxy grain.
func crayon(src *image.NRGBA, p int, k float64) *image.NRGBA {
	return perPixel(src, func(x, y, i int) (float64, float64, float64) {
		f := 1.0
		if (x+y)%p < p/2 {
			f = 1 - 0.2*k
		}
		n := grain(x, y) * 24 * k
		r, g, b := rgbAt(src, i)
		return r*f + n, g*f + n, b*f + n
	})
}

// impasto lights and shades thick paint along the luminance gradient.
func impasto(src *image.NRGBA, k float64) *image.NRGBA {
	lumAt := func(x, y int) float64 {
		c := raster.PixelClamped(src, x, y)
		return raster.Luminance(float64(c.R), float64(c.G), float64(c.B))
	}
	return perPixel(src, func(x, y, i int) (float64, float64, float64) {
		relief := (lumAt(x+1, y+1) - lumAt(x-1, y-1)) * k
		r, g, b := rgbAt(src, i)
		return r + relief, g + relief, b + relief
	})
}

// crosshatch inks up to four line layers, each gated by a darkness band,
// on white paper. The result is pure black and white.
func crosshatch(src *image.NRGBA, p int) *image.NRGBA {
	return perPixel(src, func(x, y, i int) (float64, float64, float64) {
		d := 1 - raster.LuminanceAt(src.Pix, i)/255
		ink := (d > 0.2 && posMod(x+y, p) == 0) ||
			(d > 0.4 && posMod(x-y, p) == 0) ||
			(d > 0.6 && x%p == 0) ||
			(d > 0.8 && y%p == 0)
		if ink {
			return 0, 0, 0
		}
		return 255, 255, 255
	})
}

// stipple draws a black dot per p-sized cell with radius p/2*sqrt(darkness)
// and mixes the dot layer over src by k.
func stipple(src *image.NRGBA, p int, k float64) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	half := float64(p) / 2
	return perPixel(src, func(x, y, i int) (float64, float64, float64) {
		cx := (x/p)*p + p/2
		cy := (y/p)*p + p/2
		ci := raster.Offset(src, min(cx, w-1), min(cy, h-1))
		d := 1 - raster.LuminanceAt(src.Pix, ci)/255
		radius := half * math.Sqrt(d)
		v := 255.0
		if radius > 0 && math.Hypot(float64(x-cx), float64(y-cy)) <= radius {
			v = 0
		}
		r, g, b := rgbAt(src, i)
		return raster.Lerp(r, v, k), raster.Lerp(g, v, k), raster.Lerp(b, v, k)
	})
}

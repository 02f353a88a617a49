package stdimg

import (
	"image"
	"math"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// pico8 is the 16-color PICO-8 palette.
var pico8 = [16][3]uint8{
	{0x00, 0x00, 0x00}, {0x1d, 0x2b, 0x53}, {0x7e, 0x25, 0x53}, {0x00, 0x87, 0x51},
	{0xab, 0x52, 0x36}, {0x5f, 0x57, 0x4f}, {0xc2, 0xc3, 0xc7}, {0xff, 0xf1, 0xe8},
	{0xff, 0x00, 0x4d}, {0xff, 0xa3, 0x00}, {0xff, 0xec, 0x27}, {0x00, 0xe4, 0x36},
	{0x29, 0xad, 0xff}, {0x83, 0x76, 0x9c}, {0xff, 0x77, 0xa8}, {0xff, 0xcc, 0xaa},
}

// nearestPico8 returns the palette entry closest to (r,g,b) by squared RGB
// distance; the lowest index wins ties.
func nearestPico8(r, g, b float64) [3]uint8 {
	best, bestD := 0, math.Inf(1)
	for i, p := range pico8 {
		dr, dg, db := r-float64(p[0]), g-float64(p[1]), b-float64(p[2])
		if d := dr*dr + dg*dg + db*db; d < bestD {
			best, bestD = i, d
		}
	}
	return pico8[best]
}

// ApplyGame runs one of the game stylizations and mixes it over src by
// intensity percent.
func ApplyGame(src *image.NRGBA, typ GameType, pixelSize int, intensity float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	k := raster.Clamp01(intensity / 100)
	if typ == GameNone || k == 0 {
		return raster.Clone(src)
	}
	var styled *image.NRGBA
	switch typ {
	case GameMosaic:
		styled = blockMeans(src, max(pixelSize, 1), nil)
	case GameEightBit:
		styled = blockMeans(src, max(pixelSize, 1), nearestPico8)
	case GameCRT:
		return crt(src, k)
	case GameNeonGlow:
		styled = neonGlow(src)
	default:
		return raster.Clone(src)
	}
	if k == 1 {
		return styled
	}
	out := raster.New(src.Rect.Dx(), src.Rect.Dy())
	for i := range out.Pix {
		out.Pix[i] = raster.ToByte(raster.Lerp(float64(src.Pix[i]), float64(styled.Pix[i]), k))
	}
	return out
}

// blockMeans fills size x size blocks with the mean of all four channels,
// optionally snapping the mean color through palette.
func blockMeans(src *image.NRGBA, size int, palette func(r, g, b float64) [3]uint8) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := raster.New(w, h)
	for by := 0; by < h; by += size {
		for bx := 0; bx < w; bx += size {
			x1, y1 := min(bx+size, w), min(by+size, h)
			var sum [4]float64
			for y := by; y < y1; y++ {
				for x := bx; x < x1; x++ {
					i := raster.Offset(src, x, y)
					for c := 0; c < 4; c++ {
						sum[c] += float64(src.Pix[i+c])
					}
				}
			}
			n := float64((x1 - bx) * (y1 - by))
			var px [4]uint8
			for c := 0; c < 4; c++ {
				px[c] = raster.ToByte(sum[c] / n)
			}
			if palette != nil {
				p := palette(sum[0]/n, sum[1]/n, sum[2]/n)
				px[0], px[1], px[2] = p[0], p[1], p[2]
			}
			for y := by; y < y1; y++ {
				for x := bx; x < x1; x++ {
					copy(out.Pix[raster.Offset(out, x, y):], px[:])
				}
			}
		}
	}
	return out
}

// crt bleeds red from the left neighbor and blue from the right, darkens
// odd scanlines and adds a vignette.
func crt(src *image.NRGBA, k float64) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	cx, cy := float64(w-1)/2, float64(h-1)/2
	dmax := math.Hypot(cx, cy)
	out := raster.New(w, h)
	raster.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			line := 1.0
			if y%2 == 1 {
				line = 1 - 0.35*k
			}
			for x := 0; x < w; x++ {
				i := raster.Offset(src, x, y)
				left := raster.PixelClamped(src, x-1, y)
				right := raster.PixelClamped(src, x+1, y)
				r := raster.Lerp(float64(src.Pix[i]), float64(left.R), k)
				g := float64(src.Pix[i+1])
				b := raster.Lerp(float64(src.Pix[i+2]), float64(right.B), k)
				vig := 1.0
				if dmax > 0 {
					d := math.Hypot(float64(x)-cx, float64(y)-cy) / dmax
					vig = 1 - 0.5*k*d*d
				}
				f := line * vig
				out.Pix[i+0] = raster.ToByte(r * f)
				out.Pix[i+1] = raster.ToByte(g * f)
				out.Pix[i+2] = raster.ToByte(b * f)
				out.Pix[i+3] = src.Pix[i+3]
			}
		}
	})
	return out
}

// neonGlow lights luminance edges in the fully saturated hue of each pixel,
// blooms them with a radius 4 gaussian and lays both over a dimmed base.
func neonGlow(src *image.NRGBA) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	plane := lumaPlane(src)
	edges := raster.New(w, h)
	raster.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				i := raster.Offset(src, x, y)
				edges.Pix[i+3] = src.Pix[i+3]
				if isBorder(x, y, w, h) {
					continue
				}
				e := raster.Clamp01(sobel(plane, w, x, y) / 255)
				hue, _, _ := raster.RGBToHSL(rgbAt(src, i))
				r, g, b := raster.HSLToRGB(hue, 1, 0.5)
				edges.Pix[i+0] = raster.ToByte(float64(r) * e)
				edges.Pix[i+1] = raster.ToByte(float64(g) * e)
				edges.Pix[i+2] = raster.ToByte(float64(b) * e)
			}
		}
	})
	bloom := GaussianBlur(edges, 4)
	out := raster.New(w, h)
	for i := 0; i < len(out.Pix); i += 4 {
		for c := 0; c < 3; c++ {
			v := float64(src.Pix[i+c])*0.2 + float64(edges.Pix[i+c]) + float64(bloom.Pix[i+c])*1.5
			out.Pix[i+c] = raster.ToByte(v)
		}
		out.Pix[i+3] = src.Pix[i+3]
	}
	return out
}

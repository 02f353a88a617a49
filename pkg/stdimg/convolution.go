package stdimg

import (
	"image"
	"math"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// gaussianKernel1D returns normalized weights exp(-x²/2σ²) with σ = radius
// and half-width ceil(2.5*radius).
func gaussianKernel1D(radius float64) ([]float64, int) {
	if radius <= 0 {
		return []float64{1.0}, 0
	}
	half := int(math.Ceil(radius * 2.5))
	kern := make([]float64, half*2+1)
	sum := 0.0
	for i := -half; i <= half; i++ {
		v := math.Exp(-float64(i*i) / (2 * radius * radius))
		kern[i+half] = v
		sum += v
	}
	for i := range kern {
		kern[i] /= sum
	}
	return kern, half
}

// boxKernel1D returns 2r+1 equal weights.
func boxKernel1D(r int) []float64 {
	kern := make([]float64, 2*r+1)
	for i := range kern {
		kern[i] = 1 / float64(len(kern))
	}
	return kern
}

// separable runs kern horizontally then vertically over the color channels,
// clamping taps to the buffer edges. Alpha is copied from src.
func separable(src *image.NRGBA, kern []float64) *image.NRGBA {
	half := len(kern) / 2
	w, h := src.Rect.Dx(), src.Rect.Dy()
	tmp := make([]float64, w*h*3)

	raster.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			row := y * src.Stride
			for x := 0; x < w; x++ {
				var sr, sg, sb float64
				for k := -half; k <= half; k++ {
					i := row + raster.ClampInt(x+k, 0, w-1)*4
					wt := kern[k+half]
					sr += float64(src.Pix[i+0]) * wt
					sg += float64(src.Pix[i+1]) * wt
					sb += float64(src.Pix[i+2]) * wt
				}
				t := (y*w + x) * 3
				tmp[t+0], tmp[t+1], tmp[t+2] = sr, sg, sb
			}
		}
	})

	out := raster.New(w, h)
	raster.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				var sr, sg, sb float64
				for k := -half; k <= half; k++ {
					t := (raster.ClampInt(y+k, 0, h-1)*w + x) * 3
					wt := kern[k+half]
					sr += tmp[t+0] * wt
					sg += tmp[t+1] * wt
					sb += tmp[t+2] * wt
				}
				i := raster.Offset(out, x, y)
				out.Pix[i+0] = raster.ToByte(sr)
				out.Pix[i+1] = raster.ToByte(sg)
				out.Pix[i+2] = raster.ToByte(sb)
				out.Pix[i+3] = src.Pix[i+3]
			}
		}
	})
	return out
}

// GaussianBlur applies a separable gaussian blur of the given radius.
// Non-positive radii return a copy.
func GaussianBlur(src *image.NRGBA, radius float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	if radius <= 0 {
		return raster.Clone(src)
	}
	kern, _ := gaussianKernel1D(radius)
	return separable(src, kern)
}

// BoxBlur averages a (2r+1)-wide window horizontally then vertically with
// r = round(radius).
func BoxBlur(src *image.NRGBA, radius float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	r := int(raster.Round(radius))
	if r <= 0 {
		return raster.Clone(src)
	}
	return separable(src, boxKernel1D(r))
}

// motionSteps is the motion blur sample count min(round(2*radius), 40),
// at least 1.
func motionSteps(radius float64) int {
	return max(int(math.Min(raster.Round(radius*2), 40)), 1)
}

// radialSteps is the radial blur sample count clamp(round(1.5*radius), 4, 30).
func radialSteps(radius float64) int {
	return raster.ClampInt(int(raster.Round(radius*1.5)), 4, 30)
}

// MotionBlur averages motionSteps(radius) bilinear samples spread over
// [-radius/2, radius/2] along angle (degrees).
func MotionBlur(src *image.NRGBA, radius, angle float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	if radius <= 0 {
		return raster.Clone(src)
	}
	n := motionSteps(radius)
	theta := angle * math.Pi / 180
	dx, dy := math.Cos(theta), math.Sin(theta)
	offsets := make([]float64, n)
	for i := range offsets {
		if n == 1 {
			continue
		}
		offsets[i] = -radius/2 + radius*float64(i)/float64(n-1)
	}

	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := raster.New(w, h)
	raster.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				var sr, sg, sb float64
				for _, t := range offsets {
					r, g, b, _ := raster.Bilinear(src, float64(x)+t*dx, float64(y)+t*dy)
					sr += r
					sg += g
					sb += b
				}
				i := raster.Offset(out, x, y)
				out.Pix[i+0] = raster.ToByte(sr / float64(n))
				out.Pix[i+1] = raster.ToByte(sg / float64(n))
				out.Pix[i+2] = raster.ToByte(sb / float64(n))
				out.Pix[i+3] = src.Pix[i+3]
			}
		}
	})
	return out
}

// RadialBlur averages radialSteps(radius) copies of src scaled about the
// center by 1 ± (radius/100)/2.
func RadialBlur(src *image.NRGBA, radius float64) *image.NRGBA {
	if src == nil {
		return nil
	}
	if radius <= 0 {
		return raster.Clone(src)
	}
	n := radialSteps(radius)
	scales := make([]float64, n)
	for i := range scales {
		scales[i] = 1 + (radius/100)*(float64(i)/float64(n-1)-0.5)
	}

	w, h := src.Rect.Dx(), src.Rect.Dy()
	cx, cy := float64(w-1)/2, float64(h-1)/2
	out := raster.New(w, h)
	raster.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				var sr, sg, sb float64
				for _, s := range scales {
					r, g, b, _ := raster.Bilinear(src, cx+(float64(x)-cx)/s, cy+(float64(y)-cy)/s)
					sr += r
					sg += g
					sb += b
				}
				i := raster.Offset(out, x, y)
				out.Pix[i+0] = raster.ToByte(sr / float64(n))
				out.Pix[i+1] = raster.ToByte(sg / float64(n))
				out.Pix[i+2] = raster.ToByte(sb / float64(n))
				out.Pix[i+3] = src.Pix[i+3]
			}
		}
	})
	return out
}

// lumaPlane returns the per-pixel luminance of src.
func lumaPlane(src *image.NRGBA) []float64 {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	lum := make([]float64, w*h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			lum[y*w+x] = raster.LuminanceAt(src.Pix, raster.Offset(src, x, y))
		}
	}
	return lum
}

// sobel returns the gradient magnitude of plane at interior (x,y); callers
// handle the outermost ring themselves.
func sobel(plane []float64, w, x, y int) float64 {
	at := func(dx, dy int) float64 { return plane[(y+dy)*w+x+dx] }
	gx := -at(-1, -1) - 2*at(-1, 0) - at(-1, 1) + at(1, -1) + 2*at(1, 0) + at(1, 1)
	gy := -at(-1, -1) - 2*at(0, -1) - at(1, -1) + at(-1, 1) + 2*at(0, 1) + at(1, 1)
	return math.Sqrt(gx*gx + gy*gy)
}

// sobelChannel is sobel over one interleaved channel of src.
func sobelChannel(src *image.NRGBA, c, x, y int) float64 {
	at := func(dx, dy int) float64 {
		return float64(src.Pix[raster.Offset(src, x+dx, y+dy)+c])
	}
	gx := -at(-1, -1) - 2*at(-1, 0) - at(-1, 1) + at(1, -1) + 2*at(1, 0) + at(1, 1)
	gy := -at(-1, -1) - 2*at(0, -1) - at(1, -1) + at(-1, 1) + 2*at(0, 1) + at(1, 1)
	return math.Sqrt(gx*gx + gy*gy)
}

package stdimg

import (
	"image"
	"math"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

const (
	oilFullRadius   = 5
	oilMaxRadius    = 10
	knifeFullLength = 20
	knifeMaxLength  = 40
)

// modeBins accumulates neighborhood colors by bucket and reports the mean
// color of the most populated bucket. The lowest bucket wins ties.
type modeBins struct {
	count      []int
	sr, sg, sb []float64
}

func newModeBins(n int) *modeBins {
	return &modeBins{
		count: make([]int, n),
		sr:    make([]float64, n),
		sg:    make([]float64, n),
		sb:    make([]float64, n),
	}
}

func (m *modeBins) reset() {
	for i := range m.count {
		m.count[i] = 0
		m.sr[i], m.sg[i], m.sb[i] = 0, 0, 0
	}
}

func (m *modeBins) add(bin int, r, g, b float64) {
	m.count[bin]++
	m.sr[bin] += r
	m.sg[bin] += g
	m.sb[bin] += b
}

func (m *modeBins) mode() (r, g, b float64, ok bool) {
	best := -1
	for i, c := range m.count {
		if c > 0 && (best < 0 || c > m.count[best]) {
			best = i
		}
	}
	if best < 0 {
		return 0, 0, 0, false
	}
	n := float64(m.count[best])
	return m.sr[best] / n, m.sg[best] / n, m.sb[best] / n, true
}

// strideOffsets returns 0, ±stride, ±2*stride, ... within [-r, r].
func strideOffsets(r, stride int) []int {
	var offs []int
	for d := -(r / stride) * stride; d <= r; d += stride {
		offs = append(offs, d)
	}
	return offs
}

// OilPaint replaces each pixel with the mean color of the most common
// luminance bucket in its (2r+1)² window, bucket = floor(lum*levels/256).
// Radii above 5 (up to 10) sample the window with stride 2.
func OilPaint(src *image.NRGBA, radius, levels int) *image.NRGBA {
	if src == nil {
		return nil
	}
	if radius <= 0 {
		return raster.Clone(src)
	}
	radius = min(radius, oilMaxRadius)
	levels = raster.ClampInt(levels, 2, 256)
	stride := 1
	if radius > oilFullRadius {
		stride = 2
	}
	offs := strideOffsets(radius, stride)

	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := raster.New(w, h)
	raster.Rows(h, func(y0, y1 int) {
		bins := newModeBins(levels)
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				bins.reset()
				for _, dy := range offs {
					sy := y + dy
					if sy < 0 || sy >= h {
						continue
					}
					for _, dx := range offs {
						sx := x + dx
						if sx < 0 || sx >= w {
							continue
						}
						i := raster.Offset(src, sx, sy)
						r, g, b := float64(src.Pix[i]), float64(src.Pix[i+1]), float64(src.Pix[i+2])
						bin := min(int(raster.Luminance(r, g, b)*float64(levels)/256), levels-1)
						bins.add(bin, r, g, b)
					}
				}
				i := raster.Offset(out, x, y)
				r, g, b, _ := bins.mode()
				out.Pix[i+0] = raster.ToByte(r)
				out.Pix[i+1] = raster.ToByte(g)
				out.Pix[i+2] = raster.ToByte(b)
				out.Pix[i+3] = src.Pix[i+3]
			}
		}
	})
	return out
}

// PaletteKnife replaces each pixel with the mean color of the most common
// R+G+B bucket along a line of the given length through it at angle
// (degrees), bucket = floor((r+g+b)*bins/766). Lengths above 20 (up to 40)
// sample the line with stride 2.
func PaletteKnife(src *image.NRGBA, length int, angle float64, bins int) *image.NRGBA {
	if src == nil {
		return nil
	}
	if length <= 0 {
		return raster.Clone(src)
	}
	length = min(length, knifeMaxLength)
	bins = raster.ClampInt(bins, 2, 64)
	stride := 1
	if length > knifeFullLength {
		stride = 2
	}
	offs := strideOffsets(length/2, stride)
	theta := angle * math.Pi / 180
	dx, dy := math.Cos(theta), math.Sin(theta)

	w, h := src.Rect.Dx(), src.Rect.Dy()
	out := raster.New(w, h)
	raster.Rows(h, func(y0, y1 int) {
		acc := newModeBins(bins)
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				acc.reset()
				for _, t := range offs {
					sx := raster.ClampInt(int(raster.Round(float64(x)+float64(t)*dx)), 0, w-1)
					sy := raster.ClampInt(int(raster.Round(float64(y)+float64(t)*dy)), 0, h-1)
					i := raster.Offset(src, sx, sy)
					r, g, b := float64(src.Pix[i]), float64(src.Pix[i+1]), float64(src.Pix[i+2])
					bin := min(int((r+g+b)*float64(bins)/766), bins-1)
					acc.add(bin, r, g, b)
				}
				i := raster.Offset(out, x, y)
				r, g, b, _ := acc.mode()
				out.Pix[i+0] = raster.ToByte(r)
				out.Pix[i+1] = raster.ToByte(g)
				out.Pix[i+2] = raster.ToByte(b)
				out.Pix[i+3] = src.Pix[i+3]
			}
		}
	})
	return out
}

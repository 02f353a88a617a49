package stdimg

import (
	"image"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// Histogram holds 256-bin counts for R, G, B, A and luminance.
type Histogram struct {
	R, G, B, A, Luma [256]int
	Total            int
}

// ComputeHistogram counts every pixel of src.
func ComputeHistogram(src *image.NRGBA) Histogram {
	var h Histogram
	if src == nil {
		return h
	}
	for i := 0; i+3 < len(src.Pix); i += 4 {
		h.R[src.Pix[i]]++
		h.G[src.Pix[i+1]]++
		h.B[src.Pix[i+2]]++
		h.A[src.Pix[i+3]]++
		h.Luma[raster.ToByte(raster.LuminanceAt(src.Pix, i))]++
		h.Total++
	}
	return h
}

func histMean(bins *[256]int, total int) float64 {
	if total == 0 {
		return 0
	}
	sum := 0
	for v, n := range bins {
		sum += v * n
	}
	return float64(sum) / float64(total)
}

// Mean returns the average R, G, B and A values.
func (h Histogram) Mean() [4]float64 {
	return [4]float64{
		histMean(&h.R, h.Total),
		histMean(&h.G, h.Total),
		histMean(&h.B, h.Total),
		histMean(&h.A, h.Total),
	}
}

// LumaPercentile returns the smallest luminance value v such that at least
// p percent of the pixels are <= v.
func (h Histogram) LumaPercentile(p float64) int {
	if h.Total == 0 {
		return 0
	}
	need := raster.Clamp01(p/100) * float64(h.Total)
	acc := 0
	for v, n := range h.Luma {
		acc += n
		if float64(acc) >= need && acc > 0 {
			return v
		}
	}
	return 255
}

// AutoLevels picks black and white points that clip clip percent of the
// pixels at each end of the luminance histogram, for use with ApplyLevels.
// A flat image yields the neutral 0/255 window.
func AutoLevels(src *image.NRGBA, clip float64) (black, white float64) {
	h := ComputeHistogram(src)
	lo := h.LumaPercentile(clip)
	hi := h.LumaPercentile(100 - clip)
	if hi <= lo {
		return 0, 255
	}
	return float64(lo), float64(hi)
}

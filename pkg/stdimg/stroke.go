package stdimg

import (
	"image"
	"image/color"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// opaqueThreshold splits the alpha mask used by the stroke dilation.
const opaqueThreshold = 128

// dilate grows seeds by width-1 rounds of 4-connected expansion, entering
// only pixels whose mask value equals into. It returns every pixel reached,
// seeds included.
func dilate(mask []bool, w, h int, seeds []int, width int, into bool) []bool {
	reached := make([]bool, w*h)
	for _, p := range seeds {
		reached[p] = true
	}
	frontier := seeds
	for round := 1; round < width && len(frontier) > 0; round++ {
		var next []int
		for _, p := range frontier {
			x, y := p%w, p/w
			for _, q := range [4][2]int{{x - 1, y}, {x + 1, y}, {x, y - 1}, {x, y + 1}} {
				if q[0] < 0 || q[1] < 0 || q[0] >= w || q[1] >= h {
					continue
				}
				n := q[1]*w + q[0]
				if reached[n] || mask[n] != into {
					continue
				}
				reached[n] = true
				next = append(next, n)
			}
		}
		frontier = next
	}
	return reached
}

// edgePixels returns pixels whose mask equals want and that have a
// 4-neighbor with the opposite value.
func edgePixels(mask []bool, w, h int, want bool) []int {
	var edge []int
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			p := y*w + x
			if mask[p] != want {
				continue
			}
			if (x > 0 && mask[p-1] != want) || (x < w-1 && mask[p+1] != want) ||
				(y > 0 && mask[p-w] != want) || (y < h-1 && mask[p+w] != want) {
				edge = append(edge, p)
			}
		}
	}
	return edge
}

// Stroke outlines the opaque region of src (alpha > 128) with c. Outer
// strokes grow width pixels into transparent territory and are drawn
// opaque; inner strokes grow width pixels into the opaque region and keep
// its alpha. A buffer whose every pixel is above the threshold gets a
// width-pixel frame along the canvas edges instead.
func Stroke(src *image.NRGBA, width int, c color.NRGBA, inner, outer bool) *image.NRGBA {
	if src == nil {
		return nil
	}
	out := raster.Clone(src)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if width <= 0 || (!inner && !outer) || w == 0 || h == 0 {
		return out
	}

	mask := make([]bool, w*h)
	solid := true
	for p := range mask {
		mask[p] = src.Pix[p*4+3] > opaqueThreshold
		solid = solid && mask[p]
	}
	if solid {
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				if x >= width && y >= width && x < w-width && y < h-width {
					continue
				}
				i := raster.Offset(out, x, y)
				out.Pix[i+0], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = c.R, c.G, c.B, 255
			}
		}
		return out
	}

	if outer {
		reached := dilate(mask, w, h, edgePixels(mask, w, h, false), width, false)
		for p, ok := range reached {
			if ok {
				i := p * 4
				out.Pix[i+0], out.Pix[i+1], out.Pix[i+2], out.Pix[i+3] = c.R, c.G, c.B, 255
			}
		}
	}
	if inner {
		reached := dilate(mask, w, h, edgePixels(mask, w, h, true), width, true)
		for p, ok := range reached {
			if ok {
				i := p * 4
				out.Pix[i+0], out.Pix[i+1], out.Pix[i+2] = c.R, c.G, c.B
			}
		}
	}
	return out
}

package geom

import (
	"image"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// edgeTolerance absorbs solver round-off when an inverse-mapped coordinate
// lands on the last row or column.
const edgeTolerance = 1e-9

// ComputeTransform solves the projective mapping that carries src[i] onto
// dst[i] for the four control points. Point order is significant. A
// singular system yields the identity.
func ComputeTransform(src, dst [4]Point) Mat3 {
	a := make([][]float64, 8)
	b := make([]float64, 8)
	for i := 0; i < 4; i++ {
		x, y := src[i].X, src[i].Y
		xp, yp := dst[i].X, dst[i].Y
		a[2*i] = []float64{x, y, 1, 0, 0, 0, -x * xp, -y * xp}
		b[2*i] = xp
		a[2*i+1] = []float64{0, 0, 0, x, y, 1, -x * yp, -y * yp}
		b[2*i+1] = yp
	}
	h, ok := Solve(a, b)
	if !ok {
		return Identity()
	}
	return Mat3{h[0], h[1], h[2], h[3], h[4], h[5], h[6], h[7], 1}
}

// inverseFor returns the destination→source mapping for a corner pair.
func inverseFor(srcCorners, dstCorners [4]Point) Mat3 {
	fwd := ComputeTransform(srcCorners, dstCorners)
	if inv, ok := Invert3x3(fwd); ok && inv[8] != 0 {
		return Normalize(inv)
	}
	return ComputeTransform(dstCorners, srcCorners)
}

// ApplyPerspective resamples src into a dstW x dstH buffer so that the
// quadrilateral srcCorners lands on dstCorners. Each destination pixel is
// inverse-mapped once through a single precomputed matrix and bilinearly
// reconstructed from four source texels (alpha included). Pixels that map
// outside the source stay fully transparent.
func ApplyPerspective(src *image.NRGBA, srcCorners, dstCorners [4]Point, dstW, dstH int) *image.NRGBA {
	if src == nil {
		return nil
	}
	out := raster.New(dstW, dstH)
	sw, sh := src.Rect.Dx(), src.Rect.Dy()
	if sw == 0 || sh == 0 {
		return out
	}
	inv := inverseFor(srcCorners, dstCorners)
	maxX := float64(sw - 1)
	maxY := float64(sh - 1)

	raster.Rows(dstH, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < dstW; x++ {
				sx, sy := TransformPoint(inv, float64(x), float64(y))
				if !(sx >= -edgeTolerance && sx <= maxX+edgeTolerance &&
					sy >= -edgeTolerance && sy <= maxY+edgeTolerance) {
					continue
				}
				sx = clampf(sx, 0, maxX)
				sy = clampf(sy, 0, maxY)
				r, g, b, a := raster.Bilinear(src, sx, sy)
				i := raster.Offset(out, x, y)
				out.Pix[i+0] = raster.ToByte(r)
				out.Pix[i+1] = raster.ToByte(g)
				out.Pix[i+2] = raster.ToByte(b)
				out.Pix[i+3] = raster.ToByte(a)
			}
		}
	})
	return out
}

// Corners returns the four corners of a w x h rectangle, clockwise from the
// origin.
func Corners(w, h float64) [4]Point {
	return [4]Point{{0, 0}, {w, 0}, {w, h}, {0, h}}
}

func clampf(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

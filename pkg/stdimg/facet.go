package stdimg

import (
	"image"
	"math"
	"math/rand"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// bevel darkens the top row and left column of every facet cell.
const bevel = 0.85

type voronoiSeed struct {
	x, y    int
	r, g, b uint8
}

// Voronoi scatters max(20, round(area/(2*blockSize²))) seeds over src and
// paints each pixel with the color of the nearest seed found in the 5x5
// block of grid cells around it. Pixels with no seed in that window keep
// their source color. Alpha is untouched.
func Voronoi(src *image.NRGBA, blockSize int, rng *rand.Rand) *image.NRGBA {
	if src == nil {
		return nil
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	if blockSize <= 0 || w == 0 || h == 0 {
		return raster.Clone(src)
	}
	area := float64(w * h)
	n := max(20, int(raster.Round(area/float64(blockSize*blockSize*2))))

	seeds := make([]voronoiSeed, n)
	for i := range seeds {
		x := min(int(rng.Float64()*float64(w)), w-1)
		y := min(int(rng.Float64()*float64(h)), h-1)
		p := raster.Offset(src, x, y)
		seeds[i] = voronoiSeed{x: x, y: y, r: src.Pix[p], g: src.Pix[p+1], b: src.Pix[p+2]}
	}

	cell := math.Max(1, math.Sqrt(area/float64(n)))
	gw := int(math.Ceil(float64(w) / cell))
	gh := int(math.Ceil(float64(h) / cell))
	grid := make([][]int, gw*gh)
	for i, s := range seeds {
		gx := min(int(float64(s.x)/cell), gw-1)
		gy := min(int(float64(s.y)/cell), gh-1)
		grid[gy*gw+gx] = append(grid[gy*gw+gx], i)
	}

	out := raster.Clone(src)
	raster.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			cy := min(int(float64(y)/cell), gh-1)
			for x := 0; x < w; x++ {
				cx := min(int(float64(x)/cell), gw-1)
				best, bestD := -1, math.MaxInt
				for gy := max(0, cy-2); gy <= min(gh-1, cy+2); gy++ {
					for gx := max(0, cx-2); gx <= min(gw-1, cx+2); gx++ {
						for _, si := range grid[gy*gw+gx] {
							dx, dy := seeds[si].x-x, seeds[si].y-y
							if d := dx*dx + dy*dy; d < bestD {
								best, bestD = si, d
							}
						}
					}
				}
				if best < 0 {
					continue
				}
				i := raster.Offset(out, x, y)
				out.Pix[i+0] = seeds[best].r
				out.Pix[i+1] = seeds[best].g
				out.Pix[i+2] = seeds[best].b
			}
		}
	})
	return out
}

// cellMap assigns every pixel to a facet cell and reports whether the
// pixel sits on the cell's top row or left column.
type cellMap func(x, y int) (cell int, edge bool)

// fillCells paints each cell with the mean color of its source pixels,
// darkening the bevel edge.
func fillCells(src *image.NRGBA, cells int, at cellMap) *image.NRGBA {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	sums := make([][3]float64, cells)
	counts := make([]int, cells)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, _ := at(x, y)
			i := raster.Offset(src, x, y)
			sums[c][0] += float64(src.Pix[i])
			sums[c][1] += float64(src.Pix[i+1])
			sums[c][2] += float64(src.Pix[i+2])
			counts[c]++
		}
	}
	for c := range sums {
		if counts[c] > 0 {
			for k := 0; k < 3; k++ {
				sums[c][k] /= float64(counts[c])
			}
		}
	}

	out := raster.New(w, h)
	raster.Rows(h, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < w; x++ {
				c, edge := at(x, y)
				f := 1.0
				if edge {
					f = bevel
				}
				i := raster.Offset(out, x, y)
				out.Pix[i+0] = raster.ToByte(sums[c][0] * f)
				out.Pix[i+1] = raster.ToByte(sums[c][1] * f)
				out.Pix[i+2] = raster.ToByte(sums[c][2] * f)
				out.Pix[i+3] = src.Pix[i+3]
			}
		}
	})
	return out
}

// RectFacet fills blockSize squares with their mean color.
func RectFacet(src *image.NRGBA, blockSize int) *image.NRGBA {
	if src == nil {
		return nil
	}
	if blockSize <= 0 {
		return raster.Clone(src)
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	cols := (w + blockSize - 1) / blockSize
	rows := (h + blockSize - 1) / blockSize
	return fillCells(src, cols*rows, func(x, y int) (int, bool) {
		return (y/blockSize)*cols + x/blockSize, x%blockSize == 0 || y%blockSize == 0
	})
}

// TriangleFacet splits every blockSize square along its anti-diagonal into
// two triangles (lx+ly < blockSize is the upper-left one) and fills each
// with its mean color.
func TriangleFacet(src *image.NRGBA, blockSize int) *image.NRGBA {
	if src == nil {
		return nil
	}
	if blockSize <= 0 {
		return raster.Clone(src)
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	cols := (w + blockSize - 1) / blockSize
	rows := (h + blockSize - 1) / blockSize
	return fillCells(src, cols*rows*2, func(x, y int) (int, bool) {
		lx, ly := x%blockSize, y%blockSize
		c := ((y/blockSize)*cols + x/blockSize) * 2
		if lx+ly >= blockSize {
			c++
		}
		return c, lx == 0 || ly == 0
	})
}

// DiamondFacet fills cells of a grid rotated by 45 degrees, laid out in
// u = x+y, v = x-y+h coordinates.
func DiamondFacet(src *image.NRGBA, blockSize int) *image.NRGBA {
	if src == nil {
		return nil
	}
	if blockSize <= 0 {
		return raster.Clone(src)
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	span := (w+h)/blockSize + 1
	return fillCells(src, span*span, func(x, y int) (int, bool) {
		u, v := x+y, x-y+h
		return (v/blockSize)*span + u/blockSize, u%blockSize == 0 || v%blockSize == 0
	})
}

package stdimg

import (
	"image"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// AutoOrient returns src turned upright according to an EXIF orientation
// tag (1..8). Orientation 1 and unknown values return src as-is.
func AutoOrient(src *image.NRGBA, orientation int) *image.NRGBA {
	if src == nil || orientation <= 1 || orientation > 8 {
		return src
	}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	switch orientation {
	case 2: // mirrored
		return remap(src, w, h, func(x, y int) (int, int) { return w - 1 - x, y })
	case 3:
		return remap(src, w, h, func(x, y int) (int, int) { return w - 1 - x, h - 1 - y })
	case 4:
		return remap(src, w, h, func(x, y int) (int, int) { return x, h - 1 - y })
	case 5: // transpose
		return remap(src, h, w, func(x, y int) (int, int) { return y, x })
	case 6: // 90 clockwise
		return remap(src, h, w, func(x, y int) (int, int) { return y, h - 1 - x })
	case 7: // transverse
		return remap(src, h, w, func(x, y int) (int, int) { return w - 1 - y, h - 1 - x })
	default: // 8, 90 counter-clockwise
		return remap(src, h, w, func(x, y int) (int, int) { return w - 1 - y, x })
	}
}

// remap builds an outW x outH buffer whose pixel (x, y) is copied from
// src at at(x, y).
func remap(src *image.NRGBA, outW, outH int, at func(x, y int) (int, int)) *image.NRGBA {
	out := raster.New(outW, outH)
	raster.Rows(outH, func(y0, y1 int) {
		for y := y0; y < y1; y++ {
			for x := 0; x < outW; x++ {
				sx, sy := at(x, y)
				si := raster.Offset(src, sx, sy)
				di := y*out.Stride + x*4
				copy(out.Pix[di:di+4], src.Pix[si:si+4])
			}
		}
	})
	return out
}

// Package raster holds the pixel-buffer primitives shared by the filter
// catalog and the geometric transforms.
//
// A pixel buffer is an *image.NRGBA anchored at the origin whose stride is
// exactly 4*width: interleaved R,G,B,A bytes, row-major, straight alpha.
package raster

import (
	"errors"
	"fmt"
	"image"
	"math"
)

// ErrShape reports a buffer whose geometry does not match the RGBA8 layout.
var ErrShape = errors.New("raster: malformed pixel buffer")

// New allocates a zeroed (fully transparent) w x h buffer.
func New(w, h int) *image.NRGBA {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// Validate checks the buffer invariant len(Pix) == w*h*4 with a tight stride.
func Validate(img *image.NRGBA) error {
	if img == nil {
		return fmt.Errorf("%w: nil buffer", ErrShape)
	}
	if img.Rect.Min != (image.Point{}) {
		return fmt.Errorf("%w: origin at %v", ErrShape, img.Rect.Min)
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	if img.Stride != 4*w {
		return fmt.Errorf("%w: stride %d for width %d", ErrShape, img.Stride, w)
	}
	if len(img.Pix) != w*h*4 {
		return fmt.Errorf("%w: %d bytes for %dx%d", ErrShape, len(img.Pix), w, h)
	}
	return nil
}

// FromImage converts any image.Image into a fresh origin-anchored buffer.
// The source is never aliased.
func FromImage(src image.Image) *image.NRGBA {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	out := New(b.Dx(), b.Dy())
	if n, ok := src.(*image.NRGBA); ok {
		for y := 0; y < b.Dy(); y++ {
			si := n.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:(y+1)*out.Stride], n.Pix[si:si+4*b.Dx()])
		}
		return out
	}
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			// color.NRGBAModel un-premultiplies for us
			c := nrgbaAt(src, x, y)
			out.Pix[idx+0] = c[0]
			out.Pix[idx+1] = c[1]
			out.Pix[idx+2] = c[2]
			out.Pix[idx+3] = c[3]
			idx += 4
		}
	}
	return out
}

// Clone returns a deep copy of src.
func Clone(src *image.NRGBA) *image.NRGBA {
	if src == nil {
		return nil
	}
	out := image.NewNRGBA(src.Rect)
	copy(out.Pix, src.Pix)
	return out
}

// Equal reports whether a and b have the same size and identical bytes.
func Equal(a, b *image.NRGBA) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Rect.Dx() != b.Rect.Dx() || a.Rect.Dy() != b.Rect.Dy() || len(a.Pix) != len(b.Pix) {
		return false
	}
	for i := range a.Pix {
		if a.Pix[i] != b.Pix[i] {
			return false
		}
	}
	return true
}

// HasTransparency reports whether any pixel has alpha below 255.
func HasTransparency(img *image.NRGBA) bool {
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 255 {
			return true
		}
	}
	return false
}

// ToByte clamps v to [0,255] and rounds half to even, like a clamped
// 8-bit canvas store.
func ToByte(v float64) uint8 {
	if v != v || v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(math.RoundToEven(v))
}

// Round is floor(x+0.5): ties go toward +Inf.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

// Clamp01 clamps v to [0,1].
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ClampInt clamps v to [lo,hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp blends a toward b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

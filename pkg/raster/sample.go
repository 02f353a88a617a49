package raster

import (
	"image"
	"image/color"
	"math"
)

func nrgbaAt(src image.Image, x, y int) [4]uint8 {
	c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
	return [4]uint8{c.R, c.G, c.B, c.A}
}

// Offset returns the Pix index of (x,y) in an origin-anchored buffer.
func Offset(img *image.NRGBA, x, y int) int {
	return y*img.Stride + x*4
}

// PixelClamped returns the pixel at integer coords clamped to the buffer.
func PixelClamped(img *image.NRGBA, x, y int) color.NRGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	x = ClampInt(x, 0, w-1)
	y = ClampInt(y, 0, h-1)
	i := Offset(img, x, y)
	return color.NRGBA{img.Pix[i+0], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}
}

// Bilinear samples img at floating coords (x,y), clamping the four taps to
// the buffer edges.
func Bilinear(img *image.NRGBA, x, y float64) (r, g, b, a float64) {
	x0 := int(math.Floor(x))
	y0 := int(math.Floor(y))
	xf := x - float64(x0)
	yf := y - float64(y0)

	c00 := PixelClamped(img, x0, y0)
	c10 := PixelClamped(img, x0+1, y0)
	c01 := PixelClamped(img, x0, y0+1)
	c11 := PixelClamped(img, x0+1, y0+1)

	lerp2 := func(v00, v10, v01, v11 uint8) float64 {
		top := float64(v00)*(1-xf) + float64(v10)*xf
		bot := float64(v01)*(1-xf) + float64(v11)*xf
		return top*(1-yf) + bot*yf
	}
	r = lerp2(c00.R, c10.R, c01.R, c11.R)
	g = lerp2(c00.G, c10.G, c01.G, c11.G)
	b = lerp2(c00.B, c10.B, c01.B, c11.B)
	a = lerp2(c00.A, c10.A, c01.A, c11.A)
	return
}

// Fill sets every pixel of img to c.
func Fill(img *image.NRGBA, c color.NRGBA) {
	for i := 0; i+3 < len(img.Pix); i += 4 {
		img.Pix[i+0] = c.R
		img.Pix[i+1] = c.G
		img.Pix[i+2] = c.B
		img.Pix[i+3] = c.A
	}
}

// Solid allocates a w x h buffer filled with c.
func Solid(w, h int, c color.NRGBA) *image.NRGBA {
	img := New(w, h)
	Fill(img, c)
	return img
}

// CopyAlpha copies the alpha channel of src into dst. Both must share a size.
func CopyAlpha(dst, src *image.NRGBA) {
	for i := 3; i < len(dst.Pix) && i < len(src.Pix); i += 4 {
		dst.Pix[i] = src.Pix[i]
	}
}

package stdimg

import (
	"image"
	"image/color"
	"testing"
)

// makeIsland returns an n x n transparent buffer with an opaque green
// square covering [lo,hi) on both axes.
func makeIsland(n, lo, hi int) *image.NRGBA {
	img := makeSolidNRGBA(n, n, color.NRGBA{})
	for y := lo; y < hi; y++ {
		for x := lo; x < hi; x++ {
			i := img.PixOffset(x, y)
			img.Pix[i+1], img.Pix[i+3] = 200, 255
		}
	}
	return img
}

// manhattanToSquare is the 4-connected distance from (x,y) to [lo,hi)².
func manhattanToSquare(x, y, lo, hi int) int {
	d := 0
	if x < lo {
		d += lo - x
	} else if x >= hi {
		d += x - hi + 1
	}
	if y < lo {
		d += lo - y
	} else if y >= hi {
		d += y - hi + 1
	}
	return d
}

func TestStrokeOuterContainment(t *testing.T) {
	const n, lo, hi, width = 13, 5, 8, 2
	src := makeIsland(n, lo, hi)
	red := color.NRGBA{R: 255, A: 255}
	out := Stroke(src, width, red, false, true)
	stroked := 0
	for y := 0; y < n; y++ {
		for x := 0; x < n; x++ {
			before, after := pixelAt(src, x, y), pixelAt(out, x, y)
			if before == after {
				continue
			}
			if before.A != 0 {
				t.Fatalf("opaque pixel (%d,%d) changed: %v -> %v", x, y, before, after)
			}
			if after != red {
				t.Fatalf("stroke pixel (%d,%d): got %v want %v", x, y, after, red)
			}
			if d := manhattanToSquare(x, y, lo, hi); d > width {
				t.Fatalf("stroke pixel (%d,%d) is %d px from the shape, width %d", x, y, d, width)
			}
			stroked++
		}
	}
	// ring at distance 1 has 12 pixels, distance 2 has 16
	if stroked != 28 {
		t.Fatalf("stroked pixel count: got %d want 28", stroked)
	}
}

func TestStrokeInnerKeepsAlpha(t *testing.T) {
	src := makeIsland(9, 2, 7)
	for y := 2; y < 7; y++ {
		for x := 2; x < 7; x++ {
			src.Pix[src.PixOffset(x, y)+3] = 200
		}
	}
	out := Stroke(src, 1, color.NRGBA{B: 255, A: 255}, true, false)
	if got := pixelAt(out, 2, 4); got != (color.NRGBA{B: 255, A: 200}) {
		t.Fatalf("inner edge pixel: got %v want (0,0,255,200)", got)
	}
	if got := pixelAt(out, 4, 4); got != pixelAt(src, 4, 4) {
		t.Fatalf("interior pixel changed: got %v", got)
	}
	if got := pixelAt(out, 1, 4); got.A != 0 {
		t.Fatalf("inner stroke leaked outside: %v", got)
	}
}

func TestStrokeOpaqueFrame(t *testing.T) {
	src := makeSolidNRGBA(6, 6, color.NRGBA{R: 9, G: 9, B: 9, A: 255})
	out := Stroke(src, 1, color.NRGBA{R: 255, A: 255}, false, true)
	if got := pixelAt(out, 0, 3); got.R != 255 {
		t.Fatalf("frame pixel: got %v", got)
	}
	if got := pixelAt(out, 3, 3); got.R != 9 {
		t.Fatalf("interior pixel changed: got %v", got)
	}
}

func TestStrokeZeroWidthIsCopy(t *testing.T) {
	src := makeIsland(7, 2, 5)
	out := Stroke(src, 0, color.NRGBA{A: 255}, true, true)
	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("zero width stroke changed byte %d", i)
		}
	}
}

func TestStrokeFrameOnUniformPartialAlpha(t *testing.T) {
	src := makeSolidNRGBA(6, 6, color.NRGBA{R: 9, G: 9, B: 9, A: 200})
	out := Stroke(src, 1, color.NRGBA{R: 255, A: 255}, false, true)
	if got := pixelAt(out, 0, 3); got != (color.NRGBA{R: 255, A: 255}) {
		t.Fatalf("frame pixel: got %v want (255,0,0,255)", got)
	}
	if got := pixelAt(out, 3, 3); got != (color.NRGBA{R: 9, G: 9, B: 9, A: 200}) {
		t.Fatalf("interior pixel changed: got %v", got)
	}
}

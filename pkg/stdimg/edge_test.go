package stdimg

import (
	"image/color"
	"testing"
)

func TestFindEdgesKeepsAlpha(t *testing.T) {
	src := makeSolidNRGBA(2, 2, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	src.Pix[3] = 0
	out := FindEdges(src, 1, 0)
	want := []uint8{0, 255, 255, 255}
	for p := 0; p < 4; p++ {
		if got := out.Pix[p*4+3]; got != want[p] {
			t.Fatalf("alpha at pixel %d: got %d want %d", p, got, want[p])
		}
	}
}

func TestFindEdgesDetectsVerticalLine(t *testing.T) {
	pat := makeSolidNRGBA(5, 5, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	for y := 0; y < 5; y++ {
		i := pat.PixOffset(2, y)
		pat.Pix[i+0], pat.Pix[i+1], pat.Pix[i+2] = 0, 0, 0
	}
	out := FindEdges(pat, 1, 0)
	if pixelAt(out, 1, 2).R == 0 || pixelAt(out, 3, 2).R == 0 {
		t.Fatalf("edge not detected beside the line: %v %v", pixelAt(out, 1, 2), pixelAt(out, 3, 2))
	}
	if got := pixelAt(out, 0, 2); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Fatalf("border ring should be black, got %v", got)
	}
}

func TestFindEdgesFullBlendIsSource(t *testing.T) {
	src := makeGradientNRGBA(6, 6)
	out := FindEdges(src, 2, 100)
	for i := range src.Pix {
		if out.Pix[i] != src.Pix[i] {
			t.Fatalf("blend 100 should reproduce the source; byte %d got %d want %d", i, out.Pix[i], src.Pix[i])
		}
	}
}

func TestLineArtFlatImageIsWhite(t *testing.T) {
	src := makeSolidNRGBA(6, 6, color.NRGBA{R: 30, G: 90, B: 200, A: 180})
	out := LineArt(src, 40, 0, 0)
	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			got := pixelAt(out, x, y)
			if got != (color.NRGBA{R: 255, G: 255, B: 255, A: 180}) {
				t.Fatalf("pixel (%d,%d): got %v want white with alpha 180", x, y, got)
			}
		}
	}
}

func TestLineArtDrawsBlackOnEdge(t *testing.T) {
	src := makeSolidNRGBA(8, 8, color.NRGBA{R: 255, G: 255, B: 255, A: 255})
	for y := 0; y < 8; y++ {
		for x := 4; x < 8; x++ {
			i := src.PixOffset(x, y)
			src.Pix[i+0], src.Pix[i+1], src.Pix[i+2] = 0, 0, 0
		}
	}
	out := LineArt(src, 40, 0, 0)
	if got := pixelAt(out, 4, 3); got.R != 0 {
		t.Fatalf("expected a black line at the step, got %v", got)
	}
	if got := pixelAt(out, 1, 3); got.R != 255 {
		t.Fatalf("expected white away from the step, got %v", got)
	}
}

func TestLineArtColorBlendLeaksThroughLines(t *testing.T) {
	src := makeSolidNRGBA(8, 8, color.NRGBA{R: 0, G: 0, B: 0, A: 255})
	for y := 0; y < 8; y++ {
		for x := 4; x < 8; x++ {
			i := src.PixOffset(x, y)
			src.Pix[i+0], src.Pix[i+1], src.Pix[i+2] = 200, 200, 200
		}
	}
	cases := []struct {
		blend float64
		line  uint8
		plain uint8
	}{
		{0, 0, 255},
		{50, 20, 228},
		{100, 40, 200},
	}
	for _, tc := range cases {
		out := LineArt(src, 40, tc.blend, 0)
		if got := pixelAt(out, 4, 4); got.R != tc.line || got.G != tc.line || got.B != tc.line {
			t.Fatalf("colorBlend %v: line pixel got %v want %d", tc.blend, got, tc.line)
		}
		if got := pixelAt(out, 6, 4); got.R != tc.plain {
			t.Fatalf("colorBlend %v: fill pixel got %v want %d", tc.blend, got, tc.plain)
		}
	}
}

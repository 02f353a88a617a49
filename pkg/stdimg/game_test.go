package stdimg

import (
	"image/color"
	"testing"
)

func TestMosaicBlockMean(t *testing.T) {
	src := makeSolidNRGBA(4, 4, color.NRGBA{R: 100, A: 255})
	for i, r := range []uint8{10, 20, 30, 40} {
		src.Pix[src.PixOffset(i%2, i/2)] = r
	}
	out := ApplyGame(src, GameMosaic, 2, 100)
	for _, p := range [][2]int{{0, 0}, {1, 0}, {0, 1}, {1, 1}} {
		if got := pixelAt(out, p[0], p[1]); got != (color.NRGBA{R: 25, A: 255}) {
			t.Fatalf("pixel %v: got %v want (25,0,0,255)", p, got)
		}
	}
	if got := pixelAt(out, 3, 1); got != (color.NRGBA{R: 100, A: 255}) {
		t.Fatalf("flat block: got %v want (100,0,0,255)", got)
	}
}

func TestEightBitUsesPalette(t *testing.T) {
	out := ApplyGame(makeGradientNRGBA(16, 16), GameEightBit, 3, 100)
	for i := 0; i < len(out.Pix); i += 4 {
		c := [3]uint8{out.Pix[i], out.Pix[i+1], out.Pix[i+2]}
		found := false
		for _, p := range pico8 {
			if p == c {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("byte %d: %v is not a PICO-8 color", i, c)
		}
	}
	if got := nearestPico8(255, 0, 0); got != [3]uint8{0xff, 0x00, 0x4d} {
		t.Fatalf("nearest to red: got %v", got)
	}
	if got := nearestPico8(0, 0, 0); got != pico8[0] {
		t.Fatalf("nearest to black: got %v", got)
	}
}

package raster

import (
	"errors"
	"image"
	"image/color"
	"sync"
	"testing"
)

func TestValidate(t *testing.T) {
	if err := Validate(New(3, 2)); err != nil {
		t.Fatalf("expected valid buffer, got %v", err)
	}
	bad := New(3, 2)
	bad.Pix = bad.Pix[:20]
	if err := Validate(bad); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape for short Pix, got %v", err)
	}
	sub := New(4, 4).SubImage(image.Rect(1, 1, 3, 3)).(*image.NRGBA)
	if err := Validate(sub); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape for sub-image, got %v", err)
	}
	if err := Validate(nil); !errors.Is(err, ErrShape) {
		t.Fatalf("expected ErrShape for nil, got %v", err)
	}
}

func TestFromImageRebasesSubImage(t *testing.T) {
	src := New(4, 4)
	i := Offset(src, 2, 2)
	src.Pix[i+0] = 10
	src.Pix[i+3] = 255
	sub := src.SubImage(image.Rect(2, 2, 4, 4))
	out := FromImage(sub)
	if err := Validate(out); err != nil {
		t.Fatalf("FromImage produced invalid buffer: %v", err)
	}
	if out.Pix[0] != 10 || out.Pix[3] != 255 {
		t.Fatalf("expected (10,_,_,255) at origin, got %v", out.Pix[:4])
	}
	out.Pix[0] = 99
	if src.Pix[i] != 10 {
		t.Fatalf("FromImage aliased its source")
	}
}

func TestFromImageUnpremultiplies(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1, 1))
	src.Set(0, 0, color.NRGBA{R: 200, G: 100, B: 0, A: 128})
	out := FromImage(src)
	if out.Pix[3] != 128 {
		t.Fatalf("alpha = %d, want 128", out.Pix[3])
	}
	if d := int(out.Pix[0]) - 200; d < -2 || d > 2 {
		t.Fatalf("red = %d, want ~200", out.Pix[0])
	}
}

func TestToByte(t *testing.T) {
	cases := []struct {
		in   float64
		want uint8
	}{
		{-5, 0}, {0.4, 0}, {0.5, 0}, {1.5, 2}, {2.5, 2}, {254.6, 255}, {300, 255},
	}
	for _, c := range cases {
		if got := ToByte(c.in); got != c.want {
			t.Fatalf("ToByte(%v) = %d, want %d", c.in, got, c.want)
		}
	}
	if Round(2.5) != 3 || Round(-0.5) != 0 {
		t.Fatalf("Round should send ties toward +Inf")
	}
}

func TestHSLRoundTrip(t *testing.T) {
	colors := [][3]float64{{255, 0, 0}, {0, 255, 0}, {12, 34, 200}, {128, 128, 128}, {250, 240, 10}}
	for _, c := range colors {
		h, s, l := RGBToHSL(c[0], c[1], c[2])
		if h < 0 || h >= 360 || s < 0 || s > 1 || l < 0 || l > 1 {
			t.Fatalf("HSL out of range for %v: %v %v %v", c, h, s, l)
		}
		r, g, b := HSLToRGB(h, s, l)
		if absDiff(r, c[0]) > 1 || absDiff(g, c[1]) > 1 || absDiff(b, c[2]) > 1 {
			t.Fatalf("round trip %v -> (%d,%d,%d)", c, r, g, b)
		}
	}
}

func TestHSLGrayAndHueWrap(t *testing.T) {
	h, s, _ := RGBToHSL(90, 90, 90)
	if h != 0 || s != 0 {
		t.Fatalf("gray should have zero hue and saturation, got h=%v s=%v", h, s)
	}
	r, g, b := HSLToRGB(123, 0, 0.5)
	if r != 128 || g != 128 || b != 128 {
		t.Fatalf("s=0 should give round(l*255) gray, got %d %d %d", r, g, b)
	}
	r1, g1, b1 := HSLToRGB(480, 1, 0.5)
	r2, g2, b2 := HSLToRGB(120, 1, 0.5)
	if r1 != r2 || g1 != g2 || b1 != b2 {
		t.Fatalf("hue should wrap modulo 360")
	}
}

func TestLuminanceWeights(t *testing.T) {
	if got := Luminance(255, 0, 0); got != 0.299*255 {
		t.Fatalf("Luminance red = %v", got)
	}
	if got := Luminance(100, 100, 100); got < 99.999 || got > 100.001 {
		t.Fatalf("Luminance gray = %v, want 100", got)
	}
}

func TestRowsCoversEveryRowOnce(t *testing.T) {
	SetWorkers(3)
	defer SetWorkers(0)
	const h = 17
	var mu sync.Mutex
	seen := make([]int, h)
	Rows(h, func(y0, y1 int) {
		mu.Lock()
		defer mu.Unlock()
		for y := y0; y < y1; y++ {
			seen[y]++
		}
	})
	for y, n := range seen {
		if n != 1 {
			t.Fatalf("row %d visited %d times", y, n)
		}
	}
}

func TestBilinearCenter(t *testing.T) {
	img := New(2, 1)
	img.Pix[0], img.Pix[3] = 0, 255
	img.Pix[4], img.Pix[7] = 200, 255
	r, _, _, a := Bilinear(img, 0.5, 0)
	if r != 100 || a != 255 {
		t.Fatalf("Bilinear midpoint = r%v a%v, want r100 a255", r, a)
	}
}

func absDiff(a uint8, b float64) float64 {
	d := float64(a) - b
	if d < 0 {
		return -d
	}
	return d
}

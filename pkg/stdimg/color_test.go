package stdimg

import (
	"image/color"
	"testing"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

func TestBrightnessClampsRed(t *testing.T) {
	src := makeSolidNRGBA(4, 4, color.NRGBA{R: 255, A: 255})
	out := AdjustBrightnessContrast(src, 50, 0)
	want := color.NRGBA{R: 255, G: 50, B: 50, A: 255}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if got := pixelAt(out, x, y); got != want {
				t.Fatalf("pixel (%d,%d): got %v want %v", x, y, got, want)
			}
		}
	}
	if got := pixelAt(src, 0, 0); got.G != 0 {
		t.Fatalf("source was modified: %v", got)
	}
}

func TestContrastKeepsMidGray(t *testing.T) {
	src := makeSolidNRGBA(2, 2, color.NRGBA{R: 128, G: 128, B: 128, A: 255})
	out := AdjustBrightnessContrast(src, 0, 80)
	if got := pixelAt(out, 1, 1); got.R != 128 || got.G != 128 || got.B != 128 {
		t.Fatalf("mid-gray moved under contrast: %v", got)
	}
}

func TestInvertTwiceIsIdentity(t *testing.T) {
	src := makeGradientNRGBA(9, 7)
	once := InvertColors(src)
	if raster.Equal(once, src) {
		t.Fatalf("invert produced the input unchanged")
	}
	if twice := InvertColors(once); !raster.Equal(twice, src) {
		t.Fatalf("invert applied twice differs from input")
	}
}

func TestHueSaturationZeroIsIdentity(t *testing.T) {
	src := makeGradientNRGBA(6, 6)
	if out := AdjustHueSaturation(src, 0, 0, 0); !raster.Equal(out, src) {
		t.Fatalf("neutral hue/saturation changed pixels")
	}
}

func TestHueRotateRedToGreen(t *testing.T) {
	src := makeSolidNRGBA(1, 1, color.NRGBA{R: 255, A: 255})
	got := pixelAt(AdjustHueSaturation(src, 120, 0, 0), 0, 0)
	if got.R != 0 || got.G != 255 || got.B != 0 {
		t.Fatalf("hue +120 on red: got %v want (0,255,0)", got)
	}
}

func TestTemperatureWarms(t *testing.T) {
	src := makeSolidNRGBA(1, 1, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	got := pixelAt(AdjustHueSaturation(src, 0, 0, 50), 0, 0)
	if got.R != 140 || got.G != 100 || got.B != 60 {
		t.Fatalf("temperature 50: got %v want (140,100,60)", got)
	}
}

func TestLayerDesaturate(t *testing.T) {
	src := makeSolidNRGBA(1, 1, color.NRGBA{R: 200, G: 40, B: 90, A: 77})
	if got := pixelAt(AdjustLayer(src, 0, 0), 0, 0); got != (color.NRGBA{R: 200, G: 40, B: 90, A: 77}) {
		t.Fatalf("saturation 0 should keep the color, got %v", got)
	}
	got := pixelAt(AdjustLayer(src, 0, -100), 0, 0)
	if got.R != got.G || got.G != got.B {
		t.Fatalf("saturation -100 should give gray, got %v", got)
	}
	if got.A != 77 {
		t.Fatalf("alpha changed: got %d want 77", got.A)
	}
}

func TestPosterizeFixedPoint(t *testing.T) {
	src := makeGradientNRGBA(16, 16)
	if out := Posterize(src, 256); !raster.Equal(out, src) {
		t.Fatalf("posterize 256 is not the identity")
	}
	once := Posterize(src, 5)
	if twice := Posterize(once, 5); !raster.Equal(once, twice) {
		t.Fatalf("posterize 5 is not idempotent")
	}
}

func TestPosterizeTwoLevels(t *testing.T) {
	src := makeSolidNRGBA(1, 1, color.NRGBA{R: 100, G: 200, B: 127, A: 255})
	got := pixelAt(Posterize(src, 2), 0, 0)
	if got.R != 0 || got.G != 255 || got.B != 0 {
		t.Fatalf("posterize 2: got %v want (0,255,0)", got)
	}
}

func TestShiftChannelsRedGreen(t *testing.T) {
	src := makeSolidNRGBA(1, 1, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	got := pixelAt(ShiftChannels(src, 10, 0, 0), 0, 0)
	// 10*1.27 = 12.7
	if got.R != 113 || got.G != 87 || got.B != 100 {
		t.Fatalf("channel shift: got %v want (113,87,100)", got)
	}
}

func TestLevelsIdentityAndMono(t *testing.T) {
	src := makeGradientNRGBA(8, 8)
	if out := ApplyLevels(src, 0, 255, 1, false); !raster.Equal(out, src) {
		t.Fatalf("neutral levels changed pixels")
	}
	out := ApplyLevels(src, 0, 255, 1, true)
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p := pixelAt(out, x, y)
			if p.R != p.G || p.G != p.B {
				t.Fatalf("mono levels left color at (%d,%d): %v", x, y, p)
			}
		}
	}
}

func TestLevelsBlackWhitePoints(t *testing.T) {
	src := makeSolidNRGBA(3, 1, color.NRGBA{A: 255})
	src.Pix[0] = 50
	src.Pix[4] = 200
	src.Pix[8] = 125
	out := ApplyLevels(src, 50, 200, 1, false)
	if out.Pix[0] != 0 || out.Pix[4] != 255 {
		t.Fatalf("black/white points: got %d,%d want 0,255", out.Pix[0], out.Pix[4])
	}
	if v := out.Pix[8]; v < 127 || v > 128 {
		t.Fatalf("midpoint: got %d want ~128", v)
	}
}

func TestParseColor(t *testing.T) {
	cases := map[string]color.NRGBA{
		"#f00":    {R: 255, A: 255},
		"#00ff80": {G: 255, B: 128, A: 255},
		"white":   {R: 255, G: 255, B: 255, A: 255},
	}
	for in, want := range cases {
		got, err := ParseColor(in)
		if err != nil {
			t.Fatalf("ParseColor(%q): %v", in, err)
		}
		if got != want {
			t.Fatalf("ParseColor(%q): got %v want %v", in, got, want)
		}
	}
	if _, err := ParseColor("#12"); err == nil {
		t.Fatalf("expected error for short hex")
	}
}

func TestDuotoneEndpoints(t *testing.T) {
	cases := []struct {
		in        color.NRGBA
		intensity float64
		want      color.NRGBA
	}{
		{color.NRGBA{A: 255}, 100, color.NRGBA{R: 20, G: 10, B: 80, A: 255}},
		{color.NRGBA{R: 255, G: 255, B: 255, A: 90}, 100, color.NRGBA{R: 255, G: 200, B: 50, A: 90}},
		{color.NRGBA{A: 255}, 50, color.NRGBA{R: 10, G: 5, B: 40, A: 255}},
	}
	for _, tc := range cases {
		got := pixelAt(PosterizeWithStyle(makeSolidNRGBA(2, 2, tc.in), StyleDuotone, tc.intensity), 1, 1)
		if got != tc.want {
			t.Fatalf("duotone %v at %v%%: got %v want %v", tc.in, tc.intensity, got, tc.want)
		}
	}
}

func TestSeparateColorsPerChannelLevels(t *testing.T) {
	src := makeSolidNRGBA(2, 2, color.NRGBA{R: 100, G: 100, B: 100, A: 255})
	cases := []struct {
		mix  float64
		want color.NRGBA
	}{
		// 2, 3 and 4 levels: steps 255, 127.5 and 85
		{100, color.NRGBA{R: 0, G: 128, B: 85, A: 255}},
		{50, color.NRGBA{R: 50, G: 114, B: 92, A: 255}},
		{0, color.NRGBA{R: 100, G: 100, B: 100, A: 255}},
	}
	for _, tc := range cases {
		if got := pixelAt(SeparateColors(src, 2, 3, 4, tc.mix), 0, 1); got != tc.want {
			t.Fatalf("mix %v: got %v want %v", tc.mix, got, tc.want)
		}
	}
}

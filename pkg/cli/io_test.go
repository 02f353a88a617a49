package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Fepozopo/rasterfx/pkg/raster"
)

func TestSniffFormat(t *testing.T) {
	cases := map[string]string{
		"\xFF\xD8\xFF\xE0":         FormatJPEG,
		"\x89PNG\r\n\x1a\n....":    FormatPNG,
		"GIF89a":                   FormatGIF,
		"BM......":                 FormatBMP,
		"II*\x00":                  FormatTIFF,
		"MM\x00*":                  FormatTIFF,
		"RIFF\x00\x00\x00\x00WEBP": FormatWebP,
		"RIFF\x00\x00\x00\x00WAVE": "",
		"":                         "",
	}
	for in, want := range cases {
		if got := sniffFormat([]byte(in)); got != want {
			t.Fatalf("sniffFormat(%q): got %q want %q", in, got, want)
		}
	}
}

func TestFormatFromPath(t *testing.T) {
	cases := map[string]string{
		"a.PNG": FormatPNG, "b.jpg": FormatJPEG, "c.JPEG": FormatJPEG, "d.gif": FormatGIF,
		"e.bmp": FormatBMP, "f.tif": FormatTIFF, "g.tiff": FormatTIFF, "h.webp": FormatWebP,
		"noext": FormatPNG, "i.xyz": FormatPNG,
	}
	for in, want := range cases {
		if got := FormatFromPath(in); got != want {
			t.Fatalf("FormatFromPath(%q): got %q want %q", in, got, want)
		}
	}
}

func TestLosslessRoundTrip(t *testing.T) {
	src := makeOpaqueGradient(23, 17)
	cfg := DefaultConfig()
	cfg.Lossless = true
	for _, format := range []string{FormatPNG, FormatBMP, FormatTIFF, FormatWebP} {
		var buf bytes.Buffer
		if err := EncodeImage(&buf, src, format, cfg); err != nil {
			t.Fatalf("%s: encode: %v", format, err)
		}
		got, gotFormat, err := DecodeImage(buf.Bytes())
		if err != nil {
			t.Fatalf("%s: decode: %v", format, err)
		}
		if gotFormat != format {
			t.Fatalf("%s: sniffed as %q", format, gotFormat)
		}
		if !raster.Equal(got, src) {
			t.Fatalf("%s: pixels changed in a lossless round trip", format)
		}
	}
}

func TestLossyRoundTrip(t *testing.T) {
	src := makeOpaqueGradient(32, 32)
	for _, format := range []string{FormatJPEG, FormatWebP, FormatGIF} {
		var buf bytes.Buffer
		if err := EncodeImage(&buf, src, format, DefaultConfig()); err != nil {
			t.Fatalf("%s: encode: %v", format, err)
		}
		got, _, err := DecodeImage(buf.Bytes())
		if err != nil {
			t.Fatalf("%s: decode: %v", format, err)
		}
		if got.Rect != src.Rect {
			t.Fatalf("%s: bounds got %v want %v", format, got.Rect, src.Rect)
		}
	}
}

func TestSaveAndLoadImage(t *testing.T) {
	dir := t.TempDir()
	src := makeOpaqueGradient(9, 5)
	path := filepath.Join(dir, "out.tiff")
	if err := SaveImage(path, src, DefaultConfig()); err != nil {
		t.Fatalf("SaveImage: %v", err)
	}
	got, format, err := LoadImage(path)
	if err != nil || format != FormatTIFF {
		t.Fatalf("LoadImage: %v %q", err, format)
	}
	if !raster.Equal(got, src) {
		t.Fatalf("tiff file round trip changed pixels")
	}
	if _, _, err := LoadImage(filepath.Join(dir, "missing.png")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
	junk := filepath.Join(dir, "junk.png")
	if err := os.WriteFile(junk, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := LoadImage(junk); err == nil {
		t.Fatalf("expected error for unrecognized data")
	}
}

func TestEncodeUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := EncodeImage(&buf, makeOpaqueGradient(2, 2), "xcf", DefaultConfig()); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

package cli

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Fepozopo/rasterfx/pkg/geom"
	"github.com/Fepozopo/rasterfx/pkg/raster"
	"github.com/Fepozopo/rasterfx/pkg/stdimg"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := RunWithConfig(append([]string{"rasterfx"}, args...), DefaultConfig(), &out)
	return out.String(), err
}

func TestRunVersionAndHelp(t *testing.T) {
	out, err := run(t, "--version")
	if err != nil || out != "rasterfx version "+Version+"\n" {
		t.Fatalf("version: got %q %v", out, err)
	}
	out, err = run(t)
	if err != nil || !strings.Contains(out, "Usage:") || !strings.Contains(out, "--params") {
		t.Fatalf("help: got %q %v", out, err)
	}
	out, err = run(t, "help", "oil-paint")
	if err != nil || !strings.HasPrefix(out, "oil-paint <radius>") {
		t.Fatalf("help oil-paint: got %q %v", out, err)
	}
	if _, err := run(t, "help", "sharpen"); !errors.Is(err, stdimg.ErrUnknownCommand) {
		t.Fatalf("help for unknown command: got %v", err)
	}
}

func TestRunList(t *testing.T) {
	out, err := run(t, "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if lines := strings.Count(out, "\n"); lines != len(stdimg.Commands) {
		t.Fatalf("list printed %d lines want %d", lines, len(stdimg.Commands))
	}
	if !strings.Contains(out, "palette-knife") {
		t.Fatalf("list misses palette-knife: %q", out)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if _, err := run(t, "explode"); !errors.Is(err, stdimg.ErrUnknownCommand) {
		t.Fatalf("got %v", err)
	}
	if _, err := run(t, "apply", "in.png"); err == nil || !strings.Contains(err.Error(), "usage:") {
		t.Fatalf("short apply: got %v", err)
	}
}

func TestRunApply(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.bmp")
	src := raster.Solid(6, 4, color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	if err := SaveImage(in, src, DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "apply", in, out, "invert"); err != nil {
		t.Fatalf("apply invert: %v", err)
	}
	got, format, err := LoadImage(out)
	if err != nil || format != FormatBMP {
		t.Fatalf("load result: %v %q", err, format)
	}
	if c := got.NRGBAAt(5, 3); c != (color.NRGBA{R: 245, G: 235, B: 225, A: 255}) {
		t.Fatalf("inverted pixel: got %v", c)
	}
	if _, err := run(t, "apply", in, out, "brightness-contrast", "500"); err == nil || !strings.Contains(err.Error(), "max") {
		t.Fatalf("out of range brightness: got %v", err)
	}
}

func TestRunFiltersWithParamsFile(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	params := filepath.Join(dir, "params.json")
	if err := SaveImage(in, raster.Solid(5, 5, color.NRGBA{R: 100, G: 100, B: 100, A: 255}), DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(params, []byte(`{"brightnessContrast": {"brightness": 50}, "invert": {"enabled": true}}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "--params", params, "filters", in, out); err != nil {
		t.Fatalf("filters: %v", err)
	}
	got, _, err := LoadImage(out)
	if err != nil {
		t.Fatal(err)
	}
	// brightness runs before invert: 100+50 = 150, then 255-150
	if c := got.NRGBAAt(2, 2); c.R != 105 || c.A != 255 {
		t.Fatalf("got %v want R=105", c)
	}
	if _, err := run(t, "--params", filepath.Join(dir, "nope.json"), "filters", in, out); err == nil {
		t.Fatalf("expected error for a missing params file")
	}
}

func TestRunFiltersMaxDim(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	if err := SaveImage(in, makeOpaqueGradient(40, 20), DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "--max-dim", "10", "filters", in, out); err != nil {
		t.Fatalf("filters: %v", err)
	}
	got, _, err := LoadImage(out)
	if err != nil || got.Rect.Dx() != 10 || got.Rect.Dy() != 5 {
		t.Fatalf("fitted output: %v %v", got.Rect, err)
	}
}

func TestRunMeshAndWarp(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	meshPath := filepath.Join(dir, "mesh.json")
	src := makeOpaqueGradient(12, 9)
	if err := SaveImage(in, src, DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	js, err := run(t, "mesh", "3", "4", "12", "9")
	if err != nil {
		t.Fatalf("mesh: %v", err)
	}
	var m geom.Mesh
	if err := json.Unmarshal([]byte(js), &m); err != nil || m.Rows != 3 || m.Cols != 4 || len(m.Points) != 12 {
		t.Fatalf("mesh JSON: %+v %v", m, err)
	}
	if err := os.WriteFile(meshPath, []byte(js), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "warp", in, out, meshPath); err != nil {
		t.Fatalf("warp: %v", err)
	}
	got, _, err := LoadImage(out)
	if err != nil {
		t.Fatal(err)
	}
	if !raster.Equal(got, src) {
		t.Fatalf("identity mesh changed the image")
	}

	if err := os.WriteFile(meshPath, []byte(`{"rows": 1, "cols": 4, "points": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "warp", in, out, meshPath); !errors.Is(err, geom.ErrMesh) {
		t.Fatalf("bad mesh: got %v", err)
	}
	if _, err := run(t, "mesh", "1", "4", "12", "9"); !errors.Is(err, geom.ErrMesh) {
		t.Fatalf("mesh 1x4: got %v", err)
	}
}

func TestRunPerspectiveIdentity(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.png")
	out := filepath.Join(dir, "out.png")
	src := makeOpaqueGradient(8, 6)
	if err := SaveImage(in, src, DefaultConfig()); err != nil {
		t.Fatal(err)
	}
	if _, err := run(t, "perspective", in, out, "0", "0", "7", "0", "7", "5", "0", "5"); err != nil {
		t.Fatalf("perspective: %v", err)
	}
	got, _, err := LoadImage(out)
	if err != nil || !raster.Equal(got, src) {
		t.Fatalf("identity perspective changed the image: %v", err)
	}
}

func TestRunParams(t *testing.T) {
	out, err := run(t, "params")
	if err != nil {
		t.Fatalf("params: %v", err)
	}
	p, err := stdimg.LoadParams(strings.NewReader(out))
	if err != nil {
		t.Fatalf("printed params do not load back: %v", err)
	}
	if p != stdimg.DefaultParams() {
		t.Fatalf("printed params differ from the defaults")
	}
}

func TestRunInfo(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.jpg")
	if err := os.WriteFile(in, jpegWithAPP1(t, makeOpaqueGradient(6, 4), exifPayload(binary.LittleEndian, "", 1)), 0o644); err != nil {
		t.Fatal(err)
	}
	out, err := run(t, "info", in)
	if err != nil {
		t.Fatalf("info: %v", err)
	}
	if !strings.Contains(out, "Format: JPEG, Width: 6, Height: 4") || !strings.Contains(out, "Orientation: 1") {
		t.Fatalf("info output: %q", out)
	}
}

func TestRunBatchCommand(t *testing.T) {
	dir := t.TempDir()
	inputs := writeInputs(t, dir, 3)
	outDir := filepath.Join(dir, "results")
	args := append([]string{"--threads", "2", "batch", outDir}, inputs...)
	if _, err := run(t, args...); err != nil {
		t.Fatalf("batch: %v", err)
	}
	for _, in := range inputs {
		if _, err := os.Stat(filepath.Join(outDir, filepath.Base(in))); err != nil {
			t.Fatalf("missing output for %s: %v", in, err)
		}
	}
}

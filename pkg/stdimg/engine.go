package stdimg

import (
	"errors"
	"fmt"
	"image"
	"strconv"
	"strings"

	"golang.org/x/image/draw"

	"github.com/Fepozopo/rasterfx/pkg/geom"
	"github.com/Fepozopo/rasterfx/pkg/raster"
)

// ErrUnknownCommand is returned by ApplyCommand for names not in Commands.
var ErrUnknownCommand = errors.New("unknown command")

// args reads positional command arguments, remembering the first error.
type args struct {
	cmd  string
	list []string
	err  error
}

func (a *args) has(i int) bool { return i < len(a.list) && a.err == nil }

func (a *args) fail(i int, what string, err error) {
	if a.err == nil {
		a.err = fmt.Errorf("%s: invalid %s %q: %w", a.cmd, what, a.list[i], err)
	}
}

func (a *args) float(i int, what string, def float64) float64 {
	if !a.has(i) {
		return def
	}
	v, err := strconv.ParseFloat(a.list[i], 64)
	if err != nil {
		a.fail(i, what, err)
	}
	return v
}

func (a *args) int(i int, what string, def int) int {
	if !a.has(i) {
		return def
	}
	v, err := strconv.Atoi(a.list[i])
	if err != nil {
		a.fail(i, what, err)
	}
	return v
}

func (a *args) int64(i int, what string, def int64) int64 {
	if !a.has(i) {
		return def
	}
	v, err := strconv.ParseInt(a.list[i], 10, 64)
	if err != nil {
		a.fail(i, what, err)
	}
	return v
}

func (a *args) bool(i int, what string, def bool) bool {
	if !a.has(i) {
		return def
	}
	v, err := strconv.ParseBool(a.list[i])
	if err != nil {
		a.fail(i, what, err)
	}
	return v
}

// text decodes an enum argument through its UnmarshalText method.
func (a *args) text(i int, what string, into interface{ UnmarshalText([]byte) error }) {
	if !a.has(i) {
		return
	}
	if err := into.UnmarshalText([]byte(a.list[i])); err != nil {
		a.fail(i, what, err)
	}
}

// checkCount validates len(list) against the registry entry for cmd.
func checkCount(cmd string, list []string) error {
	spec, ok := FindCommand(cmd)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, cmd)
	}
	if len(list) < spec.requiredArgs() || len(list) > len(spec.Args) {
		return fmt.Errorf("%s expects %s", cmd, spec.Usage)
	}
	return nil
}

// ApplyCommand applies one named filter from Commands to img and returns a
// new buffer. Randomized filters take an optional trailing seed.
func ApplyCommand(img image.Image, name string, list []string) (*image.NRGBA, error) {
	if img == nil {
		return nil, fmt.Errorf("source image is nil")
	}
	src := raster.FromImage(img)
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "perspective" {
		return applyPerspectiveCommand(src, list)
	}
	if err := checkCount(name, list); err != nil {
		return nil, err
	}
	a := &args{cmd: name, list: list}
	def := DefaultParams()
	var op Op
	seed := int64(0)

	switch name {
	case "brightness-contrast":
		op = BrightnessContrastParams{Brightness: a.float(0, "brightness", 0), Contrast: a.float(1, "contrast", 0)}

	case "hue-saturation":
		op = HueSaturationParams{
			Hue:         a.float(0, "hue", 0),
			Saturation:  a.float(1, "saturation", 0),
			Temperature: a.float(2, "temperature", 0),
		}

	case "blur":
		p := BlurParams{Radius: a.float(0, "radius", 0), Angle: a.float(2, "angle", 0)}
		a.text(1, "blur type", &p.Type)
		op = p

	case "frosted-glass":
		op = FrostedGlassParams{Amount: a.float(0, "amount", 0)}
		seed = a.int64(1, "seed", 0)

	case "noise":
		p := def.Noise
		p.Amount = a.float(0, "amount", 0)
		a.text(1, "noise type", &p.Type)
		p.Density = a.float(2, "density", p.Density)
		seed = a.int64(3, "seed", 0)
		op = p

	case "posterize":
		op = PosterizeParams{Levels: a.int(0, "levels", 0)}

	case "posterize-style":
		p := def.PosterizeStyle
		a.text(0, "style", &p.Style)
		p.Intensity = a.float(1, "intensity", p.Intensity)
		op = p

	case "line-art":
		p := def.LineArt
		p.Enabled = true
		p.Threshold = a.float(0, "threshold", p.Threshold)
		p.ColorBlend = a.float(1, "color blend", 0)
		p.PhotoBlend = a.float(2, "photo blend", 0)
		op = p

	case "find-edges":
		p := def.FindEdges
		p.Enabled = true
		p.Strength = a.float(0, "strength", p.Strength)
		p.Blend = a.float(1, "blend", 0)
		op = p

	case "invert":
		op = InvertParams{Enabled: true}

	case "levels":
		op = LevelsParams{
			Black: a.float(0, "black point", 0),
			White: a.float(1, "white point", 255),
			Gamma: a.float(2, "gamma", 1),
			Mono:  a.bool(3, "mono", false),
		}

	case "halftone":
		p := def.Halftone
		p.Enabled = true
		p.Size = a.float(0, "size", p.Size)
		p.Angle = a.float(1, "angle", p.Angle)
		p.ColorMode = a.bool(2, "color mode", false)
		p.ColorBlend = a.float(3, "color blend", 0)
		a.text(4, "blend mode", &p.BlendMode)
		op = p

	case "stroke":
		p := def.Stroke
		p.Width = a.int(0, "width", 0)
		if a.has(1) {
			c, err := ParseColor(list[1])
			if err != nil {
				return nil, fmt.Errorf("stroke: %w", err)
			}
			p.Color = RGB{c.R, c.G, c.B}
		}
		p.Inner = a.bool(2, "inner", p.Inner)
		p.Outer = a.bool(3, "outer", p.Outer)
		op = p

	case "facet":
		p := def.Facet
		a.text(0, "facet type", &p.Type)
		p.BlockSize = a.int(1, "block size", p.BlockSize)
		seed = a.int64(2, "seed", 0)
		op = p

	case "oil-paint":
		p := def.OilPaint
		p.Radius = a.int(0, "radius", 0)
		p.Levels = a.int(1, "levels", p.Levels)
		op = p

	case "metal":
		op = MetalParams{Intensity: a.float(0, "intensity", 0)}

	case "palette-knife":
		p := def.PaletteKnife
		p.Length = a.int(0, "length", 0)
		p.Angle = a.float(1, "angle", p.Angle)
		p.Bins = a.int(2, "bins", p.Bins)
		op = p

	case "texture":
		p := def.Texture
		a.text(0, "texture type", &p.Type)
		p.Intensity = a.float(1, "intensity", p.Intensity)
		p.Scale = a.int(2, "scale", p.Scale)
		op = p

	case "color-separation":
		p := def.ColorSeparation
		p.Enabled = true
		p.RedLevels = a.int(0, "red levels", p.RedLevels)
		p.GreenLevels = a.int(1, "green levels", p.GreenLevels)
		p.BlueLevels = a.int(2, "blue levels", p.BlueLevels)
		p.Mix = a.float(3, "mix", p.Mix)
		op = p

	case "game":
		p := def.Game
		a.text(0, "game filter", &p.Type)
		p.PixelSize = a.int(1, "pixel size", p.PixelSize)
		p.Intensity = a.float(2, "intensity", p.Intensity)
		op = p

	case "channel-shift":
		op = ChannelShiftParams{
			RedGreen:   a.float(0, "red/green", 0),
			YellowBlue: a.float(1, "yellow/blue", 0),
			PinkCyan:   a.float(2, "pink/cyan", 0),
		}

	case "gradient-fade":
		var p GradientFadeParams
		a.text(0, "direction", &p.Direction)
		p.Amount = a.float(1, "amount", 0)
		op = p

	case "layer":
		op = LayerAdjustParams{HueRotate: a.float(0, "hue rotation", 0), Saturation: a.float(1, "saturation", 0)}

	case "auto-levels":
		clip := a.float(0, "clip", 0.5)
		if a.err != nil {
			return nil, a.err
		}
		black, white := AutoLevels(src, clip)
		op = LevelsParams{Black: black, White: white, Gamma: 1}

	case "resize":
		w := a.int(0, "width", 0)
		h := a.int(1, "height", 0)
		if a.err != nil {
			return nil, a.err
		}
		if w <= 0 || h <= 0 {
			return nil, fmt.Errorf("resize: size must be positive, got %dx%d", w, h)
		}
		out := raster.New(w, h)
		draw.CatmullRom.Scale(out, out.Bounds(), src, src.Bounds(), draw.Src, nil)
		return out, nil

	case "fit":
		n := a.int(0, "max dimension", 0)
		if a.err != nil {
			return nil, a.err
		}
		out := FitWithin(src, n)
		if out == src {
			out = raster.Clone(src)
		}
		return out, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}

	if a.err != nil {
		return nil, a.err
	}
	if !op.Active() {
		return src, nil
	}
	return op.Apply(src, &Env{Rand: newRand(seed)}), nil
}

// applyPerspectiveCommand maps the source rectangle onto 4 destination
// corners, optionally into an output of a different size.
func applyPerspectiveCommand(src *image.NRGBA, list []string) (*image.NRGBA, error) {
	if len(list) != 8 && len(list) != 10 {
		spec, _ := FindCommand("perspective")
		return nil, fmt.Errorf("perspective expects %s", spec.Usage)
	}
	a := &args{cmd: "perspective", list: list}
	w, h := src.Rect.Dx(), src.Rect.Dy()
	var dst [4]geom.Point
	for i := range dst {
		dst[i] = geom.Pt(a.float(2*i, "coordinate", 0), a.float(2*i+1, "coordinate", 0))
	}
	outW := a.int(8, "output width", w)
	outH := a.int(9, "output height", h)
	if a.err != nil {
		return nil, a.err
	}
	if outW <= 0 || outH <= 0 {
		return nil, fmt.Errorf("perspective: output size must be positive, got %dx%d", outW, outH)
	}
	srcCorners := geom.Corners(float64(w-1), float64(h-1))
	return geom.ApplyPerspective(src, srcCorners, dst, outW, outH), nil
}

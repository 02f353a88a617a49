package stdimg

import (
	"image"
	"math/rand"
)

// Env carries per-run state shared by the ops of one pipeline pass.
type Env struct {
	// Rand feeds the randomized families (frosted glass, noise, voronoi
	// facets). They draw from it in catalog order.
	Rand *rand.Rand
}

// Op is one filter family with its parameters. Apply never mutates src.
type Op interface {
	Name() string
	Active() bool
	Apply(src *image.NRGBA, env *Env) *image.NRGBA
}

func (p BrightnessContrastParams) Name() string { return "brightness-contrast" }
func (p BrightnessContrastParams) Active() bool { return p.Brightness != 0 || p.Contrast != 0 }
func (p BrightnessContrastParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return AdjustBrightnessContrast(src, p.Brightness, p.Contrast)
}

func (p HueSaturationParams) Name() string { return "hue-saturation" }
func (p HueSaturationParams) Active() bool {
	return p.Hue != 0 || p.Saturation != 0 || p.Temperature != 0
}
func (p HueSaturationParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return AdjustHueSaturation(src, p.Hue, p.Saturation, p.Temperature)
}

func (p BlurParams) Name() string { return "blur" }
func (p BlurParams) Active() bool { return p.Radius > 0 }
func (p BlurParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	switch p.Type {
	case BlurBox:
		return BoxBlur(src, p.Radius)
	case BlurMotion:
		return MotionBlur(src, p.Radius, p.Angle)
	case BlurRadial:
		return RadialBlur(src, p.Radius)
	}
	return GaussianBlur(src, p.Radius)
}

func (p FrostedGlassParams) Name() string { return "frosted-glass" }
func (p FrostedGlassParams) Active() bool { return p.Amount > 0 }
func (p FrostedGlassParams) Apply(src *image.NRGBA, env *Env) *image.NRGBA {
	return FrostedGlass(src, p.Amount, env.Rand)
}

func (p NoiseParams) Name() string { return "noise" }
func (p NoiseParams) Active() bool { return p.Amount > 0 && p.Density > 0 }
func (p NoiseParams) Apply(src *image.NRGBA, env *Env) *image.NRGBA {
	return AddNoise(src, p.Type, p.Amount, p.Density, env.Rand)
}

func (p PosterizeParams) Name() string { return "posterize" }
func (p PosterizeParams) Active() bool { return p.Levels >= 2 }
func (p PosterizeParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return Posterize(src, p.Levels)
}

func (p PosterizeStyleParams) Name() string { return "posterize-style" }
func (p PosterizeStyleParams) Active() bool { return p.Style != StyleNone && p.Intensity > 0 }
func (p PosterizeStyleParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return PosterizeWithStyle(src, p.Style, p.Intensity)
}

func (p LineArtParams) Name() string { return "line-art" }
func (p LineArtParams) Active() bool { return p.Enabled }
func (p LineArtParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return LineArt(src, p.Threshold, p.ColorBlend, p.PhotoBlend)
}

func (p FindEdgesParams) Name() string { return "find-edges" }
func (p FindEdgesParams) Active() bool { return p.Enabled }
func (p FindEdgesParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return FindEdges(src, p.Strength, p.Blend)
}

func (p InvertParams) Name() string { return "invert" }
func (p InvertParams) Active() bool { return p.Enabled }
func (p InvertParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return InvertColors(src)
}

func (p LevelsParams) Name() string { return "levels" }
func (p LevelsParams) Active() bool {
	// a collapsed window is a copy; gamma 0 means 1
	if p.White <= p.Black {
		return false
	}
	return p.Black != 0 || p.White != 255 || (p.Gamma != 0 && p.Gamma != 1) || p.Mono
}
func (p LevelsParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return ApplyLevels(src, p.Black, p.White, p.Gamma, p.Mono)
}

func (p HalftoneParams) Name() string { return "halftone" }
func (p HalftoneParams) Active() bool { return p.Enabled }
func (p HalftoneParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return Halftone(src, p.Size, p.Angle, p.ColorMode, p.ColorBlend, p.BlendMode)
}

func (p StrokeParams) Name() string { return "stroke" }
func (p StrokeParams) Active() bool { return p.Width > 0 && (p.Inner || p.Outer) }
func (p StrokeParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return Stroke(src, p.Width, p.Color.NRGBA(), p.Inner, p.Outer)
}

func (p FacetParams) Name() string { return "facet" }
func (p FacetParams) Active() bool { return p.Type != FacetNone && p.BlockSize > 0 }
func (p FacetParams) Apply(src *image.NRGBA, env *Env) *image.NRGBA {
	switch p.Type {
	case FacetVoronoi:
		return Voronoi(src, p.BlockSize, env.Rand)
	case FacetRect:
		return RectFacet(src, p.BlockSize)
	case FacetTriangle:
		return TriangleFacet(src, p.BlockSize)
	case FacetDiamond:
		return DiamondFacet(src, p.BlockSize)
	}
	return src
}

func (p OilPaintParams) Name() string { return "oil-paint" }
func (p OilPaintParams) Active() bool { return p.Radius > 0 }
func (p OilPaintParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return OilPaint(src, p.Radius, p.Levels)
}

func (p MetalParams) Name() string { return "metal" }
func (p MetalParams) Active() bool { return p.Intensity > 0 }
func (p MetalParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return Metal(src, p.Intensity)
}

func (p PaletteKnifeParams) Name() string { return "palette-knife" }
func (p PaletteKnifeParams) Active() bool { return p.Length > 0 }
func (p PaletteKnifeParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return PaletteKnife(src, p.Length, p.Angle, p.Bins)
}

func (p TextureParams) Name() string { return "texture" }
func (p TextureParams) Active() bool { return p.Type != TextureNone && p.Intensity > 0 }
func (p TextureParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return ApplyTexture(src, p.Type, p.Intensity, p.Scale)
}

func (p ColorSeparationParams) Name() string { return "color-separation" }
func (p ColorSeparationParams) Active() bool { return p.Enabled && p.Mix > 0 }
func (p ColorSeparationParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return SeparateColors(src, p.RedLevels, p.GreenLevels, p.BlueLevels, p.Mix)
}

func (p GameParams) Name() string { return "game" }
func (p GameParams) Active() bool { return p.Type != GameNone && p.Intensity > 0 }
func (p GameParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return ApplyGame(src, p.Type, p.PixelSize, p.Intensity)
}

func (p ChannelShiftParams) Name() string { return "channel-shift" }
func (p ChannelShiftParams) Active() bool {
	return p.RedGreen != 0 || p.YellowBlue != 0 || p.PinkCyan != 0
}
func (p ChannelShiftParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return ShiftChannels(src, p.RedGreen, p.YellowBlue, p.PinkCyan)
}

func (p GradientFadeParams) Name() string { return "gradient-fade" }
func (p GradientFadeParams) Active() bool { return p.Amount > 0 }
func (p GradientFadeParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return GradientFade(src, p.Direction, p.Amount)
}

func (p LayerAdjustParams) Name() string { return "layer" }
func (p LayerAdjustParams) Active() bool { return p.HueRotate != 0 || p.Saturation != 0 }
func (p LayerAdjustParams) Apply(src *image.NRGBA, _ *Env) *image.NRGBA {
	return AdjustLayer(src, p.HueRotate, p.Saturation)
}

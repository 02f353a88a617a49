package stdimg

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"
	"strings"
)

// BlurType selects the blur kernel.
type BlurType int

const (
	BlurGaussian BlurType = iota
	BlurBox
	BlurMotion
	BlurRadial
)

var blurTypeNames = []string{"gaussian", "box", "motion", "radial"}

// NoiseType selects the noise generator.
type NoiseType int

const (
	NoiseGaussian NoiseType = iota
	NoiseFilmGrain
	NoiseColor
	NoiseMonochrome
)

var noiseTypeNames = []string{"gaussian", "film-grain", "color", "monochrome"}

// PosterStyle selects a fixed posterize recipe.
type PosterStyle int

const (
	StyleNone PosterStyle = iota
	StyleNeon
	StyleRetro
	StylePastel
	StyleDuotone
)

var posterStyleNames = []string{"none", "neon", "retro", "pastel", "duotone"}

// BlendMode is the halftone post blend against the original.
type BlendMode int

const (
	BlendNormal BlendMode = iota
	BlendOverlay
	BlendMultiply
	BlendDarken
)

var blendModeNames = []string{"normal", "overlay", "multiply", "darken"}

// FacetType selects the cell partition of the facet filter.
type FacetType int

const (
	FacetNone FacetType = iota
	FacetVoronoi
	FacetRect
	FacetTriangle
	FacetDiamond
)

var facetTypeNames = []string{"none", "voronoi", "rect", "triangle", "diamond"}

// TextureType selects a brush/texture recipe.
type TextureType int

const (
	TextureNone TextureType = iota
	TextureCanvas
	TextureWatercolor
	TextureCrayon
	TextureImpasto
	TextureCrosshatch
	TextureStipple
)

var textureTypeNames = []string{"none", "canvas", "watercolor", "crayon", "impasto", "crosshatch", "stipple"}

// GameType selects a game stylization.
type GameType int

const (
	GameNone GameType = iota
	GameMosaic
	GameCRT
	GameNeonGlow
	GameEightBit
)

var gameTypeNames = []string{"none", "mosaic", "crt", "neon-glow", "8bit"}

// FadeDirection selects the axis of the gradient fade.
type FadeDirection int

const (
	FadeRight FadeDirection = iota
	FadeLeft
	FadeDown
	FadeUp
	FadeRadial
)

var fadeDirectionNames = []string{"right", "left", "down", "up", "radial"}

func enumName(names []string, v int) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("%d", v)
	}
	return names[v]
}

func enumParse(kind string, names []string, s string) (int, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return i, nil
		}
	}
	var v int
	if _, err := fmt.Sscanf(s, "%d", &v); err == nil && v >= 0 && v < len(names) {
		return v, nil
	}
	return 0, fmt.Errorf("unknown %s %q (want one of %s)", kind, s, strings.Join(names, ", "))
}

func (t BlurType) String() string      { return enumName(blurTypeNames, int(t)) }
func (t NoiseType) String() string     { return enumName(noiseTypeNames, int(t)) }
func (t PosterStyle) String() string   { return enumName(posterStyleNames, int(t)) }
func (t BlendMode) String() string     { return enumName(blendModeNames, int(t)) }
func (t FacetType) String() string     { return enumName(facetTypeNames, int(t)) }
func (t TextureType) String() string   { return enumName(textureTypeNames, int(t)) }
func (t GameType) String() string      { return enumName(gameTypeNames, int(t)) }
func (t FadeDirection) String() string { return enumName(fadeDirectionNames, int(t)) }

func (t BlurType) MarshalText() ([]byte, error)      { return []byte(t.String()), nil }
func (t NoiseType) MarshalText() ([]byte, error)     { return []byte(t.String()), nil }
func (t PosterStyle) MarshalText() ([]byte, error)   { return []byte(t.String()), nil }
func (t BlendMode) MarshalText() ([]byte, error)     { return []byte(t.String()), nil }
func (t FacetType) MarshalText() ([]byte, error)     { return []byte(t.String()), nil }
func (t TextureType) MarshalText() ([]byte, error)   { return []byte(t.String()), nil }
func (t GameType) MarshalText() ([]byte, error)      { return []byte(t.String()), nil }
func (t FadeDirection) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

func (t *BlurType) UnmarshalText(b []byte) error {
	v, err := enumParse("blur type", blurTypeNames, string(b))
	*t = BlurType(v)
	return err
}

func (t *NoiseType) UnmarshalText(b []byte) error {
	v, err := enumParse("noise type", noiseTypeNames, string(b))
	*t = NoiseType(v)
	return err
}

func (t *PosterStyle) UnmarshalText(b []byte) error {
	v, err := enumParse("posterize style", posterStyleNames, string(b))
	*t = PosterStyle(v)
	return err
}

func (t *BlendMode) UnmarshalText(b []byte) error {
	v, err := enumParse("blend mode", blendModeNames, string(b))
	*t = BlendMode(v)
	return err
}

func (t *FacetType) UnmarshalText(b []byte) error {
	v, err := enumParse("facet type", facetTypeNames, string(b))
	*t = FacetType(v)
	return err
}

func (t *TextureType) UnmarshalText(b []byte) error {
	v, err := enumParse("texture type", textureTypeNames, string(b))
	*t = TextureType(v)
	return err
}

func (t *GameType) UnmarshalText(b []byte) error {
	v, err := enumParse("game filter", gameTypeNames, string(b))
	*t = GameType(v)
	return err
}

func (t *FadeDirection) UnmarshalText(b []byte) error {
	v, err := enumParse("fade direction", fadeDirectionNames, string(b))
	*t = FadeDirection(v)
	return err
}

// RGB is an opaque stroke color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// NRGBA returns c with full alpha.
func (c RGB) NRGBA() color.NRGBA { return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255} }

// BrightnessContrastParams adds Brightness after scaling around 128 by the
// contrast factor 259(c+255)/(255(259-c)).
type BrightnessContrastParams struct {
	Brightness float64 `json:"brightness"`
	Contrast   float64 `json:"contrast"`
}

// HueSaturationParams shifts color temperature first, then hue and saturation.
type HueSaturationParams struct {
	Hue         float64 `json:"hue"`
	Saturation  float64 `json:"saturation"`
	Temperature float64 `json:"temperature"`
}

type BlurParams struct {
	Type   BlurType `json:"type"`
	Radius float64  `json:"radius"`
	Angle  float64  `json:"angle"`
}

type FrostedGlassParams struct {
	Amount float64 `json:"amount"`
}

type NoiseParams struct {
	Type    NoiseType `json:"type"`
	Amount  float64   `json:"amount"`
	Density float64   `json:"density"`
}

type PosterizeParams struct {
	Levels int `json:"levels"`
}

type PosterizeStyleParams struct {
	Style     PosterStyle `json:"style"`
	Intensity float64     `json:"intensity"`
}

type LineArtParams struct {
	Enabled    bool    `json:"enabled"`
	Threshold  float64 `json:"threshold"`
	ColorBlend float64 `json:"colorBlend"`
	PhotoBlend float64 `json:"photoBlend"`
}

type FindEdgesParams struct {
	Enabled  bool    `json:"enabled"`
	Strength float64 `json:"strength"`
	Blend    float64 `json:"blend"`
}

type InvertParams struct {
	Enabled bool `json:"enabled"`
}

type LevelsParams struct {
	Black float64 `json:"black"`
	White float64 `json:"white"`
	Gamma float64 `json:"gamma"`
	Mono  bool    `json:"mono"`
}

type HalftoneParams struct {
	Enabled    bool      `json:"enabled"`
	Size       float64   `json:"size"`
	Angle      float64   `json:"angle"`
	ColorMode  bool      `json:"colorMode"`
	ColorBlend float64   `json:"colorBlend"`
	BlendMode  BlendMode `json:"blendMode"`
}

type StrokeParams struct {
	Width int  `json:"width"`
	Color RGB  `json:"color"`
	Inner bool `json:"inner"`
	Outer bool `json:"outer"`
}

type FacetParams struct {
	Type      FacetType `json:"type"`
	BlockSize int       `json:"blockSize"`
}

type OilPaintParams struct {
	Radius int `json:"radius"`
	Levels int `json:"levels"`
}

type MetalParams struct {
	Intensity float64 `json:"intensity"`
}

type PaletteKnifeParams struct {
	Length int     `json:"length"`
	Angle  float64 `json:"angle"`
	Bins   int     `json:"bins"`
}

type TextureParams struct {
	Type      TextureType `json:"type"`
	Intensity float64     `json:"intensity"`
	Scale     int         `json:"scale"`
}

type ColorSeparationParams struct {
	Enabled     bool    `json:"enabled"`
	RedLevels   int     `json:"redLevels"`
	GreenLevels int     `json:"greenLevels"`
	BlueLevels  int     `json:"blueLevels"`
	Mix         float64 `json:"mix"`
}

type GameParams struct {
	Type      GameType `json:"type"`
	PixelSize int      `json:"pixelSize"`
	Intensity float64  `json:"intensity"`
}

type ChannelShiftParams struct {
	RedGreen   float64 `json:"redGreen"`
	YellowBlue float64 `json:"yellowBlue"`
	PinkCyan   float64 `json:"pinkCyan"`
}

type GradientFadeParams struct {
	Direction FadeDirection `json:"direction"`
	Amount    float64       `json:"amount"`
}

// LayerAdjustParams is the per-layer adjustment applied after the catalog.
// Saturation is a delta in percent: 0 is unchanged, -100 is gray.
type LayerAdjustParams struct {
	HueRotate  float64 `json:"hueRotate"`
	Saturation float64 `json:"saturation"`
}

// Params is the full filter set for one layer. Each family is disabled at
// its zero/neutral value; see DefaultParams.
type Params struct {
	BrightnessContrast BrightnessContrastParams `json:"brightnessContrast"`
	HueSaturation      HueSaturationParams      `json:"hueSaturation"`
	Blur               BlurParams               `json:"blur"`
	FrostedGlass       FrostedGlassParams       `json:"frostedGlass"`
	Noise              NoiseParams              `json:"noise"`
	Posterize          PosterizeParams          `json:"posterize"`
	PosterizeStyle     PosterizeStyleParams     `json:"posterizeStyle"`
	LineArt            LineArtParams            `json:"lineArt"`
	FindEdges          FindEdgesParams          `json:"findEdges"`
	Invert             InvertParams             `json:"invert"`
	Levels             LevelsParams             `json:"levels"`
	Halftone           HalftoneParams           `json:"halftone"`
	Stroke             StrokeParams             `json:"stroke"`
	Facet              FacetParams              `json:"facet"`
	OilPaint           OilPaintParams           `json:"oilPaint"`
	Metal              MetalParams              `json:"metal"`
	PaletteKnife       PaletteKnifeParams       `json:"paletteKnife"`
	Texture            TextureParams            `json:"texture"`
	ColorSeparation    ColorSeparationParams    `json:"colorSeparation"`
	Game               GameParams               `json:"game"`
	ChannelShift       ChannelShiftParams       `json:"channelShift"`
	GradientFade       GradientFadeParams       `json:"gradientFade"`
	Layer              LayerAdjustParams        `json:"layer"`

	// Seed drives every randomized family; 0 selects the fixed seed 1.
	Seed int64 `json:"seed"`
}

// DefaultParams returns the neutral filter set: applying it is the identity.
func DefaultParams() Params {
	return Params{
		Noise:           NoiseParams{Type: NoiseGaussian, Density: 100},
		PosterizeStyle:  PosterizeStyleParams{Intensity: 100},
		LineArt:         LineArtParams{Threshold: 40},
		FindEdges:       FindEdgesParams{Strength: 1},
		Levels:          LevelsParams{Black: 0, White: 255, Gamma: 1},
		Halftone:        HalftoneParams{Size: 8, Angle: 45},
		Stroke:          StrokeParams{Color: RGB{0, 0, 0}, Outer: true},
		Facet:           FacetParams{BlockSize: 12},
		OilPaint:        OilPaintParams{Levels: 20},
		PaletteKnife:    PaletteKnifeParams{Angle: 45, Bins: 16},
		Texture:         TextureParams{Intensity: 50, Scale: 6},
		ColorSeparation: ColorSeparationParams{RedLevels: 4, GreenLevels: 3, BlueLevels: 5, Mix: 100},
		Game:            GameParams{PixelSize: 8, Intensity: 100},
	}
}

// LoadParams decodes a JSON filter set on top of DefaultParams. Unknown
// fields are rejected.
func LoadParams(r io.Reader) (Params, error) {
	p := DefaultParams()
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		return p, fmt.Errorf("decode filter params: %w", err)
	}
	return p, nil
}

// Ops returns the catalog families in their fixed application order.
// Disabled families are included; callers skip them via Active.
func (p *Params) Ops() []Op {
	return []Op{
		p.BrightnessContrast,
		p.HueSaturation,
		p.Blur,
		p.FrostedGlass,
		p.Noise,
		p.Posterize,
		p.PosterizeStyle,
		p.LineArt,
		p.FindEdges,
		p.Invert,
		p.Levels,
		p.Halftone,
		p.Stroke,
		p.Facet,
		p.OilPaint,
		p.Metal,
		p.PaletteKnife,
		p.Texture,
		p.ColorSeparation,
		p.Game,
		p.ChannelShift,
		p.GradientFade,
	}
}

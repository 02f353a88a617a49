// Registry of the named commands understood by ApplyCommand.
//
// Keep this list in step with the switch in engine.go: ApplyCommand
// validates argument counts against it and the CLI prints its help from it.

package stdimg

import "strings"

// ArgSpec describes a single argument for a command. Fields are textual
// and intended for help/validation UI rather than machine-enforced typing.
type ArgSpec struct {
	Name        string // human name
	Type        string // "int", "float", "bool", "string", "color", ...
	Required    bool
	Default     string // textual default (for help only)
	Description string
}

// CommandSpec defines a single command and its expected arguments.
type CommandSpec struct {
	Name        string
	Args        []ArgSpec
	Usage       string // short usage string
	Description string // brief description
}

// Commands is the authoritative list of commands implemented by ApplyCommand.
var Commands = []CommandSpec{
	{
		Name:        "brightness-contrast",
		Args:        []ArgSpec{{"brightness", "float", true, "", "-100..100"}, {"contrast", "float", false, "0", "-100..100"}},
		Usage:       "brightness-contrast <brightness> [contrast]",
		Description: "Shift brightness and scale contrast around mid-gray.",
	},
	{
		Name: "hue-saturation",
		Args: []ArgSpec{
			{"hue", "float", true, "", "hue rotation in degrees"},
			{"saturation", "float", false, "0", "-100..100"},
			{"temperature", "float", false, "0", "-100 (cool) .. 100 (warm)"},
		},
		Usage:       "hue-saturation <hue> [saturation] [temperature]",
		Description: "Color temperature, then HSL hue rotation and saturation.",
	},
	{
		Name: "blur",
		Args: []ArgSpec{
			{"radius", "float", true, "", "0..50"},
			{"type", "string", false, "gaussian", strings.Join(blurTypeNames, "|")},
			{"angle", "float", false, "0", "motion direction in degrees"},
		},
		Usage:       "blur <radius> [type] [angle]",
		Description: "Gaussian, box, motion or radial blur.",
	},
	{
		Name:        "frosted-glass",
		Args:        []ArgSpec{{"amount", "float", true, "", "max displacement in px"}, {"seed", "int", false, "0", "random seed"}},
		Usage:       "frosted-glass <amount> [seed]",
		Description: "Random pixel scatter followed by a light blur.",
	},
	{
		Name: "noise",
		Args: []ArgSpec{
			{"amount", "float", true, "", "0..100"},
			{"type", "string", false, "gaussian", strings.Join(noiseTypeNames, "|")},
			{"density", "float", false, "100", "percent of pixels touched"},
			{"seed", "int", false, "0", "random seed"},
		},
		Usage:       "noise <amount> [type] [density] [seed]",
		Description: "Add gaussian, film-grain, color or monochrome noise.",
	},
	{
		Name:        "posterize",
		Args:        []ArgSpec{{"levels", "int", true, "", "2..256"}},
		Usage:       "posterize <levels>",
		Description: "Reduce each channel to the given number of levels.",
	},
	{
		Name:        "posterize-style",
		Args:        []ArgSpec{{"style", "string", true, "", strings.Join(posterStyleNames[1:], "|")}, {"intensity", "float", false, "100", "0..100"}},
		Usage:       "posterize-style <style> [intensity]",
		Description: "Neon, retro, pastel or duotone poster look.",
	},
	{
		Name: "line-art",
		Args: []ArgSpec{
			{"threshold", "float", false, "40", "edge threshold 0..255"},
			{"colorBlend", "float", false, "0", "0..100"},
			{"photoBlend", "float", false, "0", "0..100"},
		},
		Usage:       "line-art [threshold] [colorBlend] [photoBlend]",
		Description: "Black lines on white from Sobel edges.",
	},
	{
		Name:        "find-edges",
		Args:        []ArgSpec{{"strength", "float", false, "1", "0.1..5"}, {"blend", "float", false, "0", "0..100"}},
		Usage:       "find-edges [strength] [blend]",
		Description: "Per-channel Sobel edge magnitude.",
	},
	{
		Name:        "invert",
		Args:        nil,
		Usage:       "invert",
		Description: "Invert color channels.",
	},
	{
		Name: "levels",
		Args: []ArgSpec{
			{"black", "float", true, "", "0..254"},
			{"white", "float", true, "", "1..255"},
			{"gamma", "float", false, "1", "0.1..10"},
			{"mono", "bool", false, "false", "remap luminance to gray"},
		},
		Usage:       "levels <black> <white> [gamma] [mono]",
		Description: "Black/white point and gamma remap.",
	},
	{
		Name: "halftone",
		Args: []ArgSpec{
			{"size", "float", false, "8", "dot pitch 2..50"},
			{"angle", "float", false, "45", "grid angle in degrees"},
			{"colorMode", "bool", false, "false", "use source colors for dots"},
			{"colorBlend", "float", false, "0", "0..100"},
			{"blendMode", "string", false, "normal", strings.Join(blendModeNames, "|")},
		},
		Usage:       "halftone [size] [angle] [colorMode] [colorBlend] [blendMode]",
		Description: "Rotated dot screen.",
	},
	{
		Name: "stroke",
		Args: []ArgSpec{
			{"width", "int", true, "", "0..50"},
			{"color", "color", false, "black", "name, #rgb or #rrggbb"},
			{"inner", "bool", false, "false", "stroke inside the shape"},
			{"outer", "bool", false, "true", "stroke outside the shape"},
		},
		Usage:       "stroke <width> [color] [inner] [outer]",
		Description: "Outline the opaque region.",
	},
	{
		Name: "facet",
		Args: []ArgSpec{
			{"type", "string", true, "", strings.Join(facetTypeNames[1:], "|")},
			{"blockSize", "int", false, "12", "2..100"},
			{"seed", "int", false, "0", "random seed (voronoi)"},
		},
		Usage:       "facet <type> [blockSize] [seed]",
		Description: "Voronoi, rect, triangle or diamond facets.",
	},
	{
		Name:        "oil-paint",
		Args:        []ArgSpec{{"radius", "int", true, "", "0..10"}, {"levels", "int", false, "20", "intensity buckets"}},
		Usage:       "oil-paint <radius> [levels]",
		Description: "Most common intensity in a square window.",
	},
	{
		Name:        "metal",
		Args:        []ArgSpec{{"intensity", "float", true, "", "0..100"}},
		Usage:       "metal <intensity>",
		Description: "Embossed brushed-steel look.",
	},
	{
		Name: "palette-knife",
		Args: []ArgSpec{
			{"length", "int", true, "", "0..40"},
			{"angle", "float", false, "45", "stroke direction in degrees"},
			{"bins", "int", false, "16", "2..64"},
		},
		Usage:       "palette-knife <length> [angle] [bins]",
		Description: "Most common color along a directional stroke.",
	},
	{
		Name: "texture",
		Args: []ArgSpec{
			{"type", "string", true, "", strings.Join(textureTypeNames[1:], "|")},
			{"intensity", "float", false, "50", "0..100"},
			{"scale", "int", false, "6", "pattern period 2..32"},
		},
		Usage:       "texture <type> [intensity] [scale]",
		Description: "Canvas, watercolor, crayon, impasto, crosshatch or stipple.",
	},
	{
		Name: "color-separation",
		Args: []ArgSpec{
			{"red", "int", false, "4", "red levels"},
			{"green", "int", false, "3", "green levels"},
			{"blue", "int", false, "5", "blue levels"},
			{"mix", "float", false, "100", "0..100"},
		},
		Usage:       "color-separation [red] [green] [blue] [mix]",
		Description: "Posterize each channel separately.",
	},
	{
		Name: "game",
		Args: []ArgSpec{
			{"type", "string", true, "", strings.Join(gameTypeNames[1:], "|")},
			{"pixelSize", "int", false, "8", "block size 2..64"},
			{"intensity", "float", false, "100", "0..100"},
		},
		Usage:       "game <type> [pixelSize] [intensity]",
		Description: "Mosaic, CRT, neon glow or 8-bit palette.",
	},
	{
		Name: "channel-shift",
		Args: []ArgSpec{
			{"redGreen", "float", true, "", "-100..100"},
			{"yellowBlue", "float", false, "0", "-100..100"},
			{"pinkCyan", "float", false, "0", "-100..100"},
		},
		Usage:       "channel-shift <redGreen> [yellowBlue] [pinkCyan]",
		Description: "Push color balance between opposing channels.",
	},
	{
		Name:        "gradient-fade",
		Args:        []ArgSpec{{"direction", "string", true, "", strings.Join(fadeDirectionNames, "|")}, {"amount", "float", true, "", "0..100"}},
		Usage:       "gradient-fade <direction> <amount>",
		Description: "Fade alpha along a direction.",
	},
	{
		Name:        "layer",
		Args:        []ArgSpec{{"hueRotate", "float", true, "", "-180..180"}, {"saturation", "float", false, "0", "-100..100"}},
		Usage:       "layer <hueRotate> [saturation]",
		Description: "Layer hue rotation and saturation.",
	},
	{
		Name:        "auto-levels",
		Args:        []ArgSpec{{"clip", "float", false, "0.5", "percent clipped at each end"}},
		Usage:       "auto-levels [clip]",
		Description: "Stretch the luminance range found in the histogram.",
	},
	{
		Name:        "resize",
		Args:        []ArgSpec{{"width", "int", true, "", "output width"}, {"height", "int", true, "", "output height"}},
		Usage:       "resize <width> <height>",
		Description: "Resize with Catmull-Rom resampling.",
	},
	{
		Name:        "fit",
		Args:        []ArgSpec{{"maxDim", "int", true, "", "longest side in px"}},
		Usage:       "fit <maxDim>",
		Description: "Downscale so neither side exceeds maxDim.",
	},
	{
		Name: "perspective",
		Args: []ArgSpec{
			{"corners", "float", true, "", "x0 y0 x1 y1 x2 y2 x3 y3 (destination, clockwise from top-left)"},
			{"size", "int", false, "source size", "outWidth outHeight"},
		},
		Usage:       "perspective x0 y0 x1 y1 x2 y2 x3 y3 [outWidth outHeight]",
		Description: "Map the image corners onto a quadrilateral.",
	},
}

// FindCommand returns the registry entry for name.
func FindCommand(name string) (CommandSpec, bool) {
	for _, c := range Commands {
		if c.Name == name {
			return c, true
		}
	}
	return CommandSpec{}, false
}

// requiredArgs counts the leading required arguments of c.
func (c CommandSpec) requiredArgs() int {
	n := 0
	for _, a := range c.Args {
		if a.Required {
			n++
		}
	}
	return n
}

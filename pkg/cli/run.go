package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"
	"strconv"

	"github.com/InfinityTools/go-logging"

	"github.com/Fepozopo/rasterfx/pkg/geom"
	"github.com/Fepozopo/rasterfx/pkg/raster"
	"github.com/Fepozopo/rasterfx/pkg/stdimg"
)

const helpText = "Commands:\n" +
	"  filters <input> <output>          Run the filter set from --params (or the\n" +
	"                                    neutral set) over an image.\n" +
	"  apply <input> <output> <cmd> [args...]\n" +
	"                                    Apply a single named command.\n" +
	"  perspective <input> <output> x0 y0 x1 y1 x2 y2 x3 y3 [width height]\n" +
	"                                    Map the image corners onto a quadrilateral.\n" +
	"  warp <input> <output> <mesh.json> Deform the image with a control point mesh.\n" +
	"  mesh <rows> <cols> <width> <height>\n" +
	"                                    Print an identity mesh as JSON.\n" +
	"  batch <outdir> <input> [input...] Run the filter set over many files.\n" +
	"  params                            Print the neutral filter set as JSON.\n" +
	"  info <input>                      Print size, format and EXIF data.\n" +
	"  list                              List the commands accepted by apply.\n" +
	"  help [cmd]                        Show this text or help for one command.\n" +
	"  update                            Check for a newer release.\n" +
	"\n" +
	"Options:\n" +
	"  --params file         JSON filter set used by filters and batch.\n" +
	"  --seed n              Random seed; overrides the seed in --params.\n" +
	"  --max-dim n           Downscale so that no side exceeds n pixels.\n" +
	"  --workers n           Goroutines per filter pass (0 = all CPUs).\n" +
	"  --threads n           Files processed at once by batch (default: all CPUs).\n" +
	"  --quality n           JPEG output quality 1..100.\n" +
	"  --webp-quality q      WebP output quality 0..100.\n" +
	"  --lossless            Write lossless WebP.\n" +
	"  --yes                 Install an available update.\n" +
	"  --verbose             Show progress messages.\n" +
	"  --silent              Show errors only.\n" +
	"  --log-style           Prefix messages with timestamp and level.\n" +
	"  --version             Print the version.\n" +
	"  --help                Print this text.\n" +
	"\n" +
	"Settings can also come from RASTERFX_* environment variables or a .env file.\n"

// Run executes a command line, args[0] being the program name.
func Run(args []string) error {
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	return RunWithConfig(args, cfg, os.Stdout)
}

// RunWithConfig is Run with explicit base settings and output.
func RunWithConfig(args []string, cfg Config, w io.Writer) error {
	opts, err := parseArgs(args)
	if err != nil {
		return err
	}
	opts.apply(&cfg)
	setupLogging(opts, cfg)
	raster.SetWorkers(cfg.Workers)

	if _, x := opts.argsVersion(); x {
		fmt.Fprintf(w, "%s version %s\n", ToolName, Version)
		return nil
	}
	if _, x := opts.argsHelp(); x || opts.argsExtraLength() == 0 {
		printHelp(w, opts.argSelf)
		return nil
	}

	cmd := opts.argsExtraAt(0)
	rest := opts.argsExtraFrom(1)
	switch cmd {
	case "filters":
		if len(rest) != 2 {
			return usageError(cmd, "<input> <output>")
		}
		params, err := loadParams(opts, cfg)
		if err != nil {
			return err
		}
		return transform(rest[0], rest[1], cfg, func(img *image.NRGBA) (*image.NRGBA, error) {
			return stdimg.ApplyFilters(img, params, cfg.MaxDim)
		})
	case "apply":
		if len(rest) < 3 {
			return usageError(cmd, "<input> <output> <cmd> [args...]")
		}
		return applyNamed(rest[0], rest[1], rest[2], rest[3:], cfg)
	case "perspective":
		if len(rest) < 2 {
			return usageError(cmd, "<input> <output> x0 y0 x1 y1 x2 y2 x3 y3 [width height]")
		}
		return applyNamed(rest[0], rest[1], "perspective", rest[2:], cfg)
	case "warp":
		if len(rest) != 3 {
			return usageError(cmd, "<input> <output> <mesh.json>")
		}
		mesh, err := loadMesh(rest[2])
		if err != nil {
			return err
		}
		return transform(rest[0], rest[1], cfg, func(img *image.NRGBA) (*image.NRGBA, error) {
			if mesh.Width == 0 && mesh.Height == 0 {
				mesh.Width, mesh.Height = img.Rect.Dx(), img.Rect.Dy()
			}
			return geom.ApplyWarpMesh(img, mesh)
		})
	case "mesh":
		return printMesh(w, rest)
	case "batch":
		if len(rest) < 2 {
			return usageError(cmd, "<outdir> <input> [input...]")
		}
		params, err := loadParams(opts, cfg)
		if err != nil {
			return err
		}
		jobs, err := PlanBatch(opts.argsExpandedFrom(2), rest[0])
		if err != nil {
			return err
		}
		threads, _ := opts.argsThreads()
		logging.Infof("Starting batch of %d files\n", len(jobs))
		if err := RunBatch(jobs, params, cfg, threads); err != nil {
			return err
		}
		logging.Infoln("Batch finished successfully.")
		return nil
	case "params":
		b, err := json.MarshalIndent(stdimg.DefaultParams(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(b))
		return nil
	case "info":
		if len(rest) != 1 {
			return usageError(cmd, "<input>")
		}
		return printInfo(w, rest[0])
	case "list":
		for _, c := range stdimg.Commands {
			fmt.Fprintf(w, "%-20s %s\n", c.Name, c.Description)
		}
		return nil
	case "help":
		if len(rest) == 0 {
			printHelp(w, opts.argSelf)
			return nil
		}
		c, ok := stdimg.FindCommand(rest[0])
		if !ok {
			return fmt.Errorf("%w: %s", stdimg.ErrUnknownCommand, rest[0])
		}
		fmt.Fprintln(w, CommandHelp(c))
		return nil
	case "update":
		yes, _ := opts.argsYes()
		return CheckForUpdates(context.Background(), w, yes)
	}
	return fmt.Errorf("%w: %s (see %s help)", stdimg.ErrUnknownCommand, cmd, ToolName)
}

func setupLogging(opts *CmdOptions, cfg Config) {
	if b, x := opts.argsVerbose(); x && !b {
		logging.SetVerbosity(logging.ERROR)
	} else if cfg.Verbose {
		logging.SetVerbosity(logging.LOG)
	}
	logging.SetPrefixCaller(false)
	if b, x := opts.argsLogStyle(); x && b {
		logging.SetPrefixTimestamp(true)
		logging.SetPrefixLevel(true)
	} else {
		logging.SetPrefixTimestamp(false)
		logging.SetPrefixLevel(false)
	}
}

func printHelp(w io.Writer, self string) {
	if self == "" {
		self = ToolName
	}
	fmt.Fprintf(w, "Usage: %s [options] <command> [args...]\n", self)
	fmt.Fprintln(w, "Applies image filters and geometric transforms.")
	fmt.Fprintln(w)
	fmt.Fprint(w, helpText)
}

func usageError(cmd, usage string) error {
	return fmt.Errorf("usage: %s %s %s", ToolName, cmd, usage)
}

// loadParams reads --params when given and applies the seed override.
func loadParams(opts *CmdOptions, cfg Config) (stdimg.Params, error) {
	params := stdimg.DefaultParams()
	if path, x := opts.argsParams(); x {
		f, err := os.Open(path)
		if err != nil {
			return params, err
		}
		defer f.Close()
		if params, err = stdimg.LoadParams(f); err != nil {
			return params, fmt.Errorf("%s: %w", path, err)
		}
	}
	if cfg.Seed != 0 {
		params.Seed = cfg.Seed
	}
	return params, nil
}

func loadMesh(path string) (*geom.Mesh, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m geom.Mesh
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &m, nil
}

func printMesh(w io.Writer, list []string) error {
	if len(list) != 4 {
		return usageError("mesh", "<rows> <cols> <width> <height>")
	}
	var v [4]int
	for i, s := range list {
		n, err := strconv.Atoi(s)
		if err != nil {
			return fmt.Errorf("mesh: invalid number %q", s)
		}
		v[i] = n
	}
	m := geom.NewMesh(v[0], v[1], v[2], v[3])
	if err := m.Validate(); err != nil {
		return err
	}
	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(w, string(b))
	return nil
}

// transform loads input, runs fn and saves the result to output.
func transform(input, output string, cfg Config, fn func(*image.NRGBA) (*image.NRGBA, error)) error {
	img, format, err := LoadImage(input)
	if err != nil {
		return err
	}
	logging.Logf("Loaded %s (%s, %dx%d)\n", input, format, img.Rect.Dx(), img.Rect.Dy())
	out, err := fn(img)
	if err != nil {
		return err
	}
	if err := SaveImage(output, out, cfg); err != nil {
		return err
	}
	logging.Logf("Saved %s\n", output)
	return nil
}

func applyNamed(input, output, name string, list []string, cfg Config) error {
	c, ok := stdimg.FindCommand(name)
	if !ok {
		return fmt.Errorf("%w: %s", stdimg.ErrUnknownCommand, name)
	}
	norm, err := NormalizeArgs(c, list)
	if err != nil {
		return err
	}
	return transform(input, output, cfg, func(img *image.NRGBA) (*image.NRGBA, error) {
		return stdimg.ApplyCommand(stdimg.FitWithin(img, cfg.MaxDim), name, norm)
	})
}

func printInfo(w io.Writer, path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	img, format, err := DecodeImage(b)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	fmt.Fprintln(w, describeImage(img, format))
	if format != FormatJPEG {
		return nil
	}
	ex, err := ReadEXIF(b)
	if err != nil {
		logging.Logf("%s: %v\n", path, err)
		return nil
	}
	if ex.Make != "" || ex.Model != "" {
		fmt.Fprintf(w, "Make: %s\nModel: %s\n", ex.Make, ex.Model)
	}
	if ex.Software != "" {
		fmt.Fprintf(w, "Software: %s\n", ex.Software)
	}
	if ex.DateTime != "" {
		fmt.Fprintf(w, "DateTime: %s\n", ex.DateTime)
	}
	if ex.Orientation != 0 {
		fmt.Fprintf(w, "Orientation: %d\n", ex.Orientation)
	}
	return nil
}

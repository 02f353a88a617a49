package cli

// Command line option handling.

import (
	"fmt"

	"github.com/InfinityTools/go-cmdargs"
	"github.com/InfinityTools/go-logging"
)

const (
	CMDOPT_HELP         = "help"
	CMDOPT_VERSION      = "version"
	CMDOPT_VERBOSE      = "verbose"
	CMDOPT_SILENT       = "silent"
	CMDOPT_LOG_STYLE    = "log-style"
	CMDOPT_PARAMS       = "params"
	CMDOPT_SEED         = "seed"
	CMDOPT_MAX_DIM      = "max-dim"
	CMDOPT_WORKERS      = "workers"
	CMDOPT_THREADS      = "threads"
	CMDOPT_QUALITY      = "quality"
	CMDOPT_WEBP_QUALITY = "webp-quality"
	CMDOPT_LOSSLESS     = "lossless"
	CMDOPT_YES          = "yes"
)

type OptBool struct {
	value bool
	set   bool
}
type OptInt struct {
	value int
	set   bool
}
type OptFloat struct {
	value float32
	set   bool
}
type OptText struct {
	value string
	set   bool
}

// CmdOptions holds the parsed command line.
type CmdOptions struct {
	help         OptBool
	version      OptBool
	verbose      OptBool
	logStyle     OptBool
	params       OptText
	seed         OptInt
	maxDim       OptInt
	workers      OptInt
	threads      OptInt
	quality      OptInt
	webpQuality  OptFloat
	lossless     OptBool
	yes          OptBool
	argSelf      string
	argsExtra    []string
	argsExpanded [][]string // wildcard expansion of each extra argument
}

func parseArgs(args []string) (*CmdOptions, error) {
	params := cmdargs.Create()
	params.AddParameter(CMDOPT_HELP, nil, 0)
	params.AddParameter(CMDOPT_VERSION, nil, 0)
	params.AddParameter(CMDOPT_VERBOSE, nil, 0)
	params.AddParameter(CMDOPT_SILENT, nil, 0)
	params.AddParameter(CMDOPT_LOG_STYLE, nil, 0)
	params.AddParameter(CMDOPT_PARAMS, nil, 1)
	params.AddParameter(CMDOPT_SEED, nil, 1)
	params.AddParameter(CMDOPT_MAX_DIM, nil, 1)
	params.AddParameter(CMDOPT_WORKERS, nil, 1)
	params.AddParameter(CMDOPT_THREADS, nil, 1)
	params.AddParameter(CMDOPT_QUALITY, nil, 1)
	params.AddParameter(CMDOPT_WEBP_QUALITY, nil, 1)
	params.AddParameter(CMDOPT_LOSSLESS, nil, 0)
	params.AddParameter(CMDOPT_YES, nil, 0)

	if err := params.Evaluate(args); err != nil {
		return nil, err
	}

	opts := &CmdOptions{argSelf: params.GetArgSelf()}
	for i := 0; i < params.GetArgExtraLength(); i++ {
		s := params.GetArgExtra(i).ToString()
		opts.argsExtra = append(opts.argsExtra, s)
		expanded := params.GetExpandedArgExtra(i)
		if len(expanded) == 0 {
			expanded = []string{s}
		}
		opts.argsExpanded = append(opts.argsExpanded, expanded)
	}

	for idx := 0; idx < params.GetArgLength(); idx++ {
		arg, err := params.GetArgAt(idx)
		if err != nil {
			logging.Warnf("Could not parse command line option at index %d. Skipping...\n", idx)
			continue
		}
		switch arg.Name {
		case CMDOPT_HELP:
			opts.help = OptBool{true, true}
		case CMDOPT_VERSION:
			opts.version = OptBool{true, true}
		case CMDOPT_VERBOSE:
			opts.verbose = OptBool{true, true}
		case CMDOPT_SILENT:
			opts.verbose = OptBool{false, true}
		case CMDOPT_LOG_STYLE:
			opts.logStyle = OptBool{true, true}
		case CMDOPT_LOSSLESS:
			opts.lossless = OptBool{true, true}
		case CMDOPT_YES:
			opts.yes = OptBool{true, true}
		case CMDOPT_PARAMS:
			if len(arg.Arguments) > 0 {
				s := arg.Arguments[0].ToString()
				if len(s) == 0 {
					return nil, fmt.Errorf("Option %q: No parameter file specified", arg.Name)
				}
				opts.params = OptText{s, true}
			}
		case CMDOPT_SEED:
			if len(arg.Arguments) > 0 {
				if i, x := arg.Arguments[0].Int(); x {
					opts.seed = OptInt{int(i), true}
				} else {
					return nil, fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
				}
			}
		case CMDOPT_MAX_DIM:
			if len(arg.Arguments) > 0 {
				if i, x := arg.Arguments[0].Int(); x && i >= 0 {
					opts.maxDim = OptInt{int(i), true}
				} else {
					return nil, fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
				}
			}
		case CMDOPT_WORKERS:
			if len(arg.Arguments) > 0 {
				if i, x := arg.Arguments[0].Int(); x && i >= 0 {
					opts.workers = OptInt{int(i), true}
				} else {
					return nil, fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
				}
			}
		case CMDOPT_THREADS:
			if len(arg.Arguments) > 0 {
				if i, x := arg.Arguments[0].Int(); x && i >= 1 {
					opts.threads = OptInt{int(i), true}
				} else {
					return nil, fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
				}
			}
		case CMDOPT_QUALITY:
			if len(arg.Arguments) > 0 {
				if i, x := arg.Arguments[0].Int(); x && i >= 1 && i <= 100 {
					opts.quality = OptInt{int(i), true}
				} else {
					return nil, fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
				}
			}
		case CMDOPT_WEBP_QUALITY:
			if len(arg.Arguments) > 0 {
				if f, x := arg.Arguments[0].Float(); x && f >= 0.0 && f <= 100.0 {
					opts.webpQuality = OptFloat{float32(f), true}
				} else {
					return nil, fmt.Errorf("Option %q: Invalid argument %v", arg.Name, arg.Arguments[0])
				}
			}
		default:
			return nil, fmt.Errorf("Unrecognized option: %q", arg.Name)
		}
	}
	return opts, nil
}

// apply overrides the fields of cfg named on the command line.
func (o *CmdOptions) apply(cfg *Config) {
	if v, x := o.argsVerbose(); x {
		cfg.Verbose = v
	}
	if v, x := o.argsSeed(); x {
		cfg.Seed = int64(v)
	}
	if v, x := o.argsMaxDim(); x {
		cfg.MaxDim = v
	}
	if v, x := o.argsWorkers(); x {
		cfg.Workers = v
	}
	if v, x := o.argsQuality(); x {
		cfg.JPEGQuality = v
	}
	if v, x := o.argsWebPQuality(); x {
		cfg.WebPQuality = v
	}
	if v, x := o.argsLossless(); x {
		cfg.Lossless = v
	}
}

func (o *CmdOptions) argsExtraLength() int {
	return len(o.argsExtra)
}

func (o *CmdOptions) argsExtraAt(index int) string {
	if index < 0 || index >= len(o.argsExtra) {
		return ""
	}
	return o.argsExtra[index]
}

// argsExtraFrom returns the extra arguments starting at index.
func (o *CmdOptions) argsExtraFrom(index int) []string {
	if index >= len(o.argsExtra) {
		return nil
	}
	return o.argsExtra[index:]
}

// argsExpandedFrom returns the wildcard expansion of the extra arguments
// starting at index, flattened.
func (o *CmdOptions) argsExpandedFrom(index int) []string {
	var out []string
	for i := index; i < len(o.argsExpanded); i++ {
		out = append(out, o.argsExpanded[i]...)
	}
	return out
}

func (o *CmdOptions) argsHelp() (bool, bool) {
	return o.help.value, o.help.set
}

func (o *CmdOptions) argsVersion() (bool, bool) {
	return o.version.value, o.version.set
}

func (o *CmdOptions) argsVerbose() (bool, bool) {
	return o.verbose.value, o.verbose.set
}

func (o *CmdOptions) argsLogStyle() (bool, bool) {
	return o.logStyle.value, o.logStyle.set
}

func (o *CmdOptions) argsParams() (string, bool) {
	return o.params.value, o.params.set
}

func (o *CmdOptions) argsSeed() (int, bool) {
	return o.seed.value, o.seed.set
}

func (o *CmdOptions) argsMaxDim() (int, bool) {
	return o.maxDim.value, o.maxDim.set
}

func (o *CmdOptions) argsWorkers() (int, bool) {
	return o.workers.value, o.workers.set
}

func (o *CmdOptions) argsThreads() (int, bool) {
	return o.threads.value, o.threads.set
}

func (o *CmdOptions) argsQuality() (int, bool) {
	return o.quality.value, o.quality.set
}

func (o *CmdOptions) argsWebPQuality() (float32, bool) {
	return o.webpQuality.value, o.webpQuality.set
}

func (o *CmdOptions) argsLossless() (bool, bool) {
	return o.lossless.value, o.lossless.set
}

func (o *CmdOptions) argsYes() (bool, bool) {
	return o.yes.value, o.yes.set
}

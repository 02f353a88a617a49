package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Environment keys read by LoadConfig.
const (
	EnvMaxDim      = "RASTERFX_MAX_DIM"
	EnvSeed        = "RASTERFX_SEED"
	EnvWorkers     = "RASTERFX_WORKERS"
	EnvVerbose     = "RASTERFX_VERBOSE"
	EnvJPEGQuality = "RASTERFX_JPEG_QUALITY"
	EnvWebPQuality = "RASTERFX_WEBP_QUALITY"
)

// Config holds settings that can come from the environment (or a .env
// file) and be overridden on the command line.
type Config struct {
	MaxDim      int
	Seed        int64
	Workers     int
	Verbose     bool
	JPEGQuality int
	WebPQuality float32
	Lossless    bool
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		JPEGQuality: 92,
		WebPQuality: 90,
	}
}

// LoadConfig reads an optional .env file from the working directory and
// then the RASTERFX_* variables on top of DefaultConfig.
func LoadConfig() (Config, error) {
	// .env is optional
	_ = godotenv.Load()
	return configFromEnv(os.Getenv)
}

func configFromEnv(getenv func(string) string) (Config, error) {
	cfg := DefaultConfig()
	var err error
	intVar := func(key string, dst *int) {
		s := strings.TrimSpace(getenv(key))
		if s == "" || err != nil {
			return
		}
		v, perr := strconv.Atoi(s)
		if perr != nil {
			err = fmt.Errorf("%s: invalid integer %q: %w", key, s, perr)
			return
		}
		*dst = v
	}
	intVar(EnvMaxDim, &cfg.MaxDim)
	intVar(EnvWorkers, &cfg.Workers)
	intVar(EnvJPEGQuality, &cfg.JPEGQuality)
	if s := strings.TrimSpace(getenv(EnvSeed)); s != "" && err == nil {
		v, perr := strconv.ParseInt(s, 10, 64)
		if perr != nil {
			err = fmt.Errorf("%s: invalid integer %q: %w", EnvSeed, s, perr)
		}
		cfg.Seed = v
	}
	if s := strings.TrimSpace(getenv(EnvWebPQuality)); s != "" && err == nil {
		v, perr := strconv.ParseFloat(s, 32)
		if perr != nil {
			err = fmt.Errorf("%s: invalid number %q: %w", EnvWebPQuality, s, perr)
		}
		cfg.WebPQuality = float32(v)
	}
	if s := strings.TrimSpace(getenv(EnvVerbose)); s != "" && err == nil {
		v, perr := strconv.ParseBool(s)
		if perr != nil {
			err = fmt.Errorf("%s: invalid boolean %q: %w", EnvVerbose, s, perr)
		}
		cfg.Verbose = v
	}
	if err != nil {
		return DefaultConfig(), err
	}
	if cfg.JPEGQuality < 1 || cfg.JPEGQuality > 100 {
		return DefaultConfig(), fmt.Errorf("%s: quality %d out of range 1..100", EnvJPEGQuality, cfg.JPEGQuality)
	}
	if cfg.WebPQuality < 0 || cfg.WebPQuality > 100 {
		return DefaultConfig(), fmt.Errorf("%s: quality %v out of range 0..100", EnvWebPQuality, cfg.WebPQuality)
	}
	return cfg, nil
}

// Package config resolves hyperfetch's runtime options from built-in
// defaults, an optional KEY=value config file, HYPERFETCH_* environment
// variables and command-line flags, in increasing order of precedence.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"hyperfetch/output"
	"hyperfetch/sysinfo"
)

// Environment variables, also accepted as keys in the config file.
const (
	EnvConfig  = "HYPERFETCH_CONFIG"
	EnvLogo    = "HYPERFETCH_LOGO"
	EnvTheme   = "HYPERFETCH_THEME"
	EnvNoLogo  = "HYPERFETCH_NO_LOGO"
	EnvNoIcons = "HYPERFETCH_NO_ICONS"
	EnvJSON    = "HYPERFETCH_JSON"
	EnvTimeout = "HYPERFETCH_TIMEOUT"
	EnvDebug   = "HYPERFETCH_DEBUG"
)

// Config carries runtime options for one invocation.
type Config struct {
	Logo      string // logo name; empty means detect from the OS id
	Theme     string
	NoLogo    bool
	NoIcons   bool
	JSON      bool
	All       bool
	Benchmark bool
	Processes bool
	Colors    bool
	Debug     bool
	Version   bool
	Timeout   time.Duration // per external helper

	// File is the config file that was read, or "" if none was.
	File string
}

// Default returns the built-in option set.
func Default() Config {
	return Config{
		Theme:   "default",
		Timeout: sysinfo.DefaultCommandTimeout,
	}
}

// Load builds a Config from args (without the program name) and the
// environment.
//
// Parameters:
//   - args: Command-line arguments after the program name
//   - lookupEnv: Environment lookup, normally os.LookupEnv
//
// Returns:
//   - The resolved Config
//   - flag.ErrHelp, unwrapped, when -h or --help was given; any other
//     error describes a bad file, variable or flag
func Load(args []string, lookupEnv func(string) (string, bool)) (Config, error) {
	cfg := Default()

	path, explicit := filePath(lookupEnv)
	if path != "" {
		vars, err := godotenv.Read(path)
		switch {
		case err == nil:
			cfg.File = path
			if err := cfg.apply(mapLookup(vars)); err != nil {
				return cfg, fmt.Errorf("config file %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist) && !explicit:
		default:
			return cfg, fmt.Errorf("read config file: %w", err)
		}
	}

	if err := cfg.apply(lookupEnv); err != nil {
		return cfg, fmt.Errorf("environment: %w", err)
	}

	fset := newFlagSet(&cfg)
	fset.SetOutput(io.Discard)
	if err := fset.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return cfg, flag.ErrHelp
		}
		return cfg, fmt.Errorf("parse flags: %w", err)
	}
	if fset.NArg() > 0 {
		return cfg, fmt.Errorf("unexpected argument %q", fset.Arg(0))
	}
	if cfg.Timeout <= 0 {
		return cfg, fmt.Errorf("timeout must be positive, got %s", cfg.Timeout)
	}
	return cfg, nil
}

// Usage writes the flag summary to w.
func Usage(w io.Writer) {
	cfg := Default()
	fset := newFlagSet(&cfg)
	fset.SetOutput(w)
	fmt.Fprintf(w, "Usage: hyperfetch [flags]\n\nFlags:\n")
	fset.PrintDefaults()
}

func newFlagSet(cfg *Config) *flag.FlagSet {
	fset := flag.NewFlagSet("hyperfetch", flag.ContinueOnError)
	fset.StringVar(&cfg.Logo, "logo", cfg.Logo, "logo to show instead of the detected distribution")
	fset.StringVar(&cfg.Logo, "l", cfg.Logo, "shorthand for -logo")
	fset.StringVar(&cfg.Theme, "color", cfg.Theme, "colour theme: "+strings.Join(output.ThemeNames(), ", "))
	fset.StringVar(&cfg.Theme, "c", cfg.Theme, "shorthand for -color")
	fset.BoolVar(&cfg.NoLogo, "no-logo", cfg.NoLogo, "hide the logo")
	fset.BoolVar(&cfg.NoIcons, "no-icons", cfg.NoIcons, "plain labels without Nerd Font icons")
	fset.BoolVar(&cfg.JSON, "json", cfg.JSON, "print the snapshot as JSON")
	fset.BoolVar(&cfg.All, "all", cfg.All, "show every disk, interface and the CPU temperature")
	fset.BoolVar(&cfg.All, "a", cfg.All, "shorthand for -all")
	fset.BoolVar(&cfg.Benchmark, "benchmark", cfg.Benchmark, "run a quick performance benchmark")
	fset.BoolVar(&cfg.Processes, "processes", cfg.Processes, "list the top CPU-consuming processes")
	fset.BoolVar(&cfg.Colors, "colors", cfg.Colors, "preview the terminal colour palette")
	fset.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log skipped sources to stderr")
	fset.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "time limit for each external helper")
	fset.BoolVar(&cfg.Version, "version", cfg.Version, "print the version and exit")
	return fset
}

// filePath picks the config file. The second result reports whether the
// user named it explicitly, in which case it must exist.
func filePath(lookupEnv func(string) (string, bool)) (string, bool) {
	if p, ok := lookupEnv(EnvConfig); ok && p != "" {
		return p, true
	}
	if dir, ok := lookupEnv("XDG_CONFIG_HOME"); ok && dir != "" {
		return filepath.Join(dir, "hyperfetch", "config"), false
	}
	if home, ok := lookupEnv("HOME"); ok && home != "" {
		return filepath.Join(home, ".config", "hyperfetch", "config"), false
	}
	return "", false
}

func mapLookup(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

// apply overrides cfg with every variable get knows about.
func (cfg *Config) apply(get func(string) (string, bool)) error {
	if v, ok := get(EnvLogo); ok && v != "" {
		cfg.Logo = v
	}
	if v, ok := get(EnvTheme); ok && v != "" {
		cfg.Theme = v
	}
	for key, dst := range map[string]*bool{
		EnvNoLogo:  &cfg.NoLogo,
		EnvNoIcons: &cfg.NoIcons,
		EnvJSON:    &cfg.JSON,
		EnvDebug:   &cfg.Debug,
	} {
		v, ok := get(key)
		if !ok || v == "" {
			continue
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: invalid boolean %q", key, v)
		}
		*dst = b
	}
	if v, ok := get(EnvTimeout); ok && v != "" {
		d, err := parseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}
	return nil
}

// parseDuration accepts Go durations and bare seconds ("3" is 3s).
func parseDuration(v string) (time.Duration, error) {
	if d, err := time.ParseDuration(v); err == nil {
		return d, nil
	}
	if d, err := time.ParseDuration(v + "s"); err == nil {
		return d, nil
	}
	return 0, fmt.Errorf("invalid duration %q", v)
}

// Package main provides the hyperfetch command-line tool for displaying Linux
// system information next to an ASCII art logo of the running distribution.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"

	"hyperfetch/ascii"
	"hyperfetch/config"
	"hyperfetch/features"
	"hyperfetch/output"
	"hyperfetch/sysinfo"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

// main is the entry point for the hyperfetch application.
// It resolves the configuration, collects a snapshot of the host,
// and prints it either as JSON or side-by-side with a logo.
func main() {
	cfg, err := config.Load(os.Args[1:], os.LookupEnv)
	if errors.Is(err, flag.ErrHelp) {
		config.Usage(os.Stdout)
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "hyperfetch: %v\n\n", err)
		config.Usage(os.Stderr)
		os.Exit(2)
	}
	if cfg.Version {
		fmt.Println("hyperfetch", version)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, newLogger(cfg.Debug, os.Stderr)); err != nil {
		fmt.Fprintf(os.Stderr, "hyperfetch: %v\n", err)
		os.Exit(1)
	}
}

// newLogger returns a text logger on w. Without debug only warnings pass.
func newLogger(debug bool, w io.Writer) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// run collects the snapshot and writes every requested section to w.
func run(ctx context.Context, cfg config.Config, w io.Writer, log *slog.Logger) error {
	if cfg.File != "" {
		log.Debug("config file loaded", "path", cfg.File)
	}
	snap := sysinfo.NewProber(log, cfg.Timeout).Collect(ctx)

	if cfg.JSON {
		return output.WriteJSON(w, snap)
	}

	painter := output.NewPainter(lipgloss.NewRenderer(w), output.ResolveTheme(cfg.Theme))
	if err := displayInfo(w, painter, logoFor(cfg, snap, painter, log), snap, cfg); err != nil {
		return err
	}
	return runFeatures(ctx, w, painter, cfg)
}

// logoFor picks the painted logo: the configured name, else the OS id.
// A registry that fails to load is logged and no logo is shown.
func logoFor(cfg config.Config, snap sysinfo.Snapshot, p *output.Painter, log *slog.Logger) []string {
	if cfg.NoLogo {
		return nil
	}
	reg, err := ascii.Default()
	if err != nil {
		log.Warn("logo registry unavailable", "error", err)
		return nil
	}
	name := cfg.Logo
	if name == "" {
		name = snap.OS.ID
	}
	return reg.Get(name, p.Renderer())
}

// displayInfo renders the logo and the info column side-by-side.
func displayInfo(w io.Writer, p *output.Painter, logo []string, snap sysinfo.Snapshot, cfg config.Config) error {
	info := output.BuildLines(snap, p, output.Options{
		Icons:     !cfg.NoIcons,
		IconTable: output.DefaultIcons(),
		All:       cfg.All,
	})
	return output.WriteRows(w, output.Combine(logo, info))
}

// runFeatures prints the optional sections, each preceded by a blank line.
func runFeatures(ctx context.Context, w io.Writer, p *output.Painter, cfg config.Config) error {
	sections := []struct {
		enabled bool
		print   func() error
	}{
		{cfg.Benchmark, func() error { return features.Benchmark(w, p) }},
		{cfg.Processes, func() error { return features.TopProcesses(ctx, w, p, features.SystemProcesses{}) }},
		{cfg.Colors, func() error { return features.Palette(w, p) }},
	}
	for _, s := range sections {
		if !s.enabled {
			continue
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
		if err := s.print(); err != nil {
			return err
		}
	}
	return nil
}

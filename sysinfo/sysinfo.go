// Package sysinfo gathers facts about the running host and assembles them
// into a single immutable Snapshot.
//
// Every fact category has its own probe. A probe queries its sources in a
// fixed priority order and degrades to placeholder values instead of failing,
// so a missing tool or unreadable pseudo-file never breaks the snapshot.
package sysinfo

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNoData is returned by a source that ran but produced nothing usable.
var ErrNoData = errors.New("sysinfo: no data")

// DefaultCommandTimeout bounds every external helper started by a probe.
const DefaultCommandTimeout = 2 * time.Second

// Snapshot is the complete set of facts gathered in one invocation.
type Snapshot struct {
	User     UserInfo
	OS       OSInfo
	Kernel   KernelInfo
	CPU      CPUInfo
	GPU      GPUInfo
	Memory   MemoryInfo
	Disk     DiskInfo
	Uptime   UptimeInfo
	Shell    ShellInfo
	Desktop  DesktopInfo
	Display  DisplayInfo
	Battery  BatteryInfo
	Network  NetworkInfo
	Packages PackageInfo
}

// Prober carries the capabilities the probes depend on. The zero value is
// not usable; build one with NewProber or fill every field in tests.
type Prober struct {
	// Root is prefixed to every pseudo-file path ("" means the real root).
	Root string

	// Runner executes external helper tools.
	Runner Runner

	// Env looks up environment variables.
	Env func(key string) (string, bool)

	// Stats answers library-backed queries (CPU, memory, disks, ...).
	Stats HostStats

	// Uname reports kernel identity from the uname syscall.
	Uname func() (Uname, error)

	// CPUSample is the window used to measure CPU usage.
	CPUSample time.Duration

	// Log receives debug records for every skipped source.
	Log *slog.Logger
}

// NewProber returns a Prober wired to the live host.
func NewProber(log *slog.Logger, timeout time.Duration) *Prober {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if timeout <= 0 {
		timeout = DefaultCommandTimeout
	}
	return &Prober{
		Runner:    ExecRunner{Timeout: timeout},
		Env:       os.LookupEnv,
		Stats:     gopsutilStats{},
		Uname:     readUname,
		CPUSample: 200 * time.Millisecond,
		Log:       log,
	}
}

// Collect runs every probe exactly once and returns the snapshot.
func (p *Prober) Collect(ctx context.Context) Snapshot {
	start := time.Now()
	snap := Snapshot{
		User:     p.User(),
		OS:       p.OS(ctx),
		Kernel:   p.Kernel(),
		CPU:      p.CPU(ctx),
		GPU:      p.GPU(ctx),
		Memory:   p.Memory(ctx),
		Disk:     p.Disk(ctx),
		Uptime:   p.Uptime(ctx),
		Shell:    p.Shell(ctx),
		Desktop:  p.Desktop(ctx),
		Display:  p.Display(ctx),
		Battery:  p.Battery(),
		Network:  p.Network(ctx),
		Packages: p.Packages(ctx),
	}
	p.Log.Debug("snapshot collected", "elapsed", time.Since(start))
	return snap
}

// path maps an absolute host path below Root.
func (p *Prober) path(name string) string {
	if p.Root == "" {
		return name
	}
	return filepath.Join(p.Root, name)
}

// readString reads a pseudo-file and returns its trimmed contents.
func (p *Prober) readString(name string) (string, error) {
	b, err := os.ReadFile(p.path(name))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (p *Prober) exists(name string) bool {
	_, err := os.Stat(p.path(name))
	return err == nil
}

// getenv returns the value of key and whether it was set.
func (p *Prober) getenv(key string) (string, bool) {
	if p.Env == nil {
		return "", false
	}
	return p.Env(key)
}

// run executes a helper and logs the failure if there is one.
func (p *Prober) run(ctx context.Context, name string, args ...string) (string, bool) {
	out, err := p.Runner.Run(ctx, name, args...)
	if err != nil {
		p.Log.Debug("helper unavailable", "command", name, "error", err)
		return "", false
	}
	return string(out), true
}

// nonEmptyLines counts lines that contain something other than whitespace.
func nonEmptyLines(s string) int {
	n := 0
	for _, line := range strings.Split(s, "\n") {
		if strings.TrimSpace(line) != "" {
			n++
		}
	}
	return n
}

func ptr[T any](v T) *T { return &v }

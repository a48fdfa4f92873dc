package sysinfo

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// PackageManager is one manager with a positive package count.
type PackageManager struct {
	Name  string
	Count int
}

// PackageInfo lists detected managers in check order.
type PackageInfo struct {
	Managers []PackageManager
	Total    int
}

// String returns e.g. "1203 (pacman), 12 (flatpak)", or "Unknown".
func (p PackageInfo) String() string {
	if len(p.Managers) == 0 {
		return "Unknown"
	}
	parts := make([]string, 0, len(p.Managers))
	for _, m := range p.Managers {
		parts = append(parts, fmt.Sprintf("%d (%s)", m.Count, m.Name))
	}
	return strings.Join(parts, ", ")
}

// packageCheck counts packages for one manager. ok is false when the manager
// is absent or its query failed.
type packageCheck struct {
	name  string
	count func(p *Prober, ctx context.Context) (n int, ok bool)
}

// packageChecks run in this order; each one is independent of the others.
var packageChecks = []packageCheck{
	{"pacman", (*Prober).countPacman},
	{"dpkg", (*Prober).countDpkg},
	{"rpm", (*Prober).countRpm},
	{"flatpak", commandCount(0, "flatpak", "list", "--app")},
	{"snap", commandCount(1, "snap", "list")},
	{"nix", (*Prober).countNix},
	{"cargo", (*Prober).countCargo},
	{"brew", commandCount(0, "brew", "list", "--formula", "-1")},
	{"pip", commandCount(0, "pip", "list", "--format=freeze")},
	{"npm", commandCount(1, "npm", "list", "-g", "--depth=0")},
	{"apk", (*Prober).countApk},
	{"xbps", commandCount(0, "xbps-query", "-l")},
	{"emerge", (*Prober).countEmerge},
	{"eopkg", commandCount(0, "eopkg", "list-installed", "-N")},
}

// Packages runs every check and keeps managers with a positive count.
func (p *Prober) Packages(ctx context.Context) PackageInfo {
	var info PackageInfo
	for _, check := range packageChecks {
		n, ok := check.count(p, ctx)
		if !ok || n <= 0 {
			continue
		}
		info.Managers = append(info.Managers, PackageManager{Name: check.name, Count: n})
		info.Total += n
	}
	return info
}

// commandCount counts non-empty output lines of a query, minus header lines.
func commandCount(header int, name string, args ...string) func(*Prober, context.Context) (int, bool) {
	return func(p *Prober, ctx context.Context) (int, bool) {
		out, ok := p.run(ctx, name, args...)
		if !ok {
			return 0, false
		}
		return nonEmptyLines(out) - header, true
	}
}

// countPacman counts entries in the local database; the ALPM_DB_VERSION
// marker file is not a package.
func (p *Prober) countPacman(ctx context.Context) (int, bool) {
	entries, err := os.ReadDir(p.path("/var/lib/pacman/local"))
	if err != nil {
		return 0, false
	}
	return len(entries) - 1, true
}

func (p *Prober) countDpkg(ctx context.Context) (int, bool) {
	status, err := p.readString("/var/lib/dpkg/status")
	if err != nil {
		return 0, false
	}
	n := 0
	for _, line := range strings.Split(status, "\n") {
		if strings.HasPrefix(line, "Status: install ok installed") {
			n++
		}
	}
	return n, true
}

func (p *Prober) countRpm(ctx context.Context) (int, bool) {
	if !p.exists("/var/lib/rpm") {
		return 0, false
	}
	return commandCount(0, "rpm", "-qa")(p, ctx)
}

func (p *Prober) countNix(ctx context.Context) (int, bool) {
	home, ok := p.getenv("HOME")
	if !ok || home == "" {
		return 0, false
	}
	return commandCount(0, "nix-store", "-qR", home+"/.nix-profile")(p, ctx)
}

func (p *Prober) countCargo(ctx context.Context) (int, bool) {
	home, ok := p.getenv("HOME")
	if !ok || home == "" {
		return 0, false
	}
	entries, err := os.ReadDir(p.path(home + "/.cargo/bin"))
	if err != nil {
		return 0, false
	}
	return len(entries), true
}

func (p *Prober) countApk(ctx context.Context) (int, bool) {
	if !p.exists("/etc/apk") {
		return 0, false
	}
	return commandCount(0, "apk", "info")(p, ctx)
}

func (p *Prober) countEmerge(ctx context.Context) (int, bool) {
	world, err := p.readString("/var/lib/portage/world")
	if err != nil {
		return 0, false
	}
	return nonEmptyLines(world), true
}

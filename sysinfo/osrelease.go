package sysinfo

import (
	"bufio"
	"context"
	"runtime"
	"strings"
)

// OSInfo describes the installed distribution.
type OSInfo struct {
	Name       string
	ID         string
	Version    string
	Codename   string
	Arch       string
	PrettyName string
}

// String returns the pretty name followed by the architecture.
func (o OSInfo) String() string {
	return strings.TrimSpace(o.PrettyName + " " + o.Arch)
}

// osReleasePaths are tried in order; the first readable file wins.
var osReleasePaths = []string{
	"/etc/os-release",
	"/usr/lib/os-release",
}

// OS reads the os-release file. When neither file is readable the platform
// reported by gopsutil is used instead.
func (p *Prober) OS(ctx context.Context) OSInfo {
	fields := p.osRelease()
	if len(fields) == 0 {
		if hi, err := p.Stats.HostInfo(ctx); err == nil && hi.Platform != "" {
			fields = map[string]string{
				"NAME":       hi.Platform,
				"ID":         hi.Platform,
				"VERSION_ID": hi.PlatformVersion,
			}
		} else if err != nil {
			p.Log.Debug("host info unavailable", "error", err)
		}
	}

	info := OSInfo{
		Name:     fields["NAME"],
		ID:       strings.ToLower(fields["ID"]),
		Version:  fields["VERSION_ID"],
		Codename: fields["VERSION_CODENAME"],
		Arch:     archName(runtime.GOARCH),
	}
	if info.Name == "" {
		info.Name = runtime.GOOS
	}
	if info.ID == "" {
		info.ID = "linux"
	}
	if info.Version == "" {
		info.Version = fields["VERSION"]
	}
	info.PrettyName = fields["PRETTY_NAME"]
	if info.PrettyName == "" {
		info.PrettyName = strings.TrimSpace(info.Name + " " + info.Version)
	}
	return info
}

func (p *Prober) osRelease() map[string]string {
	for _, path := range osReleasePaths {
		content, err := p.readString(path)
		if err != nil {
			p.Log.Debug("os-release unreadable", "path", path, "error", err)
			continue
		}
		return parseOSRelease(content)
	}
	return nil
}

// parseOSRelease reads KEY=value lines, stripping surrounding quotes.
// Comments and malformed lines are skipped.
func parseOSRelease(content string) map[string]string {
	fields := make(map[string]string)
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		fields[key] = strings.Trim(value, `"'`)
	}
	return fields
}

// archName maps Go architecture names to the names the kernel reports.
func archName(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "386":
		return "x86"
	case "arm64":
		return "aarch64"
	case "ppc64le":
		return "powerpc64le"
	case "riscv64":
		return "riscv64"
	default:
		return goarch
	}
}

package sysinfo

import (
	"context"
	"path/filepath"
	"strconv"
	"strings"
)

// ShellInfo describes the login shell and the terminal it runs in.
type ShellInfo struct {
	Name     string
	Version  *string
	Path     string
	Terminal string
}

// String returns the shell name followed by its version when known.
func (s ShellInfo) String() string {
	if s.Version != nil {
		return s.Name + " " + *s.Version
	}
	return s.Name
}

// Shell reads $SHELL and asks recognized shells for their version.
func (p *Prober) Shell(ctx context.Context) ShellInfo {
	path, ok := p.getenv("SHELL")
	if !ok || path == "" {
		path = "/bin/sh"
	}
	name := filepath.Base(path)
	if name == "." || name == "/" {
		name = "sh"
	}
	return ShellInfo{
		Name:     name,
		Version:  p.shellVersion(ctx, name),
		Path:     path,
		Terminal: p.Terminal(),
	}
}

// shellBinaries maps a shell name to the executable queried for --version.
var shellBinaries = map[string]string{
	"bash":       "bash",
	"zsh":        "zsh",
	"fish":       "fish",
	"nu":         "nu",
	"nushell":    "nu",
	"pwsh":       "pwsh",
	"powershell": "pwsh",
}

func (p *Prober) shellVersion(ctx context.Context, name string) *string {
	bin, ok := shellBinaries[name]
	if !ok {
		return nil
	}
	out, ok := p.run(ctx, bin, "--version")
	if !ok {
		return nil
	}
	first, _, _ := strings.Cut(out, "\n")
	v, ok := parseShellVersion(name, first)
	if !ok {
		p.Log.Debug("unrecognized shell version output", "shell", name, "output", first)
		return nil
	}
	return &v
}

// parseShellVersion extracts the version from the first line of
// `<shell> --version`.
//
// Example:
//
//	parseShellVersion("bash", "GNU bash, version 5.2.15(1)-release") // "5.2.15"
//	parseShellVersion("zsh", "zsh 5.9 (x86_64-pc-linux-gnu)")      // "5.9"
func parseShellVersion(shell, line string) (string, bool) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", false
	}
	switch shell {
	case "bash":
		_, rest, ok := strings.Cut(line, "version ")
		if !ok {
			return "", false
		}
		end := strings.IndexFunc(rest, func(r rune) bool {
			return (r < '0' || r > '9') && r != '.'
		})
		if end >= 0 {
			rest = rest[:end]
		}
		return rest, rest != ""
	case "zsh":
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return "", false
		}
		return fields[1], true
	case "fish":
		_, rest, ok := strings.Cut(line, "version ")
		return rest, ok && rest != ""
	default:
		return line, true
	}
}

// terminalEnvSignatures identify terminals that export a marker variable.
var terminalEnvSignatures = []struct {
	env  string
	name string
}{
	{"KITTY_WINDOW_ID", "kitty"},
	{"ALACRITTY_LOG", "Alacritty"},
	{"WEZTERM_PANE", "WezTerm"},
	{"GNOME_TERMINAL_SCREEN", "GNOME Terminal"},
	{"KONSOLE_VERSION", "Konsole"},
	{"TERMINATOR_UUID", "Terminator"},
	{"TILIX_ID", "Tilix"},
	{"ITERM_SESSION_ID", "iTerm2"},
}

// knownTerminals are matched against ancestor process names.
var knownTerminals = []string{
	"kitty", "alacritty", "konsole", "gnome-terminal", "xterm", "urxvt",
	"terminator", "tilix", "wezterm", "st", "foot", "contour", "hyper",
}

// maxAncestors bounds the walk up the process tree.
const maxAncestors = 8

// Terminal identifies the terminal emulator: $TERM_PROGRAM, marker
// variables, ancestor processes, then $TERM.
func (p *Prober) Terminal() string {
	if v, ok := p.getenv("TERM_PROGRAM"); ok && v != "" {
		return v
	}
	for _, sig := range terminalEnvSignatures {
		if _, ok := p.getenv(sig.env); ok {
			return sig.name
		}
	}
	if name, ok := p.terminalAncestor(); ok {
		return name
	}
	if v, ok := p.getenv("TERM"); ok && v != "" {
		return v
	}
	return "unknown"
}

// terminalAncestor walks parent processes from /proc/self until a known
// terminal name matches or init is reached.
func (p *Prober) terminalAncestor() (string, bool) {
	pid, ok := p.parentPID("self")
	for depth := 0; ok && pid > 1 && depth < maxAncestors; depth++ {
		id := strconv.Itoa(pid)
		comm, err := p.readString("/proc/" + id + "/comm")
		if err == nil && isTerminalName(comm) {
			return comm, true
		}
		pid, ok = p.parentPID(id)
	}
	return "", false
}

func (p *Prober) parentPID(pid string) (int, bool) {
	status, err := p.readString("/proc/" + pid + "/status")
	if err != nil {
		return 0, false
	}
	for _, line := range strings.Split(status, "\n") {
		rest, ok := strings.CutPrefix(line, "PPid:")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		return n, err == nil
	}
	return 0, false
}

// isTerminalName matches a process name exactly or by a "<name>-" prefix,
// so "st" matches "st-256color" but not "systemd".
func isTerminalName(comm string) bool {
	comm = strings.ToLower(comm)
	for _, t := range knownTerminals {
		if comm == t || strings.HasPrefix(comm, t+"-") {
			return true
		}
	}
	return false
}

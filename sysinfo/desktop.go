package sysinfo

import (
	"context"
	"strings"
)

// DesktopInfo describes the graphical session.
type DesktopInfo struct {
	Environment   string
	DisplayServer string
	WM            *string
	Theme         *string
	Icons         *string
}

// String returns "<environment> (<display server>)".
func (d DesktopInfo) String() string {
	return d.Environment + " (" + d.DisplayServer + ")"
}

type envSignature struct {
	env  string
	name string
}

// desktopSignatures are checked in order when neither XDG_CURRENT_DESKTOP nor
// DESKTOP_SESSION is set.
var desktopSignatures = []envSignature{
	{"KDE_FULL_SESSION", "KDE Plasma"},
	{"GNOME_DESKTOP_SESSION_ID", "GNOME"},
	{"MATE_DESKTOP_SESSION_ID", "MATE"},
	{"TDE_FULL_SESSION", "Trinity"},
	{"HYPRLAND_INSTANCE_SIGNATURE", "Hyprland"},
	{"SWAYSOCK", "Sway"},
	{"I3SOCK", "i3"},
}

// wmSignatures identify compositors when wmctrl is unavailable.
var wmSignatures = []envSignature{
	{"HYPRLAND_INSTANCE_SIGNATURE", "Hyprland"},
	{"SWAYSOCK", "Sway"},
	{"I3SOCK", "i3"},
}

var desktopAliases = map[string]string{
	"kde":            "KDE Plasma",
	"plasma":         "KDE Plasma",
	"kde-plasma":     "KDE Plasma",
	"gnome":          "GNOME",
	"gnome-shell":    "GNOME",
	"ubuntu:gnome":   "GNOME",
	"xfce":           "Xfce",
	"xfce4":          "Xfce",
	"mate":           "MATE",
	"cinnamon":       "Cinnamon",
	"x-cinnamon":     "Cinnamon",
	"lxqt":           "LXQt",
	"lxde":           "LXDE",
	"budgie":         "Budgie",
	"budgie-desktop": "Budgie",
	"budgie:gnome":   "Budgie",
	"unity":          "Unity",
	"pantheon":       "Pantheon",
	"deepin":         "Deepin",
	"enlightenment":  "Enlightenment",
	"hyprland":       "Hyprland",
	"sway":           "Sway",
	"i3":             "i3",
	"bspwm":          "bspwm",
	"dwm":            "dwm",
	"awesome":        "Awesome",
	"openbox":        "Openbox",
	"cosmic":         "COSMIC",
}

// NormalizeDesktop maps session identifiers to their display names. Unknown
// identifiers are returned unchanged.
func NormalizeDesktop(name string) string {
	if alias, ok := desktopAliases[strings.ToLower(name)]; ok {
		return alias
	}
	return name
}

// Desktop detects the desktop environment, display server, window manager and
// GTK theme.
func (p *Prober) Desktop(ctx context.Context) DesktopInfo {
	wm := p.windowManager(ctx)
	info := DesktopInfo{
		Environment:   p.desktopEnvironment(wm),
		DisplayServer: p.displayServer(),
		WM:            wm,
	}

	switch info.Environment {
	case "GNOME", "Budgie", "Pantheon", "Unity":
		info.Theme = p.gsettings(ctx, "gtk-theme")
		info.Icons = p.gsettings(ctx, "icon-theme")
	case "Xfce":
		info.Theme = p.xfconf(ctx, "/Net/ThemeName")
		info.Icons = p.xfconf(ctx, "/Net/IconThemeName")
	}
	return info
}

func (p *Prober) desktopEnvironment(wm *string) string {
	for _, key := range []string{"XDG_CURRENT_DESKTOP", "DESKTOP_SESSION"} {
		if v, ok := p.getenv(key); ok && v != "" {
			return NormalizeDesktop(v)
		}
	}
	if name, ok := p.matchSignature(desktopSignatures); ok {
		return name
	}
	if wm != nil {
		return *wm
	}
	return "Unknown"
}

func (p *Prober) displayServer() string {
	if _, ok := p.getenv("WAYLAND_DISPLAY"); ok {
		return "Wayland"
	}
	if _, ok := p.getenv("DISPLAY"); ok {
		return "X11"
	}
	return "TTY"
}

// windowManager asks wmctrl, then falls back to compositor variables.
func (p *Prober) windowManager(ctx context.Context) *string {
	if out, ok := p.run(ctx, "wmctrl", "-m"); ok {
		for _, line := range strings.Split(out, "\n") {
			if name, found := strings.CutPrefix(line, "Name:"); found {
				if name = strings.TrimSpace(name); name != "" {
					return &name
				}
			}
		}
	}
	if name, ok := p.matchSignature(wmSignatures); ok {
		return &name
	}
	return nil
}

func (p *Prober) matchSignature(sigs []envSignature) (string, bool) {
	for _, sig := range sigs {
		if _, ok := p.getenv(sig.env); ok {
			return sig.name, true
		}
	}
	return "", false
}

func (p *Prober) gsettings(ctx context.Context, key string) *string {
	out, ok := p.run(ctx, "gsettings", "get", "org.gnome.desktop.interface", key)
	if !ok {
		return nil
	}
	v := strings.Trim(strings.TrimSpace(out), "'")
	if v == "" {
		return nil
	}
	return &v
}

func (p *Prober) xfconf(ctx context.Context, property string) *string {
	out, ok := p.run(ctx, "xfconf-query", "-c", "xsettings", "-p", property)
	if !ok {
		return nil
	}
	v := strings.TrimSpace(out)
	if v == "" {
		return nil
	}
	return &v
}

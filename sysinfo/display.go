package sysinfo

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Display is one connected output.
type Display struct {
	Name        string
	Width       uint32
	Height      uint32
	RefreshRate *float64
	Primary     bool
}

// String returns "<w>x<h>", with " @ <rate>Hz" when the rate is known.
func (d Display) String() string {
	if d.RefreshRate != nil {
		return fmt.Sprintf("%dx%d @ %.0fHz", d.Width, d.Height, *d.RefreshRate)
	}
	return fmt.Sprintf("%dx%d", d.Width, d.Height)
}

// DisplayInfo lists connected outputs. It always holds at least one entry.
type DisplayInfo struct {
	Displays []Display
}

// String joins every output with ", ".
func (d DisplayInfo) String() string {
	parts := make([]string, 0, len(d.Displays))
	for _, disp := range d.Displays {
		parts = append(parts, disp.String())
	}
	return strings.Join(parts, ", ")
}

// Primary returns the output flagged primary, or the first one.
func (d DisplayInfo) Primary() (Display, bool) {
	for _, disp := range d.Displays {
		if disp.Primary {
			return disp, true
		}
	}
	if len(d.Displays) > 0 {
		return d.Displays[0], true
	}
	return Display{}, false
}

type displaySource struct {
	name  string
	probe func(p *Prober, ctx context.Context) []Display
}

// displaySources is the fallback chain for output geometry. A later source
// runs only when every earlier one returned nothing.
var displaySources = []displaySource{
	{"xrandr", (*Prober).xrandrDisplays},
	{"wlr-randr", (*Prober).wlrDisplays},
	{"drm", (*Prober).drmDisplays},
}

// unknownDisplay is reported when no source finds an output.
var unknownDisplay = Display{Name: "Unknown", Primary: true}

// Display walks displaySources and returns the first non-empty result.
func (p *Prober) Display(ctx context.Context) DisplayInfo {
	for _, src := range displaySources {
		if displays := src.probe(p, ctx); len(displays) > 0 {
			return DisplayInfo{Displays: displays}
		}
		p.Log.Debug("display source empty", "source", src.name)
	}
	return DisplayInfo{Displays: []Display{unknownDisplay}}
}

func (p *Prober) xrandrDisplays(ctx context.Context) []Display {
	out, ok := p.run(ctx, "xrandr", "--query")
	if !ok {
		return nil
	}
	return parseXrandr(out)
}

// parseXrandr reads `xrandr --query` output. The refresh rate comes from the
// mode line marked with '*' below each connected output.
func parseXrandr(out string) []Display {
	var displays []Display
	current := -1
	for _, line := range strings.Split(out, "\n") {
		if !strings.HasPrefix(line, " ") {
			current = -1
			if !strings.Contains(line, " connected") {
				continue
			}
			if d, ok := parseXrandrOutput(line); ok {
				displays = append(displays, d)
				current = len(displays) - 1
			}
			continue
		}
		if current < 0 || displays[current].RefreshRate != nil {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		for _, field := range fields[1:] {
			if !strings.Contains(field, "*") {
				continue
			}
			rate, err := strconv.ParseFloat(strings.TrimRight(field, "*+"), 64)
			if err == nil {
				displays[current].RefreshRate = &rate
			}
			break
		}
	}
	return displays
}

func parseXrandrOutput(line string) (Display, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Display{}, false
	}
	for _, field := range fields[1:] {
		if !strings.Contains(field, "x") || !strings.Contains(field, "+") {
			continue
		}
		geometry, _, _ := strings.Cut(field, "+")
		w, h, ok := parseResolution(geometry)
		if !ok {
			continue
		}
		return Display{
			Name:    fields[0],
			Width:   w,
			Height:  h,
			Primary: strings.Contains(line, " primary"),
		}, true
	}
	return Display{}, false
}

func parseResolution(s string) (uint32, uint32, bool) {
	ws, hs, ok := strings.Cut(strings.TrimSpace(s), "x")
	if !ok {
		return 0, 0, false
	}
	w, err := strconv.ParseUint(strings.TrimSpace(ws), 10, 32)
	if err != nil {
		return 0, 0, false
	}
	h, err := strconv.ParseUint(strings.TrimSpace(hs), 10, 32)
	if err != nil {
		return 0, 0, false
	}
	return uint32(w), uint32(h), true
}

func (p *Prober) wlrDisplays(ctx context.Context) []Display {
	out, ok := p.run(ctx, "wlr-randr")
	if !ok {
		return nil
	}
	return parseWlrRandr(out)
}

// parseWlrRandr reads wlr-randr output, taking each head's "current" mode:
//
//	eDP-1 "Sharp Corporation 0x1453"
//	  Modes:
//	    1920x1080 px, 60.000000 Hz (preferred, current)
func parseWlrRandr(out string) []Display {
	var displays []Display
	var cur *Display
	flush := func() {
		if cur != nil && cur.Width > 0 {
			cur.Primary = len(displays) == 0
			displays = append(displays, *cur)
		}
		cur = nil
	}
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, " ") {
			flush()
			cur = &Display{Name: strings.Fields(line)[0]}
			continue
		}
		if cur == nil || !strings.Contains(line, "current") {
			continue
		}
		res, rest, _ := strings.Cut(strings.TrimSpace(line), " px")
		if w, h, ok := parseResolution(res); ok {
			cur.Width, cur.Height = w, h
		}
		if hz, _, ok := strings.Cut(rest, " Hz"); ok {
			hz = strings.TrimSpace(strings.TrimPrefix(hz, ","))
			if rate, err := strconv.ParseFloat(hz, 64); err == nil {
				cur.RefreshRate = &rate
			}
		}
	}
	flush()
	return displays
}

// drmDisplays reads the first mode of each /sys/class/drm connector.
func (p *Prober) drmDisplays(ctx context.Context) []Display {
	entries, err := os.ReadDir(p.path("/sys/class/drm"))
	if err != nil {
		return nil
	}
	var displays []Display
	for _, e := range entries {
		name := e.Name()
		card, connector, ok := strings.Cut(name, "-")
		if !ok || !strings.HasPrefix(card, "card") {
			continue
		}
		modes, err := p.readString("/sys/class/drm/" + name + "/modes")
		if err != nil || modes == "" {
			continue
		}
		first, _, _ := strings.Cut(modes, "\n")
		w, h, ok := parseResolution(first)
		if !ok {
			continue
		}
		displays = append(displays, Display{
			Name:    connector,
			Width:   w,
			Height:  h,
			Primary: len(displays) == 0,
		})
	}
	return displays
}

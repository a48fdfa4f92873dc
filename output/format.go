// Package output turns a sysinfo.Snapshot into terminal rows or JSON.
//
// BuildLines produces the themed info column, Combine places it next to a
// logo, and WriteJSON emits the plain machine-readable form.
package output

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"hyperfetch/sysinfo"
)

// Options controls which lines BuildLines emits and how they are labelled.
type Options struct {
	// Icons prefixes each label with its glyph from IconTable.
	Icons bool
	// IconTable supplies the glyphs used when Icons is set.
	IconTable IconTable
	// All adds every disk, every connected interface and the CPU
	// temperature.
	All bool
}

// BuildLines renders the info column for snap.
//
// Parameters:
//   - snap: The facts to render
//   - p: Painter carrying the theme
//   - opts: Icon and verbosity options
//
// Returns:
//   - The title ("user@host"), a separator as wide as the title, one line per
//     populated category in a fixed order, a blank line, and a 16-colour
//     palette line
func BuildLines(snap sysinfo.Snapshot, p *Painter, opts Options) []string {
	b := lineBuilder{p: p, opts: opts}

	title := snap.User.String()
	b.lines = append(b.lines,
		p.Title(title),
		p.Separator(strings.Repeat("─", runewidth.StringWidth(title))),
	)

	b.add(CatOS, snap.OS.String())
	b.add(CatKernel, snap.Kernel.String())
	if opts.All {
		b.add(CatCPU, snap.CPU.WithTemperature())
	} else {
		b.add(CatCPU, snap.CPU.String())
	}
	if len(snap.GPU.GPUs) > 0 {
		b.add(CatGPU, snap.GPU.String())
	}
	b.addBar(CatMemory, snap.Memory.String(), snap.Memory.UsagePercent)
	b.addBar(CatDisk, snap.Disk.String(), snap.Disk.UsagePercent)
	if opts.All && len(snap.Disk.Disks) > 1 {
		for _, d := range snap.Disk.Disks {
			b.addBar(CatDisk, d.MountPoint+": "+FormatUsage(d), d.UsagePercent)
		}
	}
	b.add(CatUptime, snap.Uptime.String())
	b.add(CatShell, snap.Shell.String())
	if snap.Desktop.Environment != "Unknown" {
		b.add(CatDesktop, snap.Desktop.String())
	}
	if primary, ok := snap.Display.Primary(); ok && primary.Width > 0 {
		b.add(CatDisplay, primary.String())
	}
	if snap.Battery.HasBattery && len(snap.Battery.Batteries) > 0 {
		bat := snap.Battery.Batteries[0]
		b.addWithGlyph(opts.IconTable.Battery(bat), CatBattery.Label(), bat.String())
	}
	if snap.Packages.Total > 0 {
		b.add(CatPackages, snap.Packages.String())
	}
	if snap.Network.LocalIP != nil {
		b.add(CatNetwork, *snap.Network.LocalIP)
	}
	if opts.All {
		for _, iface := range snap.Network.Detailed() {
			b.addWithGlyph(opts.IconTable.Glyph(CatNetwork), "Network", iface)
		}
	}
	b.add(CatTerminal, snap.Shell.Terminal)

	b.lines = append(b.lines, "", p.Blocks())
	return b.lines
}

// FormatUsage returns "used / total" for a disk, without the percentage the
// bar already shows.
func FormatUsage(d sysinfo.DiskDevice) string {
	return sysinfo.FormatBytes(d.Used) + " / " + sysinfo.FormatBytes(d.Total)
}

type lineBuilder struct {
	p     *Painter
	opts  Options
	lines []string
}

func (b *lineBuilder) add(c Category, value string) {
	b.addWithGlyph(b.opts.IconTable.Glyph(c), c.Label(), value)
}

func (b *lineBuilder) addWithGlyph(glyph, label, value string) {
	b.lines = append(b.lines, b.label(glyph, label)+"  "+b.p.Value(value))
}

func (b *lineBuilder) addBar(c Category, value string, percent float64) {
	b.add(c, value)
	b.lines[len(b.lines)-1] += " " + b.p.Bar(percent, BarWidth)
}

func (b *lineBuilder) label(glyph, label string) string {
	if !b.opts.Icons || glyph == "" {
		return b.p.Label(label)
	}
	return b.p.Label(glyph) + " " + b.p.Label(label)
}

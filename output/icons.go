package output

import "hyperfetch/sysinfo"

// Category names one line of the info column.
type Category int

const (
	CatOS Category = iota
	CatKernel
	CatCPU
	CatGPU
	CatMemory
	CatDisk
	CatUptime
	CatShell
	CatDesktop
	CatDisplay
	CatBattery
	CatPackages
	CatNetwork
	CatTerminal
)

var categoryLabels = [...]string{
	CatOS:       "OS",
	CatKernel:   "Kernel",
	CatCPU:      "CPU",
	CatGPU:      "GPU",
	CatMemory:   "Memory",
	CatDisk:     "Disk",
	CatUptime:   "Uptime",
	CatShell:    "Shell",
	CatDesktop:  "DE",
	CatDisplay:  "Display",
	CatBattery:  "Battery",
	CatPackages: "Packages",
	CatNetwork:  "Local IP",
	CatTerminal: "Terminal",
}

// Label returns the text shown for the category.
func (c Category) Label() string {
	if int(c) < 0 || int(c) >= len(categoryLabels) {
		return "?"
	}
	return categoryLabels[c]
}

// IconTable maps categories to Nerd Font glyphs. It is built once and only
// read afterwards.
type IconTable struct {
	glyphs map[Category]string

	batteryCharging string
	batteryFull     string
	batteryLow      string
}

// DefaultIcons returns the Nerd Font glyph set.
func DefaultIcons() IconTable {
	return IconTable{
		glyphs: map[Category]string{
			CatOS:       "\U000f08c7",
			CatKernel:   "\uf17c",
			CatCPU:      "\U000f033d",
			CatGPU:      "\uf108",
			CatMemory:   "\uf2db",
			CatDisk:     "\U000f02ca",
			CatUptime:   "\uf017",
			CatShell:    "\U000f018d",
			CatDesktop:  "\uf2d0",
			CatDisplay:  "\U000f0379",
			CatBattery:  "\U000f0084",
			CatPackages: "\uf487",
			CatNetwork:  "\uf1eb",
			CatTerminal: "\uf120",
		},
		batteryCharging: "\U000f0084",
		batteryFull:     "\U000f0079",
		batteryLow:      "\U000f0083",
	}
}

// Glyph returns the icon for c, or "" when the table has none.
func (t IconTable) Glyph(c Category) string {
	return t.glyphs[c]
}

// Battery picks a glyph reflecting charge level and state.
func (t IconTable) Battery(b sysinfo.Battery) string {
	switch {
	case t.glyphs == nil:
		return ""
	case b.State == sysinfo.StateCharging:
		return t.batteryCharging
	case b.Percentage > 80:
		return t.batteryFull
	case b.Percentage < 20:
		return t.batteryLow
	default:
		return t.glyphs[CatBattery]
	}
}

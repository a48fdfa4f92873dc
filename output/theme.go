package output

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a named colour set for the info column.
type Theme struct {
	Name      string
	Label     lipgloss.Color
	Value     lipgloss.Color
	Title     lipgloss.Color
	Separator lipgloss.Color
	BarGood   lipgloss.Color
	BarWarn   lipgloss.Color
	BarBad    lipgloss.Color
}

// ANSI palette indices understood by every colour profile.
const (
	red     lipgloss.Color = "1"
	green   lipgloss.Color = "2"
	yellow  lipgloss.Color = "3"
	blue    lipgloss.Color = "4"
	magenta lipgloss.Color = "5"
	cyan    lipgloss.Color = "6"
	white   lipgloss.Color = "7"

	brightBlack   lipgloss.Color = "8"
	brightRed     lipgloss.Color = "9"
	brightGreen   lipgloss.Color = "10"
	brightYellow  lipgloss.Color = "11"
	brightBlue    lipgloss.Color = "12"
	brightMagenta lipgloss.Color = "13"
	brightCyan    lipgloss.Color = "14"
)

// emptyBarColor is the dim grey used for the unfilled part of a bar.
const emptyBarColor lipgloss.Color = "#505050"

func theme(name string, label, value, title lipgloss.Color) Theme {
	return Theme{
		Name:      name,
		Label:     label,
		Value:     value,
		Title:     title,
		Separator: brightBlack,
		BarGood:   green,
		BarWarn:   yellow,
		BarBad:    red,
	}
}

// DefaultTheme is used when no theme, or an unknown one, is requested.
var DefaultTheme = theme("default", brightBlue, white, brightCyan)

var themes = map[string]Theme{
	"default":    DefaultTheme,
	"dracula":    theme("dracula", magenta, cyan, brightMagenta),
	"nord":       theme("nord", blue, cyan, brightBlue),
	"gruvbox":    theme("gruvbox", yellow, brightYellow, brightRed),
	"catppuccin": theme("catppuccin", magenta, blue, brightMagenta),
	"monokai":    theme("monokai", brightMagenta, brightGreen, brightYellow),
}

// ResolveTheme looks a theme up by case-insensitive name. Unknown names
// resolve to DefaultTheme.
func ResolveTheme(name string) Theme {
	if t, ok := themes[strings.ToLower(strings.TrimSpace(name))]; ok {
		return t
	}
	return DefaultTheme
}

// ThemeNames lists the built-in themes in a stable order.
func ThemeNames() []string {
	return []string{"default", "dracula", "nord", "gruvbox", "catppuccin", "monokai"}
}

// BarColor picks the bar colour for a usage percentage: below 50 is good,
// below 80 is a warning, anything else is bad.
func (t Theme) BarColor(percent float64) lipgloss.Color {
	switch {
	case percent < 50:
		return t.BarGood
	case percent < 80:
		return t.BarWarn
	default:
		return t.BarBad
	}
}

// Painter applies a Theme through a lipgloss renderer, so the escape codes
// emitted follow the colour profile of the output it was built for.
type Painter struct {
	theme    Theme
	renderer *lipgloss.Renderer

	label     lipgloss.Style
	value     lipgloss.Style
	title     lipgloss.Style
	separator lipgloss.Style
}

// NewPainter returns a Painter for t. A nil renderer means the default
// renderer on stdout.
func NewPainter(r *lipgloss.Renderer, t Theme) *Painter {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	return &Painter{
		theme:     t,
		renderer:  r,
		label:     r.NewStyle().Foreground(t.Label).Bold(true),
		value:     r.NewStyle().Foreground(t.Value),
		title:     r.NewStyle().Foreground(t.Title).Bold(true),
		separator: r.NewStyle().Foreground(t.Separator),
	}
}

// Theme returns the theme being applied.
func (p *Painter) Theme() Theme { return p.theme }

// Renderer returns the underlying renderer.
func (p *Painter) Renderer() *lipgloss.Renderer { return p.renderer }

func (p *Painter) Label(s string) string     { return p.label.Render(s) }
func (p *Painter) Value(s string) string     { return p.value.Render(s) }
func (p *Painter) Title(s string) string     { return p.title.Render(s) }
func (p *Painter) Separator(s string) string { return p.separator.Render(s) }

// Fg renders s in an arbitrary colour.
func (p *Painter) Fg(c lipgloss.Color, s string) string {
	return p.renderer.NewStyle().Foreground(c).Render(s)
}

// Blocks returns the 16-colour palette preview: the 8 standard colours
// followed by their 8 bright variants.
func (p *Painter) Blocks() string {
	return p.BlockRow(0, 16)
}

// BlockRow renders one block per ANSI colour index in [from, to).
func (p *Painter) BlockRow(from, to int) string {
	var b strings.Builder
	for i := from; i < to; i++ {
		b.WriteString(p.Fg(paletteColor(i), "███"))
	}
	return b.String()
}

func paletteColor(i int) lipgloss.Color {
	return lipgloss.Color(strconv.Itoa(i))
}

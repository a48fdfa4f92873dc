package output

import (
	"fmt"
	"math"
	"strings"
)

// BarWidth is the number of cells in the memory and disk bars.
const BarWidth = 15

// BarFill returns how many of width cells a percentage fills, rounded down
// and clamped to [0, width].
func BarFill(percent float64, width int) int {
	if width <= 0 || math.IsNaN(percent) {
		return 0
	}
	filled := math.Floor(percent / 100 * float64(width))
	return int(math.Max(0, math.Min(filled, float64(width))))
}

// Bar renders a usage gauge such as "[█████░░░░░] 50%". Filled cells take the
// theme's threshold colour and empty cells a dim grey.
func (p *Painter) Bar(percent float64, width int) string {
	filled := BarFill(percent, width)
	empty := max(width, 0) - filled

	var b strings.Builder
	b.WriteString("[")
	if filled > 0 {
		b.WriteString(p.Fg(p.theme.BarColor(percent), strings.Repeat("█", filled)))
	}
	if empty > 0 {
		b.WriteString(p.Fg(emptyBarColor, strings.Repeat("░", empty)))
	}
	b.WriteString("]")
	fmt.Fprintf(&b, " %.0f%%", percent)
	return b.String()
}

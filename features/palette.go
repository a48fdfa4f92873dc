package features

import (
	"io"

	"hyperfetch/output"
)

// Palette prints the 8 standard colours on one row and their bright variants
// on the next.
func Palette(w io.Writer, p *output.Painter) error {
	lines := section(p, "Terminal Color Palette", 40)
	lines = append(lines, "", p.BlockRow(0, 8), p.BlockRow(8, 16))
	return write(w, lines)
}

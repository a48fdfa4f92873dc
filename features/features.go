// Package features holds the optional extras printed after the main fetch
// output: a quick performance benchmark, the busiest processes and a
// terminal palette preview.
package features

import (
	"io"
	"strings"

	"hyperfetch/output"
)

// section starts a feature block with a title and a rule of the given width.
func section(p *output.Painter, title string, width int) []string {
	return []string{
		p.Title(title),
		p.Separator(strings.Repeat("─", width)),
	}
}

func write(w io.Writer, lines []string) error {
	return output.WriteRows(w, lines)
}

package output

import (
	"bufio"
	"io"
	"regexp"
	"strings"

	"github.com/mattn/go-runewidth"
)

// Gutter separates the logo column from the info column.
const Gutter = "  "

// ansiRegex matches SGR escape codes for removal/measurement purposes.
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

// StripANSI removes colour and style escape sequences from s.
func StripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

// VisibleWidth calculates the terminal width of a string excluding ANSI
// escape codes.
//
// Parameters:
//   - s: The string to measure (may contain ANSI color codes)
//
// Returns:
//   - The number of terminal columns the text occupies; East Asian wide
//     glyphs count as two
func VisibleWidth(s string) int {
	return runewidth.StringWidth(StripANSI(s))
}

// Combine renders the logo and info lines side-by-side.
//
// Parameters:
//   - logo: The logo lines, possibly coloured
//   - info: The info lines, possibly coloured
//
// Returns:
//   - max(len(logo), len(info)) rows. Logo lines are right-padded to the
//     widest logo line so the info column starts at the same column on every
//     row; rows past the end of the logo are all padding and rows past the
//     end of the info are left with the logo only
//
// With an empty logo the info lines are returned without a gutter.
func Combine(logo, info []string) []string {
	if len(logo) == 0 {
		return append([]string(nil), info...)
	}

	logoWidth := 0
	for _, line := range logo {
		logoWidth = max(logoWidth, VisibleWidth(line))
	}

	rows := make([]string, max(len(logo), len(info)))
	for i := range rows {
		var b strings.Builder
		if i < len(logo) {
			b.WriteString(logo[i])
			b.WriteString(strings.Repeat(" ", logoWidth-VisibleWidth(logo[i])))
		} else {
			b.WriteString(strings.Repeat(" ", logoWidth))
		}
		b.WriteString(Gutter)
		if i < len(info) {
			b.WriteString(info[i])
		}
		rows[i] = b.String()
	}
	return rows
}

// WriteRows writes each row followed by a newline.
func WriteRows(w io.Writer, rows []string) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		if _, err := bw.WriteString(row + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

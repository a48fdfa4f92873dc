package ascii

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// markerColors maps the digit after a '$' marker to a colour. Digits without
// an entry, including 0, switch colouring off.
var markerColors = map[byte]lipgloss.Color{
	'1': "12", // bright blue
	'2': "6",  // cyan
	'3': "14", // bright cyan
	'4': "2",  // green
	'5': "3",  // yellow
	'6': "1",  // red
	'7': "5",  // magenta
}

// Paint renders the $N colour markers in lines. Every line starts
// uncoloured; a '$' not followed by a digit is kept as text.
func Paint(lines []string, rend *lipgloss.Renderer) []string {
	if rend == nil {
		rend = lipgloss.DefaultRenderer()
	}
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = paintLine(line, rend)
	}
	return out
}

type segment struct {
	marker byte
	text   string
}

// segments splits a line at its colour markers. The first segment carries
// marker 0 (uncoloured).
func segments(line string) []segment {
	var segs []segment
	cur := segment{}
	var text strings.Builder
	for i := 0; i < len(line); i++ {
		if line[i] == '$' && i+1 < len(line) && line[i+1] >= '0' && line[i+1] <= '9' {
			if text.Len() > 0 {
				cur.text = text.String()
				segs = append(segs, cur)
				text.Reset()
			}
			cur = segment{marker: line[i+1]}
			i++
			continue
		}
		text.WriteByte(line[i])
	}
	if text.Len() > 0 {
		cur.text = text.String()
		segs = append(segs, cur)
	}
	return segs
}

func paintLine(line string, rend *lipgloss.Renderer) string {
	var b strings.Builder
	for _, seg := range segments(line) {
		color, ok := markerColors[seg.marker]
		if !ok {
			b.WriteString(seg.text)
			continue
		}
		b.WriteString(rend.NewStyle().Foreground(color).Render(seg.text))
	}
	return b.String()
}

// Strip removes colour markers without rendering them.
func Strip(line string) string {
	var b strings.Builder
	for _, seg := range segments(line) {
		b.WriteString(seg.text)
	}
	return b.String()
}

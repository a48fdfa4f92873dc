package sysinfo

import (
	"fmt"
	"math"
)

// Binary unit sizes used by FormatBytes.
const (
	KiB uint64 = 1 << (10 * (iota + 1))
	MiB
	GiB
	TiB
)

// FormatBytes converts a byte count to a human-readable string using binary
// prefixes.
//
// Parameters:
//   - bytes: The number of bytes to format
//
// Returns:
//   - A string in the largest unit the value reaches at least once
//     (KiB, MiB, GiB, TiB), or whole bytes below 1 KiB
//
// GiB and TiB carry one decimal; MiB and KiB are rounded to integers.
//
// Example: FormatBytes(1536) returns "2 KiB"
func FormatBytes(bytes uint64) string {
	if bytes < KiB {
		return fmt.Sprintf("%d B", bytes)
	}

	i := len(byteUnits) - 1
	for i > 0 && bytes < byteUnits[i].size {
		i--
	}
	u := byteUnits[i]
	v := roundTo(float64(bytes)/float64(u.size), u.decimals)
	// 1023.97 MiB would print as "1024 MiB"; move up a unit instead.
	if v >= 1024 && i+1 < len(byteUnits) {
		u = byteUnits[i+1]
		v = roundTo(float64(bytes)/float64(u.size), u.decimals)
	}
	return fmt.Sprintf("%.*f %s", u.decimals, v, u.suffix)
}

var byteUnits = []struct {
	size     uint64
	suffix   string
	decimals int
}{
	{KiB, "KiB", 0},
	{MiB, "MiB", 0},
	{GiB, "GiB", 1},
	{TiB, "TiB", 1},
}

func roundTo(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}

// percentOf returns part as a percentage of total, or 0 when total is 0.
func percentOf(part, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}

// TruncateString shortens s to at most maxLen runes, ending in "..." when
// anything was cut.
//
// Example: TruncateString("Hello World", 8) returns "Hello..."
func TruncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(r[:maxLen])
	}
	return string(r[:maxLen-3]) + "..."
}

// plural returns "s" if count is not 1, empty string otherwise.
func plural(count uint64) string {
	if count != 1 {
		return "s"
	}
	return ""
}

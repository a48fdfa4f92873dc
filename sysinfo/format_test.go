package sysinfo

import (
	"strconv"
	"strings"
	"testing"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		in   uint64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1023, "1023 B"},
		{1024, "1 KiB"},
		{1536, "2 KiB"},
		{MiB, "1 MiB"},
		{300 * MiB, "300 MiB"},
		{GiB, "1.0 GiB"},
		{GiB + GiB/2, "1.5 GiB"},
		{16 * GiB, "16.0 GiB"},
		{2 * TiB, "2.0 TiB"},
		{MiB - 1, "1 MiB"},
	}

	for _, tc := range tests {
		if got := FormatBytes(tc.in); got != tc.want {
			t.Fatalf("FormatBytes(%d) = %q; want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatBytesStaysBelowNextUnit(t *testing.T) {
	units := map[string]uint64{"B": 1, "KiB": KiB, "MiB": MiB, "GiB": GiB, "TiB": TiB}
	for _, b := range []uint64{1, 1000, 1023, 1025, 99999, MiB - 1, 7 * MiB, GiB - 1, 5*GiB + 123, TiB - 1, 3 * TiB} {
		got := FormatBytes(b)
		num, unit, ok := strings.Cut(got, " ")
		if !ok {
			t.Fatalf("FormatBytes(%d) = %q; missing unit", b, got)
		}
		v, err := strconv.ParseFloat(num, 64)
		if err != nil {
			t.Fatalf("FormatBytes(%d) = %q; bad number: %v", b, got, err)
		}
		if unit != "TiB" && v >= 1024 {
			t.Fatalf("FormatBytes(%d) = %q; value must stay below 1024", b, got)
		}
		approx := v * float64(units[unit])
		if diff := approx - float64(b); diff > float64(units[unit]) || -diff > float64(units[unit]) {
			t.Fatalf("FormatBytes(%d) = %q; round trip %.0f too far off", b, got, approx)
		}
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in   string
		max  int
		want string
	}{
		{"Hello World", 8, "Hello..."},
		{"Hi", 5, "Hi"},
		{"héllo wörld", 6, "hél..."},
		{"abcdef", 2, "ab"},
	}
	for _, tc := range tests {
		if got := TruncateString(tc.in, tc.max); got != tc.want {
			t.Fatalf("TruncateString(%q, %d) = %q; want %q", tc.in, tc.max, got, tc.want)
		}
	}
}

func TestPercentOf(t *testing.T) {
	if got := percentOf(5, 0); got != 0 {
		t.Fatalf("percentOf with zero total = %v; want 0", got)
	}
	if got := percentOf(1, 4); got != 25 {
		t.Fatalf("percentOf(1, 4) = %v; want 25", got)
	}
}

package ascii

import (
	"io"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

func renderer(p termenv.Profile) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(p)
	return r
}

func TestDefaultRegistry(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	names := reg.Names()
	if len(names) < 10 {
		t.Fatalf("Names() = %v; want the built-in set", names)
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("Names() not sorted: %v", names)
		}
	}
	for _, name := range names {
		if art := reg.Raw(name); len(art) < 2 {
			t.Fatalf("logo %q is empty", name)
		}
	}
}

func TestLookupNormalizesAndFallsBack(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	tests := []struct {
		name string
		want string
	}{
		{"Arch", "arch"},
		{"ARCHLINUX", "arch"},
		{"Linux Mint", "mint"},
		{"opensuse-tumbleweed", "opensuse"},
		{"templeos", FallbackName},
		{"", FallbackName},
	}
	for _, tc := range tests {
		got := strings.Join(reg.Raw(tc.name), "\n")
		want := strings.Join(reg.Raw(tc.want), "\n")
		if got != want {
			t.Fatalf("Raw(%q) did not resolve to %q", tc.name, tc.want)
		}
	}
}

func TestNotFoundWithoutFallback(t *testing.T) {
	fsys := fstest.MapFS{
		IndexFile:   {Data: []byte("logos:\n  - name: arch\n    file: arch.txt\n")},
		"arch.txt": {Data: []byte("$1/\\\n")},
	}
	reg, err := Load(fsys)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	got := reg.Raw("debian")
	if len(got) != 1 || got[0] != NotFound[0] {
		t.Fatalf("Raw(debian) = %q; want %q", got, NotFound)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := map[string]fstest.MapFS{
		"missing index": {},
		"bad yaml":      {IndexFile: {Data: []byte("logos: [\n")}},
		"missing file":  {IndexFile: {Data: []byte("logos:\n  - name: arch\n    file: arch.txt\n")}},
		"no file field": {IndexFile: {Data: []byte("logos:\n  - name: arch\n")}},
		"duplicate": {
			IndexFile: {Data: []byte("logos:\n  - name: arch\n    file: a.txt\n  - name: other\n    aliases: [Arch]\n    file: a.txt\n")},
			"a.txt":   {Data: []byte("x\n")},
		},
	}
	for name, fsys := range tests {
		if _, err := Load(fsys); err == nil {
			t.Fatalf("%s: Load succeeded; want error", name)
		}
	}
}

func TestStrip(t *testing.T) {
	tests := map[string]string{
		"$1ab$2cd":   "abcd",
		"plain":      "plain",
		"$x and $":   "$x and $",
		"$3  /\\$0 ": "  /\\ ",
		"":           "",
	}
	for in, want := range tests {
		if got := Strip(in); got != want {
			t.Fatalf("Strip(%q) = %q; want %q", in, got, want)
		}
	}
}

func TestPaint(t *testing.T) {
	raw := []string{"$1/\\$2||", "$5<>"}

	plain := Paint(raw, renderer(termenv.Ascii))
	for i := range raw {
		if plain[i] != Strip(raw[i]) {
			t.Fatalf("Paint without colour = %q; want %q", plain[i], Strip(raw[i]))
		}
	}

	colored := Paint(raw, renderer(termenv.ANSI))
	if !strings.Contains(colored[0], "\x1b[") {
		t.Fatalf("Paint with ANSI profile = %q; want escape codes", colored[0])
	}
	if strings.Contains(colored[0], "$") {
		t.Fatalf("markers left in %q", colored[0])
	}
}

func TestGetMatchesRaw(t *testing.T) {
	reg, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	got := reg.Get("debian", renderer(termenv.Ascii))
	raw := reg.Raw("debian")
	if len(got) != len(raw) {
		t.Fatalf("Get returned %d lines; want %d", len(got), len(raw))
	}
	for i := range raw {
		if got[i] != Strip(raw[i]) {
			t.Fatalf("line %d = %q; want %q", i, got[i], Strip(raw[i]))
		}
	}
}

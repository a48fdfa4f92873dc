package output

import (
	"bytes"
	"encoding/json"
	"io"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"hyperfetch/sysinfo"
)

func testPainter(profile termenv.Profile, t Theme) *Painter {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(profile)
	return NewPainter(r, t)
}

func strPtr(s string) *string { return &s }

func sampleSnapshot() sysinfo.Snapshot {
	return sysinfo.Snapshot{
		User:   sysinfo.UserInfo{Username: "ada", Hostname: "engine", HomeDir: "/home/ada"},
		OS:     sysinfo.OSInfo{Name: "Arch Linux", ID: "arch", PrettyName: "Arch Linux", Arch: "x86_64"},
		Kernel: sysinfo.KernelInfo{Release: "6.9.1-arch1-1"},
		CPU:    sysinfo.CPUInfo{Model: "Ryzen 7", Threads: 16, FrequencyMHz: 3800},
		GPU:    sysinfo.GPUInfo{GPUs: []sysinfo.GPUDevice{{Vendor: "AMD", Model: "Radeon RX 6700 XT"}}},
		Memory: sysinfo.NewMemoryInfo(16*sysinfo.GiB, 0, 8*sysinfo.GiB, 0, 0),
		Disk: sysinfo.NewDiskInfo([]sysinfo.DiskDevice{
			{MountPoint: "/", Total: 100 * sysinfo.GiB, Used: 90 * sysinfo.GiB},
			{MountPoint: "/home", Total: 100 * sysinfo.GiB, Used: 10 * sysinfo.GiB},
		}),
		Uptime:   sysinfo.NewUptime(3661),
		Shell:    sysinfo.ShellInfo{Name: "zsh", Version: strPtr("5.9"), Path: "/bin/zsh", Terminal: "kitty"},
		Desktop:  sysinfo.DesktopInfo{Environment: "Hyprland", DisplayServer: "Wayland"},
		Display:  sysinfo.DisplayInfo{Displays: []sysinfo.Display{{Name: "DP-1", Width: 2560, Height: 1440, Primary: true}}},
		Battery:  sysinfo.BatteryInfo{},
		Network:  sysinfo.NetworkInfo{LocalIP: strPtr("10.0.0.5"), Interfaces: []sysinfo.NetworkInterface{{Name: "eth0", Addresses: []string{"10.0.0.5"}, Type: sysinfo.IfaceEthernet, Up: true}}},
		Packages: sysinfo.PackageInfo{Managers: []sysinfo.PackageManager{{Name: "pacman", Count: 900}}, Total: 900},
	}
}

func TestVisibleWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"\x1b[1;94mabc\x1b[0m", 3},
		{"日本語", 6},
		{"\x1b[31m日本\x1b[0m x", 6},
		{"███", 3},
	}
	for _, tc := range tests {
		if got := VisibleWidth(tc.in); got != tc.want {
			t.Fatalf("VisibleWidth(%q) = %d; want %d", tc.in, got, tc.want)
		}
	}
}

func TestCombineMoreInfoThanLogo(t *testing.T) {
	logo := []string{"\x1b[36m /\\ \x1b[0m", "/  \\", "\x1b[36m日本\x1b[0m", "x", "/____\\"}
	info := []string{"a", "b", "c", "d", "e", "f", "g", "h"}

	rows := Combine(logo, info)
	if len(rows) != 8 {
		t.Fatalf("len(rows) = %d; want 8", len(rows))
	}
	for i, row := range rows {
		plain := StripANSI(row)
		want := info[i]
		if !strings.HasSuffix(plain, Gutter+want) {
			t.Fatalf("row %d = %q; want info %q after gutter", i, plain, want)
		}
		if prefix := VisibleWidth(row) - len(want); prefix != 6+len(Gutter) {
			t.Fatalf("row %d info starts at column %d; want %d", i, prefix, 6+len(Gutter))
		}
	}
	if rows[6] != strings.Repeat(" ", 6)+Gutter+"g" {
		t.Fatalf("padding row = %q", rows[6])
	}
}

func TestCombineMoreLogoThanInfo(t *testing.T) {
	logo := []string{"###", "#", "##", "###"}
	rows := Combine(logo, []string{"x"})
	if len(rows) != 4 {
		t.Fatalf("len(rows) = %d; want 4", len(rows))
	}
	if rows[0] != "###"+Gutter+"x" || rows[1] != "#  "+Gutter {
		t.Fatalf("rows = %q", rows)
	}
}

func TestCombineWithoutLogo(t *testing.T) {
	info := []string{"a", "b"}
	rows := Combine(nil, info)
	if len(rows) != 2 || rows[0] != "a" || rows[1] != "b" {
		t.Fatalf("rows = %q; want info unchanged", rows)
	}
}

func TestWriteRows(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRows(&buf, []string{"one", "two"}); err != nil {
		t.Fatalf("WriteRows: %v", err)
	}
	if buf.String() != "one\ntwo\n" {
		t.Fatalf("output = %q", buf.String())
	}
}

func TestBarFill(t *testing.T) {
	for width := 0; width <= 30; width++ {
		for p := 0.0; p <= 100; p += 0.5 {
			got := BarFill(p, width)
			if got < 0 || got > width {
				t.Fatalf("BarFill(%v, %d) = %d; out of range", p, width, got)
			}
			if want := int(p / 100 * float64(width)); got != want {
				t.Fatalf("BarFill(%v, %d) = %d; want %d", p, width, got, want)
			}
		}
	}
	if got := BarFill(150, 10); got != 10 {
		t.Fatalf("BarFill(150, 10) = %d; want clamp to 10", got)
	}
	if got := BarFill(-5, 10); got != 0 {
		t.Fatalf("BarFill(-5, 10) = %d; want 0", got)
	}
}

func TestBar(t *testing.T) {
	p := testPainter(termenv.ANSI, DefaultTheme)
	bar := p.Bar(55, 10)
	if got := StripANSI(bar); got != "[█████░░░░░] 55%" {
		t.Fatalf("Bar(55, 10) = %q", got)
	}
	if !strings.Contains(bar, p.Fg(DefaultTheme.BarWarn, "█████")) {
		t.Fatalf("Bar(55, 10) = %q; want filled cells in the warning colour", bar)
	}

	if got := StripANSI(p.Bar(0, 4)); got != "[░░░░] 0%" {
		t.Fatalf("Bar(0, 4) = %q", got)
	}
	if got := StripANSI(p.Bar(100, 4)); got != "[████] 100%" {
		t.Fatalf("Bar(100, 4) = %q", got)
	}
}

func TestResolveTheme(t *testing.T) {
	if got := ResolveTheme("no-such-theme"); got != ResolveTheme("default") {
		t.Fatalf("unknown theme = %+v; want default", got)
	}
	if got := ResolveTheme(""); got != DefaultTheme {
		t.Fatalf("empty theme = %+v; want default", got)
	}
	for _, name := range ThemeNames() {
		if got := ResolveTheme(strings.ToUpper(name)); got.Name != name {
			t.Fatalf("ResolveTheme(%q).Name = %q", strings.ToUpper(name), got.Name)
		}
	}
}

func TestBarColorThresholds(t *testing.T) {
	th := ResolveTheme("nord")
	tests := []struct {
		p    float64
		want lipgloss.Color
	}{
		{0, th.BarGood},
		{49.9, th.BarGood},
		{50, th.BarWarn},
		{79.9, th.BarWarn},
		{80, th.BarBad},
		{100, th.BarBad},
	}
	for _, tc := range tests {
		if got := th.BarColor(tc.p); got != tc.want {
			t.Fatalf("BarColor(%v) = %v; want %v", tc.p, got, tc.want)
		}
	}
}

func plainLines(lines []string) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = StripANSI(l)
	}
	return out
}

func TestBuildLines(t *testing.T) {
	p := testPainter(termenv.Ascii, DefaultTheme)
	lines := plainLines(BuildLines(sampleSnapshot(), p, Options{}))

	want := []string{
		"ada@engine",
		"──────────",
		"OS  Arch Linux x86_64",
		"Kernel  6.9.1-arch1-1",
		"CPU  Ryzen 7 (16) @ 3.80GHz",
		"GPU  Radeon RX 6700 XT",
		"Memory  8.0 GiB / 16.0 GiB [███████░░░░░░░░] 50%",
		"Disk  90.0 GiB / 100.0 GiB (90%) [███████░░░░░░░░] 50%",
		"Uptime  1 hour, 1 min",
		"Shell  zsh 5.9",
		"DE  Hyprland (Wayland)",
		"Display  2560x1440",
		"Packages  900 (pacman)",
		"Local IP  10.0.0.5",
		"Terminal  kitty",
		"",
		strings.Repeat("███", 16),
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines; want %d:\n%s", len(lines), len(want), strings.Join(lines, "\n"))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Fatalf("line %d = %q; want %q", i, lines[i], want[i])
		}
	}
}

func TestBuildLinesConditionalCategories(t *testing.T) {
	snap := sampleSnapshot()
	snap.Desktop.Environment = "Unknown"
	snap.Display = sysinfo.DisplayInfo{Displays: []sysinfo.Display{{Name: "Unknown", Primary: true}}}
	snap.Packages = sysinfo.PackageInfo{}
	snap.GPU = sysinfo.GPUInfo{}
	snap.Network = sysinfo.NetworkInfo{}
	snap.Battery = sysinfo.BatteryInfo{
		HasBattery: true,
		Batteries:  []sysinfo.Battery{{Name: "BAT0", Percentage: 64, State: sysinfo.StateFull}},
	}

	lines := plainLines(BuildLines(snap, testPainter(termenv.Ascii, DefaultTheme), Options{}))
	joined := strings.Join(lines, "\n")
	for _, absent := range []string{"DE  ", "Display  ", "Packages  ", "GPU  ", "Local IP  "} {
		if strings.Contains(joined, absent) {
			t.Fatalf("unexpected %q line in:\n%s", absent, joined)
		}
	}
	if !strings.Contains(joined, "Battery  64% (full)") {
		t.Fatalf("missing battery line in:\n%s", joined)
	}
}

func TestBuildLinesIconsAndAll(t *testing.T) {
	icons := DefaultIcons()
	snap := sampleSnapshot()
	lines := plainLines(BuildLines(snap, testPainter(termenv.Ascii, DefaultTheme), Options{Icons: true, IconTable: icons, All: true}))

	if want := icons.Glyph(CatOS) + " OS  "; !strings.HasPrefix(lines[2], want) {
		t.Fatalf("line 2 = %q; want prefix %q", lines[2], want)
	}
	var disks, nets int
	for _, l := range lines {
		if strings.Contains(l, "Disk  /") {
			disks++
		}
		if strings.Contains(l, "Network  eth0 (Eth): 10.0.0.5") {
			nets++
		}
	}
	if disks != 2 || nets != 1 {
		t.Fatalf("All lists %d disks and %d interfaces; want 2 and 1:\n%s", disks, nets, strings.Join(lines, "\n"))
	}
}

func TestSeparatorMatchesTitleWidth(t *testing.T) {
	snap := sampleSnapshot()
	snap.User.Hostname = "ホスト"
	lines := BuildLines(snap, testPainter(termenv.ANSI, ResolveTheme("dracula")), Options{})
	if VisibleWidth(lines[0]) != VisibleWidth(lines[1]) {
		t.Fatalf("title width %d != separator width %d", VisibleWidth(lines[0]), VisibleWidth(lines[1]))
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleSnapshot()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}
	if strings.Contains(buf.String(), "\x1b") {
		t.Fatalf("JSON output contains escape codes: %q", buf.String())
	}
	var got map[string]string
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	want := map[string]string{
		"user":     "ada@engine",
		"os":       "Arch Linux x86_64",
		"kernel":   "6.9.1-arch1-1",
		"shell":    "zsh 5.9",
		"terminal": "kitty",
		"display":  "2560x1440",
		"battery":  "No battery",
		"network":  "10.0.0.5",
		"packages": "900 (pacman)",
	}
	if len(got) != 15 {
		t.Fatalf("JSON has %d fields; want 15: %v", len(got), got)
	}
	for k, v := range want {
		if got[k] != v {
			t.Fatalf("%s = %q; want %q", k, got[k], v)
		}
	}
}

package features

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"hyperfetch/output"
	"hyperfetch/sysinfo"
)

func plainPainter() *output.Painter {
	r := lipgloss.NewRenderer(io.Discard)
	r.SetColorProfile(termenv.Ascii)
	return output.NewPainter(r, output.DefaultTheme)
}

func TestRate(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{2000, "★★★★★ Excellent"},
		{1999, "★★★★☆ Very Good"},
		{1500, "★★★★☆ Very Good"},
		{1000, "★★★☆☆ Good"},
		{700, "★★☆☆☆ Fair"},
		{699, "★☆☆☆☆ Below Average"},
		{0, "★☆☆☆☆ Below Average"},
	}
	for _, tc := range tests {
		if got := Rate(tc.score, CPUReference); got != tc.want {
			t.Fatalf("Rate(%v) = %q; want %q", tc.score, got, tc.want)
		}
	}
	if got := Rate(10, 0); got != lowestRating {
		t.Fatalf("Rate with zero reference = %q; want %q", got, lowestRating)
	}
}

func TestFibonacci(t *testing.T) {
	want := []uint64{0, 1, 1, 2, 3, 5, 8, 13, 21, 34}
	for n, w := range want {
		if got := fibonacci(uint64(n)); got != w {
			t.Fatalf("fibonacci(%d) = %d; want %d", n, got, w)
		}
	}
	if got := fibonacci(fibDepth); got != 6765 {
		t.Fatalf("fibonacci(%d) = %d; want 6765", fibDepth, got)
	}
}

func TestRunBenchmarkScoresArePositive(t *testing.T) {
	r := RunBenchmark(5 * time.Millisecond)
	if r.CPU <= 0 || r.Memory <= 0 {
		t.Fatalf("RunBenchmark = %+v; want positive scores", r)
	}
	if r.Overall() != (r.CPU+r.Memory)/2 {
		t.Fatalf("Overall() = %v; want mean of %v and %v", r.Overall(), r.CPU, r.Memory)
	}
}

func TestPrintBenchmark(t *testing.T) {
	var buf bytes.Buffer
	if err := PrintBenchmark(&buf, plainPainter(), BenchResult{CPU: 2500, Memory: 5000}); err != nil {
		t.Fatalf("PrintBenchmark: %v", err)
	}
	want := []string{
		"Performance Benchmark",
		strings.Repeat("─", 40),
		"CPU Score: 2500 - ★★★★★ Excellent",
		"Memory Score: 5000 - ★★★☆☆ Good",
		"",
		"Overall Performance: ★★★☆☆ Good",
	}
	if got := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n"); strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("PrintBenchmark output:\n%s\nwant:\n%s", strings.Join(got, "\n"), strings.Join(want, "\n"))
	}
}

func TestTopN(t *testing.T) {
	procs := []Process{
		{PID: 1, Name: "init", CPU: 0.05},
		{PID: 2, Name: "firefox", CPU: 42},
		{PID: 3, Name: "code", CPU: 12.5},
		{PID: 4, Name: "idle", CPU: 0},
		{PID: 5, Name: "go", CPU: 80},
		{PID: 6, Name: "Xorg", CPU: 3},
		{PID: 7, Name: "pipewire", CPU: 1},
		{PID: 8, Name: "kworker", CPU: 0.5},
	}
	got := TopN(procs, TopCount)
	wantPIDs := []int32{5, 2, 3, 6, 7}
	if len(got) != len(wantPIDs) {
		t.Fatalf("TopN returned %d rows; want %d", len(got), len(wantPIDs))
	}
	for i, pid := range wantPIDs {
		if got[i].PID != pid {
			t.Fatalf("row %d PID = %d; want %d", i, got[i].PID, pid)
		}
	}
	if procs[0].PID != 1 {
		t.Fatalf("TopN reordered its input")
	}
}

func TestTopNDropsIdleAfterCut(t *testing.T) {
	procs := []Process{
		{PID: 1, CPU: 5},
		{PID: 2, CPU: 0.01},
		{PID: 3, CPU: 0.02},
	}
	got := TopN(procs, 2)
	if len(got) != 1 || got[0].PID != 1 {
		t.Fatalf("TopN = %+v; want only PID 1", got)
	}
}

type fakeLister struct {
	procs []Process
	err   error
}

func (f fakeLister) Processes(context.Context) ([]Process, error) { return f.procs, f.err }

func TestTopProcesses(t *testing.T) {
	lister := fakeLister{procs: []Process{
		{PID: 4242, Name: "a-very-long-process-name-that-keeps-going", CPU: 12.34, Memory: 300 * sysinfo.MiB},
		{PID: 7, Name: "sh", CPU: 1},
	}}
	var buf bytes.Buffer
	if err := TopProcesses(context.Background(), &buf, plainPainter(), lister); err != nil {
		t.Fatalf("TopProcesses: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines; want 5:\n%s", len(lines), buf.String())
	}
	want := " 4242  a-very-long-process-name-th...     12.3%       300 MB"
	if lines[3] != want {
		t.Fatalf("row = %q; want %q", lines[3], want)
	}
	if !strings.HasPrefix(lines[4], "    7  sh ") {
		t.Fatalf("row = %q; want PID 7 padded", lines[4])
	}
}

func TestTopProcessesError(t *testing.T) {
	boom := errors.New("boom")
	err := TopProcesses(context.Background(), io.Discard, plainPainter(), fakeLister{err: boom})
	if !errors.Is(err, boom) {
		t.Fatalf("TopProcesses error = %v; want %v", err, boom)
	}
}

func TestPalette(t *testing.T) {
	var buf bytes.Buffer
	if err := Palette(&buf, plainPainter()); err != nil {
		t.Fatalf("Palette: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines; want 5", len(lines))
	}
	row := strings.Repeat("███", 8)
	if lines[3] != row || lines[4] != row {
		t.Fatalf("palette rows = %q, %q; want %q", lines[3], lines[4], row)
	}
}

package features

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/mattn/go-runewidth"
	"github.com/shirou/gopsutil/v3/process"

	"hyperfetch/output"
	"hyperfetch/sysinfo"
)

const (
	// TopCount is how many of the busiest processes are considered.
	TopCount = 5

	// MinCPUPercent hides idle processes from the table.
	MinCPUPercent = 0.1

	nameWidth = 30
)

// Process is one row of the process table.
type Process struct {
	PID    int32
	Name   string
	CPU    float64
	Memory uint64 // resident set size in bytes
}

// ProcessLister returns a snapshot of running processes.
type ProcessLister interface {
	Processes(ctx context.Context) ([]Process, error)
}

// SystemProcesses lists processes through gopsutil.
type SystemProcesses struct{}

// Processes skips processes that vanish or cannot be read mid-scan.
func (SystemProcesses) Processes(ctx context.Context) ([]Process, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processes: %w", err)
	}
	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		name, err := p.NameWithContext(ctx)
		if err != nil || name == "" {
			continue
		}
		cpuPct, _ := p.CPUPercentWithContext(ctx)
		entry := Process{PID: p.Pid, Name: name, CPU: cpuPct}
		if mi, err := p.MemoryInfoWithContext(ctx); err == nil && mi != nil {
			entry.Memory = mi.RSS
		}
		out = append(out, entry)
	}
	return out, nil
}

// TopN sorts procs by CPU usage, keeps the first n and then drops the ones
// below MinCPUPercent. The input slice is not modified.
func TopN(procs []Process, n int) []Process {
	sorted := append([]Process(nil), procs...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CPU > sorted[j].CPU })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	top := sorted[:0]
	for _, p := range sorted {
		if p.CPU >= MinCPUPercent {
			top = append(top, p)
		}
	}
	return top
}

// TopProcesses prints the most CPU-hungry processes.
func TopProcesses(ctx context.Context, w io.Writer, p *output.Painter, lister ProcessLister) error {
	procs, err := lister.Processes(ctx)
	if err != nil {
		return err
	}
	lines := section(p, "Top CPU-Consuming Processes", 60)
	lines = append(lines, fmt.Sprintf("%s  %s  %s  %s",
		p.Label(fmt.Sprintf("%5s", "PID")),
		p.Label(runewidth.FillRight("NAME", nameWidth)),
		p.Label(fmt.Sprintf("%8s", "CPU %")),
		p.Label(fmt.Sprintf("%10s", "MEMORY")),
	))
	for _, proc := range TopN(procs, TopCount) {
		lines = append(lines, processRow(proc))
	}
	return write(w, lines)
}

func processRow(proc Process) string {
	name := runewidth.FillRight(sysinfo.TruncateString(proc.Name, nameWidth), nameWidth)
	return fmt.Sprintf("%5d  %s  %7.1f%%  %8d MB", proc.PID, name, proc.CPU, proc.Memory/sysinfo.MiB)
}

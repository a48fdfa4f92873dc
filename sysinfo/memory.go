package sysinfo

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// MemoryInfo holds RAM and swap usage in bytes.
type MemoryInfo struct {
	Total            uint64
	Used             uint64
	Free             uint64
	Available        uint64
	SwapTotal        uint64
	SwapUsed         uint64
	UsagePercent     float64
	SwapUsagePercent float64
}

// String returns "<used> / <total>".
func (m MemoryInfo) String() string {
	return fmt.Sprintf("%s / %s", FormatBytes(m.Used), FormatBytes(m.Total))
}

// WithPercent appends the rounded usage percentage.
func (m MemoryInfo) WithPercent() string {
	return fmt.Sprintf("%s (%.0f%%)", m.String(), m.UsagePercent)
}

// NewMemoryInfo derives used bytes and percentages from raw counters.
// Used memory is total minus available.
func NewMemoryInfo(total, free, available, swapTotal, swapFree uint64) MemoryInfo {
	m := MemoryInfo{
		Total:     total,
		Free:      free,
		Available: available,
		SwapTotal: swapTotal,
	}
	if available <= total {
		m.Used = total - available
	}
	if swapFree <= swapTotal {
		m.SwapUsed = swapTotal - swapFree
	}
	m.UsagePercent = percentOf(m.Used, m.Total)
	m.SwapUsagePercent = percentOf(m.SwapUsed, m.SwapTotal)
	return m
}

// Memory asks gopsutil first and parses /proc/meminfo when that fails.
func (p *Prober) Memory(ctx context.Context) MemoryInfo {
	vm, err := p.Stats.VirtualMemory(ctx)
	if err == nil && vm != nil && vm.Total > 0 {
		var swapTotal, swapFree uint64
		if sw, err := p.Stats.SwapMemory(ctx); err == nil && sw != nil {
			swapTotal, swapFree = sw.Total, sw.Free
		} else if err != nil {
			p.Log.Debug("swap stats unavailable", "error", err)
		}
		return NewMemoryInfo(vm.Total, vm.Free, vm.Available, swapTotal, swapFree)
	}
	if err != nil {
		p.Log.Debug("virtual memory stats unavailable", "error", err)
	}

	content, err := p.readString("/proc/meminfo")
	if err != nil {
		p.Log.Debug("meminfo unreadable", "error", err)
		return MemoryInfo{}
	}
	kv := parseMeminfo(content)
	available, ok := kv["MemAvailable"]
	if !ok {
		available = kv["MemFree"] + kv["Buffers"] + kv["Cached"]
	}
	return NewMemoryInfo(kv["MemTotal"], kv["MemFree"], available, kv["SwapTotal"], kv["SwapFree"])
}

// parseMeminfo returns /proc/meminfo values in bytes keyed by field name.
func parseMeminfo(content string) map[string]uint64 {
	kv := make(map[string]uint64)
	sc := bufio.NewScanner(strings.NewReader(content))
	for sc.Scan() {
		key, rest, ok := strings.Cut(sc.Text(), ":")
		if !ok {
			continue
		}
		fields := strings.Fields(rest)
		if len(fields) == 0 {
			continue
		}
		v, err := strconv.ParseUint(fields[0], 10, 64)
		if err != nil {
			continue
		}
		if len(fields) > 1 && fields[1] == "kB" {
			v *= 1024
		}
		kv[key] = v
	}
	return kv
}

package sysinfo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// UptimeInfo is the time since boot, decomposed into whole units.
type UptimeInfo struct {
	TotalSeconds uint64
	Days         uint64
	Hours        uint64
	Minutes      uint64
	Seconds      uint64
}

// NewUptime decomposes total seconds into days, hours, minutes and seconds.
func NewUptime(total uint64) UptimeInfo {
	return UptimeInfo{
		TotalSeconds: total,
		Days:         total / 86400,
		Hours:        (total % 86400) / 3600,
		Minutes:      (total % 3600) / 60,
		Seconds:      total % 60,
	}
}

// String converts the uptime into a human-readable string.
//
// Returns:
//   - A formatted string (e.g., "2 days, 5 hours, 30 mins")
//   - Seconds only when the uptime is below one minute
func (u UptimeInfo) String() string {
	var parts []string
	if u.Days > 0 {
		parts = append(parts, fmt.Sprintf("%d day%s", u.Days, plural(u.Days)))
	}
	if u.Hours > 0 {
		parts = append(parts, fmt.Sprintf("%d hour%s", u.Hours, plural(u.Hours)))
	}
	if u.Minutes > 0 {
		parts = append(parts, fmt.Sprintf("%d min%s", u.Minutes, plural(u.Minutes)))
	}
	if len(parts) == 0 {
		parts = append(parts, fmt.Sprintf("%d sec%s", u.Seconds, plural(u.Seconds)))
	}
	return strings.Join(parts, ", ")
}

// Short returns a compact form such as "2d 5h 30m".
func (u UptimeInfo) Short() string {
	switch {
	case u.Days > 0:
		return fmt.Sprintf("%dd %dh %dm", u.Days, u.Hours, u.Minutes)
	case u.Hours > 0:
		return fmt.Sprintf("%dh %dm", u.Hours, u.Minutes)
	default:
		return fmt.Sprintf("%dm", u.Minutes)
	}
}

// Uptime reads /proc/uptime, then asks gopsutil, then reports zero.
func (p *Prober) Uptime(ctx context.Context) UptimeInfo {
	secs, err := p.procUptime()
	if err == nil {
		return NewUptime(secs)
	}
	p.Log.Debug("procfs uptime unavailable", "error", err)

	secs, err = p.Stats.Uptime(ctx)
	if err != nil {
		p.Log.Debug("uptime unavailable", "error", err)
		return NewUptime(0)
	}
	return NewUptime(secs)
}

func (p *Prober) procUptime() (uint64, error) {
	content, err := p.readString("/proc/uptime")
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(content)
	if len(fields) == 0 {
		return 0, ErrNoData
	}
	secs, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, fmt.Errorf("parse uptime %q: %w", fields[0], err)
	}
	if secs < 0 {
		return 0, ErrNoData
	}
	return uint64(secs), nil
}

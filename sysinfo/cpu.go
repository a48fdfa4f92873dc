package sysinfo

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// CPUInfo describes the processor and its current load.
type CPUInfo struct {
	Model        string
	Vendor       string
	Cores        int
	Threads      int
	FrequencyMHz uint64
	UsagePercent float64
	// Temperature is in degrees Celsius; nil when no thermal source answered.
	Temperature *float64
}

// String returns "<model> (<threads>) @ <GHz>GHz".
func (c CPUInfo) String() string {
	return fmt.Sprintf("%s (%d) @ %.2fGHz", c.Model, c.Threads, float64(c.FrequencyMHz)/1000)
}

// WithTemperature appends the temperature when it is known.
func (c CPUInfo) WithTemperature() string {
	if c.Temperature == nil {
		return c.String()
	}
	return fmt.Sprintf("%s [%d°C]", c.String(), int(*c.Temperature))
}

// temperaturePaths are read in order; the first parseable value wins.
// Values are in millidegrees Celsius.
var temperaturePaths = []string{
	"/sys/class/thermal/thermal_zone0/temp",
	"/sys/class/hwmon/hwmon0/temp1_input",
	"/sys/class/hwmon/hwmon1/temp1_input",
	"/sys/class/hwmon/hwmon2/temp1_input",
}

// CPU queries gopsutil for the model, core counts, frequency and per-thread
// usage. Each field degrades on its own.
func (p *Prober) CPU(ctx context.Context) CPUInfo {
	info := CPUInfo{
		Model:  "Unknown CPU",
		Vendor: "Unknown",
	}

	if stats, err := p.Stats.CPUInfo(ctx); err == nil && len(stats) > 0 {
		first := stats[0]
		if m := strings.TrimSpace(first.ModelName); m != "" {
			info.Model = m
		}
		if v := strings.TrimSpace(first.VendorID); v != "" {
			info.Vendor = v
		}
		if first.Mhz > 0 {
			info.FrequencyMHz = uint64(first.Mhz)
		}
	} else if err != nil {
		p.Log.Debug("cpu info unavailable", "error", err)
	}

	usage, err := p.Stats.CPUPercent(ctx, p.CPUSample)
	if err != nil {
		p.Log.Debug("cpu usage unavailable", "error", err)
	}
	info.UsagePercent = mean(usage)

	if n, err := p.Stats.CPUCounts(ctx, true); err == nil && n > 0 {
		info.Threads = n
	} else {
		info.Threads = len(usage)
	}
	if n, err := p.Stats.CPUCounts(ctx, false); err == nil && n > 0 {
		info.Cores = n
	} else {
		info.Cores = info.Threads
	}

	info.Temperature = p.cpuTemperature(ctx)
	return info
}

// cpuTemperature walks temperaturePaths, then gopsutil's sensor list.
func (p *Prober) cpuTemperature(ctx context.Context) *float64 {
	for _, path := range temperaturePaths {
		content, err := p.readString(path)
		if err != nil {
			continue
		}
		milli, err := strconv.ParseInt(content, 10, 64)
		if err != nil {
			p.Log.Debug("unparseable temperature", "path", path, "value", content)
			continue
		}
		return ptr(float64(milli) / 1000)
	}

	temps, err := p.Stats.Temperatures(ctx)
	if err != nil {
		p.Log.Debug("sensor temperatures unavailable", "error", err)
	}
	for _, t := range temps {
		key := strings.ToLower(t.SensorKey)
		if t.Temperature <= 0 {
			continue
		}
		for _, want := range []string{"package", "tctl", "coretemp", "k10temp", "cpu"} {
			if strings.Contains(key, want) {
				return ptr(t.Temperature)
			}
		}
	}
	return nil
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

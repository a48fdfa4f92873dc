package sysinfo

import (
	"context"
	"os"
	"regexp"
	"strconv"
	"strings"
)

// GPUDevice is one graphics adapter.
type GPUDevice struct {
	Vendor  string
	Model   string
	Driver  *string
	VRAMMiB *uint64
}

// String returns the model with the kernel driver in brackets when known.
func (g GPUDevice) String() string {
	if g.Driver != nil {
		return g.Model + " [" + *g.Driver + "]"
	}
	return g.Model
}

// GPUInfo lists every adapter found. It always holds at least one entry.
type GPUInfo struct {
	GPUs []GPUDevice
}

// String joins every adapter with ", ".
func (g GPUInfo) String() string {
	names := make([]string, 0, len(g.GPUs))
	for _, d := range g.GPUs {
		names = append(names, d.String())
	}
	return strings.Join(names, ", ")
}

type gpuSource struct {
	name  string
	probe func(p *Prober, ctx context.Context) []GPUDevice
}

// gpuSources is the fallback chain for adapter discovery.
var gpuSources = []gpuSource{
	{"lspci", (*Prober).lspciGPUs},
	{"drm", (*Prober).drmGPUs},
}

// unknownGPU is reported when no source finds an adapter.
var unknownGPU = GPUDevice{Vendor: "Unknown", Model: "Unknown GPU"}

// GPU walks gpuSources and returns the first non-empty result.
func (p *Prober) GPU(ctx context.Context) GPUInfo {
	for _, src := range gpuSources {
		if gpus := src.probe(p, ctx); len(gpus) > 0 {
			return GPUInfo{GPUs: gpus}
		}
		p.Log.Debug("gpu source empty", "source", src.name)
	}
	return GPUInfo{GPUs: []GPUDevice{unknownGPU}}
}

func (p *Prober) lspciGPUs(ctx context.Context) []GPUDevice {
	out, ok := p.run(ctx, "lspci", "-mm", "-nn")
	if !ok {
		return nil
	}
	var gpus []GPUDevice
	for _, line := range strings.Split(out, "\n") {
		if dev, ok := parseLspciLine(line); ok {
			dev.Driver = p.gpuDriver()
			gpus = append(gpus, dev)
		}
	}
	return gpus
}

// pciIDSuffix matches the " [10de]" id lspci -nn appends to names.
var pciIDSuffix = regexp.MustCompile(`\s*\[[0-9a-fA-F]{4}\]$`)

// parseLspciLine extracts vendor and model from one line of `lspci -mm -nn`
// output, keeping only display controllers:
//
//	00:02.0 "VGA compatible controller [0300]" "Intel Corporation [8086]" "Device [9a49]" ...
func parseLspciLine(line string) (GPUDevice, bool) {
	parts := strings.Split(line, `"`)
	if len(parts) < 6 {
		return GPUDevice{}, false
	}
	class := strings.ToLower(parts[1])
	if !strings.Contains(class, "vga") && !strings.Contains(class, "3d") && !strings.Contains(class, "display") {
		return GPUDevice{}, false
	}

	vendor := strings.TrimSpace(pciIDSuffix.ReplaceAllString(parts[3], ""))
	if vendor == "" {
		vendor = "Unknown"
	}
	model := strings.TrimSpace(pciIDSuffix.ReplaceAllString(parts[5], ""))
	if model == "" || model == "Device" || isHex(model) {
		model = vendor + " Graphics"
	}
	return GPUDevice{Vendor: vendor, Model: model}, true
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune("0123456789abcdefABCDEF", r) {
			return false
		}
	}
	return s != ""
}

// drmGPUs lists /sys/class/drm/cardN entries. Connector entries such as
// card0-HDMI-A-1 are skipped.
func (p *Prober) drmGPUs(ctx context.Context) []GPUDevice {
	entries, err := os.ReadDir(p.path("/sys/class/drm"))
	if err != nil {
		p.Log.Debug("drm class unreadable", "error", err)
		return nil
	}
	var gpus []GPUDevice
	for _, e := range entries {
		name := e.Name()
		if !strings.HasPrefix(name, "card") || strings.Contains(name, "-") {
			continue
		}
		base := "/sys/class/drm/" + name + "/device"
		if !p.exists(base) {
			continue
		}
		vendor := "Unknown"
		if id, err := p.readString(base + "/vendor"); err == nil {
			vendor = pciVendorName(id)
		}
		dev := GPUDevice{
			Vendor: vendor,
			Model:  vendor + " Graphics",
			Driver: p.gpuDriver(),
		}
		if raw, err := p.readString(base + "/mem_info_vram_total"); err == nil {
			if b, err := strconv.ParseUint(raw, 10, 64); err == nil && b > 0 {
				dev.VRAMMiB = ptr(b / MiB)
			}
		}
		gpus = append(gpus, dev)
	}
	return gpus
}

func pciVendorName(id string) string {
	switch strings.ToLower(id) {
	case "0x8086":
		return "Intel"
	case "0x10de":
		return "NVIDIA"
	case "0x1002":
		return "AMD"
	default:
		return "Unknown"
	}
}

// gpuDriverModules are checked in order under /sys/module.
var gpuDriverModules = []string{"nvidia", "amdgpu", "i915", "nouveau"}

func (p *Prober) gpuDriver() *string {
	for _, mod := range gpuDriverModules {
		if p.exists("/sys/module/" + mod) {
			return ptr(mod)
		}
	}
	return nil
}

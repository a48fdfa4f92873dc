package sysinfo

import (
	"context"
	"fmt"
	"sort"
	"strings"
)

// DiskDevice is one mounted filesystem.
type DiskDevice struct {
	Name         string
	MountPoint   string
	FSType       string
	Total        uint64
	Used         uint64
	Available    uint64
	UsagePercent float64
}

// String returns "<used> / <total> (<pct>%)".
func (d DiskDevice) String() string {
	return fmt.Sprintf("%s / %s (%.0f%%)", FormatBytes(d.Used), FormatBytes(d.Total), d.UsagePercent)
}

// WithMount prefixes the mount point.
func (d DiskDevice) WithMount() string {
	return d.MountPoint + ": " + d.String()
}

// DiskInfo lists real filesystems, root first, with aggregate totals.
type DiskInfo struct {
	Disks        []DiskDevice
	Total        uint64
	Used         uint64
	UsagePercent float64
}

// String describes the root filesystem, or the first one when there is no
// root mount.
func (d DiskInfo) String() string {
	if root, ok := d.Root(); ok {
		return root.String()
	}
	return "No disks found"
}

// Root returns the "/" mount, or the first disk when "/" is absent.
func (d DiskInfo) Root() (DiskDevice, bool) {
	for _, dev := range d.Disks {
		if dev.MountPoint == "/" {
			return dev, true
		}
	}
	if len(d.Disks) > 0 {
		return d.Disks[0], true
	}
	return DiskDevice{}, false
}

// pseudoMountPrefixes mark kernel and runtime filesystems that are never
// reported.
var pseudoMountPrefixes = []string{"/sys", "/proc", "/dev", "/run", "/snap"}

func isPseudoMount(mount string) bool {
	for _, prefix := range pseudoMountPrefixes {
		if strings.HasPrefix(mount, prefix) {
			return true
		}
	}
	return false
}

// NewDiskInfo filters pseudo and zero-capacity mounts, orders "/" first and
// the rest by mount point, and sums the totals.
func NewDiskInfo(devices []DiskDevice) DiskInfo {
	var info DiskInfo
	for _, dev := range devices {
		if isPseudoMount(dev.MountPoint) || dev.Total == 0 {
			continue
		}
		if dev.Used == 0 && dev.Available <= dev.Total {
			dev.Used = dev.Total - dev.Available
		}
		dev.UsagePercent = percentOf(dev.Used, dev.Total)
		info.Disks = append(info.Disks, dev)
		info.Total += dev.Total
		info.Used += dev.Used
	}

	sort.SliceStable(info.Disks, func(i, j int) bool {
		a, b := info.Disks[i].MountPoint, info.Disks[j].MountPoint
		if a == "/" || b == "/" {
			return a == "/" && b != "/"
		}
		return a < b
	})
	info.UsagePercent = percentOf(info.Used, info.Total)
	return info
}

// Disk lists mounted partitions through gopsutil.
func (p *Prober) Disk(ctx context.Context) DiskInfo {
	parts, err := p.Stats.Partitions(ctx)
	if err != nil {
		p.Log.Debug("partition list unavailable", "error", err)
		return NewDiskInfo(nil)
	}

	devices := make([]DiskDevice, 0, len(parts))
	seen := make(map[string]bool, len(parts))
	for _, part := range parts {
		if seen[part.Mountpoint] || isPseudoMount(part.Mountpoint) {
			continue
		}
		seen[part.Mountpoint] = true

		usage, err := p.Stats.Usage(ctx, part.Mountpoint)
		if err != nil {
			p.Log.Debug("disk usage unavailable", "mount", part.Mountpoint, "error", err)
			continue
		}
		dev := DiskDevice{
			Name:       part.Device,
			MountPoint: part.Mountpoint,
			FSType:     part.Fstype,
			Total:      usage.Total,
			Available:  usage.Free,
		}
		if usage.Free <= usage.Total {
			dev.Used = usage.Total - usage.Free
		}
		devices = append(devices, dev)
	}
	return NewDiskInfo(devices)
}

package sysinfo

import "runtime"

// KernelInfo identifies the running kernel.
type KernelInfo struct {
	Release string
	Version string
	Arch    string
}

// String returns the kernel release.
func (k KernelInfo) String() string {
	return k.Release
}

// Uname holds the fields of uname(2) the kernel probe uses.
type Uname struct {
	Release string
	Version string
	Machine string
}

// Kernel reads the release and version from procfs, falling back to the
// uname syscall and finally to "unknown".
func (p *Prober) Kernel() KernelInfo {
	info := KernelInfo{
		Release: "unknown",
		Version: "unknown",
		Arch:    archName(runtime.GOARCH),
	}

	release, rerr := p.readString("/proc/sys/kernel/osrelease")
	version, verr := p.readString("/proc/sys/kernel/version")
	if rerr == nil && release != "" {
		info.Release = release
	}
	if verr == nil && version != "" {
		info.Version = version
	}
	if rerr == nil && verr == nil {
		return info
	}

	if p.Uname == nil {
		return info
	}
	u, err := p.Uname()
	if err != nil {
		p.Log.Debug("uname failed", "error", err)
		return info
	}
	if info.Release == "unknown" && u.Release != "" {
		info.Release = u.Release
	}
	if info.Version == "unknown" && u.Version != "" {
		info.Version = u.Version
	}
	if u.Machine != "" {
		info.Arch = u.Machine
	}
	return info
}

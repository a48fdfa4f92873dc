package sysinfo

import (
	"os"
	"os/user"
)

// UserInfo identifies who is running on which host.
type UserInfo struct {
	Username string
	Hostname string
	HomeDir  string
}

// String returns the "user@host" title.
func (u UserInfo) String() string {
	return u.Username + "@" + u.Hostname
}

// User reports the current user, host name and home directory. Every field
// falls back to a placeholder, never to an empty string.
func (p *Prober) User() UserInfo {
	info := UserInfo{
		Username: "unknown",
		Hostname: "unknown",
		HomeDir:  "~",
	}

	if u, err := user.Current(); err == nil && u.Username != "" {
		info.Username = u.Username
	} else if name, ok := p.getenv("USER"); ok && name != "" {
		info.Username = name
	}

	if host, err := os.Hostname(); err == nil && host != "" {
		info.Hostname = host
	} else if host, err := p.readString("/proc/sys/kernel/hostname"); err == nil && host != "" {
		info.Hostname = host
	}

	if home, ok := p.getenv("HOME"); ok && home != "" {
		info.HomeDir = home
	}
	return info
}

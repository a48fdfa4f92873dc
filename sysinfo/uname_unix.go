//go:build linux || darwin || freebsd || netbsd || openbsd

package sysinfo

import (
	"golang.org/x/sys/unix"
)

// readUname calls uname(2).
func readUname() (Uname, error) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return Uname{}, err
	}
	return Uname{
		Release: unix.ByteSliceToString(u.Release[:]),
		Version: unix.ByteSliceToString(u.Version[:]),
		Machine: unix.ByteSliceToString(u.Machine[:]),
	}, nil
}

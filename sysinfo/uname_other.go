//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package sysinfo

import "errors"

func readUname() (Uname, error) {
	return Uname{}, errors.New("uname: unsupported platform")
}

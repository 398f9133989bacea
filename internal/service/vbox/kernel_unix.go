//go:build unix

package vbox

import "golang.org/x/sys/unix"

// kernelRelease returns what uname -r prints.
func kernelRelease() (string, error) {
	var name unix.Utsname
	if err := unix.Uname(&name); err != nil {
		return "", err
	}

	return unix.ByteSliceToString(name.Release[:]), nil
}

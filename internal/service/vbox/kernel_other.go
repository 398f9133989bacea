//go:build !unix

package vbox

import (
	"errors"
	"runtime"
)

func kernelRelease() (string, error) {
	return "", errors.New("kernel release is not available on " + runtime.GOOS)
}

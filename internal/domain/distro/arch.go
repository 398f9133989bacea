package distro

import "runtime"

// DebArch maps a Go architecture to the Debian architecture name.
func DebArch(goarch string) string {
	switch goarch {
	case "386":
		return "i386"
	case "":
		return DebArch(runtime.GOARCH)
	default:
		return goarch
	}
}

// RPMArch maps a Debian architecture name to the rpm one.
func RPMArch(debArch string) string {
	switch debArch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	case "i386":
		return "i686"
	default:
		return debArch
	}
}

package vbox

import "strings"

const (
	// LatestStableFilename names the file holding the current stable version.
	LatestStableFilename = "LATEST-STABLE.TXT"
	// SHA256SumsFilename names the per-version SHA-256 checksum list.
	SHA256SumsFilename = "SHA256SUMS"
	// MD5SumsFilename names the per-version MD5 checksum list.
	MD5SumsFilename = "MD5SUMS"
)

// IndexURL is the root listing with one directory per version.
func IndexURL(root string) string {
	return strings.TrimRight(root, "/") + "/"
}

// LatestStableURL points at LATEST-STABLE.TXT under root.
func LatestStableURL(root string) string {
	return IndexURL(root) + LatestStableFilename
}

// BaseURL is the directory holding every file of one version.
func BaseURL(root, version string) string {
	return IndexURL(root) + version + "/"
}

// ArtifactURL joins a filename onto the version directory.
// An empty filename yields an empty URL.
func ArtifactURL(root, version, filename string) string {
	if filename == "" {
		return ""
	}

	return BaseURL(root, version) + filename
}

// GuestAdditionsFilename is the canonical guest additions image name.
func GuestAdditionsFilename(version string) string {
	return "VBoxGuestAdditions_" + version + ".iso"
}

// SourceTarballFilename is the generic source archive name.
func SourceTarballFilename(version string) string {
	return "VirtualBox-" + version + ".tar.bz2"
}

// ExtensionPackFilenames lists the canonical extension pack names, newest naming last.
func ExtensionPackFilenames(version string) []string {
	return []string{
		"Oracle_VM_VirtualBox_Extension_Pack-" + version + ".vbox-extpack",
		"Oracle_VirtualBox_Extension_Pack-" + version + ".vbox-extpack",
	}
}

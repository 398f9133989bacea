package vbox

import "strings"

// noExtensionPacks is printed by "VBoxManage list extpacks" on a clean host.
const noExtensionPacks = "No extension packs installed"

// InstalledExtensionPackVersions extracts the Version fields of
// "VBoxManage list extpacks" output.
func InstalledExtensionPackVersions(output string) []string {
	if strings.Contains(output, noExtensionPacks) {
		return nil
	}

	var versions []string

	for line := range strings.SplitSeq(output, "\n") {
		key, value, ok := strings.Cut(strings.TrimSpace(line), ":")
		if !ok || !strings.EqualFold(strings.TrimSpace(key), "version") {
			continue
		}

		versions = append(versions, strings.TrimSpace(value))
	}

	return versions
}

// ExtensionPackInstalled reports whether an installed extension pack belongs
// to version. Revision suffixes such as "7.1.4r165100" still match.
func ExtensionPackInstalled(output, version string) bool {
	for _, installed := range InstalledExtensionPackVersions(output) {
		if strings.HasPrefix(installed, version) {
			return true
		}
	}

	return false
}

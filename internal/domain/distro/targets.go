package distro

import "strconv"

// Target is one entry of the interactive package catalogue.
type Target struct {
	// Label is shown in the selection menu.
	Label string
	// Distro is matched against the vendor file inventory.
	Distro Distro
	// Source selects the generic source tarball instead of a package.
	Source bool
	// Loose allows the highest build of the same family when the exact tag is absent.
	Loose bool
}

// Targets returns the catalogue in menu order.
func Targets() []Target {
	rhelLike := []string{"rhel", "fedora"}

	return []Target{
		{Label: "Oracle Linux 9 / Red Hat Enterprise Linux 9", Distro: Distro{ID: "ol", IDLike: rhelLike, VersionID: "9"}},
		{Label: "Oracle Linux 8 / Red Hat Enterprise Linux 8", Distro: Distro{ID: "ol", IDLike: rhelLike, VersionID: "8"}},
		{Label: "Ubuntu 24.04", Distro: Distro{ID: "ubuntu", IDLike: []string{"debian"}, VersionID: "24.04", Codename: "noble"}},
		{Label: "Ubuntu 22.04", Distro: Distro{ID: "ubuntu", IDLike: []string{"debian"}, VersionID: "22.04", Codename: "jammy"}},
		{Label: "Ubuntu 20.04", Distro: Distro{ID: "ubuntu", IDLike: []string{"debian"}, VersionID: "20.04", Codename: "focal"}},
		{Label: "Debian 12", Distro: Distro{ID: "debian", VersionID: "12", Codename: "bookworm"}},
		{Label: "Debian 11", Distro: Distro{ID: "debian", VersionID: "11", Codename: "bullseye"}},
		{Label: "openSUSE 15.3 / 15.4 / 15.5 / 15.6", Distro: Distro{ID: "opensuse-leap", IDLike: []string{"suse"}, VersionID: "15.6"}, Loose: true},
		{Label: "Fedora 40", Distro: Distro{ID: "fedora", VersionID: "40"}},
		{Label: "Fedora 36 / 37 / 38 / 39", Distro: Distro{ID: "fedora", VersionID: "36"}, Loose: true},
		{Label: "All distributions", Source: true},
	}
}

// TargetByKey resolves a 1-based menu key such as "4".
func TargetByKey(key string) (Target, bool) {
	n, err := strconv.Atoi(key)
	if err != nil {
		return Target{}, false
	}

	targets := Targets()
	if n < 1 || n > len(targets) {
		return Target{}, false
	}

	return targets[n-1], true
}

// Labels returns the menu labels in order.
func Labels() []string {
	targets := Targets()
	labels := make([]string, 0, len(targets))

	for _, target := range targets {
		labels = append(labels, target.Label)
	}

	return labels
}

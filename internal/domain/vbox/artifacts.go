package vbox

import (
	"cmp"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/oshokin/installer-helpers/internal/domain/distro"
	"github.com/oshokin/installer-helpers/internal/domain/release"
)

// ErrPackageNotFound is returned when a strict query matches no package.
var ErrPackageNotFound = errors.New("package not found")

// Kind is the format of the selected package.
type Kind string

// Package kinds.
const (
	KindNone   Kind = ""
	KindDeb    Kind = "deb"
	KindRPM    Kind = "rpm"
	KindSource Kind = "source"
)

// Query describes the host a package is selected for.
type Query struct {
	// Version is the release to select files of.
	Version release.Version
	// Distro drives package family, codename and build tag matching.
	Distro distro.Distro
	// Arch is the Debian architecture name.
	Arch string
	// Strict refuses packages built for another codename or release.
	Strict bool
	// Source selects the source tarball instead of a package.
	Source bool
}

// Artifacts are the filenames selected from an inventory. Empty means absent.
type Artifacts struct {
	// Package is the installable package or source tarball.
	Package string
	// Kind is the format of Package.
	Kind Kind
	// Exact is false when Package was built for another codename or release.
	Exact bool
	// ExtensionPack is the optional extension pack.
	ExtensionPack string
	// GuestAdditions is the guest additions image.
	GuestAdditions string
}

// FindArtifacts selects the package, extension pack and guest additions image
// for q. When several names qualify the last one in sort order wins.
func FindArtifacts(inv *Inventory, q Query) (Artifacts, error) {
	ver := q.Version.String()

	result := Artifacts{
		ExtensionPack:  findExtensionPack(inv, ver),
		GuestAdditions: findGuestAdditions(inv, ver),
	}

	var err error

	switch {
	case q.Source:
		if name := SourceTarballFilename(ver); inv.Has(name) {
			result.Package, result.Kind, result.Exact = name, KindSource, true
		}
	case q.Distro.Is("ubuntu"):
		result.Package, result.Exact, err = findUbuntuDeb(inv, q)
		result.Kind = KindDeb
	case q.Distro.Family() == distro.FamilyDebian:
		result.Package, result.Exact, err = findDebianDeb(inv, q)
		result.Kind = KindDeb
	case q.Distro.Family() == distro.FamilyRedHat, q.Distro.Family() == distro.FamilySUSE:
		result.Package, result.Exact, err = findRPM(inv, q)
		result.Kind = KindRPM
	}

	if result.Package == "" {
		result.Kind = KindNone
	}

	return result, err
}

func findExtensionPack(inv *Inventory, ver string) string {
	for _, name := range ExtensionPackFilenames(ver) {
		if inv.Has(name) {
			return name
		}
	}

	pattern := regexp.MustCompile(`^Oracle_(?:VM_)?VirtualBox_Extension_Pack-` + regexp.QuoteMeta(ver) + `[a-z]?\.vbox-extpack$`)

	return last(inv.Filter(pattern.MatchString))
}

func findGuestAdditions(inv *Inventory, ver string) string {
	if name := GuestAdditionsFilename(ver); inv.Has(name) {
		return name
	}

	pattern := regexp.MustCompile(`^VBoxGuestAdditions_` + regexp.QuoteMeta(ver) + `[a-z]?\.iso$`)

	return last(inv.Filter(pattern.MatchString))
}

func findUbuntuDeb(inv *Inventory, q Query) (string, bool, error) {
	suffixes := []string{
		"~Ubuntu~" + q.Distro.Codename + "_" + q.Arch + ".deb",
		"_Ubuntu_" + q.Distro.Codename + "_" + q.Arch + ".deb",
	}

	candidates := inv.Filter(func(name string) bool {
		return q.Distro.Codename != "" && hasAnySuffix(name, suffixes)
	})

	if len(candidates) > 0 {
		preferred := slices.DeleteFunc(slices.Clone(candidates), func(name string) bool {
			return !strings.HasPrefix(name, "virtualbox-")
		})

		if len(preferred) > 0 {
			return last(preferred), true, nil
		}

		return last(candidates), true, nil
	}

	ubuntuDebs := inv.Filter(func(name string) bool {
		return strings.Contains(name, "Ubuntu") && strings.HasSuffix(name, "_"+q.Arch+".deb")
	})

	if !q.Strict && len(ubuntuDebs) > 0 {
		return last(ubuntuDebs), false, nil
	}

	available := strings.Join(ubuntuDebs, ", ")
	if available == "" {
		available = "none"
	}

	return "", false, fmt.Errorf("no Ubuntu package for codename %q among files of version %s, available Ubuntu debs: %s: %w",
		q.Distro.Codename, q.Version, available, ErrPackageNotFound)
}

// findDebianDeb matches the host codename. Debian hosts in strict mode accept
// nothing else; otherwise the newest Debian build wins, then any VirtualBox deb.
func findDebianDeb(inv *Inventory, q Query) (string, bool, error) {
	archSuffix := "_" + q.Arch + ".deb"

	if q.Distro.Codename != "" {
		exact := inv.Filter(func(name string) bool {
			return strings.HasSuffix(name, "~Debian~"+q.Distro.Codename+archSuffix)
		})
		if len(exact) > 0 {
			return last(exact), true, nil
		}
	}

	debianBuilds := inv.Filter(func(name string) bool {
		return strings.Contains(name, "~Debian~") && strings.HasSuffix(name, archSuffix)
	})

	if q.Strict && q.Distro.ID == "debian" {
		available := strings.Join(debianBuilds, ", ")
		if available == "" {
			available = "none"
		}

		return "", false, fmt.Errorf("no Debian package for codename %q among files of version %s, available Debian debs: %s: %w",
			q.Distro.Codename, q.Version, available, ErrPackageNotFound)
	}

	if len(debianBuilds) > 0 {
		return newestDebianBuild(debianBuilds), false, nil
	}

	return last(inv.Filter(func(name string) bool {
		return strings.HasSuffix(name, archSuffix) && strings.Contains(strings.ToLower(name), "virtualbox")
	})), false, nil
}

// newestDebianBuild picks the build of the latest Debian release.
func newestDebianBuild(names []string) string {
	return slices.MaxFunc(names, func(a, b string) int {
		return cmp.Compare(distro.DebianRank(debianCodename(a)), distro.DebianRank(debianCodename(b)))
	})
}

// debianCodename extracts "bookworm" from "..~Debian~bookworm_amd64.deb".
func debianCodename(name string) string {
	_, rest, ok := strings.Cut(name, "~Debian~")
	if !ok {
		return ""
	}

	codename, _, _ := strings.Cut(rest, "_")

	return codename
}

func findRPM(inv *Inventory, q Query) (string, bool, error) {
	rpmArch := distro.RPMArch(q.Arch)
	tag := q.Distro.RPMTag()

	exact := inv.Filter(func(name string) bool {
		return isVirtualBoxRPM(name) && strings.HasSuffix(name, "_"+tag+"-1."+rpmArch+".rpm")
	})
	if len(exact) > 0 {
		return last(exact), true, nil
	}

	if !q.Strict {
		pattern := regexp.MustCompile(`_` + regexp.QuoteMeta(q.Distro.RPMTagPrefix()) + `\d+-1\.` + regexp.QuoteMeta(rpmArch) + `\.rpm$`)

		sameFamily := inv.Filter(func(name string) bool {
			return isVirtualBoxRPM(name) && pattern.MatchString(name)
		})
		if len(sameFamily) > 0 {
			return last(sameFamily), false, nil
		}
	}

	available := strings.Join(inv.Filter(func(name string) bool {
		return isVirtualBoxRPM(name) && strings.HasSuffix(name, "."+rpmArch+".rpm")
	}), ", ")
	if available == "" {
		available = "none"
	}

	return "", false, fmt.Errorf("no rpm tagged %q among files of version %s, available rpms: %s: %w",
		tag, q.Version, available, ErrPackageNotFound)
}

func isVirtualBoxRPM(name string) bool {
	return strings.HasPrefix(name, "VirtualBox-") && strings.HasSuffix(name, ".rpm")
}

func hasAnySuffix(name string, suffixes []string) bool {
	for _, suffix := range suffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}

	return false
}

func last(names []string) string {
	if len(names) == 0 {
		return ""
	}

	return names[len(names)-1]
}

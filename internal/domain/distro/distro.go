package distro

import (
	"fmt"
	"slices"
	"strings"

	"github.com/joho/godotenv"
)

// Family groups distributions sharing a package format and package manager.
type Family string

// Known families.
const (
	FamilyDebian  Family = "debian"
	FamilyRedHat  Family = "redhat"
	FamilySUSE    Family = "suse"
	FamilyUnknown Family = "unknown"
)

// DefaultCodename is used when neither os-release nor lsb_release report one.
const DefaultCodename = "jammy"

// Distro is the subset of os-release that drives package selection.
type Distro struct {
	// ID is the lowercase distribution id, e.g. "ubuntu" or "fedora".
	ID string
	// IDLike lists the ids this distribution derives from.
	IDLike []string
	// VersionID is the release number, e.g. "22.04" or "40".
	VersionID string
	// Codename is the release codename, e.g. "jammy"; empty on most rpm distributions.
	Codename string
	// Name is a human-readable name.
	Name string
}

//nolint:gochecknoglobals // Read-only lookup table.
var familyByID = map[string]Family{
	"ubuntu":              FamilyDebian,
	"debian":              FamilyDebian,
	"linuxmint":           FamilyDebian,
	"pop":                 FamilyDebian,
	"elementary":          FamilyDebian,
	"raspbian":            FamilyDebian,
	"kali":                FamilyDebian,
	"rhel":                FamilyRedHat,
	"ol":                  FamilyRedHat,
	"centos":              FamilyRedHat,
	"rocky":               FamilyRedHat,
	"almalinux":           FamilyRedHat,
	"fedora":              FamilyRedHat,
	"opensuse":            FamilySUSE,
	"opensuse-leap":       FamilySUSE,
	"opensuse-tumbleweed": FamilySUSE,
	"sles":                FamilySUSE,
	"suse":                FamilySUSE,
}

// ParseOSRelease reads the KEY=VALUE os-release format.
// UBUNTU_CODENAME wins over VERSION_CODENAME because derivatives such as Mint
// publish their own codename in the latter.
func ParseOSRelease(text string) (Distro, error) {
	values, err := godotenv.Unmarshal(text)
	if err != nil {
		return Distro{}, fmt.Errorf("parse os-release: %w", err)
	}

	d := Distro{
		ID:        normalize(values["ID"]),
		VersionID: strings.TrimSpace(values["VERSION_ID"]),
		Codename:  normalize(values["UBUNTU_CODENAME"]),
		Name:      strings.TrimSpace(values["PRETTY_NAME"]),
	}

	if d.Codename == "" {
		d.Codename = normalize(values["VERSION_CODENAME"])
	}

	if d.Name == "" {
		d.Name = strings.TrimSpace(values["NAME"])
	}

	for _, like := range strings.Fields(values["ID_LIKE"]) {
		d.IDLike = append(d.IDLike, normalize(like))
	}

	return d, nil
}

// Family resolves the package family from ID and then from ID_LIKE.
func (d Distro) Family() Family {
	if f, ok := familyByID[d.ID]; ok {
		return f
	}

	for _, like := range d.IDLike {
		if f, ok := familyByID[like]; ok {
			return f
		}
	}

	return FamilyUnknown
}

// Is reports whether the distribution is id or derives from it.
func (d Distro) Is(id string) bool {
	return d.ID == id || slices.Contains(d.IDLike, id)
}

// RPMTag returns the build tag vendor rpm names carry for this distribution:
// "el9", "fedora40" or "openSUSE156". It is empty for non-rpm distributions.
func (d Distro) RPMTag() string {
	switch {
	case d.ID == "fedora":
		return "fedora" + major(d.VersionID)
	case d.Family() == FamilyRedHat:
		return "el" + major(d.VersionID)
	case d.Family() == FamilySUSE:
		return "openSUSE" + strings.ReplaceAll(d.VersionID, ".", "")
	default:
		return ""
	}
}

// RPMTagPrefix is RPMTag without the release number.
func (d Distro) RPMTagPrefix() string {
	return strings.TrimRight(d.RPMTag(), "0123456789")
}

// String returns a compact description used in logs.
func (d Distro) String() string {
	id := d.ID
	if id == "" {
		id = "unknown"
	}

	parts := []string{id}
	if d.VersionID != "" {
		parts = append(parts, d.VersionID)
	}

	if d.Codename != "" {
		parts = append(parts, "("+d.Codename+")")
	}

	return strings.Join(parts, " ")
}

func normalize(s string) string {
	return strings.ToLower(strings.Trim(strings.TrimSpace(s), `"'`))
}

func major(versionID string) string {
	m, _, _ := strings.Cut(versionID, ".")
	return m
}

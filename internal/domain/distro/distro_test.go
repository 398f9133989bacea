package distro

import (
	"testing"

	"github.com/stretchr/testify/require"
)

const ubuntuOSRelease = `PRETTY_NAME="Ubuntu 22.04.4 LTS"
NAME="Ubuntu"
VERSION_ID="22.04"
VERSION="22.04.4 LTS (Jammy Jellyfish)"
VERSION_CODENAME=jammy
ID=ubuntu
ID_LIKE=debian
HOME_URL="https://www.ubuntu.com/"
UBUNTU_CODENAME=jammy
`

const mintOSRelease = `NAME="Linux Mint"
VERSION="21.3 (Virginia)"
ID=linuxmint
ID_LIKE="ubuntu debian"
VERSION_ID="21.3"
VERSION_CODENAME=virginia
UBUNTU_CODENAME=jammy
`

const fedoraOSRelease = `NAME="Fedora Linux"
VERSION="40 (Workstation Edition)"
ID=fedora
VERSION_ID=40
PRETTY_NAME="Fedora Linux 40 (Workstation Edition)"
`

// TestParseOSRelease_Ubuntu reads the common fields.
func TestParseOSRelease_Ubuntu(t *testing.T) {
	t.Parallel()

	d, err := ParseOSRelease(ubuntuOSRelease)
	require.NoError(t, err)
	require.Equal(t, "ubuntu", d.ID)
	require.Equal(t, "jammy", d.Codename)
	require.Equal(t, "22.04", d.VersionID)
	require.Equal(t, []string{"debian"}, d.IDLike)
	require.Equal(t, "Ubuntu 22.04.4 LTS", d.Name)
	require.Equal(t, FamilyDebian, d.Family())
	require.Empty(t, d.RPMTag())
}

// TestParseOSRelease_PrefersUbuntuCodename checks derivatives resolve to the Ubuntu base.
func TestParseOSRelease_PrefersUbuntuCodename(t *testing.T) {
	t.Parallel()

	d, err := ParseOSRelease(mintOSRelease)
	require.NoError(t, err)
	require.Equal(t, "linuxmint", d.ID)
	require.Equal(t, "jammy", d.Codename)
	require.True(t, d.Is("ubuntu"))
	require.Equal(t, FamilyDebian, d.Family())
}

// TestRPMTag covers the rpm build tags per family.
func TestRPMTag(t *testing.T) {
	t.Parallel()

	fedora, err := ParseOSRelease(fedoraOSRelease)
	require.NoError(t, err)
	require.Equal(t, "fedora40", fedora.RPMTag())
	require.Equal(t, "fedora", fedora.RPMTagPrefix())

	cases := []struct {
		want string
		d    Distro
	}{
		{want: "el9", d: Distro{ID: "rocky", VersionID: "9.3"}},
		{want: "el8", d: Distro{ID: "ol", VersionID: "8"}},
		{want: "el9", d: Distro{ID: "myos", IDLike: []string{"rhel"}, VersionID: "9"}},
		{want: "openSUSE156", d: Distro{ID: "opensuse-leap", VersionID: "15.6"}},
	}

	for _, tc := range cases {
		require.Equal(t, tc.want, tc.d.RPMTag(), tc.d.String())
	}

	require.Equal(t, FamilyUnknown, Distro{ID: "arch"}.Family())
}

// TestArch maps architectures between naming schemes.
func TestArch(t *testing.T) {
	t.Parallel()

	require.Equal(t, "i386", DebArch("386"))
	require.Equal(t, "arm64", DebArch("arm64"))
	require.NotEmpty(t, DebArch(""))
	require.Equal(t, "x86_64", RPMArch("amd64"))
	require.Equal(t, "aarch64", RPMArch("arm64"))
}

// TestTargets checks the catalogue keys and that every package target has a family.
func TestTargets(t *testing.T) {
	t.Parallel()

	require.Len(t, Labels(), 11)

	target, ok := TargetByKey("4")
	require.True(t, ok)
	require.Equal(t, "jammy", target.Distro.Codename)

	target, ok = TargetByKey("11")
	require.True(t, ok)
	require.True(t, target.Source)

	for _, key := range []string{"0", "12", "x", ""} {
		_, ok = TargetByKey(key)
		require.False(t, ok, key)
	}

	for _, target := range Targets() {
		if target.Source {
			continue
		}

		require.NotEqual(t, FamilyUnknown, target.Distro.Family(), target.Label)
	}
}

// TestDebianRank follows release order rather than alphabetical order.
func TestDebianRank(t *testing.T) {
	t.Parallel()

	require.Greater(t, DebianRank("bookworm"), DebianRank("bullseye"))
	require.Greater(t, DebianRank("trixie"), DebianRank("bookworm"))
	require.Equal(t, DebianRank("bookworm"), DebianRank("Bookworm"))
	require.Zero(t, DebianRank("sid"))
}

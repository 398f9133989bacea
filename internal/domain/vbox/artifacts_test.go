package vbox

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/installer-helpers/internal/domain/distro"
	"github.com/oshokin/installer-helpers/internal/domain/release"
)

func fixtureInventory(t *testing.T) *Inventory {
	t.Helper()

	f, err := os.Open("testdata/listing-7.1.4.html")
	require.NoError(t, err)

	defer func() {
		_ = f.Close()
	}()

	links, err := ParseDirectoryLinks(f)
	require.NoError(t, err)

	return NewInventory(links...)
}

// TestFindArtifacts selects the expected files for each host.
func TestFindArtifacts(t *testing.T) {
	t.Parallel()

	inv := fixtureInventory(t)
	ver := release.MustParse("7.1.4")

	cases := []struct {
		name    string
		query   Query
		pkg     string
		kind    Kind
		exact   bool
		wantErr bool
	}{
		{
			name:  "ubuntu jammy",
			query: Query{Distro: distro.Distro{ID: "ubuntu", Codename: "jammy"}, Arch: "amd64", Strict: true},
			pkg:   "virtualbox-7.1_7.1.4-165100~Ubuntu~jammy_amd64.deb",
			kind:  KindDeb,
			exact: true,
		},
		{
			name:  "mint resolves through ubuntu codename",
			query: Query{Distro: distro.Distro{ID: "linuxmint", IDLike: []string{"ubuntu", "debian"}, Codename: "noble"}, Arch: "amd64", Strict: true},
			pkg:   "virtualbox-7.1_7.1.4-165100~Ubuntu~noble_amd64.deb",
			kind:  KindDeb,
			exact: true,
		},
		{
			name:    "ubuntu unknown codename strict",
			query:   Query{Distro: distro.Distro{ID: "ubuntu", Codename: "plucky"}, Arch: "amd64", Strict: true},
			wantErr: true,
		},
		{
			name:  "ubuntu unknown codename loose",
			query: Query{Distro: distro.Distro{ID: "ubuntu", Codename: "plucky"}, Arch: "amd64"},
			pkg:   "virtualbox-7.1_7.1.4-165100~Ubuntu~noble_amd64.deb",
			kind:  KindDeb,
		},
		{
			name:    "ubuntu wrong arch",
			query:   Query{Distro: distro.Distro{ID: "ubuntu", Codename: "jammy"}, Arch: "arm64", Strict: true},
			wantErr: true,
		},
		{
			name:  "debian bookworm",
			query: Query{Distro: distro.Distro{ID: "debian", Codename: "bookworm"}, Arch: "amd64", Strict: true},
			pkg:   "virtualbox-7.1_7.1.4-165100~Debian~bookworm_amd64.deb",
			kind:  KindDeb,
			exact: true,
		},
		{
			name:    "debian trixie strict",
			query:   Query{Distro: distro.Distro{ID: "debian", Codename: "trixie"}, Arch: "amd64", Strict: true},
			wantErr: true,
		},
		{
			name:  "debian trixie loose takes the newest debian release",
			query: Query{Distro: distro.Distro{ID: "debian", Codename: "trixie"}, Arch: "amd64"},
			pkg:   "virtualbox-7.1_7.1.4-165100~Debian~bookworm_amd64.deb",
			kind:  KindDeb,
		},
		{
			name:  "debian derivative takes the newest debian release",
			query: Query{Distro: distro.Distro{ID: "kali", IDLike: []string{"debian"}, Codename: "kali-rolling"}, Arch: "amd64", Strict: true},
			pkg:   "virtualbox-7.1_7.1.4-165100~Debian~bookworm_amd64.deb",
			kind:  KindDeb,
		},
		{
			name:  "rhel 9",
			query: Query{Distro: distro.Distro{ID: "rhel", VersionID: "9.4"}, Arch: "amd64", Strict: true},
			pkg:   "VirtualBox-7.1-7.1.4_165100_el9-1.x86_64.rpm",
			kind:  KindRPM,
			exact: true,
		},
		{
			name:  "fedora 40",
			query: Query{Distro: distro.Distro{ID: "fedora", VersionID: "40"}, Arch: "amd64", Strict: true},
			pkg:   "VirtualBox-7.1-7.1.4_165100_fedora40-1.x86_64.rpm",
			kind:  KindRPM,
			exact: true,
		},
		{
			name:    "fedora 41 strict",
			query:   Query{Distro: distro.Distro{ID: "fedora", VersionID: "41"}, Arch: "amd64", Strict: true},
			wantErr: true,
		},
		{
			name:  "fedora 38 loose",
			query: Query{Distro: distro.Distro{ID: "fedora", VersionID: "38"}, Arch: "amd64"},
			pkg:   "VirtualBox-7.1-7.1.4_165100_fedora40-1.x86_64.rpm",
			kind:  KindRPM,
		},
		{
			name:  "opensuse 15.6",
			query: Query{Distro: distro.Distro{ID: "opensuse-leap", VersionID: "15.6"}, Arch: "amd64", Strict: true},
			pkg:   "VirtualBox-7.1-7.1.4_165100_openSUSE156-1.x86_64.rpm",
			kind:  KindRPM,
			exact: true,
		},
		{
			name:  "source tarball",
			query: Query{Source: true, Arch: "amd64"},
			pkg:   "VirtualBox-7.1.4.tar.bz2",
			kind:  KindSource,
			exact: true,
		},
		{
			name:  "unknown family has no package",
			query: Query{Distro: distro.Distro{ID: "arch"}, Arch: "amd64", Strict: true},
			kind:  KindNone,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			q := tc.query
			q.Version = ver

			got, err := FindArtifacts(inv, q)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrPackageNotFound)
				require.Empty(t, got.Package)
			} else {
				require.NoError(t, err)
				require.Equal(t, tc.pkg, got.Package)
				require.Equal(t, tc.kind, got.Kind)
				require.Equal(t, tc.exact, got.Exact)
			}

			require.Equal(t, "Oracle_VirtualBox_Extension_Pack-7.1.4.vbox-extpack", got.ExtensionPack)
			require.Equal(t, "VBoxGuestAdditions_7.1.4.iso", got.GuestAdditions)
		})
	}
}

// TestFindArtifacts_StrictErrorListsAlternatives makes the diagnostic useful.
func TestFindArtifacts_StrictErrorListsAlternatives(t *testing.T) {
	t.Parallel()

	_, err := FindArtifacts(fixtureInventory(t), Query{
		Version: release.MustParse("7.1.4"),
		Distro:  distro.Distro{ID: "ubuntu", Codename: "oracular"},
		Arch:    "amd64",
		Strict:  true,
	})
	require.ErrorContains(t, err, "oracular")
	require.ErrorContains(t, err, "virtualbox-7.1_7.1.4-165100~Ubuntu~jammy_amd64.deb")
}

// TestFindArtifacts_DebianStrictErrorListsBuilds names the Debian builds that exist.
func TestFindArtifacts_DebianStrictErrorListsBuilds(t *testing.T) {
	t.Parallel()

	_, err := FindArtifacts(fixtureInventory(t), Query{
		Version: release.MustParse("7.1.4"),
		Distro:  distro.Distro{ID: "debian", Codename: "trixie"},
		Arch:    "amd64",
		Strict:  true,
	})
	require.ErrorIs(t, err, ErrPackageNotFound)
	require.ErrorContains(t, err, "trixie")
	require.ErrorContains(t, err, "virtualbox-7.1_7.1.4-165100~Debian~bookworm_amd64.deb, virtualbox-7.1_7.1.4-165100~Debian~bullseye_amd64.deb")
}

// TestFindArtifacts_ExtensionPackNaming covers both vendor namings and suffixed rebuilds.
func TestFindArtifacts_ExtensionPackNaming(t *testing.T) {
	t.Parallel()

	ver := release.MustParse("6.1.50")
	q := Query{Version: ver, Distro: distro.Distro{ID: "arch"}, Arch: "amd64"}

	got, err := FindArtifacts(NewInventory(
		"Oracle_VM_VirtualBox_Extension_Pack-6.1.50.vbox-extpack",
		"Oracle_VirtualBox_Extension_Pack-6.1.50.vbox-extpack",
	), q)
	require.NoError(t, err)
	require.Equal(t, "Oracle_VM_VirtualBox_Extension_Pack-6.1.50.vbox-extpack", got.ExtensionPack)

	got, err = FindArtifacts(NewInventory(
		"Oracle_VM_VirtualBox_Extension_Pack-6.1.50a.vbox-extpack",
		"Oracle_VM_VirtualBox_Extension_Pack-6.1.50b.vbox-extpack",
		"Oracle_VM_VirtualBox_Extension_Pack-6.1.500.vbox-extpack",
		"VBoxGuestAdditions_6.1.50a.iso",
		"VBoxGuestAdditions_6.1.50Xiso",
	), q)
	require.NoError(t, err)
	require.Equal(t, "Oracle_VM_VirtualBox_Extension_Pack-6.1.50b.vbox-extpack", got.ExtensionPack)
	require.Equal(t, "VBoxGuestAdditions_6.1.50a.iso", got.GuestAdditions)

	got, err = FindArtifacts(NewInventory(), q)
	require.NoError(t, err)
	require.Empty(t, got.ExtensionPack)
	require.Empty(t, got.GuestAdditions)
}

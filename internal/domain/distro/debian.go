package distro

import (
	"slices"
	"strings"
)

// debianCodenames lists Debian releases from oldest to newest.
//
//nolint:gochecknoglobals // Read-only table.
var debianCodenames = []string{"jessie", "stretch", "buster", "bullseye", "bookworm", "trixie", "forky", "duke"}

// DebianRank orders Debian codenames by release: bookworm ranks above
// bullseye. Unknown codenames rank 0.
func DebianRank(codename string) int {
	return slices.Index(debianCodenames, strings.ToLower(codename)) + 1
}

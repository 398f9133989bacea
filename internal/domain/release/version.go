package release

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

var (
	// ErrInvalidVersion is returned for strings that are not exactly X.Y.Z.
	ErrInvalidVersion = errors.New("invalid version")
	// ErrNoVersion is returned when no candidate is a valid version.
	ErrNoVersion = errors.New("no valid version")

	strictPattern = regexp.MustCompile(`^\d+\.\d+\.\d+$`)
)

// Version is a validated three-component release number.
type Version struct {
	raw string
	v   *goversion.Version
}

// Parse accepts only dot-separated triples of decimal integers.
// Surrounding whitespace is ignored.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if !strictPattern.MatchString(s) {
		return Version{}, fmt.Errorf("%q: %w", s, ErrInvalidVersion)
	}

	v, err := goversion.NewVersion(s)
	if err != nil {
		return Version{}, fmt.Errorf("%q: %w", s, ErrInvalidVersion)
	}

	return Version{raw: s, v: v}, nil
}

// MustParse is like Parse but panics on error.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}

	return v
}

// String returns the version as it was given.
func (v Version) String() string {
	return v.raw
}

// IsZero reports whether v was never parsed.
func (v Version) IsZero() bool {
	return v.v == nil
}

// Compare returns -1, 0 or 1 comparing numeric components in order.
func (v Version) Compare(other Version) int {
	switch {
	case v.IsZero() && other.IsZero():
		return 0
	case v.IsZero():
		return -1
	case other.IsZero():
		return 1
	}

	return v.v.Compare(other.v)
}

// Less reports whether v sorts before other.
func (v Version) Less(other Version) bool {
	return v.Compare(other) < 0
}

// MajorMinor returns the first two components, e.g. "7.1" for "7.1.4".
func (v Version) MajorMinor() string {
	if v.IsZero() {
		return ""
	}

	segments := v.v.Segments()

	return fmt.Sprintf("%d.%d", segments[0], segments[1])
}

// Max returns the highest valid version among candidates, skipping malformed ones.
func Max(candidates []string) (Version, error) {
	var best Version

	for _, candidate := range candidates {
		v, err := Parse(candidate)
		if err != nil {
			continue
		}

		if best.IsZero() || best.Less(v) {
			best = v
		}
	}

	if best.IsZero() {
		return Version{}, ErrNoVersion
	}

	return best, nil
}

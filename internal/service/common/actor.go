//nolint:revive,nolintlint // Package name "common" is intentional for shared helpers.
package common

import (
	"errors"
	"fmt"
	"os"
	"os/user"
	"slices"
)

// ErrUserUnknown is returned when no invoking user can be determined.
var ErrUserUnknown = errors.New("unable to determine the invoking user")

// DetectUser returns the login of the person who started the tool.
// Under sudo that is SUDO_USER rather than root.
func DetectUser() (string, error) {
	for _, key := range []string{"SUDO_USER", "USER"} {
		if name := os.Getenv(key); name != "" {
			return name, nil
		}
	}

	current, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("current user: %w", err)
	}

	if current.Username == "" {
		return "", ErrUserUnknown
	}

	return current.Username, nil
}

// InGroup reports whether username is a member of group.
// A group that does not exist yet has no members.
func InGroup(username, group string) (bool, error) {
	u, err := user.Lookup(username)
	if err != nil {
		return false, fmt.Errorf("lookup user %s: %w", username, err)
	}

	g, err := user.LookupGroup(group)
	if err != nil {
		var unknown user.UnknownGroupError
		if errors.As(err, &unknown) {
			return false, nil
		}

		return false, fmt.Errorf("lookup group %s: %w", group, err)
	}

	ids, err := u.GroupIds()
	if err != nil {
		return false, fmt.Errorf("groups of %s: %w", username, err)
	}

	return slices.Contains(ids, g.Gid), nil
}

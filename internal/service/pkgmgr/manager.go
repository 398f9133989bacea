package pkgmgr

import (
	"context"
	"errors"
	"fmt"

	"github.com/oshokin/installer-helpers/internal/domain/distro"
	"github.com/oshokin/installer-helpers/internal/service/system"
)

// ErrUnsupportedDistro is returned for a distribution without a known package manager.
var ErrUnsupportedDistro = errors.New("unsupported distribution")

// Manager installs packages on the host.
type Manager interface {
	// Name is the package manager executable.
	Name() string
	// Refresh updates the package index.
	Refresh(ctx context.Context) error
	// InstallBuildDeps installs what kernel module builds need for the given kernel release.
	InstallBuildDeps(ctx context.Context, kernel string) error
	// InstallLocal installs a downloaded package file.
	InstallLocal(ctx context.Context, path string) error
}

// ForDistro picks the manager of the distribution family.
func ForDistro(d distro.Distro, runner system.Runner) (Manager, error) {
	switch d.Family() {
	case distro.FamilyDebian:
		return NewApt(runner), nil
	case distro.FamilyRedHat:
		return NewDnf(runner), nil
	case distro.FamilySUSE:
		return NewZypper(runner), nil
	default:
		return nil, fmt.Errorf("%s: %w", d, ErrUnsupportedDistro)
	}
}

func run(ctx context.Context, runner system.Runner, name string, args ...string) error {
	_, err := runner.Run(ctx, system.New(name, args...).Sudo())

	return err
}

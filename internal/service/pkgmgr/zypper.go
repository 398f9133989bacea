package pkgmgr

import (
	"context"
	"fmt"

	"github.com/oshokin/installer-helpers/internal/service/system"
)

// Zypper manages packages on openSUSE and SLES.
type Zypper struct {
	runner system.Runner
}

// NewZypper creates a zypper manager.
func NewZypper(runner system.Runner) *Zypper {
	return &Zypper{runner: runner}
}

// Name implements Manager.
func (z *Zypper) Name() string {
	return "zypper"
}

// Refresh implements Manager.
func (z *Zypper) Refresh(ctx context.Context) error {
	return run(ctx, z.runner, "zypper", "--non-interactive", "refresh")
}

// InstallBuildDeps implements Manager. zypper picks the devel package matching
// the running kernel flavour, so the release is not part of the name.
func (z *Zypper) InstallBuildDeps(ctx context.Context, _ string) error {
	return run(ctx, z.runner, "zypper", "--non-interactive", "install",
		"kernel-default-devel", "gcc", "make", "perl")
}

// InstallLocal implements Manager. Vendor rpms are signed with a key zypper
// does not know yet.
func (z *Zypper) InstallLocal(ctx context.Context, path string) error {
	err := run(ctx, z.runner, "zypper", "--non-interactive", "--no-gpg-checks", "install", path)
	if err != nil {
		return fmt.Errorf("install %s: %w", path, err)
	}

	return nil
}

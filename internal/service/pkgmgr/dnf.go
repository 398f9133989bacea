package pkgmgr

import (
	"context"
	"fmt"

	"github.com/oshokin/installer-helpers/internal/service/system"
)

// Dnf manages packages on the Red Hat family.
type Dnf struct {
	runner system.Runner
}

// NewDnf creates a dnf manager.
func NewDnf(runner system.Runner) *Dnf {
	return &Dnf{runner: runner}
}

// Name implements Manager.
func (d *Dnf) Name() string {
	return "dnf"
}

// Refresh implements Manager.
func (d *Dnf) Refresh(ctx context.Context) error {
	return run(ctx, d.runner, "dnf", "makecache", "-y")
}

// InstallBuildDeps implements Manager.
func (d *Dnf) InstallBuildDeps(ctx context.Context, kernel string) error {
	return run(ctx, d.runner, "dnf", "install", "-y",
		"kernel-devel-"+kernel, "kernel-headers", "dkms", "gcc", "make", "perl")
}

// InstallLocal implements Manager.
func (d *Dnf) InstallLocal(ctx context.Context, path string) error {
	if err := run(ctx, d.runner, "dnf", "install", "-y", path); err != nil {
		return fmt.Errorf("install %s: %w", path, err)
	}

	return nil
}

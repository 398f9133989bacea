package pkgmgr

import (
	"context"
	"fmt"

	"github.com/oshokin/installer-helpers/internal/logger"
	"github.com/oshokin/installer-helpers/internal/service/system"
)

// Apt manages packages on Debian and its derivatives.
type Apt struct {
	runner system.Runner
}

// NewApt creates an apt manager.
func NewApt(runner system.Runner) *Apt {
	return &Apt{runner: runner}
}

// Name implements Manager.
func (a *Apt) Name() string {
	return "apt-get"
}

// Refresh implements Manager.
func (a *Apt) Refresh(ctx context.Context) error {
	return run(ctx, a.runner, "apt-get", "update", "-y")
}

// InstallBuildDeps implements Manager.
// libxcb-cursor0 is required by the Qt frontend since 7.0.
func (a *Apt) InstallBuildDeps(ctx context.Context, kernel string) error {
	return run(ctx, a.runner, "apt-get", "install", "-y",
		"dkms", "build-essential", "linux-headers-"+kernel, "libxcb-cursor0")
}

// InstallLocal implements Manager.
// A failed install is followed by one dependency fix and a single retry.
func (a *Apt) InstallLocal(ctx context.Context, path string) error {
	err := run(ctx, a.runner, "apt-get", "install", "-y", path)
	if err == nil {
		return nil
	}

	logger.Warnf(ctx, "install of %s failed, fixing dependencies: %v", path, err)

	if fixErr := run(ctx, a.runner, "apt-get", "install", "-f", "-y"); fixErr != nil {
		return fmt.Errorf("fix dependencies: %w", fixErr)
	}

	if err = run(ctx, a.runner, "apt-get", "install", "-y", path); err != nil {
		return fmt.Errorf("install %s: %w", path, err)
	}

	return nil
}

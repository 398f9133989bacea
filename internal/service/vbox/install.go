package vbox

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/oshokin/installer-helpers/internal/domain/vbox"
	"github.com/oshokin/installer-helpers/internal/logger"
	"github.com/oshokin/installer-helpers/internal/service/common"
	"github.com/oshokin/installer-helpers/internal/service/pkgmgr"
	"github.com/oshokin/installer-helpers/internal/service/system"
)

const (
	vboxConfigPath = "/sbin/vboxconfig"
	vboxManage     = "VBoxManage"
	vboxUsersGroup = "vboxusers"
)

// installPackage refreshes the index, installs build dependencies and the package.
// Only a failed package install stops the run.
func (r *runner) installPackage(ctx context.Context) error {
	manager, err := pkgmgr.ForDistro(r.query.Distro, r.system)
	if err != nil {
		return err
	}

	if err = manager.Refresh(ctx); err != nil {
		logger.Warnf(ctx, "Package index refresh failed: %v", err)
	}

	if kernel, kernelErr := r.kernel(); kernelErr != nil {
		logger.Warnf(ctx, "Unable to determine the kernel release, skipping build dependencies: %v", kernelErr)
	} else if err = manager.InstallBuildDeps(ctx, kernel); err != nil {
		logger.Warnf(ctx, "Build dependencies were not installed: %v", err)
	}

	if err = manager.InstallLocal(ctx, r.files.Package); err != nil {
		return fmt.Errorf("install package: %w", err)
	}

	r.packageInstalled = true

	return nil
}

func (r *runner) kernel() (string, error) {
	if r.opts.Kernel != "" {
		return r.opts.Kernel, nil
	}

	return kernelRelease()
}

// configureHost builds the kernel modules and grants the user access.
// Both steps only warn on failure.
func (r *runner) configureHost(ctx context.Context) {
	if _, err := r.system.LookPath(vboxConfigPath); err == nil {
		if _, err = r.system.Run(ctx, system.New(vboxConfigPath).Sudo()); err != nil {
			logger.Warnf(ctx, "vboxconfig failed: %v", err)
		}
	}

	r.addUserToGroup(ctx)

	r.installedVersion = r.vboxManageVersion(ctx)
	if r.installedVersion == "" {
		logger.Warn(ctx, "Installed VBoxManage version is unknown")
	} else {
		logger.InfoKV(ctx, "Installed VBoxManage", "version", r.installedVersion)
	}
}

func (r *runner) addUserToGroup(ctx context.Context) {
	username := r.opts.User
	if username == "" {
		var err error

		username, err = common.DetectUser()
		if err != nil {
			logger.Warnf(ctx, "Unable to determine the user for %s: %v", vboxUsersGroup, err)
			return
		}
	}

	member, err := common.InGroup(username, vboxUsersGroup)
	if err != nil {
		logger.Debugf(ctx, "Group membership check failed: %v", err)
	}

	if member {
		logger.Infof(ctx, "User %s is already in the %s group", username, vboxUsersGroup)
		return
	}

	if _, err = r.system.Run(ctx, system.New("usermod", "-aG", vboxUsersGroup, username).Sudo()); err != nil {
		logger.Warnf(ctx, "Unable to add %s to %s: %v", username, vboxUsersGroup, err)
	}
}

func (r *runner) vboxManageVersion(ctx context.Context) string {
	if _, err := r.system.LookPath(vboxManage); err != nil {
		return ""
	}

	result, err := r.system.Run(ctx, system.New(vboxManage, "--version").Captured())
	if err != nil {
		return ""
	}

	return strings.TrimSpace(result.Stdout)
}

// installExtensionPack installs the downloaded extension pack and checks the
// installed version. The license prompt is answered with "y".
func (r *runner) installExtensionPack(ctx context.Context) {
	if r.files.ExtensionPack == "" {
		return
	}

	if _, err := r.system.LookPath(vboxManage); err != nil {
		logger.Warn(ctx, "VBoxManage not found, skipping the extension pack")
		return
	}

	install := system.New(vboxManage, "extpack", "install", "--replace", r.files.ExtensionPack).Sudo()
	install.Stdin = "y\n"

	if _, err := r.system.Run(ctx, install); err != nil {
		logger.Warnf(ctx, "Extension pack installation failed: %v", err)
	}

	result, err := r.system.Run(ctx, system.New(vboxManage, "list", "extpacks").Captured())
	if err != nil {
		logger.Warnf(ctx, "Unable to list extension packs: %v", err)
		return
	}

	r.extensionPackInstalled = vbox.ExtensionPackInstalled(result.Stdout, r.version.String())
	if !r.extensionPackInstalled {
		logger.Warnf(ctx, "Extension pack %s is not installed", r.version)
	}
}

// cleanup removes downloads that were installed.
func (r *runner) cleanup(ctx context.Context) {
	if r.cfg.KeepDownloads {
		return
	}

	if r.packageInstalled {
		r.packageRemoved = removeFile(ctx, r.files.Package)
	}

	if r.extensionPackInstalled {
		r.extensionPackRemoved = removeFile(ctx, r.files.ExtensionPack)
	}
}

func removeFile(ctx context.Context, path string) bool {
	if path == "" {
		return false
	}

	if err := os.Remove(path); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			logger.Warnf(ctx, "Unable to remove %s: %v", path, err)
		}

		return false
	}

	logger.InfoKV(ctx, "Removed file", "path", path)

	return true
}

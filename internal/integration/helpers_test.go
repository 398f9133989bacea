package integration

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/installer-helpers/internal/config"
	"github.com/oshokin/installer-helpers/internal/service/system"
	"github.com/oshokin/installer-helpers/internal/service/system/systemtest"
	"github.com/oshokin/installer-helpers/internal/service/vbox"
	"github.com/oshokin/installer-helpers/internal/service/vbox/vboxtest"
)

// host bundles everything a vbox-installer run touches.
type host struct {
	vendor   *vboxtest.Vendor
	recorder *systemtest.Recorder
	stdout   *bytes.Buffer
	dir      string
	options  *vbox.Options
}

// newHost saves a settings file pointing at a fake vendor, loads it back and
// prepares options for a host described by osRelease.
func newHost(t *testing.T, osRelease string, edit func(*config.Config)) *host {
	t.Helper()

	vendor := vboxtest.NewVendor(t)
	work := t.TempDir()
	dir := filepath.Join(work, "Downloads", "VirtualBox")

	cfg := config.Default()
	cfg.VirtualBox.BaseURL = vendor.URL
	cfg.VirtualBox.DownloadDir = dir
	cfg.VirtualBox.Arch = "amd64"

	if edit != nil {
		edit(cfg)
	}

	cfgPath := filepath.Join(work, config.DefaultConfigFilename)
	require.NoError(t, config.Save(cfgPath, cfg))

	loaded, err := config.Load(cfgPath)
	require.NoError(t, err)

	osReleasePath := filepath.Join(work, "os-release")
	require.NoError(t, os.WriteFile(osReleasePath, []byte(osRelease), 0o600))

	recorder := systemtest.NewRecorder(
		systemtest.Reply{Prefix: "VBoxManage --version", Result: system.Result{Stdout: vboxtest.Version + "r165100\n"}},
		systemtest.Reply{Prefix: "VBoxManage list extpacks", Result: system.Result{Stdout: "Version: " + vboxtest.Version + "\n"}},
	).Missing("lsb_release")

	stdout := new(bytes.Buffer)

	return &host{
		vendor:   vendor,
		recorder: recorder,
		stdout:   stdout,
		dir:      dir,
		options: &vbox.Options{
			Config:        loaded,
			Force:         true,
			Yes:           true,
			Runner:        recorder,
			Stdout:        stdout,
			OSReleasePath: osReleasePath,
			User:          "installer-helpers-integration-user",
			Kernel:        "6.1.0-25-amd64",
		},
	}
}

func (h *host) path(name string) string {
	return filepath.Join(h.dir, name)
}

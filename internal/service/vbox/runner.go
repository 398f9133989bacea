package vbox

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/oshokin/installer-helpers/internal/config"
	"github.com/oshokin/installer-helpers/internal/domain/distro"
	"github.com/oshokin/installer-helpers/internal/domain/release"
	"github.com/oshokin/installer-helpers/internal/domain/vbox"
	"github.com/oshokin/installer-helpers/internal/logger"
	"github.com/oshokin/installer-helpers/internal/service/common"
	"github.com/oshokin/installer-helpers/internal/service/system"
	"github.com/oshokin/installer-helpers/internal/version"
)

var (
	// ErrChecksumMismatch is returned when a download does not match SHA256SUMS.
	ErrChecksumMismatch = errors.New("checksum mismatch")
	// ErrVirtualBoxRunning is returned when VirtualBox processes would be replaced under their feet.
	ErrVirtualBoxRunning = errors.New("virtualbox is running")
	// ErrAborted is returned when the user declines the installation.
	ErrAborted = errors.New("installation aborted")
	// ErrNoPackage is returned when nothing installable was found.
	ErrNoPackage = errors.New("no package to install")
	// ErrUnknownTarget is returned for a catalogue number outside the menu.
	ErrUnknownTarget = errors.New("unknown catalogue entry")
	// ErrNotPublished is returned when the vendor does not serve a listed file.
	ErrNotPublished = errors.New("file is not published")

	errNotInteractive = errors.New("interactive selection needs a terminal")
)

const (
	defaultOSReleasePath = "/etc/os-release"
	toolName             = "vbox-installer"
	downloadDirMode      = 0o755
)

// runner holds the state of a single installer execution.
type runner struct {
	opts     *Options
	cfg      config.VirtualBox
	client   *common.Client
	system   system.Runner
	prompter Prompter
	out      io.Writer

	// processes lists running processes by executable name.
	processes func(names ...string) ([]system.Process, error)

	distro    distro.Distro
	query     vbox.Query
	version   release.Version
	inventory *vbox.Inventory
	artifacts vbox.Artifacts
	files     downloads

	packageInstalled       bool
	packageRemoved         bool
	extensionPackInstalled bool
	extensionPackRemoved   bool
	installedVersion       string
}

// downloads are local paths of fetched artifacts. Empty means not downloaded.
type downloads struct {
	Package        string
	ExtensionPack  string
	GuestAdditions string
}

// newRunner applies defaults to opts.
func newRunner(opts *Options) (*runner, error) {
	if opts == nil {
		opts = new(Options)
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	} else if err := config.Validate(cfg); err != nil {
		return nil, err
	}

	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = version.UserAgent(toolName)
	}

	r := &runner{
		opts: opts,
		cfg:  cfg.VirtualBox,
		client: common.NewClient(
			common.WithCallTimeout(cfg.RequestTimeout),
			common.WithDownloadTimeout(cfg.DownloadTimeout),
			common.WithUserAgent(userAgent),
			common.WithHTTPClient(opts.HTTPClient),
		),
		system:    opts.Runner,
		prompter:  opts.Prompter,
		out:       opts.Stdout,
		processes: system.RunningProcesses,
	}

	if r.system == nil {
		r.system = system.NewExecRunner()
	}

	if r.out == nil {
		r.out = os.Stdout
	}

	if r.prompter == nil && isatty.IsTerminal(os.Stdin.Fd()) {
		r.prompter = SurveyPrompter{}
	}

	if r.cfg.Arch == "" {
		r.cfg.Arch = distro.DebArch("")
	}

	return r, nil
}

// Run executes the whole installation and is the entry point of the root command.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, toolName)

	r, err := newRunner(opts)
	if err != nil {
		return err
	}

	if err = r.install(ctx); err != nil {
		logger.ErrorKV(ctx, "Installer run failed", "error", err)
		return err
	}

	logger.Info(ctx, "Installer completed")

	return nil
}

// install runs the workflow:
// 1) Resolve the host, the release and its files.
// 2) Make sure VirtualBox is not running.
// 3) Download the package, the extension pack and the guest additions image.
// 4) Ask for confirmation.
// 5) Install the package and configure the host.
// 6) Install and verify the extension pack.
// 7) Remove installed downloads and print the summary.
func (r *runner) install(ctx context.Context) error {
	if err := r.prepare(ctx); err != nil {
		return err
	}

	if err := r.ensureNotRunning(ctx); err != nil {
		return err
	}

	if err := r.downloadAll(ctx); err != nil {
		return err
	}

	if r.artifacts.Kind == vbox.KindSource {
		logger.Info(ctx, "The source tarball has to be built manually, skipping installation")
		r.writeSummary()

		return nil
	}

	if r.files.Package == "" {
		return fmt.Errorf("%s: %w", r.query.Distro, ErrNoPackage)
	}

	if err := r.confirm(ctx); err != nil {
		return err
	}

	if err := r.installPackage(ctx); err != nil {
		return err
	}

	r.configureHost(ctx)
	r.installExtensionPack(ctx)
	r.cleanup(ctx)
	r.writeSummary()

	return nil
}

// prepare resolves everything the later stages need without touching the host.
func (r *runner) prepare(ctx context.Context) error {
	logger.InfoKV(ctx, "Preparing the download directory", "path", r.cfg.DownloadDir)

	if err := os.MkdirAll(r.cfg.DownloadDir, downloadDirMode); err != nil {
		return fmt.Errorf("create download directory: %w", err)
	}

	if err := r.resolveQuery(ctx); err != nil {
		return err
	}

	v, err := r.resolveVersion(ctx)
	if err != nil {
		return err
	}

	r.version = v
	r.query.Version = v

	logger.InfoKV(ctx, "Latest stable VirtualBox version", "version", v.String())

	if err = r.buildInventory(ctx); err != nil {
		return err
	}

	return r.findArtifacts(ctx)
}

// findArtifacts selects the files for the query and logs what was found.
func (r *runner) findArtifacts(ctx context.Context) error {
	artifacts, err := vbox.FindArtifacts(r.inventory, r.query)
	if err != nil {
		return err
	}

	r.artifacts = artifacts

	for _, found := range []struct{ label, name string }{
		{"package", artifacts.Package},
		{"extension pack", artifacts.ExtensionPack},
		{"guest additions", artifacts.GuestAdditions},
	} {
		if found.name == "" {
			logger.Warnf(ctx, "No %s found for %s", found.label, r.version)
			continue
		}

		logger.Infof(ctx, "Found %s: %s", found.label, r.url(found.name))
	}

	if artifacts.Package != "" && !artifacts.Exact {
		logger.Warnf(ctx, "%s was not built for %s, using the closest build", artifacts.Package, r.query.Distro)
	}

	if artifacts.Package == "" && r.query.Distro.Is("ubuntu") {
		return fmt.Errorf("no Ubuntu package for codename %s in %s, refusing to pick another build: %w",
			r.query.Distro.Codename, r.version, vbox.ErrPackageNotFound)
	}

	return nil
}

// ensureNotRunning refuses to replace a running VirtualBox. The source
// tarball installs nothing, so it is never blocked.
func (r *runner) ensureNotRunning(ctx context.Context) error {
	if r.opts.Force || r.query.Source {
		return nil
	}

	running, err := r.processes(virtualBoxProcesses...)
	if err != nil {
		logger.Warnf(ctx, "Unable to list processes: %v", err)
		return nil
	}

	if len(running) == 0 {
		return nil
	}

	for _, process := range running {
		logger.WarnKV(ctx, "VirtualBox process is running", "pid", process.PID, "executable", process.Executable)
	}

	return fmt.Errorf("close VirtualBox or pass --force: %w", ErrVirtualBoxRunning)
}

//nolint:gochecknoglobals // Read-only list.
var virtualBoxProcesses = []string{"VirtualBox", "VirtualBoxVM", "VBoxSVC", "VBoxHeadless"}

// url returns the download URL of a file of the resolved version.
func (r *runner) url(name string) string {
	return vbox.ArtifactURL(r.cfg.BaseURL, r.version.String(), name)
}

package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/installer-helpers/internal/config"
	"github.com/oshokin/installer-helpers/internal/logger"
	"github.com/oshokin/installer-helpers/internal/service/vbox"
	"github.com/oshokin/installer-helpers/internal/version"
)

// exitInterrupted is the status of a run cancelled by SIGINT or SIGTERM.
const exitInterrupted = 130

var (
	// configPath to the configuration YAML file.
	configPath string

	// settings overrides configuration values when the flag is set.
	settings struct {
		logLevel      string
		baseURL       string
		downloadDir   string
		arch          string
		looseCodename bool
		skipChecksums bool
		keepDownloads bool
	}

	// host overrides distribution detection.
	host struct {
		distroID  string
		codename  string
		versionID string
		version   string
	}

	// install holds flags of the root command only.
	install struct {
		selectTarget bool
		target       string
		force        bool
		yes          bool
	}

	// rootCmd represents the base command installing VirtualBox.
	rootCmd = &cobra.Command{
		Use:   "vbox-installer",
		Short: "Install the latest stable VirtualBox for this Linux distribution",
		Long: `Resolves the latest stable VirtualBox release, picks the package built for
this distribution, downloads it together with the Extension Pack and the
Guest Additions image, installs it with the native package manager and
adds the invoking user to the vboxusers group.

Privileged steps run through sudo.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runWith(vbox.Run),
	}
)

// Execute runs the vbox-installer CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(exitInterrupted)
		}

		os.Exit(1)
	}
}

// runWith adapts an installer entry point to cobra.
func runWith(run func(context.Context, *vbox.Options) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		// Setup graceful shutdown handling.
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		options := &vbox.Options{
			Config:    cfg,
			DistroID:  host.distroID,
			Codename:  host.codename,
			VersionID: host.versionID,
			Version:   host.version,
			Select:    install.selectTarget,
			Target:    install.target,
			Force:     install.force,
			Yes:       install.yes,
		}

		err = run(ctx, options)
		if err != nil && ctx.Err() != nil {
			return fmt.Errorf("interrupted: %w", errors.Join(context.Canceled, err))
		}

		return err
	}
}

// loadConfig reads the configuration, applies flag overrides and the log level.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()

	if flags.Changed("log-level") {
		cfg.LogLevel = settings.logLevel
	}

	if flags.Changed("base-url") {
		cfg.VirtualBox.BaseURL = settings.baseURL
	}

	if flags.Changed("download-dir") {
		cfg.VirtualBox.DownloadDir = settings.downloadDir
	}

	if flags.Changed("arch") {
		cfg.VirtualBox.Arch = settings.arch
	}

	if flags.Changed("loose-codename") {
		cfg.VirtualBox.LooseCodename = settings.looseCodename
	}

	if flags.Changed("skip-checksums") {
		cfg.VirtualBox.SkipChecksums = settings.skipChecksums
	}

	if flags.Changed("keep-downloads") {
		cfg.VirtualBox.KeepDownloads = settings.keepDownloads
	}

	if err = config.Validate(cfg); err != nil {
		return nil, err
	}

	if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
		logger.SetLevel(level)
	}

	return cfg, nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	persistent := rootCmd.PersistentFlags()

	persistent.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	persistent.StringVar(&settings.logLevel, "log-level", "", "log level: debug, info, warn or error")
	persistent.StringVar(&settings.baseURL, "base-url", "", "root of the VirtualBox download tree")
	persistent.StringVar(&settings.downloadDir, "download-dir", "", "directory receiving downloads")
	persistent.StringVar(&settings.arch, "arch", "", "Debian architecture name: amd64, arm64 or i386")
	persistent.BoolVar(&settings.looseCodename, "loose-codename", false, "accept a package built for another codename of the same family")
	persistent.BoolVar(&settings.skipChecksums, "skip-checksums", false, "do not verify SHA-256 checksums")
	persistent.BoolVar(&settings.keepDownloads, "keep-downloads", false, "keep installed packages in the download directory")

	persistent.StringVar(&host.distroID, "distro", "", "distribution id instead of the detected one, e.g. ubuntu")
	persistent.StringVar(&host.codename, "codename", "", "codename instead of the detected one, e.g. noble")
	persistent.StringVar(&host.versionID, "version-id", "", "release number instead of the detected one, e.g. 40")
	persistent.StringVar(&host.version, "vbox-version", "", "VirtualBox release instead of the latest stable one, e.g. 7.1.4")

	for _, cmd := range []*cobra.Command{rootCmd, artifactsCmd, downloadCmd} {
		cmd.Flags().BoolVarP(&install.selectTarget, "select", "s", false, "choose the package from a menu")
		cmd.Flags().StringVar(&install.target, "target", "", "menu entry number (1-11) chosen without asking")
	}

	rootCmd.Flags().BoolVarP(&install.force, "force", "f", false, "install even while VirtualBox is running")
	rootCmd.Flags().BoolVarP(&install.yes, "yes", "y", false, "do not ask for confirmation")

	rootCmd.AddCommand(latestCmd, artifactsCmd, downloadCmd, repoCmd)
}

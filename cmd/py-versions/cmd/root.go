package cmd

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/installer-helpers/internal/config"
	"github.com/oshokin/installer-helpers/internal/logger"
	"github.com/oshokin/installer-helpers/internal/service/pyversions"
	"github.com/oshokin/installer-helpers/internal/version"
)

// exitInterrupted is the status of a run cancelled by SIGINT or SIGTERM.
const exitInterrupted = 130

var (
	// configPath to the configuration YAML file.
	configPath string
	// all lists every release cycle.
	all bool
	// output selects text or yaml.
	output string
	// url overrides the downloads page.
	url string

	// rootCmd represents the base command listing maintained Python versions.
	rootCmd = &cobra.Command{
		Use:   "py-versions",
		Short: "List maintained Python release cycles",
		Long: `Reads the "Active Python Releases" table of python.org and prints every
prerelease and bugfix cycle plus the newest security-only cycle.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if cmd.Flags().Changed("url") {
				cfg.Python.DownloadsURL = url

				if err = config.Validate(cfg); err != nil {
					return err
				}
			}

			if level, ok := logger.ParseLogLevel(cfg.LogLevel); ok {
				logger.SetLevel(level)
			}

			options := &pyversions.Options{
				Config: cfg,
				All:    all,
				Format: output,
				Stdout: cmd.OutOrStdout(),
			}

			return pyversions.Run(ctx, options)
		},
	}
)

// Execute runs the py-versions CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(exitInterrupted)
		}

		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().BoolVarP(&all, "all", "a", false, "list every release cycle, including end-of-life")
	rootCmd.Flags().StringVarP(&output, "output", "o", pyversions.FormatText, "output format: text or yaml")
	rootCmd.Flags().StringVar(&url, "url", "", "downloads page to read")
}

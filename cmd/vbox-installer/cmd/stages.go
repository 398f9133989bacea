package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/installer-helpers/internal/service/vbox"
)

var (
	latestCmd = &cobra.Command{
		Use:          "latest",
		Short:        "Print the latest stable VirtualBox version",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runWith(vbox.RunLatest),
	}

	artifactsCmd = &cobra.Command{
		Use:          "artifacts",
		Short:        "Print the download URLs picked for this distribution",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runWith(vbox.RunArtifacts),
	}

	downloadCmd = &cobra.Command{
		Use:          "download",
		Short:        "Download the package, Extension Pack and Guest Additions without installing",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runWith(vbox.RunDownload),
	}

	repoCmd = &cobra.Command{
		Use:   "repo",
		Short: "Register the Oracle apt repository",
		Long: `Fetches the Oracle signing key, stores it as a binary keyring and adds
the VirtualBox apt repository for this codename, then refreshes the index.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runWith(vbox.RunRepo),
	}
)

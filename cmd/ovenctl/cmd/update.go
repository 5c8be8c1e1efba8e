package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mkazantsev/ovenctl/internal/config"
	"github.com/mkazantsev/ovenctl/internal/service/updater"
)

// updateCmd self-updates the binary from the configured update folder.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Self-update the controller from the configured release folder.",
	Long: `Fetches the release manifest from the update folder in settings, compares
versions, downloads the platform binary and replaces the running executable
after validating its SHA-512 checksum.`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
		defer stop()

		return updater.Run(ctx, &updater.Options{ConfigPath: configPath})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	updateCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.AddCommand(updateCmd)
}

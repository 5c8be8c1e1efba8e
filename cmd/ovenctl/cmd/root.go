package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mkazantsev/ovenctl/internal/config"
	"github.com/mkazantsev/ovenctl/internal/service/oven"
	"github.com/mkazantsev/ovenctl/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// broker overrides the MQTT broker address from config.
	broker string
	// printState reads the panel once and exits.
	printState bool

	// rootCmd represents the base command running the appliance controller.
	rootCmd = &cobra.Command{
		Use:   "ovenctl",
		Short: "Run the appliance timer controller.",
		Long: `Runs the appliance timer controller: countdown state machines, panel
input, display composition and MQTT telemetry.

The controller reads buttons and panel levels from the GPIO character device,
derives a 1 Hz tick from its fixed-rate loop, and drives the multiplexed
display and the tri-color power indicator. Settings come from a YAML file;
the broker flag overrides the configured MQTT address.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			// Setup graceful shutdown handling.
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
			defer stop()

			options := &oven.Options{
				ConfigPath: configPath,
				Broker:     broker,
				PrintState: printState,
			}

			return oven.Run(ctx, options)
		},
	}
)

// Execute runs the ovenctl CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	// Setup command flags with consistent naming and descriptions.
	rootCmd.Flags().StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	rootCmd.Flags().StringVarP(&broker, "broker", "b", "", "MQTT broker address override")
	rootCmd.Flags().BoolVar(&printState, "print-state", false, "print current panel state and exit")
}

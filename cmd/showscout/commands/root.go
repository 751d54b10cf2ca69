package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"showscout/lib/telemetry"

	"github.com/spf13/cobra"
)

var verbose bool
var shutdownTelemetry func(context.Context) error

var rootCmd = &cobra.Command{
	Use:   "showscout",
	Short: "showscout checks HouseSeats and 1stTix for newly available shows.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)

		tel, err := telemetry.SetupFromEnv(cmd.Context(), "showscout")
		if os.IsNotExist(err) {
			// no telemetry.json5 around, run without exporters
			return
		}
		if err != nil {
			slog.Warn("failed to setup telemetry", "err", err)
			return
		}
		shutdownTelemetry = tel.Shutdown
		telemetry.InstrumentPerfStats(cmd.Context())
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if shutdownTelemetry != nil {
			err := shutdownTelemetry(context.Background())
			if err != nil {
				slog.Warn("failed to shutdown telemetry", "err", err)
			}
		}
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false,
		"Enable verbose logging/instrumentation.",
	)
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

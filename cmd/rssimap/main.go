package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version = "0.1.0-dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	runCmd := newRunCmd()

	rootCmd := &cobra.Command{
		Use:   "rssimap",
		Short: "Simulated WiFi signal strength map of a room",
		Long: `rssimap divides a square room into a grid of cells, simulates noisy
RSSI readings for every cell, smooths them with a per-cell Kalman filter
and writes both grids as CSV files along with plots of the filtered grid.

Running rssimap without a subcommand is the same as 'rssimap run'.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runCmd.RunE,
	}

	// the root command runs the simulation, so it shares the run flags
	addRunFlags(rootCmd)

	rootCmd.AddCommand(
		runCmd,
		newPlotCmd(),
		newVersionCmd(),
	)

	return rootCmd
}

package main

import (
	"fmt"

	"github.com/milosgajdos/go-rssimap/export"
	"github.com/milosgajdos/go-rssimap/render"
	"github.com/spf13/cobra"
)

func newPlotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plot",
		Short: "Render plots of a previously exported filtered grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, _ := cmd.Flags().GetString("in")
			out, _ := cmd.Flags().GetString("out")

			g, err := export.ReadFile(in)
			if err != nil {
				return fmt.Errorf("failed to read grid: %w", err)
			}

			paths, err := render.All(out, g)
			if err != nil {
				return fmt.Errorf("failed to render plots: %w", err)
			}

			for _, p := range paths {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	}

	cmd.Flags().String("in", "output/"+export.FilteredFile, "Filtered grid CSV file")
	cmd.Flags().String("out", "output", "Output directory")

	return cmd
}

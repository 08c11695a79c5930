package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sightgrid/camscope/internal/density"
)

var densityCmd = &cobra.Command{
	Use:   "density",
	Short: "Kernel density surface estimation",
	Long:  "Estimates a continuous camera-density surface over the region, evaluated on a regular grid.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		gridSize, _ := cmd.Flags().GetInt("grid")
		bandwidth, _ := cmd.Flags().GetFloat64("bandwidth")

		if !cmd.Flags().Changed("grid") {
			gridSize = cfg.Analysis.GridSize
		}

		assets, err := loadAssets(input)
		if err != nil {
			return eris.Wrap(err, "density")
		}

		grid, err := density.Estimate(assets, density.Options{
			GridSize:  gridSize,
			Bandwidth: bandwidth,
		})
		if err != nil {
			return eris.Wrap(err, "density")
		}

		return writeJSON(output, grid)
	},
}

func init() {
	densityCmd.Flags().String("input", "", "camera CSV file (required)")
	densityCmd.Flags().String("output", "", "output JSON file (default stdout)")
	densityCmd.Flags().Int("grid", density.DefaultGridSize, "grid resolution per axis")
	densityCmd.Flags().Float64("bandwidth", 0, "kernel bandwidth in degrees (0 = Scott's rule)")
	_ = densityCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(densityCmd)
}

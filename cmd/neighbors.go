package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sightgrid/camscope/internal/neighbor"
)

var neighborsCmd = &cobra.Command{
	Use:   "neighbors",
	Short: "Nearest-neighbor spacing analysis",
	Long:  "Computes the nearest neighbor and distance for every camera plus aggregate spacing statistics.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")

		assets, err := loadAssets(input)
		if err != nil {
			return eris.Wrap(err, "neighbors")
		}

		result, err := neighbor.Analyze(cmd.Context(), assets, neighbor.Options{
			Workers: cfg.Analysis.Workers,
		})
		if err != nil {
			return eris.Wrap(err, "neighbors")
		}

		return writeJSON(output, result)
	},
}

func init() {
	neighborsCmd.Flags().String("input", "", "camera CSV file (required)")
	neighborsCmd.Flags().String("output", "", "output JSON file (default stdout)")
	_ = neighborsCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(neighborsCmd)
}

package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sightgrid/camscope/internal/cluster"
)

var clustersCmd = &cobra.Command{
	Use:   "clusters",
	Short: "Density-based cluster detection",
	Long:  "Partitions cameras into density-connected clusters plus noise using a geodesic neighborhood radius and minimum-points rule.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		epsilon, _ := cmd.Flags().GetFloat64("epsilon")
		minPoints, _ := cmd.Flags().GetInt("min-points")

		if !cmd.Flags().Changed("epsilon") {
			epsilon = cfg.Analysis.EpsilonMeters
		}
		if !cmd.Flags().Changed("min-points") {
			minPoints = cfg.Analysis.MinPoints
		}

		assets, err := loadAssets(input)
		if err != nil {
			return eris.Wrap(err, "clusters")
		}

		result, err := cluster.Detect(assets, epsilon, minPoints)
		if err != nil {
			return eris.Wrap(err, "clusters")
		}

		return writeJSON(output, result)
	},
}

func init() {
	clustersCmd.Flags().String("input", "", "camera CSV file (required)")
	clustersCmd.Flags().String("output", "", "output JSON file (default stdout)")
	clustersCmd.Flags().Float64("epsilon", 500, "neighborhood radius in meters")
	clustersCmd.Flags().Int("min-points", 3, "minimum points for a core camera")
	_ = clustersCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(clustersCmd)
}

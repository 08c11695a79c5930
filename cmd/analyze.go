package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sightgrid/camscope/internal/analysis"
	"github.com/sightgrid/camscope/internal/boundary"
	"github.com/sightgrid/camscope/internal/geodesy"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Full analysis run",
	Long:  "Runs nearest-neighbor, cluster, density, and coverage analysis over one camera CSV and emits a combined report.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		boundaryPath, _ := cmd.Flags().GetString("boundary")

		assets, err := loadAssets(input)
		if err != nil {
			return eris.Wrap(err, "analyze")
		}

		params := analysis.Params{
			EpsilonMeters:           cfg.Analysis.EpsilonMeters,
			MinPoints:               cfg.Analysis.MinPoints,
			BufferRadiusMeters:      cfg.Analysis.BufferRadiusMeters,
			GridSize:                cfg.Analysis.GridSize,
			Workers:                 cfg.Analysis.Workers,
			IsolatedThresholdMeters: cfg.Analysis.IsolatedMeters,
			TightThresholdMeters:    cfg.Analysis.TightMeters,
		}

		if boundaryPath != "" {
			projector, err := geodesy.NewProjector()
			if err != nil {
				return eris.Wrap(err, "analyze")
			}
			studyArea, err := boundary.Load(boundaryPath, projector)
			if err != nil {
				return eris.Wrap(err, "analyze")
			}
			params.StudyArea = studyArea
		}

		report, err := analysis.Run(cmd.Context(), assets, params)
		if err != nil {
			return eris.Wrap(err, "analyze")
		}

		return writeJSON(output, report)
	},
}

func init() {
	analyzeCmd.Flags().String("input", "", "camera CSV file (required)")
	analyzeCmd.Flags().String("output", "", "output JSON file (default stdout)")
	analyzeCmd.Flags().String("boundary", "", "optional study-area boundary shapefile (WGS84)")
	_ = analyzeCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(analyzeCmd)
}

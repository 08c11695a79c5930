package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sightgrid/camscope/internal/boundary"
	"github.com/sightgrid/camscope/internal/coverage"
	"github.com/sightgrid/camscope/internal/geodesy"
)

var coverageCmd = &cobra.Command{
	Use:   "coverage",
	Short: "Coverage buffer and gap geometry",
	Long:  "Buffers every camera in the regional planar projection, unions the buffers into the total covered region, and computes the uncovered gap within the study area. Emits a GeoJSON FeatureCollection.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		input, _ := cmd.Flags().GetString("input")
		output, _ := cmd.Flags().GetString("output")
		radius, _ := cmd.Flags().GetFloat64("radius")
		boundaryPath, _ := cmd.Flags().GetString("boundary")

		if !cmd.Flags().Changed("radius") {
			radius = cfg.Analysis.BufferRadiusMeters
		}

		assets, err := loadAssets(input)
		if err != nil {
			return eris.Wrap(err, "coverage")
		}

		projector, err := geodesy.NewProjector()
		if err != nil {
			return eris.Wrap(err, "coverage")
		}

		opts := coverage.Options{}
		if boundaryPath != "" {
			studyArea, err := boundary.Load(boundaryPath, projector)
			if err != nil {
				return eris.Wrap(err, "coverage")
			}
			opts.StudyArea = studyArea
		}

		result, err := coverage.Compute(assets, radius, projector, opts)
		if err != nil {
			return eris.Wrap(err, "coverage")
		}

		return writeCoverageGeoJSON(output, result)
	},
}

// writeCoverageGeoJSON emits the union and gap regions as a GeoJSON
// FeatureCollection in geographic coordinates.
func writeCoverageGeoJSON(path string, r *coverage.Result) error {
	fc := &geojson.FeatureCollection{
		Features: []*geojson.Feature{
			{
				ID:       "coverage_union",
				Geometry: r.Union,
				Properties: map[string]interface{}{
					"kind":                 "coverage_union",
					"buffer_radius_meters": r.BufferRadiusMeters,
					"area_sq_m":            r.UnionAreaSqM,
					"planar_crs":           geodesy.ProjectionID,
				},
			},
			{
				ID:       "coverage_gap",
				Geometry: r.Gap,
				Properties: map[string]interface{}{
					"kind":            "coverage_gap",
					"area_sq_m":       r.GapAreaSqM,
					"study_area_sq_m": r.StudyAreaSqM,
				},
			},
		},
	}

	data, err := json.MarshalIndent(fc, "", "  ")
	if err != nil {
		return eris.Wrap(err, "coverage: marshal GeoJSON")
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "coverage: write output %s", path)
	}
	return nil
}

func init() {
	coverageCmd.Flags().String("input", "", "camera CSV file (required)")
	coverageCmd.Flags().String("output", "", "output GeoJSON file (default stdout)")
	coverageCmd.Flags().Float64("radius", 50, "buffer radius in meters")
	coverageCmd.Flags().String("boundary", "", "optional study-area boundary shapefile (WGS84)")
	_ = coverageCmd.MarkFlagRequired("input")
	rootCmd.AddCommand(coverageCmd)
}

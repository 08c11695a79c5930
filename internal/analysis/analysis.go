// Package analysis runs the full camera coverage analysis: nearest
// neighbors, density surface, cluster detection, and coverage geometry over
// one normalized asset list, collected into a single report.
package analysis

import (
	"context"
	"time"

	planar "github.com/ctessum/geom"
	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sightgrid/camscope/internal/asset"
	"github.com/sightgrid/camscope/internal/cluster"
	"github.com/sightgrid/camscope/internal/coverage"
	"github.com/sightgrid/camscope/internal/density"
	"github.com/sightgrid/camscope/internal/geodesy"
	"github.com/sightgrid/camscope/internal/neighbor"
)

// Params configures one full analysis run.
type Params struct {
	EpsilonMeters      float64
	MinPoints          int
	BufferRadiusMeters float64
	GridSize           int
	Workers            int

	// IsolatedThresholdMeters and TightThresholdMeters split the
	// nearest-neighbor results into isolated and tightly spaced cameras.
	IsolatedThresholdMeters float64
	TightThresholdMeters    float64

	// StudyArea optionally overrides the coverage study area (projected
	// planar polygon).
	StudyArea planar.Polygon
}

// Spacing flags one camera as isolated or tightly spaced.
type Spacing struct {
	AssetID        string  `json:"asset_id"`
	DistanceMeters float64 `json:"distance_meters"`
}

// Report is the immutable result of one analysis run.
type Report struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	AssetCount  int       `json:"asset_count"`

	Neighbors *neighbor.Result `json:"neighbors"`
	Isolated  []Spacing        `json:"isolated,omitempty"`
	Tight     []Spacing        `json:"tightly_spaced,omitempty"`

	Clusters *cluster.Result  `json:"clusters"`
	Density  *density.Grid    `json:"density"`
	Coverage *coverage.Result `json:"coverage"`
}

// Run executes all four analyses over the asset list. Each component is
// independent; the asset list and its order are shared by all of them. The
// list must be non-empty.
func Run(ctx context.Context, assets []asset.Asset, p Params) (*Report, error) {
	if len(assets) == 0 {
		return nil, eris.New("analysis: at least one asset is required")
	}

	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID))
	log.Info("analysis: starting run", zap.Int("assets", len(assets)))

	projector, err := geodesy.NewProjector()
	if err != nil {
		return nil, eris.Wrap(err, "analysis: build projector")
	}

	neighbors, err := neighbor.Analyze(ctx, assets, neighbor.Options{Workers: p.Workers})
	if err != nil {
		return nil, eris.Wrap(err, "analysis: nearest neighbors")
	}

	clusters, err := cluster.Detect(assets, p.EpsilonMeters, p.MinPoints)
	if err != nil {
		return nil, eris.Wrap(err, "analysis: cluster detection")
	}

	grid, err := density.Estimate(assets, density.Options{GridSize: p.GridSize})
	if err != nil {
		return nil, eris.Wrap(err, "analysis: density estimation")
	}

	cov, err := coverage.Compute(assets, p.BufferRadiusMeters, projector, coverage.Options{
		StudyArea: p.StudyArea,
	})
	if err != nil {
		return nil, eris.Wrap(err, "analysis: coverage geometry")
	}

	isolated, tight := splitSpacing(neighbors, p.IsolatedThresholdMeters, p.TightThresholdMeters)

	report := &Report{
		RunID:       runID,
		GeneratedAt: time.Now().UTC(),
		AssetCount:  len(assets),
		Neighbors:   neighbors,
		Isolated:    isolated,
		Tight:       tight,
		Clusters:    clusters,
		Density:     grid,
		Coverage:    cov,
	}

	log.Info("analysis: run complete",
		zap.Int("clusters", clusters.Clusters),
		zap.Int("noise", clusters.NoiseCount),
		zap.Int("isolated", len(isolated)),
		zap.Float64("coverage_sq_m", cov.UnionAreaSqM),
	)

	return report, nil
}

// splitSpacing partitions assets with a defined neighbor into isolated
// (farther than isolatedM from the nearest camera) and tightly spaced
// (closer than tightM), preserving input order.
func splitSpacing(r *neighbor.Result, isolatedM, tightM float64) (isolated, tight []Spacing) {
	if r == nil || r.Stats == nil {
		return nil, nil
	}
	for _, d := range r.Distances {
		if d.DistanceMeters == nil {
			continue
		}
		switch {
		case isolatedM > 0 && *d.DistanceMeters > isolatedM:
			isolated = append(isolated, Spacing{AssetID: d.AssetID, DistanceMeters: *d.DistanceMeters})
		case tightM > 0 && *d.DistanceMeters < tightM:
			tight = append(tight, Spacing{AssetID: d.AssetID, DistanceMeters: *d.DistanceMeters})
		}
	}
	return isolated, tight
}

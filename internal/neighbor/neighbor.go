// Package neighbor implements nearest-neighbor analysis over a camera asset
// set: per-asset closest neighbor plus aggregate spacing statistics.
package neighbor

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/stat"

	"github.com/sightgrid/camscope/internal/asset"
	"github.com/sightgrid/camscope/internal/geodesy"
)

// DistanceResult records the nearest neighbor of one asset. NearestAssetID
// is empty and DistanceMeters nil when the set has fewer than two assets.
type DistanceResult struct {
	AssetID        string   `json:"asset_id"`
	NearestAssetID string   `json:"nearest_asset_id,omitempty"`
	DistanceMeters *float64 `json:"distance_meters,omitempty"`
}

// Stats aggregates nearest-neighbor distances across the whole set. It is
// nil in Result when no asset has a defined neighbor.
type Stats struct {
	MinMeters    float64 `json:"min_meters"`
	MaxMeters    float64 `json:"max_meters"`
	MeanMeters   float64 `json:"mean_meters"`
	MedianMeters float64 `json:"median_meters"`
	StdDevMeters float64 `json:"std_dev_meters"`
}

// Result is the full nearest-neighbor analysis output. Distances is in
// input order, one entry per asset.
type Result struct {
	Distances []DistanceResult `json:"distances"`
	Stats     *Stats           `json:"stats,omitempty"`
}

// Options tunes the analysis. Workers bounds the number of concurrent
// per-asset scans; values below 2 run serially. Parallelism does not change
// the output: each asset's scan is independent and results are stored by
// input index.
type Options struct {
	Workers int
}

// Analyze computes the nearest neighbor for every asset by a full O(N²)
// pairwise scan. Ties at the minimum distance resolve to the candidate
// encountered first in input order.
//
// With fewer than two assets every result has no neighbor and Stats is nil.
func Analyze(ctx context.Context, assets []asset.Asset, opts Options) (*Result, error) {
	n := len(assets)
	results := make([]DistanceResult, n)
	for i, a := range assets {
		results[i] = DistanceResult{AssetID: a.ID}
	}
	if n < 2 {
		zap.L().Debug("neighbor: fewer than two assets, statistics not applicable",
			zap.Int("count", n))
		return &Result{Distances: results}, nil
	}

	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i := range assets {
		i := i
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			idx, dist := scanNearest(assets, i)
			results[i].NearestAssetID = assets[idx].ID
			results[i].DistanceMeters = &dist
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	distances := make([]float64, 0, n)
	for _, r := range results {
		distances = append(distances, *r.DistanceMeters)
	}
	s := summarize(distances)

	zap.L().Info("neighbor: analysis complete",
		zap.Int("assets", n),
		zap.Float64("mean_m", s.MeanMeters),
		zap.Float64("median_m", s.MedianMeters),
	)

	return &Result{Distances: results, Stats: s}, nil
}

// scanNearest returns the index of the closest other asset and the distance
// to it. First-seen wins on exact ties.
func scanNearest(assets []asset.Asset, i int) (int, float64) {
	best := -1
	bestDist := 0.0
	a := assets[i]
	for j, other := range assets {
		if j == i {
			continue
		}
		d := geodesy.Distance(a.Latitude, a.Longitude, other.Latitude, other.Longitude)
		if best == -1 || d < bestDist {
			best = j
			bestDist = d
		}
	}
	return best, bestDist
}

func summarize(distances []float64) *Stats {
	sorted := make([]float64, len(distances))
	copy(sorted, distances)
	sort.Float64s(sorted)

	return &Stats{
		MinMeters:    sorted[0],
		MaxMeters:    sorted[len(sorted)-1],
		MeanMeters:   stat.Mean(distances, nil),
		MedianMeters: stat.Quantile(0.5, stat.Empirical, sorted, nil),
		StdDevMeters: stat.StdDev(distances, nil),
	}
}

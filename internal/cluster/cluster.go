// Package cluster partitions camera assets into density-connected clusters
// plus noise, using geodesic neighborhoods (DBSCAN semantics).
package cluster

import (
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sightgrid/camscope/internal/asset"
	"github.com/sightgrid/camscope/internal/geodesy"
)

// NoiseLabel marks an asset that belongs to no cluster.
const NoiseLabel = -1

// Assignment records the cluster membership of one asset. Label is a
// non-negative cluster number or NoiseLabel.
type Assignment struct {
	AssetID string `json:"asset_id"`
	Label   int    `json:"cluster_label"`
}

// Result holds cluster assignments in input order plus summary counts.
type Result struct {
	Assignments []Assignment `json:"assignments"`
	Clusters    int          `json:"clusters"`
	NoiseCount  int          `json:"noise_count"`
}

// state tracks the role of one asset during the scan.
type state uint8

const (
	unvisited state = iota
	core
	border
	noise
)

// Detect runs density-based clustering over the asset set. An asset is a
// core point when at least minPoints assets (counting itself) lie within
// epsilon meters of it by geodesic distance; clusters grow by transitively
// connecting core neighborhoods, border points join the first cluster that
// reaches them, and everything else is noise.
//
// Cluster labels are assigned 0, 1, 2, … in the order each cluster's first
// core point appears in input order, so identical input always produces
// identical labels. The pairwise neighborhood test is O(N²).
func Detect(assets []asset.Asset, epsilonMeters float64, minPoints int) (*Result, error) {
	if epsilonMeters <= 0 {
		return nil, eris.Errorf("cluster: epsilon must be positive, got %v", epsilonMeters)
	}
	if minPoints < 1 {
		return nil, eris.Errorf("cluster: minPoints must be at least 1, got %d", minPoints)
	}

	n := len(assets)
	states := make([]state, n)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = NoiseLabel
	}

	nextLabel := 0
	for i := 0; i < n; i++ {
		if states[i] != unvisited {
			continue
		}
		neighbors := regionQuery(assets, i, epsilonMeters)
		if len(neighbors) < minPoints {
			states[i] = noise
			continue
		}
		expand(assets, i, neighbors, nextLabel, epsilonMeters, minPoints, states, labels)
		nextLabel++
	}

	result := &Result{
		Assignments: make([]Assignment, n),
		Clusters:    nextLabel,
	}
	for i, a := range assets {
		result.Assignments[i] = Assignment{AssetID: a.ID, Label: labels[i]}
		if labels[i] == NoiseLabel {
			result.NoiseCount++
		}
	}

	zap.L().Info("cluster: detection complete",
		zap.Int("assets", n),
		zap.Float64("epsilon_m", epsilonMeters),
		zap.Int("min_points", minPoints),
		zap.Int("clusters", result.Clusters),
		zap.Int("noise", result.NoiseCount),
	)

	return result, nil
}

// regionQuery returns the indices of all assets within epsilon meters of
// asset i, including i itself, in input order.
func regionQuery(assets []asset.Asset, i int, epsilonMeters float64) []int {
	a := assets[i]
	var neighbors []int
	for j, other := range assets {
		if geodesy.Distance(a.Latitude, a.Longitude, other.Latitude, other.Longitude) <= epsilonMeters {
			neighbors = append(neighbors, j)
		}
	}
	return neighbors
}

// expand grows cluster `label` outward from core point `seed` with a
// breadth-first frontier. Points already claimed as noise are reclassified
// as border members when a core neighborhood reaches them.
func expand(assets []asset.Asset, seed int, neighbors []int, label int, epsilonMeters float64, minPoints int, states []state, labels []int) {
	states[seed] = core
	labels[seed] = label

	frontier := append([]int(nil), neighbors...)
	for k := 0; k < len(frontier); k++ {
		j := frontier[k]
		switch states[j] {
		case noise:
			// Previously rejected point is density-reachable after all.
			states[j] = border
			labels[j] = label
			continue
		case core, border:
			continue
		}

		// Unvisited: classify it now.
		labels[j] = label
		jNeighbors := regionQuery(assets, j, epsilonMeters)
		if len(jNeighbors) >= minPoints {
			states[j] = core
			frontier = append(frontier, jNeighbors...)
		} else {
			states[j] = border
		}
	}
}

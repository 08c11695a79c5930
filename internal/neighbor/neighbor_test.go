package neighbor

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sightgrid/camscope/internal/asset"
	"github.com/sightgrid/camscope/internal/geodesy"
)

func threeAssets() []asset.Asset {
	return []asset.Asset{
		{ID: "A", Latitude: 40.700, Longitude: -74.000},
		{ID: "B", Latitude: 40.701, Longitude: -74.001},
		{ID: "C", Latitude: 40.750, Longitude: -73.950},
	}
}

func TestAnalyze(t *testing.T) {
	result, err := Analyze(context.Background(), threeAssets(), Options{})
	require.NoError(t, err)
	require.Len(t, result.Distances, 3)

	// A and B are mutual nearest neighbors; C's nearest is B.
	assert.Equal(t, "B", result.Distances[0].NearestAssetID)
	assert.Equal(t, "A", result.Distances[1].NearestAssetID)

	require.NotNil(t, result.Distances[0].DistanceMeters)
	assert.InDelta(t, 139.6, *result.Distances[0].DistanceMeters, 1.0)

	require.NotNil(t, result.Stats)
	assert.InDelta(t, 139.6, result.Stats.MinMeters, 1.0)
	assert.Greater(t, result.Stats.MaxMeters, result.Stats.MinMeters)
}

func TestAnalyze_MinMatchesBruteForce(t *testing.T) {
	assets := []asset.Asset{
		{ID: "a", Latitude: 40.71, Longitude: -74.01},
		{ID: "b", Latitude: 40.72, Longitude: -74.03},
		{ID: "c", Latitude: 40.74, Longitude: -73.99},
		{ID: "d", Latitude: 40.69, Longitude: -74.00},
		{ID: "e", Latitude: 40.73, Longitude: -74.02},
	}

	result, err := Analyze(context.Background(), assets, Options{})
	require.NoError(t, err)
	require.NotNil(t, result.Stats)

	// The minimum nearest-neighbor distance must equal the minimum pairwise
	// distance over the whole set.
	bruteMin := math.Inf(1)
	for i := range assets {
		for j := i + 1; j < len(assets); j++ {
			d := geodesy.Distance(assets[i].Latitude, assets[i].Longitude,
				assets[j].Latitude, assets[j].Longitude)
			if d < bruteMin {
				bruteMin = d
			}
		}
	}
	assert.InDelta(t, bruteMin, result.Stats.MinMeters, 1e-9)
}

func TestAnalyze_TieBreakFirstSeen(t *testing.T) {
	// B and C are exactly equidistant from A; B comes first in input order.
	assets := []asset.Asset{
		{ID: "A", Latitude: 0, Longitude: 0},
		{ID: "B", Latitude: 1, Longitude: 0},
		{ID: "C", Latitude: -1, Longitude: 0},
	}

	result, err := Analyze(context.Background(), assets, Options{})
	require.NoError(t, err)
	assert.Equal(t, "B", result.Distances[0].NearestAssetID)
}

func TestAnalyze_SingleAsset(t *testing.T) {
	assets := []asset.Asset{{ID: "only", Latitude: 40.70, Longitude: -74.00}}

	result, err := Analyze(context.Background(), assets, Options{})
	require.NoError(t, err)
	require.Len(t, result.Distances, 1)

	assert.Equal(t, "only", result.Distances[0].AssetID)
	assert.Empty(t, result.Distances[0].NearestAssetID)
	assert.Nil(t, result.Distances[0].DistanceMeters)
	assert.Nil(t, result.Stats)
}

func TestAnalyze_Empty(t *testing.T) {
	result, err := Analyze(context.Background(), nil, Options{})
	require.NoError(t, err)
	assert.Empty(t, result.Distances)
	assert.Nil(t, result.Stats)
}

func TestAnalyze_ParallelMatchesSerial(t *testing.T) {
	assets := threeAssets()
	assets = append(assets,
		asset.Asset{ID: "D", Latitude: 40.72, Longitude: -74.02},
		asset.Asset{ID: "E", Latitude: 40.73, Longitude: -73.97},
	)

	serial, err := Analyze(context.Background(), assets, Options{Workers: 1})
	require.NoError(t, err)
	parallel, err := Analyze(context.Background(), assets, Options{Workers: 8})
	require.NoError(t, err)

	assert.Equal(t, serial, parallel)
}

func TestAnalyze_StatsAgainstKnownValues(t *testing.T) {
	result, err := Analyze(context.Background(), threeAssets(), Options{})
	require.NoError(t, err)
	require.NotNil(t, result.Stats)

	// Distances: A->B 139.6, B->A 139.6, C->B ~6940.
	assert.InDelta(t, 139.6, result.Stats.MedianMeters, 1.0)
	mean := (139.6 + 139.6 + result.Stats.MaxMeters) / 3
	assert.InDelta(t, mean, result.Stats.MeanMeters, 1.0)
	assert.Greater(t, result.Stats.StdDevMeters, 0.0)
}

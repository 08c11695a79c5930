package analysis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sightgrid/camscope/internal/asset"
	"github.com/sightgrid/camscope/internal/cluster"
	"github.com/sightgrid/camscope/internal/neighbor"
)

// Five cameras in lower Manhattan: a tight trio near City Hall plus two
// outliers far enough away to stay noise at the default epsilon.
func testAssets() []asset.Asset {
	return []asset.Asset{
		{ID: "CAM-001", Latitude: 40.7128, Longitude: -74.0060},
		{ID: "CAM-002", Latitude: 40.7131, Longitude: -74.0058},
		{ID: "CAM-003", Latitude: 40.7126, Longitude: -74.0064},
		{ID: "CAM-004", Latitude: 40.7484, Longitude: -73.9857},
		{ID: "CAM-005", Latitude: 40.7100, Longitude: -74.0000},
	}
}

func defaultParams() Params {
	return Params{
		EpsilonMeters:           500,
		MinPoints:               3,
		BufferRadiusMeters:      50,
		GridSize:                20,
		Workers:                 2,
		IsolatedThresholdMeters: 1000,
		TightThresholdMeters:    200,
	}
}

func TestRun_EmptyAssets(t *testing.T) {
	_, err := Run(context.Background(), nil, defaultParams())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least one asset")
}

func TestRun_InvalidParams(t *testing.T) {
	p := defaultParams()
	p.EpsilonMeters = 0
	_, err := Run(context.Background(), testAssets(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cluster detection")

	p = defaultParams()
	p.BufferRadiusMeters = -1
	_, err = Run(context.Background(), testAssets(), p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "coverage geometry")
}

func TestRun_FullReport(t *testing.T) {
	assets := testAssets()

	report, err := Run(context.Background(), assets, defaultParams())
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.False(t, report.GeneratedAt.IsZero())
	assert.Equal(t, len(assets), report.AssetCount)

	require.NotNil(t, report.Neighbors)
	require.Len(t, report.Neighbors.Distances, len(assets))
	require.NotNil(t, report.Neighbors.Stats)

	// The City Hall trio forms one cluster; the two outliers are noise.
	require.NotNil(t, report.Clusters)
	assert.Equal(t, 1, report.Clusters.Clusters)
	assert.Equal(t, 2, report.Clusters.NoiseCount)
	for _, a := range report.Clusters.Assignments[:3] {
		assert.Equal(t, 0, a.Label)
	}
	for _, a := range report.Clusters.Assignments[3:] {
		assert.Equal(t, cluster.NoiseLabel, a.Label)
	}

	require.NotNil(t, report.Density)
	assert.Len(t, report.Density.Values, 20)
	assert.Len(t, report.Density.Lngs, 20)

	require.NotNil(t, report.Coverage)
	assert.Greater(t, report.Coverage.UnionAreaSqM, 0.0)
	assert.Greater(t, report.Coverage.StudyAreaSqM, report.Coverage.UnionAreaSqM)

	// In-cluster spacing is tens of meters, so the trio is tightly spaced.
	// CAM-004 is about 4 km from everything else, well past the isolation
	// threshold; CAM-005 sits roughly 600 m out, flagged as neither.
	require.Len(t, report.Isolated, 1)
	assert.Equal(t, "CAM-004", report.Isolated[0].AssetID)
	tightIDs := make([]string, 0, len(report.Tight))
	for _, s := range report.Tight {
		tightIDs = append(tightIDs, s.AssetID)
	}
	assert.Equal(t, []string{"CAM-001", "CAM-002", "CAM-003"}, tightIDs)
}

func TestRun_SingleAsset(t *testing.T) {
	p := defaultParams()
	report, err := Run(context.Background(), testAssets()[:1], p)
	require.NoError(t, err)

	require.Len(t, report.Neighbors.Distances, 1)
	assert.Nil(t, report.Neighbors.Distances[0].DistanceMeters)
	assert.Nil(t, report.Neighbors.Stats)
	assert.Empty(t, report.Isolated)
	assert.Empty(t, report.Tight)
	assert.Equal(t, cluster.NoiseLabel, report.Clusters.Assignments[0].Label)
}

func TestSplitSpacing(t *testing.T) {
	d := func(v float64) *float64 { return &v }
	r := &neighbor.Result{
		Distances: []neighbor.DistanceResult{
			{AssetID: "a", DistanceMeters: d(1500)},
			{AssetID: "b", DistanceMeters: d(50)},
			{AssetID: "c", DistanceMeters: d(500)},
			{AssetID: "d"},
		},
		Stats: &neighbor.Stats{},
	}

	isolated, tight := splitSpacing(r, 1000, 200)
	require.Len(t, isolated, 1)
	assert.Equal(t, "a", isolated[0].AssetID)
	require.Len(t, tight, 1)
	assert.Equal(t, "b", tight[0].AssetID)

	isolated, tight = splitSpacing(nil, 1000, 200)
	assert.Nil(t, isolated)
	assert.Nil(t, tight)
}

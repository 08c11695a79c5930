package boundary

import (
	"testing"

	shp "github.com/jonas-p/go-shp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sightgrid/camscope/internal/geodesy"
)

func newTestProjector(t *testing.T) *geodesy.Projector {
	t.Helper()
	p, err := geodesy.NewProjector()
	require.NoError(t, err)
	return p
}

func TestLoad_MissingFile(t *testing.T) {
	p := newTestProjector(t)
	_, err := Load("does-not-exist.shp", p)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open shapefile")
}

func TestLoad_NilProjector(t *testing.T) {
	_, err := Load("anything.shp", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "projector is required")
}

func TestProjectPolygon(t *testing.T) {
	p := newTestProjector(t)

	// A small square around lower Manhattan, vertices as lon/lat.
	poly := &shp.Polygon{
		NumParts:  1,
		NumPoints: 4,
		Parts:     []int32{0},
		Points: []shp.Point{
			{X: -74.01, Y: 40.69},
			{X: -73.99, Y: 40.69},
			{X: -73.99, Y: 40.71},
			{X: -74.01, Y: 40.71},
		},
	}

	projected, err := projectPolygon(poly, p)
	require.NoError(t, err)
	require.Len(t, projected, 1)
	require.Len(t, projected[0], 4)

	// ~0.02 deg lon x 0.02 deg lat at NYC latitude: roughly 1.7 km x 2.2 km.
	area := projected.Area()
	assert.Greater(t, area, 3.0e6)
	assert.Less(t, area, 4.5e6)
}

func TestProjectPolygon_MultiPart(t *testing.T) {
	p := newTestProjector(t)

	poly := &shp.Polygon{
		NumParts:  2,
		NumPoints: 6,
		Parts:     []int32{0, 3},
		Points: []shp.Point{
			{X: -74.01, Y: 40.69},
			{X: -73.99, Y: 40.69},
			{X: -74.00, Y: 40.71},
			{X: -73.95, Y: 40.75},
			{X: -73.93, Y: 40.75},
			{X: -73.94, Y: 40.77},
		},
	}

	projected, err := projectPolygon(poly, p)
	require.NoError(t, err)
	assert.Len(t, projected, 2)
}

func TestProjectPolygon_Degenerate(t *testing.T) {
	p := newTestProjector(t)

	projected, err := projectPolygon(&shp.Polygon{}, p)
	require.NoError(t, err)
	assert.Nil(t, projected)

	// A two-point "ring" is dropped.
	poly := &shp.Polygon{
		NumParts:  1,
		NumPoints: 2,
		Parts:     []int32{0},
		Points:    []shp.Point{{X: -74.0, Y: 40.7}, {X: -73.9, Y: 40.8}},
	}
	projected, err = projectPolygon(poly, p)
	require.NoError(t, err)
	assert.Nil(t, projected)
}

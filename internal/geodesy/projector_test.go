package geodesy

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProjector(t *testing.T) *Projector {
	t.Helper()
	p, err := NewProjector()
	require.NoError(t, err)
	return p
}

func TestProjector_RoundTrip(t *testing.T) {
	p := newTestProjector(t)

	points := []struct{ lat, lng float64 }{
		{40.70, -74.00},     // lower Manhattan
		{40.7484, -73.9857}, // midtown
		{40.9176, -73.7004}, // NE corner of the region
		{40.4774, -74.2591}, // SW corner of the region
	}

	for _, pt := range points {
		x, y, err := p.ToPlanar(pt.lat, pt.lng)
		require.NoError(t, err)

		lat, lng, err := p.ToGeographic(x, y)
		require.NoError(t, err)

		// Sub-meter round trip: 1e-6 degrees is ~0.1 m.
		assert.InDelta(t, pt.lat, lat, 1e-6)
		assert.InDelta(t, pt.lng, lng, 1e-6)
	}
}

func TestProjector_ProjectionOrigin(t *testing.T) {
	p := newTestProjector(t)

	// The latitude of origin on the central meridian maps to the false
	// easting with zero northing.
	x, y, err := p.ToPlanar(40.166666666666664, -74.0)
	require.NoError(t, err)
	assert.InDelta(t, 300000.0, x, 1.0)
	assert.InDelta(t, 0.0, y, 1.0)
}

func TestProjector_PlanarDistanceMatchesGeodesic(t *testing.T) {
	p := newTestProjector(t)

	// Within the region, planar distance between nearby points should agree
	// with geodesic distance to well under a percent.
	lat1, lng1 := 40.700, -74.000
	lat2, lng2 := 40.710, -73.990

	x1, y1, err := p.ToPlanar(lat1, lng1)
	require.NoError(t, err)
	x2, y2, err := p.ToPlanar(lat2, lng2)
	require.NoError(t, err)

	planarDist := math.Hypot(x2-x1, y2-y1)
	geodesicDist := Distance(lat1, lng1, lat2, lng2)

	assert.InEpsilon(t, geodesicDist, planarDist, 0.01)
}

// Package geodesy provides the two coordinate primitives the analysis engine
// is built on: great-circle distance on the sphere and the fixed regional
// planar projection.
package geodesy

import "math"

// EarthRadiusMeters is the mean Earth radius used for all great-circle
// distance calculations.
const EarthRadiusMeters = 6371000.0

// Distance returns the haversine great-circle distance in meters between two
// points given in decimal degrees. It is symmetric and returns 0 for
// identical points.
func Distance(lat1, lng1, lat2, lng2 float64) float64 {
	phi1 := lat1 * math.Pi / 180
	phi2 := lat2 * math.Pi / 180
	dPhi := (lat2 - lat1) * math.Pi / 180
	dLambda := (lng2 - lng1) * math.Pi / 180

	a := math.Sin(dPhi/2)*math.Sin(dPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(dLambda/2)*math.Sin(dLambda/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}

package geodesy

import (
	"github.com/ctessum/geom/proj"
	"github.com/rotisserie/eris"
)

// The engine operates on a single fixed regional projection: EPSG:2263
// (NAD83 / New York Long Island, Lambert conformal conic). The native CRS is
// defined in US survey feet; parsing with meter units here keeps the planar
// axes metric so buffer radii and areas need no unit dance.
const (
	// ProjectionID identifies the fixed planar CRS this projector implements.
	ProjectionID = "EPSG:2263"

	geographicProj4 = "+proj=longlat +datum=WGS84 +no_defs"
	planarProj4     = "+proj=lcc +lat_1=41.03333333333333 +lat_2=40.66666666666666 " +
		"+lat_0=40.16666666666666 +lon_0=-74 +x_0=300000.0000000001 +y_0=0 " +
		"+ellps=GRS80 +towgs84=0,0,0 +units=m +no_defs"

	// USFootMeters converts US survey feet to meters, for callers that carry
	// lengths in the projection's native feet.
	USFootMeters = 0.3048006096012192
)

// Projector converts between WGS84 geographic coordinates and the fixed
// EPSG:2263 planar system (meter-scaled axes). It is immutable after
// construction and safe for concurrent use.
type Projector struct {
	forward proj.Transformer
	inverse proj.Transformer
}

// NewProjector builds the fixed regional projector.
func NewProjector() (*Projector, error) {
	geographic, err := proj.Parse(geographicProj4)
	if err != nil {
		return nil, eris.Wrap(err, "geodesy: parse geographic CRS")
	}
	planar, err := proj.Parse(planarProj4)
	if err != nil {
		return nil, eris.Wrap(err, "geodesy: parse planar CRS")
	}

	forward, err := geographic.NewTransform(planar)
	if err != nil {
		return nil, eris.Wrap(err, "geodesy: build forward transform")
	}
	inverse, err := planar.NewTransform(geographic)
	if err != nil {
		return nil, eris.Wrap(err, "geodesy: build inverse transform")
	}

	return &Projector{forward: forward, inverse: inverse}, nil
}

// ToPlanar projects a geographic point (decimal degrees) to planar x/y in
// meters.
func (p *Projector) ToPlanar(lat, lng float64) (x, y float64, err error) {
	x, y, err = p.forward(lng, lat)
	if err != nil {
		return 0, 0, eris.Wrapf(err, "geodesy: project (%v, %v) to planar", lat, lng)
	}
	return x, y, nil
}

// ToGeographic unprojects a planar point (meters) back to decimal degrees.
// Round-tripping through ToPlanar is accurate to well under a meter within
// the region of operation.
func (p *Projector) ToGeographic(x, y float64) (lat, lng float64, err error) {
	lng, lat, err = p.inverse(x, y)
	if err != nil {
		return 0, 0, eris.Wrapf(err, "geodesy: unproject (%v, %v) to geographic", x, y)
	}
	return lat, lng, nil
}

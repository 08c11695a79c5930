package coverage

import (
	"math"
	"sort"

	planar "github.com/ctessum/geom"
	"github.com/rotisserie/eris"
	geom "github.com/twpayne/go-geom"

	"github.com/sightgrid/camscope/internal/geodesy"
)

// The clipper returns a flat list of rings without shell/hole structure.
// Downstream consumers need properly nested polygons, so the rings are
// classified by containment parity: a ring inside an even number of other
// rings is an exterior shell, odd means hole, and each hole attaches to the
// smallest shell containing it. Clip output rings never cross, so a single
// boundary vertex of one ring decides its containment in any other ring; an
// interior probe point would not (the shell of an annulus has its vertex
// centroid inside the hole).

type classifiedRing struct {
	ring  []planar.Point
	area  float64 // absolute area
	depth int
	shell int // index into shells, for holes
}

// toGeographicMultiPolygon unprojects a planar polygon to WGS84 and
// reassembles its rings into a go-geom MultiPolygon with holes nested under
// their shells. An empty input produces an empty MultiPolygon.
func toGeographicMultiPolygon(p planar.Polygon, projector *geodesy.Projector) (*geom.MultiPolygon, error) {
	mp := geom.NewMultiPolygon(geom.XY).SetSRID(4326)

	rings := make([]classifiedRing, 0, len(p))
	for _, ring := range p {
		if len(ring) < 3 {
			continue
		}
		a := math.Abs(signedArea(ring))
		if a == 0 {
			continue
		}
		rings = append(rings, classifiedRing{ring: ring, area: a})
	}
	if len(rings) == 0 {
		return mp, nil
	}

	// Containment depth of each ring among the others.
	for i := range rings {
		probe := rings[i].ring[0]
		for j := range rings {
			if i == j {
				continue
			}
			if probe.Within(planar.Polygon{rings[j].ring}) == planar.Inside {
				rings[i].depth++
			}
		}
	}

	// Shells first, largest outward, so holes can attach to the smallest
	// enclosing shell.
	order := make([]int, len(rings))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return rings[order[a]].area > rings[order[b]].area
	})

	var shells []int
	for _, i := range order {
		if rings[i].depth%2 == 0 {
			shells = append(shells, i)
		}
	}
	for _, i := range order {
		if rings[i].depth%2 == 0 {
			continue
		}
		rings[i].shell = -1
		probe := rings[i].ring[0]
		// Shells are sorted by descending area, so the last match is the
		// smallest shell containing this hole.
		for s, si := range shells {
			if probe.Within(planar.Polygon{rings[si].ring}) == planar.Inside {
				rings[i].shell = s
			}
		}
	}

	for s, si := range shells {
		poly := geom.NewPolygon(geom.XY).SetSRID(4326)

		shellRing, err := geographicRing(rings[si].ring, projector, true)
		if err != nil {
			return nil, err
		}
		if err := poly.Push(shellRing); err != nil {
			return nil, eris.Wrap(err, "coverage: push shell ring")
		}

		for i := range rings {
			if rings[i].depth%2 == 1 && rings[i].shell == s {
				holeRing, err := geographicRing(rings[i].ring, projector, false)
				if err != nil {
					return nil, err
				}
				if err := poly.Push(holeRing); err != nil {
					return nil, eris.Wrap(err, "coverage: push hole ring")
				}
			}
		}

		if err := mp.Push(poly); err != nil {
			return nil, eris.Wrap(err, "coverage: push polygon")
		}
	}

	return mp, nil
}

// geographicRing unprojects one planar ring, closes it, and orients it
// counterclockwise for shells or clockwise for holes.
func geographicRing(ring []planar.Point, projector *geodesy.Projector, ccw bool) (*geom.LinearRing, error) {
	pts := ring
	if (signedArea(ring) > 0) != ccw {
		pts = reversed(ring)
	}

	flat := make([]float64, 0, (len(pts)+1)*2)
	for _, p := range pts {
		lat, lng, err := projector.ToGeographic(p.X, p.Y)
		if err != nil {
			return nil, eris.Wrap(err, "coverage: unproject ring vertex")
		}
		flat = append(flat, lng, lat)
	}
	// Close the ring.
	flat = append(flat, flat[0], flat[1])

	return geom.NewLinearRingFlat(geom.XY, flat), nil
}

// signedArea is positive for counterclockwise rings. The ring is treated as
// implicitly closed.
func signedArea(ring []planar.Point) float64 {
	var sum float64
	for i, p := range ring {
		q := ring[(i+1)%len(ring)]
		sum += p.X*q.Y - q.X*p.Y
	}
	return sum / 2
}

func reversed(ring []planar.Point) []planar.Point {
	out := make([]planar.Point, len(ring))
	for i, p := range ring {
		out[len(ring)-1-i] = p
	}
	return out
}

// Package boundary loads an optional study-area boundary polygon from an
// ESRI shapefile, replacing the default expanded-bounding-box study area in
// coverage analysis.
package boundary

import (
	planar "github.com/ctessum/geom"
	shp "github.com/jonas-p/go-shp"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sightgrid/camscope/internal/geodesy"
)

// Load reads polygon records from a WGS84 shapefile and returns their union
// projected into the fixed planar system. Non-polygon records are skipped.
// An empty or polygon-free shapefile is an error.
func Load(path string, projector *geodesy.Projector) (planar.Polygon, error) {
	if projector == nil {
		return nil, eris.New("boundary: projector is required")
	}

	reader, err := shp.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "boundary: open shapefile %s", path)
	}
	defer func() { _ = reader.Close() }()

	var union planar.Polygon
	records := 0
	for reader.Next() {
		_, shape := reader.Shape()
		poly, ok := shape.(*shp.Polygon)
		if !ok {
			zap.L().Debug("boundary: skipping non-polygon record")
			continue
		}

		projected, err := projectPolygon(poly, projector)
		if err != nil {
			return nil, err
		}
		if projected == nil {
			continue
		}

		records++
		if union == nil {
			union = projected
			continue
		}
		clipped := union.Union(projected)
		merged, ok := clipped.(planar.Polygon)
		if !ok {
			return nil, eris.Errorf("boundary: unexpected clip result type %T", clipped)
		}
		union = merged
	}
	if err := reader.Err(); err != nil {
		return nil, eris.Wrapf(err, "boundary: read shapefile %s", path)
	}
	if union == nil {
		return nil, eris.Errorf("boundary: no polygon records in %s", path)
	}

	zap.L().Info("boundary: study area loaded",
		zap.String("path", path),
		zap.Int("polygons", records),
		zap.Float64("area_sq_m", union.Area()),
	)

	return union, nil
}

// projectPolygon converts one shapefile polygon (lon/lat vertex order) to a
// projected planar polygon, one ring per part.
func projectPolygon(p *shp.Polygon, projector *geodesy.Projector) (planar.Polygon, error) {
	if p.NumParts == 0 || len(p.Points) == 0 {
		return nil, nil
	}

	var poly planar.Polygon
	for i := int32(0); i < p.NumParts; i++ {
		start := p.Parts[i]
		end := int32(len(p.Points))
		if i+1 < p.NumParts {
			end = p.Parts[i+1]
		}

		ring := make([]planar.Point, 0, end-start)
		for j := start; j < end; j++ {
			x, y, err := projector.ToPlanar(p.Points[j].Y, p.Points[j].X)
			if err != nil {
				return nil, eris.Wrap(err, "boundary: project vertex")
			}
			ring = append(ring, planar.Point{X: x, Y: y})
		}
		if len(ring) < 3 {
			continue
		}
		poly = append(poly, ring)
	}

	if len(poly) == 0 {
		return nil, nil
	}
	return poly, nil
}

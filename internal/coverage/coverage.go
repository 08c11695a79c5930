// Package coverage builds circular coverage buffers around camera assets in
// the fixed regional planar projection, unions them into a total-coverage
// region, and derives the uncovered gap within the study area.
package coverage

import (
	"math"

	planar "github.com/ctessum/geom"
	"github.com/rotisserie/eris"
	geom "github.com/twpayne/go-geom"
	"go.uber.org/zap"

	"github.com/sightgrid/camscope/internal/asset"
	"github.com/sightgrid/camscope/internal/geodesy"
)

// circleSegments is the vertex count of the regular polygon approximating
// each circular buffer.
const circleSegments = 64

// studyAreaMarginMeters expands the asset bounding box outward to form the
// default study area. The margin is 500 units of the projection's native
// system (US survey feet in EPSG:2263), expressed here in meters.
const studyAreaMarginMeters = 500 * geodesy.USFootMeters

// Result is the coverage geometry for one analysis run. Planar geometries
// are in the fixed regional projection (meters); Union and Gap are the same
// regions unprojected to WGS84 for downstream rendering. Gap may be empty
// when the buffers fully cover the study area.
type Result struct {
	BufferRadiusMeters float64 `json:"buffer_radius_meters"`
	UnionAreaSqM       float64 `json:"union_area_sq_m"`
	GapAreaSqM         float64 `json:"gap_area_sq_m"`
	StudyAreaSqM       float64 `json:"study_area_sq_m"`

	UnionPlanar     planar.Polygon `json:"-"`
	GapPlanar       planar.Polygon `json:"-"`
	StudyAreaPlanar planar.Polygon `json:"-"`

	Union *geom.MultiPolygon `json:"-"`
	Gap   *geom.MultiPolygon `json:"-"`
}

// Options tunes the computation. A non-nil StudyArea (projected planar
// polygon) replaces the default expanded-bounding-box study area.
type Options struct {
	StudyArea planar.Polygon
}

// Compute projects every asset into the planar system, buffers each by
// radiusMeters, unions the buffers, and subtracts the union from the study
// area to obtain the gap region. The asset list must be non-empty and the
// radius positive.
func Compute(assets []asset.Asset, radiusMeters float64, projector *geodesy.Projector, opts Options) (*Result, error) {
	if len(assets) == 0 {
		return nil, eris.New("coverage: at least one asset is required")
	}
	if radiusMeters <= 0 {
		return nil, eris.Errorf("coverage: buffer radius must be positive, got %v", radiusMeters)
	}
	if projector == nil {
		return nil, eris.New("coverage: projector is required")
	}

	points := make([]planar.Point, len(assets))
	for i, a := range assets {
		x, y, err := projector.ToPlanar(a.Latitude, a.Longitude)
		if err != nil {
			return nil, eris.Wrapf(err, "coverage: project asset %s", a.ID)
		}
		points[i] = planar.Point{X: x, Y: y}
	}

	merged := planar.Polygonal(circleBuffer(points[0], radiusMeters))
	for _, p := range points[1:] {
		merged = merged.Union(circleBuffer(p, radiusMeters))
	}
	union, err := clipResult(merged)
	if err != nil {
		return nil, err
	}

	studyArea := opts.StudyArea
	if studyArea == nil {
		studyArea = expandedBBox(points, studyAreaMarginMeters)
	}

	gap, err := clipResult(studyArea.Difference(union))
	if err != nil {
		return nil, err
	}

	unionGeo, err := toGeographicMultiPolygon(union, projector)
	if err != nil {
		return nil, eris.Wrap(err, "coverage: unproject union")
	}
	gapGeo, err := toGeographicMultiPolygon(gap, projector)
	if err != nil {
		return nil, eris.Wrap(err, "coverage: unproject gap")
	}

	r := &Result{
		BufferRadiusMeters: radiusMeters,
		UnionAreaSqM:       union.Area(),
		GapAreaSqM:         gap.Area(),
		StudyAreaSqM:       studyArea.Area(),
		UnionPlanar:        union,
		GapPlanar:          gap,
		StudyAreaPlanar:    studyArea,
		Union:              unionGeo,
		Gap:                gapGeo,
	}

	zap.L().Info("coverage: geometry computed",
		zap.Int("assets", len(assets)),
		zap.Float64("radius_m", radiusMeters),
		zap.Float64("union_sq_m", r.UnionAreaSqM),
		zap.Float64("gap_sq_m", r.GapAreaSqM),
	)

	return r, nil
}

// clipResult narrows a clip operation's Polygonal result to the concrete
// ring list the clipper produces.
func clipResult(p planar.Polygonal) (planar.Polygon, error) {
	poly, ok := p.(planar.Polygon)
	if !ok {
		return nil, eris.Errorf("coverage: unexpected clip result type %T", p)
	}
	return poly, nil
}

// circleBuffer approximates a circle of radius r around center as a regular
// counterclockwise polygon with circleSegments vertices.
func circleBuffer(center planar.Point, r float64) planar.Polygon {
	ring := make([]planar.Point, circleSegments)
	for k := range ring {
		theta := 2 * math.Pi * float64(k) / circleSegments
		ring[k] = planar.Point{
			X: center.X + r*math.Cos(theta),
			Y: center.Y + r*math.Sin(theta),
		}
	}
	return planar.Polygon{ring}
}

// expandedBBox returns the bounding box of the projected points grown
// outward by margin on every side, as a counterclockwise rectangle.
func expandedBBox(points []planar.Point, margin float64) planar.Polygon {
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX, minY
	for _, p := range points[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	minX -= margin
	minY -= margin
	maxX += margin
	maxY += margin

	return planar.Polygon{{
		{X: minX, Y: minY},
		{X: maxX, Y: minY},
		{X: maxX, Y: maxY},
		{X: minX, Y: maxY},
	}}
}

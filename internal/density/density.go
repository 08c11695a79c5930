// Package density estimates a continuous camera-density surface over the
// region with a 2-D Gaussian kernel density estimate, evaluated on a regular
// longitude/latitude grid.
package density

import (
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/sightgrid/camscope/internal/asset"
)

// DefaultGridSize is the per-axis resolution of the evaluation grid.
const DefaultGridSize = 100

// minBandwidthDegrees floors the kernel bandwidth so a degenerate point
// cloud (all cameras coincident, or a single camera) yields a sharp but
// finite peak instead of a division by zero.
const minBandwidthDegrees = 1e-9

// Grid is a regular rectangular density surface. Lngs has GridSize columns,
// Lats has GridSize rows, and Values[row][col] is the density at
// (Lngs[col], Lats[row]). Values are non-negative and meaningful only
// relative to each other.
type Grid struct {
	Lngs   []float64   `json:"lngs"`
	Lats   []float64   `json:"lats"`
	Values [][]float64 `json:"values"`

	BandwidthLng float64 `json:"bandwidth_lng"`
	BandwidthLat float64 `json:"bandwidth_lat"`
}

// Options tunes the estimate. GridSize defaults to DefaultGridSize. A
// positive Bandwidth (degrees) overrides the data-driven choice on both
// axes.
type Options struct {
	GridSize  int
	Bandwidth float64
}

// Estimate computes the kernel density surface over the bounding box of the
// asset set, inclusive of both extremes on each axis. Bandwidth follows
// Scott's rule for two-dimensional data (n^(-1/6) scaled by the per-axis
// sample standard deviation) unless overridden.
func Estimate(assets []asset.Asset, opts Options) (*Grid, error) {
	n := len(assets)
	if n == 0 {
		return nil, eris.New("density: at least one asset is required")
	}

	size := opts.GridSize
	if size <= 0 {
		size = DefaultGridSize
	}

	lngs := make([]float64, n)
	lats := make([]float64, n)
	for i, a := range assets {
		lngs[i] = a.Longitude
		lats[i] = a.Latitude
	}

	hLng, hLat := bandwidths(lngs, lats, opts.Bandwidth)

	bbox, _ := asset.Bounds(assets)
	grid := &Grid{
		Lngs:         linspace(bbox.MinLng, bbox.MaxLng, size),
		Lats:         linspace(bbox.MinLat, bbox.MaxLat, size),
		Values:       make([][]float64, size),
		BandwidthLng: hLng,
		BandwidthLat: hLat,
	}

	// Normalization constant for the product Gaussian kernel. Only relative
	// magnitudes matter downstream, but keeping the constant makes values
	// comparable across runs with the same bandwidth.
	norm := 1 / (2 * math.Pi * hLng * hLat * float64(n))

	for row := range grid.Values {
		grid.Values[row] = make([]float64, size)
		gy := grid.Lats[row]
		for col := 0; col < size; col++ {
			gx := grid.Lngs[col]
			var sum float64
			for i := 0; i < n; i++ {
				dx := (gx - lngs[i]) / hLng
				dy := (gy - lats[i]) / hLat
				sum += math.Exp(-0.5 * (dx*dx + dy*dy))
			}
			grid.Values[row][col] = sum * norm
		}
	}

	zap.L().Info("density: surface estimated",
		zap.Int("assets", n),
		zap.Int("grid", size),
		zap.Float64("bandwidth_lng", hLng),
		zap.Float64("bandwidth_lat", hLat),
	)

	return grid, nil
}

// bandwidths selects the per-axis kernel bandwidth: the override when given,
// otherwise Scott's rule, floored against degenerate spreads.
func bandwidths(lngs, lats []float64, override float64) (hLng, hLat float64) {
	if override > 0 {
		return override, override
	}

	// Scott's factor for d=2: n^(-1/(d+4)).
	factor := math.Pow(float64(len(lngs)), -1.0/6.0)
	hLng = factor * stdDev(lngs)
	hLat = factor * stdDev(lats)

	if hLng < minBandwidthDegrees {
		zap.L().Warn("density: degenerate longitude spread, flooring bandwidth")
		hLng = minBandwidthDegrees
	}
	if hLat < minBandwidthDegrees {
		zap.L().Warn("density: degenerate latitude spread, flooring bandwidth")
		hLat = minBandwidthDegrees
	}
	return hLng, hLat
}

// stdDev is the sample standard deviation, 0 for fewer than two samples.
func stdDev(xs []float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	return stat.StdDev(xs, nil)
}

// linspace returns count evenly spaced samples from lo to hi inclusive.
// A zero-width span yields count copies of lo.
func linspace(lo, hi float64, count int) []float64 {
	out := make([]float64, count)
	if count == 1 || lo == hi {
		for i := range out {
			out[i] = lo
		}
		return out
	}
	floats.Span(out, lo, hi)
	return out
}

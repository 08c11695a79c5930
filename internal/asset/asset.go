// Package asset defines the normalized camera asset model consumed by the
// analysis engine, plus the CSV loader that produces it.
package asset

import (
	"strings"
	"time"
)

// Status is the operational state of a camera installation.
type Status string

const (
	StatusActive      Status = "Active"
	StatusMaintenance Status = "Maintenance"
	StatusInactive    Status = "Inactive"
	StatusUnknown     Status = "Unknown"
)

// ParseStatus maps a raw status string to one of the fixed Status values.
// Matching is case-insensitive; anything unrecognized (including empty)
// becomes StatusUnknown.
func ParseStatus(s string) Status {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active":
		return StatusActive
	case "maintenance":
		return StatusMaintenance
	case "inactive":
		return StatusInactive
	default:
		return StatusUnknown
	}
}

// Asset is one fixed camera installation. Latitude and longitude are signed
// decimal degrees. InstalledOn is nil when the installation date is unknown.
type Asset struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Latitude    float64    `json:"latitude"`
	Longitude   float64    `json:"longitude"`
	Status      Status     `json:"status"`
	InstalledOn *time.Time `json:"installed_on,omitempty"`
}

// BBox is a geographic bounding box in decimal degrees.
type BBox struct {
	MinLng float64 `json:"min_lng"`
	MinLat float64 `json:"min_lat"`
	MaxLng float64 `json:"max_lng"`
	MaxLat float64 `json:"max_lat"`
}

// Bounds returns the bounding box of the asset set. The second return is
// false for an empty set.
func Bounds(assets []Asset) (BBox, bool) {
	if len(assets) == 0 {
		return BBox{}, false
	}
	b := BBox{
		MinLng: assets[0].Longitude,
		MinLat: assets[0].Latitude,
		MaxLng: assets[0].Longitude,
		MaxLat: assets[0].Latitude,
	}
	for _, a := range assets[1:] {
		if a.Longitude < b.MinLng {
			b.MinLng = a.Longitude
		}
		if a.Longitude > b.MaxLng {
			b.MaxLng = a.Longitude
		}
		if a.Latitude < b.MinLat {
			b.MinLat = a.Latitude
		}
		if a.Latitude > b.MaxLat {
			b.MaxLat = a.Latitude
		}
	}
	return b, true
}

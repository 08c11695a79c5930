package asset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

// Column names expected in camera CSV exports. Header matching is
// case-insensitive.
const (
	colID          = "camera_id"
	colName        = "location_name"
	colLatitude    = "latitude"
	colLongitude   = "longitude"
	colStatus      = "status"
	colInstalledOn = "installation_date"
)

// LoadCSV reads camera assets from a CSV stream. Row order is preserved:
// downstream tie-breaking and cluster numbering depend on it. The camera_id,
// latitude, and longitude columns are required; status and installation_date
// are optional. A malformed coordinate or a duplicate camera_id is an error
// rather than a skipped row.
func LoadCSV(r io.Reader) ([]Asset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // tolerate ragged trailing columns

	header, err := reader.Read()
	if err == io.EOF {
		return nil, eris.New("asset: CSV is empty")
	}
	if err != nil {
		return nil, eris.Wrap(err, "asset: read CSV header")
	}

	idx := make(map[string]int, len(header))
	for i, col := range header {
		idx[strings.ToLower(strings.TrimSpace(col))] = i
	}
	for _, required := range []string{colID, colLatitude, colLongitude} {
		if _, ok := idx[required]; !ok {
			return nil, eris.Errorf("asset: CSV missing required column %q", required)
		}
	}

	var assets []Asset
	seen := make(map[string]bool)
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, eris.Wrapf(err, "asset: read CSV row %d", row+1)
		}
		row++

		a, err := parseRow(record, idx, row)
		if err != nil {
			return nil, err
		}
		if seen[a.ID] {
			return nil, eris.Errorf("asset: duplicate camera_id %q at row %d", a.ID, row)
		}
		seen[a.ID] = true
		assets = append(assets, a)
	}

	zap.L().Info("asset: loaded cameras", zap.Int("count", len(assets)))
	return assets, nil
}

func parseRow(record []string, idx map[string]int, row int) (Asset, error) {
	field := func(col string) string {
		i, ok := idx[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	id := field(colID)
	if id == "" {
		return Asset{}, eris.Errorf("asset: empty camera_id at row %d", row)
	}

	lat, err := strconv.ParseFloat(field(colLatitude), 64)
	if err != nil {
		return Asset{}, eris.Wrapf(err, "asset: parse latitude at row %d", row)
	}
	lng, err := strconv.ParseFloat(field(colLongitude), 64)
	if err != nil {
		return Asset{}, eris.Wrapf(err, "asset: parse longitude at row %d", row)
	}
	if lat < -90 || lat > 90 {
		return Asset{}, eris.Errorf("asset: latitude %v out of range at row %d", lat, row)
	}
	if lng < -180 || lng > 180 {
		return Asset{}, eris.Errorf("asset: longitude %v out of range at row %d", lng, row)
	}

	a := Asset{
		ID:        id,
		Name:      field(colName),
		Latitude:  lat,
		Longitude: lng,
		Status:    ParseStatus(field(colStatus)),
	}

	if raw := field(colInstalledOn); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return Asset{}, eris.Wrapf(err, "asset: parse installation_date at row %d", row)
		}
		a.InstalledOn = &t
	}

	return a, nil
}

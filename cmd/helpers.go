package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"

	"github.com/sightgrid/camscope/internal/asset"
)

// loadAssets reads the camera CSV named by --input, preserving row order.
func loadAssets(path string) ([]asset.Asset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "open input %s", path)
	}
	defer func() { _ = f.Close() }()

	return asset.LoadCSV(f)
}

// writeJSON marshals v with indentation to the given path, or to stdout when
// path is empty.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return eris.Wrap(err, "marshal output")
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return eris.Wrapf(err, "write output %s", path)
	}
	return nil
}

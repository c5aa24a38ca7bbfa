package snapshot

import (
	"encoding/json"
	"os"
	"path/filepath"

	"MacroRadar/internal/model"
)

// SaveSeries writes the snapshot series to a JSON file for the rendering
// side to pick up.
func SaveSeries(path string, snaps []model.Snapshot) error {
	data, err := json.MarshalIndent(snaps, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSeries reads a previously exported snapshot series. Returns an
// empty series if the file doesn't exist.
func LoadSeries(path string) ([]model.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var snaps []model.Snapshot
	if err := json.Unmarshal(data, &snaps); err != nil {
		return nil, err
	}
	return snaps, nil
}

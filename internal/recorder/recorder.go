package recorder

import "MacroRadar/internal/model"

// Recorder persists computed snapshots for later inspection (e.g. a
// Grafana dashboard reading the SQLite file).
type Recorder interface {
	RecordSnapshot(snap *model.Snapshot) error
	RecordSeries(snaps []model.Snapshot) error
	Close() error
}

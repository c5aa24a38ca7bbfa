package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"MacroRadar/internal/model"
)

// SQLiteRecorder persists snapshots to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs
// migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode for better concurrent read performance (dashboards read
	// while the refresh writes).
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS metric_records (
			id               INTEGER PRIMARY KEY AUTOINCREMENT,
			sample_date      TEXT NOT NULL,
			entity_id        TEXT NOT NULL,
			price            REAL,
			z_score          REAL,
			momentum_pct     REAL,
			rsi              REAL,
			rel_strength_pct REAL,
			trend            TEXT,
			mom_degraded     INTEGER,
			bench_degraded   INTEGER,
			UNIQUE(sample_date, entity_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_date ON metric_records(sample_date)`,

		`CREATE TABLE IF NOT EXISTS snapshot_nodes (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			sample_date TEXT NOT NULL,
			node_id     TEXT NOT NULL,
			parent_id   TEXT,
			label       TEXT,
			category    TEXT,
			value       REAL,
			color       REAL,
			UNIQUE(sample_date, node_id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_nodes_date ON snapshot_nodes(sample_date)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordSnapshot upserts one frame: its metric records and every node of
// its tree. Re-recording the same date overwrites, keeping repeated runs
// idempotent.
func (r *SQLiteRecorder) RecordSnapshot(snap *model.Snapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	day := snap.Date.Format("2006-01-02")

	for _, rec := range snap.Records {
		if _, err := tx.Exec(`INSERT INTO metric_records
			(sample_date, entity_id, price, z_score, momentum_pct, rsi, rel_strength_pct, trend, mom_degraded, bench_degraded)
			VALUES (?,?,?,?,?,?,?,?,?,?)
			ON CONFLICT(sample_date, entity_id) DO UPDATE SET
			price=excluded.price, z_score=excluded.z_score, momentum_pct=excluded.momentum_pct,
			rsi=excluded.rsi, rel_strength_pct=excluded.rel_strength_pct, trend=excluded.trend,
			mom_degraded=excluded.mom_degraded, bench_degraded=excluded.bench_degraded`,
			day, rec.EntityID, rec.Price, rec.ZScore, rec.MomentumPct, rec.RSI,
			rec.RelStrengthPct, string(rec.Trend), boolInt(rec.MomentumDegraded), boolInt(rec.BenchmarkDegraded),
		); err != nil {
			return fmt.Errorf("insert record %s: %w", rec.EntityID, err)
		}
	}

	var walkErr error
	snap.Tree.Walk(func(n *model.Node) {
		if walkErr != nil {
			return
		}
		if _, err := tx.Exec(`INSERT INTO snapshot_nodes
			(sample_date, node_id, parent_id, label, category, value, color)
			VALUES (?,?,?,?,?,?,?)
			ON CONFLICT(sample_date, node_id) DO UPDATE SET
			parent_id=excluded.parent_id, label=excluded.label, category=excluded.category,
			value=excluded.value, color=excluded.color`,
			day, n.ID, n.ParentID, n.Label, n.Category, n.Value, n.ColorMetric,
		); err != nil {
			walkErr = fmt.Errorf("insert node %s: %w", n.ID, err)
		}
	})
	if walkErr != nil {
		return walkErr
	}

	return tx.Commit()
}

// RecordSeries persists every frame of a series.
func (r *SQLiteRecorder) RecordSeries(snaps []model.Snapshot) error {
	for i := range snaps {
		if err := r.RecordSnapshot(&snaps[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

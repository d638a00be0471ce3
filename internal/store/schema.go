package store

import (
	"context"
	"database/sql"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id           TEXT PRIMARY KEY,
	created_at   TEXT NOT NULL,
	a_min        REAL NOT NULL,
	a_max        REAL NOT NULL,
	n_stations   INTEGER NOT NULL,
	quantity     TEXT NOT NULL,
	models_json  TEXT NOT NULL,
	summary_json TEXT
);

CREATE TABLE IF NOT EXISTS soundings (
	run_id     TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	model      TEXT NOT NULL,
	station    INTEGER NOT NULL,
	separation REAL NOT NULL,
	value      REAL NOT NULL,
	PRIMARY KEY (run_id, model, station)
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// InitSchema creates the catalog tables if they do not exist.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

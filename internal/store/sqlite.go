package store

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/kvernstuen/vesound/internal/compare"

	_ "modernc.org/sqlite" // SQLite driver
)

// RunStore persists runs to a SQLite database.
type RunStore struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewRunStore opens (creating if needed) the catalog at dbPath.
func NewRunStore(dbPath string) (*RunStore, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create store directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite works best with a single writer
	db.SetMaxOpenConns(1)

	if err := InitSchema(context.Background(), db); err != nil {
		db.Close()
		return nil, err
	}
	return &RunStore{db: db}, nil
}

// SaveRun records a run and returns its assigned ID. The input's ID and
// CreatedAt fields are overwritten.
func (s *RunStore) SaveRun(ctx context.Context, run Run) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	run.CreatedAt = time.Now().UTC()
	run.ID = runID(run)

	modelsJSON, err := json.Marshal(run.Models)
	if err != nil {
		return "", fmt.Errorf("failed to encode models: %w", err)
	}
	var summaryJSON []byte
	if run.Summary != nil {
		if summaryJSON, err = json.Marshal(run.Summary); err != nil {
			return "", fmt.Errorf("failed to encode summary: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT OR REPLACE INTO runs (id, created_at, a_min, a_max, n_stations, quantity, models_json, summary_json)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt.Format(time.RFC3339Nano),
		run.AMin, run.AMax, run.NStations, run.Quantity,
		string(modelsJSON), nullableString(summaryJSON))
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for _, snd := range run.Soundings {
		_, err = tx.ExecContext(ctx, `
			INSERT OR REPLACE INTO soundings (run_id, model, station, separation, value)
			VALUES (?, ?, ?, ?, ?)`,
			run.ID, snd.Model, snd.Station, snd.Separation, snd.Value)
		if err != nil {
			return "", fmt.Errorf("failed to insert sounding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return run.ID, nil
}

// GetRun loads a run and its soundings by ID.
func (s *RunStore) GetRun(ctx context.Context, id string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		run         Run
		createdAt   string
		modelsJSON  string
		summaryJSON sql.NullString
	)
	err := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, a_min, a_max, n_stations, quantity, models_json, summary_json
		FROM runs WHERE id = ?`, id).
		Scan(&run.ID, &createdAt, &run.AMin, &run.AMax, &run.NStations, &run.Quantity, &modelsJSON, &summaryJSON)
	if err == sql.ErrNoRows {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("failed to load run: %w", err)
	}

	if run.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
		return Run{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	if err := json.Unmarshal([]byte(modelsJSON), &run.Models); err != nil {
		return Run{}, fmt.Errorf("failed to decode models: %w", err)
	}
	if summaryJSON.Valid && summaryJSON.String != "" {
		run.Summary = new(compare.Summary)
		if err := json.Unmarshal([]byte(summaryJSON.String), run.Summary); err != nil {
			return Run{}, fmt.Errorf("failed to decode summary: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT model, station, separation, value FROM soundings
		WHERE run_id = ? ORDER BY model, station`, id)
	if err != nil {
		return Run{}, fmt.Errorf("failed to load soundings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var snd Sounding
		if err := rows.Scan(&snd.Model, &snd.Station, &snd.Separation, &snd.Value); err != nil {
			return Run{}, fmt.Errorf("failed to scan sounding: %w", err)
		}
		run.Soundings = append(run.Soundings, snd)
	}
	if err := rows.Err(); err != nil {
		return Run{}, fmt.Errorf("failed to iterate soundings: %w", err)
	}
	return run, nil
}

// ListRuns returns run metadata, newest first, up to limit (0 = no limit).
func (s *RunStore) ListRuns(ctx context.Context, limit int) ([]RunMeta, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := `
		SELECT r.id, r.created_at, r.n_stations, r.quantity,
		       (SELECT COUNT(DISTINCT model) FROM soundings WHERE run_id = r.id)
		FROM runs r ORDER BY r.created_at DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var metas []RunMeta
	for rows.Next() {
		var (
			m         RunMeta
			createdAt string
		)
		if err := rows.Scan(&m.ID, &createdAt, &m.NStations, &m.Quantity, &m.NModels); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if m.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		metas = append(metas, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate runs: %w", err)
	}
	return metas, nil
}

// Close closes the underlying database.
func (s *RunStore) Close() error {
	return s.db.Close()
}

// runID derives a short stable identifier from the run content and time.
func runID(run Run) string {
	h := sha256.New()
	fmt.Fprintf(h, "%v|%g|%g|%d|%s", run.CreatedAt.UnixNano(), run.AMin, run.AMax, run.NStations, run.Quantity)
	for _, m := range run.Models {
		fmt.Fprintf(h, "|%s%v%v", m.Name, m.Thicknesses, m.Resistivities)
	}
	return hex.EncodeToString(h.Sum(nil))[:12]
}

func nullableString(b []byte) any {
	if len(b) == 0 {
		return nil
	}
	return string(b)
}

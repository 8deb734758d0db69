// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists harvest reports in a SQLite database so runs can
// be listed and re-exported without re-fetching anything.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/pollscan/pkg/types"
)

const dbFile = "pollscan.db"

// Store manages the harvest run database.
type Store struct {
	db *sql.DB
}

// Open opens or creates the run database at dataDir/pollscan.db,
// creating the schema if it does not exist.
func Open(cfg types.StoreConfig) (*Store, error) {
	dataDir := cfg.DataDir
	if dataDir == "" {
		dataDir = "data"
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			fetched_at TEXT NOT NULL,
			dataset_url TEXT NOT NULL,
			dataset_format TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS records (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id INTEGER NOT NULL REFERENCES runs(id),
			bucket TEXT NOT NULL,
			race TEXT,
			position INTEGER NOT NULL,
			record TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_records_run_id ON records(run_id)`,
		`CREATE INDEX IF NOT EXISTS idx_records_bucket ON records(run_id, bucket)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// SaveReport stores a report as a new run and returns the run ID. Records
// are stored as JSON per bucket with their in-bucket position, so a
// re-exported report preserves record order.
func (s *Store) SaveReport(ctx context.Context, report *types.Report) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO runs (fetched_at, dataset_url, dataset_format, created_at) VALUES (?, ?, ?, ?)`,
		report.Meta.FetchedAt.UTC().Format(time.RFC3339),
		report.Meta.DatasetURL,
		report.Meta.DatasetFormat,
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading run id: %w", err)
	}

	insert := func(bucket, race string, recs []types.CanonicalRecord) error {
		for i, rec := range recs {
			data, err := json.Marshal(rec)
			if err != nil {
				return fmt.Errorf("marshaling record: %w", err)
			}
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO records (run_id, bucket, race, position, record) VALUES (?, ?, ?, ?, ?)`,
				runID, bucket, race, i, string(data),
			); err != nil {
				return fmt.Errorf("inserting record: %w", err)
			}
		}
		return nil
	}

	if err := insert("genericBallot", "", report.GenericBallot); err != nil {
		return 0, err
	}
	if err := insert("approval", "", report.Approval); err != nil {
		return 0, err
	}
	for race, recs := range report.Races {
		if err := insert("race", race, recs); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing run: %w", err)
	}
	return runID, nil
}

// RunInfo summarizes one stored run.
type RunInfo struct {
	ID            int64     `json:"id"`
	FetchedAt     time.Time `json:"fetched_at"`
	DatasetURL    string    `json:"dataset_url"`
	DatasetFormat string    `json:"dataset_format"`
	Records       int       `json:"records"`
}

// ListRuns returns stored runs, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]RunInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.fetched_at, r.dataset_url, r.dataset_format, count(rec.rowid)
		FROM runs r LEFT JOIN records rec ON rec.run_id = r.id
		GROUP BY r.id ORDER BY r.id DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var info RunInfo
		var fetchedAt string
		if err := rows.Scan(&info.ID, &fetchedAt, &info.DatasetURL, &info.DatasetFormat, &info.Records); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, fetchedAt); err == nil {
			info.FetchedAt = t
		}
		runs = append(runs, info)
	}
	return runs, rows.Err()
}

// LoadReport reconstructs the report document for a stored run.
func (s *Store) LoadReport(ctx context.Context, runID int64) (*types.Report, error) {
	var fetchedAt string
	report := &types.Report{
		GenericBallot: []types.CanonicalRecord{},
		Approval:      []types.CanonicalRecord{},
		Races:         make(map[string][]types.CanonicalRecord),
	}
	err := s.db.QueryRowContext(ctx,
		`SELECT fetched_at, dataset_url, dataset_format FROM runs WHERE id = ?`, runID,
	).Scan(&fetchedAt, &report.Meta.DatasetURL, &report.Meta.DatasetFormat)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("run %d not found", runID)
	}
	if err != nil {
		return nil, fmt.Errorf("loading run %d: %w", runID, err)
	}
	if t, err := time.Parse(time.RFC3339, fetchedAt); err == nil {
		report.Meta.FetchedAt = t
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT bucket, race, record FROM records WHERE run_id = ? ORDER BY bucket, race, position`, runID)
	if err != nil {
		return nil, fmt.Errorf("loading records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bucket, race, data string
		if err := rows.Scan(&bucket, &race, &data); err != nil {
			return nil, fmt.Errorf("scanning record: %w", err)
		}
		var rec types.CanonicalRecord
		if err := json.Unmarshal([]byte(data), &rec); err != nil {
			return nil, fmt.Errorf("parsing stored record: %w", err)
		}
		switch bucket {
		case "genericBallot":
			report.GenericBallot = append(report.GenericBallot, rec)
		case "approval":
			report.Approval = append(report.Approval, rec)
		case "race":
			report.Races[race] = append(report.Races[race], rec)
		}
	}
	return report, rows.Err()
}

// Package db archives fetch runs to a SQLite file. The archive is a
// write-once artifact of an invocation; nothing is read back during
// retrieval itself.
package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/snoosift/snoosift/internal/models"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite archive connection.
type DB struct {
	conn *sql.DB
}

// New opens (creating if needed) the archive at dbPath and initializes the
// schema.
func New(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create archive directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	for _, stmt := range []string{createRunsTable, createRecordsTable, createRecordsRunIndex} {
		if _, err := conn.Exec(stmt); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create archive schema: %w", err)
		}
	}

	return &DB{conn: conn}, nil
}

// Close closes the archive connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// RunInfo describes one archived run.
type RunInfo struct {
	ID          int64
	Target      string
	Mode        string
	RecordCount int
	CreatedAt   time.Time
}

// SaveRun archives one invocation's records in a single transaction and
// returns the new run id.
func (db *DB) SaveRun(target, mode string, records []models.Record) (int64, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(insertRun, target, mode, len(records))
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	stmt, err := tx.Prepare(insertRecord)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, rec := range records {
		row := models.Flatten(rec)
		_, err := stmt.Exec(
			runID,
			row.Kind,
			row.ID,
			row.Fullname,
			row.Author,
			row.Subreddit,
			row.Title,
			row.Body,
			row.Score,
			row.CreatedUTC,
			row.Permalink,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert record %s: %w", row.Fullname, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return runID, nil
}

// ListRuns returns all archived runs, newest first.
func (db *DB) ListRuns() ([]RunInfo, error) {
	rows, err := db.conn.Query(selectRuns)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunInfo
	for rows.Next() {
		var r RunInfo
		var createdAt string
		if err := rows.Scan(&r.ID, &r.Target, &r.Mode, &r.RecordCount, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		r.CreatedAt, _ = parseTimestamp(createdAt)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRunRecords returns the flattened records of one archived run.
func (db *DB) GetRunRecords(runID int64) ([]models.FlatRecord, error) {
	rows, err := db.conn.Query(selectRunRecords, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var records []models.FlatRecord
	for rows.Next() {
		var r models.FlatRecord
		if err := rows.Scan(&r.Kind, &r.ID, &r.Fullname, &r.Author, &r.Subreddit,
			&r.Title, &r.Body, &r.Score, &r.CreatedUTC, &r.Permalink); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// parseTimestamp parses SQLite timestamp formats.
func parseTimestamp(ts string) (time.Time, error) {
	formats := []string{
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
		time.RFC3339,
	}
	for _, format := range formats {
		if t, err := time.Parse(format, ts); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unable to parse timestamp: %s", ts)
}

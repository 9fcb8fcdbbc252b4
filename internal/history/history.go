// Package history records every external downloader invocation in a small
// SQLite database so past runs can be inspected and re-run.
package history

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/odget-downloader/odget/internal/utils"
)

var (
	db         *sql.DB
	dbMu       sync.Mutex
	dbPath     string
	configured bool
)

// Entry is one recorded wget run.
type Entry struct {
	ID         string
	URL        string
	Command    string
	ExitCode   int
	StartedAt  time.Time
	FinishedAt time.Time
}

// Configure sets the path for the SQLite database. Callers must do this
// before any history operations so the DB is process-wide.
func Configure(path string) {
	dbMu.Lock()
	defer dbMu.Unlock()
	dbPath = path
	configured = true
	if db != nil {
		_ = db.Close()
		db = nil
	}
}

// initDB opens the SQLite database and ensures schema exists.
// It is safe to call multiple times.
func initDB() error {
	dbMu.Lock()
	defer dbMu.Unlock()

	if db != nil {
		return nil
	}
	if !configured || dbPath == "" {
		return fmt.Errorf("history database not configured: call history.Configure() first")
	}

	var err error
	db, err = sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	query := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		url TEXT NOT NULL,
		command TEXT NOT NULL,
		exit_code INTEGER,
		started_at INTEGER,
		finished_at INTEGER
	);
	`
	if _, err := db.Exec(query); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	return nil
}

// Close releases the database handle on shutdown.
func Close() {
	dbMu.Lock()
	defer dbMu.Unlock()
	if db != nil {
		_ = db.Close()
		db = nil
	}
}

func getDB() (*sql.DB, error) {
	if db == nil {
		if err := initDB(); err != nil {
			return nil, err
		}
	}
	return db, nil
}

// Record inserts one finished run. Failures are logged, not escalated:
// history must never break a download workflow.
func Record(e Entry) {
	d, err := getDB()
	if err != nil {
		utils.Debug("history: %v", err)
		return
	}
	_, err = d.Exec(
		`INSERT OR REPLACE INTO runs (id, url, command, exit_code, started_at, finished_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		e.ID, e.URL, e.Command, e.ExitCode, e.StartedAt.Unix(), e.FinishedAt.Unix(),
	)
	if err != nil {
		utils.Debug("history: insert failed: %v", err)
	}
}

// Recent returns up to limit runs, newest first.
func Recent(limit int) ([]Entry, error) {
	d, err := getDB()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 50
	}

	rows, err := d.Query(
		`SELECT id, url, command, exit_code, started_at, finished_at
		 FROM runs ORDER BY started_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var started, finished int64
		if err := rows.Scan(&e.ID, &e.URL, &e.Command, &e.ExitCode, &started, &finished); err != nil {
			return nil, err
		}
		e.StartedAt = time.Unix(started, 0)
		e.FinishedAt = time.Unix(finished, 0)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

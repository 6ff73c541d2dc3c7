package cache

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// Index records metadata for every completed fetch in a SQLite database.
// It answers "when was this fetched and how big was it" for the build
// summary and fetch history; it is never consulted to decide whether a URL
// needs fetching (the Store's file existence decides that).
//
// Design decision: We keep one database for all fetches rather than a
// per-run file. Fetch history accumulates across invocations, which is
// exactly what an incremental, resumable cache wants.
type Index struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Entry is one recorded fetch.
type Entry struct {
	URL           string
	LocalPath     string
	StatusCode    int
	ContentLength int64
	FetchedAt     time.Time
}

// OpenIndex opens or creates the fetch index in dbDir.
func OpenIndex(dbDir string) (*Index, error) {
	if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}
	dbPath := filepath.Join(dbDir, "fetch_index.db")

	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open fetch index: %w", err)
	}

	// SQLite only supports one writer; a single connection avoids
	// SQLITE_BUSY without any benefit lost for this workload.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	idx := &Index{db: db, dbPath: dbPath}
	if err := idx.createTables(); err != nil {
		_ = db.Close() //nolint:errcheck // Best effort cleanup
		return nil, fmt.Errorf("failed to create index schema: %w", err)
	}
	return idx, nil
}

// Close closes the database connection.
func (idx *Index) Close() error {
	return idx.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (idx *Index) createTables() error {
	schema := `
	-- One row per completed fetch. Re-fetches of the same URL append
	-- new rows so the history is preserved.
	CREATE TABLE IF NOT EXISTS fetch_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		request_url TEXT NOT NULL,
		local_path TEXT NOT NULL,
		status_code INTEGER NOT NULL,
		content_length INTEGER NOT NULL,
		fetched_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_fetch_log_url ON fetch_log(request_url);
	CREATE INDEX IF NOT EXISTS idx_fetch_log_time ON fetch_log(fetched_at);
	`
	_, err := idx.db.ExecContext(context.Background(), schema)
	return err
}

// Record appends a fetch entry to the log.
func (idx *Index) Record(ctx context.Context, e Entry) error {
	fetchedAt := e.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	_, err := idx.db.ExecContext(ctx, `
	INSERT INTO fetch_log (request_url, local_path, status_code, content_length, fetched_at)
	VALUES (?, ?, ?, ?, ?)`,
		e.URL, e.LocalPath, e.StatusCode, e.ContentLength,
		fetchedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record fetch: %w", err)
	}
	return nil
}

// Latest returns the most recent entry for a URL, or nil when the URL has
// never been fetched.
func (idx *Index) Latest(ctx context.Context, url string) (*Entry, error) {
	row := idx.db.QueryRowContext(ctx, `
	SELECT request_url, local_path, status_code, content_length, fetched_at
	FROM fetch_log WHERE request_url = ?
	ORDER BY id DESC LIMIT 1`, url)

	var e Entry
	var fetchedAt string
	err := row.Scan(&e.URL, &e.LocalPath, &e.StatusCode, &e.ContentLength, &fetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query fetch index: %w", err)
	}
	e.FetchedAt = parseTimestamp(fetchedAt)
	return &e, nil
}

// Count returns the total number of recorded fetches.
func (idx *Index) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := idx.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM fetch_log`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count fetch index: %w", err)
	}
	return n, nil
}

// parseTimestamp parses the stored timestamp, accepting both the RFC3339
// format we write and SQLite's CURRENT_TIMESTAMP default format.
func parseTimestamp(s string) time.Time {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02 15:04:05", s); err == nil {
		return t
	}
	return time.Time{}
}

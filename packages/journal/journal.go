// Package journal persists a record of synthesized requests to SQLite so
// generated fixtures can be inspected after a run. Only request metadata is
// stored, not body bytes; the journal is an opt-in sidecar, never part of
// the build pipeline itself.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/snapdriver/snapreq/packages/reqbuild"
)

const createTable = `
CREATE TABLE IF NOT EXISTS requests (
	id             TEXT PRIMARY KEY,
	name           TEXT NOT NULL DEFAULT '',
	method         TEXT NOT NULL,
	uri            TEXT NOT NULL,
	query_string   TEXT NOT NULL DEFAULT '',
	content_type   TEXT NOT NULL DEFAULT '',
	content_length INTEGER NOT NULL,
	body_bytes     INTEGER NOT NULL,
	secure         INTEGER NOT NULL,
	created_at     TIMESTAMP NOT NULL
)`

// Entry is one journaled request.
type Entry struct {
	ID            string
	Name          string
	Method        string
	URI           string
	QueryString   string
	ContentType   string
	ContentLength int64
	BodyBytes     int64
	Secure        bool
	CreatedAt     time.Time
}

// Journal is a SQLite-backed request log.
type Journal struct {
	db *sql.DB
}

// Open opens (or creates) the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("opening journal database: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connecting to journal database: %w", err)
	}
	if _, err := db.ExecContext(ctx, createTable); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating journal schema: %w", err)
	}

	return &Journal{db: db}, nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	if j.db != nil {
		return j.db.Close()
	}
	return nil
}

// Record appends one built request under the given display name and returns
// the generated entry ID.
func (j *Journal) Record(name string, r *reqbuild.Request) (string, error) {
	id := uuid.NewString()

	secure := 0
	if r.Secure {
		secure = 1
	}

	_, err := j.db.Exec(
		`INSERT INTO requests
			(id, name, method, uri, query_string, content_type, content_length, body_bytes, secure, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, name, r.Method, r.URI, r.QueryString,
		r.Headers.Get("Content-Type"), r.ContentLength, int64(len(r.Body)),
		secure, time.Now().UTC(),
	)
	if err != nil {
		return "", fmt.Errorf("recording request: %w", err)
	}
	return id, nil
}

// List returns all journaled requests, oldest first.
func (j *Journal) List() ([]Entry, error) {
	rows, err := j.db.Query(
		`SELECT id, name, method, uri, query_string, content_type, content_length, body_bytes, secure, created_at
		 FROM requests ORDER BY rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing journal: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var secure int
		if err := rows.Scan(
			&e.ID, &e.Name, &e.Method, &e.URI, &e.QueryString,
			&e.ContentType, &e.ContentLength, &e.BodyBytes, &secure, &e.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scanning journal row: %w", err)
		}
		e.Secure = secure != 0
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating journal rows: %w", err)
	}
	return entries, nil
}

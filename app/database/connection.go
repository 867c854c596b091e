package database

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "modernc.org/sqlite"
)

// DB wraps the sqlite connection shared by the repositories. SQLite
// allows a single writer, so the pool is capped at one connection and
// every statement funnels through it.
type DB struct {
	*sql.DB
	changes atomic.Int64
}

// NewConnection opens (or creates) the database file at the given path.
func NewConnection(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}
	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	return &DB{DB: conn}, nil
}

// track accumulates affected-row counts for the session summary
// reported by Close.
func (db *DB) track(res sql.Result) {
	if res == nil {
		return
	}
	if n, err := res.RowsAffected(); err == nil {
		db.changes.Add(n)
	}
}

// Close releases the connection and returns the number of rows changed
// during the session.
func (db *DB) Close() (int64, error) {
	err := db.DB.Close()
	return db.changes.Load(), err
}

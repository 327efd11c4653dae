package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Connection pragmas applied on open. WAL keeps readers from blocking
// the writer; the busy timeout covers the brief write lock contention
// that remains.
var pragmas = [...]string{
	"journal_mode=WAL",
	"busy_timeout=5000",
	"foreign_keys=ON",
	"synchronous=NORMAL",
}

// Open opens the SQLite database at path and applies the connection
// pragmas.
func Open(path string) (*sql.DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database %s: %w", path, err)
	}

	for _, p := range pragmas {
		if _, err := conn.Exec("PRAGMA " + p); err != nil {
			conn.Close()
			return nil, fmt.Errorf("applying pragma %s: %w", p, err)
		}
	}

	return conn, nil
}

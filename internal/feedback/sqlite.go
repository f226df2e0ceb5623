package feedback

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

const schema = `
	CREATE TABLE IF NOT EXISTS feedback (
		id         INTEGER PRIMARY KEY AUTOINCREMENT,
		text       TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
`

// SQLiteStore persists entries in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens or creates the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("feedback: open database: %w", err)
	}
	// A single connection serializes writers.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("feedback: pragma %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("feedback: migration: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Add inserts an entry.
func (s *SQLiteStore) Add(ctx context.Context, text string) (Entry, error) {
	if text == "" {
		return Entry{}, ErrEmpty
	}
	created := now()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO feedback (text, created_at) VALUES (?, ?)`,
		text, created.Format(time.RFC3339Nano),
	)
	if err != nil {
		return Entry{}, fmt.Errorf("feedback: insert: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return Entry{}, fmt.Errorf("feedback: insert id: %w", err)
	}
	return Entry{ID: id, Text: text, CreatedAt: created}, nil
}

// List returns every entry ordered by id.
func (s *SQLiteStore) List(ctx context.Context) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, text, created_at FROM feedback ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("feedback: list: %w", err)
	}
	defer rows.Close()

	out := []Entry{}
	for rows.Next() {
		var e Entry
		var created string
		if err := rows.Scan(&e.ID, &e.Text, &created); err != nil {
			return nil, fmt.Errorf("feedback: scan: %w", err)
		}
		e.CreatedAt, err = time.Parse(time.RFC3339Nano, created)
		if err != nil {
			return nil, fmt.Errorf("feedback: parse created_at %q: %w", created, err)
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("feedback: list: %w", err)
	}
	return out, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

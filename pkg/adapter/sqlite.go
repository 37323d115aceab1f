package adapter

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/m-mizutani/goerr/v2"
	_ "modernc.org/sqlite"
)

const createSlotTable = `CREATE TABLE IF NOT EXISTS slots (
	name       TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteSlot keeps a named blob as one row of a SQLite database, so several
// slots can share a single file.
type SQLiteSlot struct {
	db   *sql.DB
	name string
}

// OpenSQLiteSlot opens (or creates) the database at path and binds the slot
// called name
func OpenSQLiteSlot(ctx context.Context, path, name string) (*SQLiteSlot, error) {
	if strings.TrimSpace(path) == "" {
		return nil, goerr.New("sqlite path is required")
	}
	if strings.TrimSpace(name) == "" {
		return nil, goerr.New("slot name is required")
	}

	cleanPath := filepath.Clean(path)
	if err := os.MkdirAll(filepath.Dir(cleanPath), 0o700); err != nil {
		return nil, goerr.Wrap(err, "failed to create sqlite directory", goerr.V("path", cleanPath))
	}

	db, err := sql.Open("sqlite", cleanPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open sqlite db", goerr.V("path", cleanPath))
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to ping sqlite db", goerr.V("path", cleanPath))
	}
	if _, err := db.ExecContext(ctx, createSlotTable); err != nil {
		_ = db.Close()
		return nil, goerr.Wrap(err, "failed to create slots table", goerr.V("path", cleanPath))
	}

	return &SQLiteSlot{db: db, name: name}, nil
}

func (s *SQLiteSlot) Load(ctx context.Context) ([]byte, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM slots WHERE name = ?`, s.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load slot", goerr.V("name", s.name))
	}
	return data, nil
}

func (s *SQLiteSlot) Store(ctx context.Context, data []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO slots (name, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		s.name, data, time.Now().UnixMilli(),
	)
	if err != nil {
		return goerr.Wrap(err, "failed to store slot", goerr.V("name", s.name))
	}
	return nil
}

// Close releases the database handle
func (s *SQLiteSlot) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

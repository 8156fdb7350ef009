package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/starterforten/internal/models"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS kv (
    key TEXT PRIMARY KEY,
    value BLOB NOT NULL
);
`

// SQLiteConfig holds configuration for the SQLite stats repository
type SQLiteConfig struct {
	// Path is the database file; parent directories are created
	Path string

	// Key overrides DefaultKey
	Key string
}

// sqliteRepository keeps the session list as one row of a key/value table
type sqliteRepository struct {
	db  *sql.DB
	key string
}

// NewSQLite opens (or creates) the database file and its schema
func NewSQLite(cfg *SQLiteConfig) (*sqliteRepository, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Path == "" {
		return nil, errors.New("sqlite path cannot be empty")
	}

	if dir := filepath.Dir(cfg.Path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	// one writer keeps read-modify-write appends serialized
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	key := cfg.Key
	if key == "" {
		key = DefaultKey
	}

	return &sqliteRepository{
		db:  db,
		key: key,
	}, nil
}

// Close releases the database handle
func (r *sqliteRepository) Close() error {
	return r.db.Close()
}

// LoadSessions reads the session list row
func (r *sqliteRepository) LoadSessions(ctx context.Context, input *LoadSessionsInput) (*LoadSessionsOutput, error) {
	var blob []byte
	err := r.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, r.key).Scan(&blob)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &LoadSessionsOutput{
				Sessions: []*models.SessionStats{},
			}, nil
		}
		return nil, fmt.Errorf("failed to get sessions: %w", err)
	}

	sessions, err := decodeSessions(blob)
	if err != nil {
		return nil, err
	}

	return &LoadSessionsOutput{
		Sessions: sessions,
	}, nil
}

// AppendSession reads and rewrites the list row inside one transaction
func (r *sqliteRepository) AppendSession(ctx context.Context, input *AppendSessionInput) error {
	if input == nil || input.Session == nil {
		return ErrNilSession
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var blob []byte
	err = tx.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, r.key).Scan(&blob)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("failed to get sessions: %w", err)
	}

	updated, err := appendSession(blob, input.Session)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO kv (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		r.key, updated)
	if err != nil {
		return fmt.Errorf("failed to save sessions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sessions: %w", err)
	}
	return nil
}

package gallery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// SQLiteBlob stores keys in a single key/value table.
type SQLiteBlob struct {
	db *sqlx.DB
}

// NewSQLiteBlob opens (or creates) the database at dbPath.
func NewSQLiteBlob(dbPath string) (*SQLiteBlob, error) {
	// busy_timeout lets BEGIN IMMEDIATE wait for writers in other processes.
	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	if _, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at TEXT NOT NULL DEFAULT (datetime('now'))
		)
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating kv table: %w", err)
	}

	return &SQLiteBlob{db: db}, nil
}

func (s *SQLiteBlob) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := s.db.GetContext(ctx, &data, "SELECT value FROM kv WHERE key = ?", key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return data, err
}

func (s *SQLiteBlob) Save(ctx context.Context, key string, data []byte) error {
	_, err := s.db.ExecContext(ctx, upsertKV, key, data)
	return err
}

const upsertKV = `
	INSERT INTO kv (key, value, updated_at) VALUES (?, ?, datetime('now'))
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
`

// Update runs fn inside a BEGIN IMMEDIATE transaction, which takes the
// database write lock before the read.
func (s *SQLiteBlob) Update(ctx context.Context, key string, fn func(old []byte) ([]byte, error)) (err error) {
	conn, err := s.db.Connx(ctx)
	if err != nil {
		return err
	}
	defer conn.Close()

	if _, err := conn.ExecContext(ctx, "BEGIN IMMEDIATE"); err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			_, _ = conn.ExecContext(context.Background(), "ROLLBACK")
		}
	}()

	var old []byte
	err = conn.GetContext(ctx, &old, "SELECT value FROM kv WHERE key = ?", key)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	data, err := fn(old)
	if err != nil {
		return err
	}
	if data != nil {
		if _, err = conn.ExecContext(ctx, upsertKV, key, data); err != nil {
			return err
		}
	}

	if _, err = conn.ExecContext(ctx, "COMMIT"); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

func (s *SQLiteBlob) Close() error {
	return s.db.Close()
}

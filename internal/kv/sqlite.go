package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jask/tally/internal/database"
)

// SQLite keeps values in the kv table of a sqlite file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens the file at path and applies pending migrations.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := database.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := database.Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLite{db: db}, nil
}

func (s *SQLite) Load(ctx context.Context, key string) ([]byte, bool, error) {
	var v []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return v, true, nil
}

func (s *SQLite) Save(ctx context.Context, key string, value []byte) error {
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
			key, value, database.Now())
		return err
	})
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

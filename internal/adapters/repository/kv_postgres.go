package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/examtrack/core/internal/ports"
)

// PostgresKVStore implements the persistence gateway over a single
// records table. The store knows nothing about the blobs it holds:
// get and set of opaque bytes, wholesale, no partial updates.
type PostgresKVStore struct {
	db *sqlx.DB
}

// NewPostgresKVStore creates a Postgres-backed key-value store.
func NewPostgresKVStore(db *sqlx.DB) ports.KeyValueStore {
	return &PostgresKVStore{db: db}
}

func (s *PostgresKVStore) Get(ctx context.Context, key string) ([]byte, error) {
	query := `SELECT blob FROM records WHERE key = $1`

	var blob []byte
	err := s.db.GetContext(ctx, &blob, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ports.ErrKeyNotFound
		}
		return nil, fmt.Errorf("get record %q: %w", key, err)
	}
	return blob, nil
}

func (s *PostgresKVStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO records (key, blob, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET blob = EXCLUDED.blob, updated_at = now()`

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set record %q: %w", key, err)
	}
	return nil
}

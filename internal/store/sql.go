package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
)

// SQLBackend stores each collection as one row of the records table.
// Works with SQLite and PostgreSQL.
type SQLBackend struct {
	db *sqlx.DB
}

func NewSQLBackend(db *sqlx.DB) *SQLBackend {
	return &SQLBackend{db: db}
}

func (b *SQLBackend) Get(ctx context.Context, key string) ([]byte, error) {
	var value string
	query := `SELECT value FROM records WHERE collection = $1`

	err := b.db.GetContext(ctx, &value, query, key)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return []byte(value), nil
}

func (b *SQLBackend) Put(ctx context.Context, key string, value []byte) error {
	query := `INSERT INTO records (collection, value, updated_at) VALUES ($1, $2, $3)
	          ON CONFLICT (collection) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

	_, err := b.db.ExecContext(ctx, query, key, string(value), time.Now().UTC())
	return err
}

func (b *SQLBackend) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM records WHERE collection = $1`
	_, err := b.db.ExecContext(ctx, query, key)
	return err
}

package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/Masterminds/squirrel"

	"sahaya/internal/repository"
)

const kvTable = "kv_entries"

// KVPostgres is a PostgreSQL implementation of repository.KeyValueRepository.
// Every key is one row; Put is a single upsert statement so a value is
// replaced atomically.
type KVPostgres struct {
	db  *sql.DB
	now func() time.Time
}

// NewKVPostgres creates a new KVPostgres repository.
func NewKVPostgres(db *sql.DB) *KVPostgres {
	return &KVPostgres{db: db, now: time.Now}
}

var _ repository.KeyValueRepository = (*KVPostgres)(nil)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// Get fetches the value stored under key.
func (r *KVPostgres) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if key == "" {
		return nil, false, repository.ErrEmptyKey
	}
	q, args, err := psql.Select("value").
		From(kvTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return nil, false, err
	}

	var value []byte
	if err := r.db.QueryRowContext(ctx, q, args...).Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return value, true, nil
}

// Put upserts the value for key.
func (r *KVPostgres) Put(ctx context.Context, key string, value []byte) error {
	if key == "" {
		return repository.ErrEmptyKey
	}
	q, args, err := psql.Insert(kvTable).
		Columns("key", "value", "updated_at").
		Values(key, value, r.now().UTC()).
		Suffix("ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, args...)
	return err
}

// Delete removes key. It does not return an error if the row does not exist.
func (r *KVPostgres) Delete(ctx context.Context, key string) error {
	if key == "" {
		return repository.ErrEmptyKey
	}
	q, args, err := psql.Delete(kvTable).
		Where(squirrel.Eq{"key": key}).
		ToSql()
	if err != nil {
		return err
	}
	_, err = r.db.ExecContext(ctx, q, args...)
	return err
}

// Ping checks database connectivity.
func (r *KVPostgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

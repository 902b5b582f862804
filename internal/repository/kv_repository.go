package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

type kvRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type kvRecord struct {
	Key       string    `db:"record_key"`
	Value     string    `db:"value"`
	UpdatedAt time.Time `db:"updated_at"`
}

func NewKVRepository(db *sqlx.DB) KVRepository {
	return &kvRepository{db: db, now: time.Now}
}

func (r *kvRepository) Get(ctx context.Context, key string) (string, error) {
	query := r.db.Rebind(`SELECT value FROM kv_store WHERE record_key = ?`)

	var value string
	err := r.db.GetContext(ctx, &value, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("key %s: %w", key, ErrNotFound)
		}
		return "", fmt.Errorf("failed to read key %s: %w", key, err)
	}

	return value, nil
}

func (r *kvRepository) Put(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO kv_store (record_key, value, updated_at)
		VALUES (:record_key, :value, :updated_at)
		ON CONFLICT (record_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`

	record := kvRecord{Key: key, Value: value, UpdatedAt: r.now().UTC()}

	_, err := r.db.NamedExecContext(ctx, query, record)
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}

	return nil
}

func (r *kvRepository) Keys(ctx context.Context) ([]string, error) {
	query := `SELECT record_key FROM kv_store ORDER BY record_key`

	var keys []string
	if err := r.db.SelectContext(ctx, &keys, query); err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}

	return keys, nil
}

func (r *kvRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

package repository

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("record not found")

// KVRepository stores whole text values under fixed keys. Writes replace the
// previous value entirely.
type KVRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Put(ctx context.Context, key, value string) error
	Keys(ctx context.Context) ([]string, error)
	Ping(ctx context.Context) error
}

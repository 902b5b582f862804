package repository

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

type MemoryKVRepository struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemoryKVRepository() *MemoryKVRepository {
	return &MemoryKVRepository{data: make(map[string]string)}
}

func (r *MemoryKVRepository) Get(_ context.Context, key string) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	value, ok := r.data[key]
	if !ok {
		return "", fmt.Errorf("key %s: %w", key, ErrNotFound)
	}
	return value, nil
}

func (r *MemoryKVRepository) Put(_ context.Context, key, value string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.data[key] = value
	return nil
}

func (r *MemoryKVRepository) Keys(_ context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0, len(r.data))
	for k := range r.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (r *MemoryKVRepository) Ping(context.Context) error {
	return nil
}

package kv

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/retailmedia/internal/common"
)

// MemoryRepository keeps entries in a map and remembers insertion order.
type MemoryRepository struct {
	mu     sync.RWMutex
	values map[string][]byte
	order  []string
}

// NewMemoryRepository returns an empty in-memory repository.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{values: make(map[string][]byte)}
}

func (r *MemoryRepository) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.values[key]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return cloneBytes(v), nil
}

func (r *MemoryRepository) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.setLocked(key, value)
	return nil
}

func (r *MemoryRepository) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.deleteLocked(key)
	return nil
}

func (r *MemoryRepository) Iterate(ctx context.Context, prefix string, fn VisitFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.RLock()
	entries := make([]entry, 0, len(r.order))
	for _, k := range r.order {
		if strings.HasPrefix(k, prefix) {
			entries = append(entries, entry{key: k, value: cloneBytes(r.values[k])})
		}
	}
	r.mu.RUnlock()

	return visitAll(entries, fn)
}

func (r *MemoryRepository) Update(ctx context.Context, key string, fn UpdateFunc) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	var current []byte
	if v, ok := r.values[key]; ok {
		current = cloneBytes(v)
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		r.deleteLocked(key)
		return nil
	}
	r.setLocked(key, next)
	return nil
}

// Close is a no-op.
func (r *MemoryRepository) Close() error { return nil }

// Len reports the number of stored keys.
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.values)
}

func (r *MemoryRepository) setLocked(key string, value []byte) {
	if _, ok := r.values[key]; !ok {
		r.order = append(r.order, key)
	}
	r.values[key] = cloneBytes(value)
}

func (r *MemoryRepository) deleteLocked(key string) {
	if _, ok := r.values[key]; !ok {
		return
	}
	delete(r.values, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

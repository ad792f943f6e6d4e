package kv

import (
	"context"
	"errors"
)

// ErrConflict is returned by Update when an optimistic transaction keeps
// losing against concurrent writers.
var ErrConflict = errors.New("kv: update conflict")

// UpdateFunc receives the current value of a key (nil when it is missing)
// and returns the value to store. Returning a nil value deletes the key.
// Returning an error aborts the update and leaves the key untouched.
type UpdateFunc func(current []byte) ([]byte, error)

// VisitFunc is called by Iterate for every matching entry. Returning false
// stops the iteration early; a non-nil error aborts it and is returned from
// Iterate.
type VisitFunc func(key string, value []byte) (bool, error)

// Repository is a flat namespace of byte values addressed by string keys.
type Repository interface {
	// Get returns the stored value or common.ErrorNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set creates or overwrites key.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Iterate visits every key starting with prefix (see package docs for
	// ordering). An empty prefix visits everything.
	Iterate(ctx context.Context, prefix string, fn VisitFunc) error

	// Update atomically replaces the value of key with fn(current).
	Update(ctx context.Context, key string, fn UpdateFunc) error

	// Close releases the underlying connection, if any.
	Close() error
}

type entry struct {
	key   string
	value []byte
}

// visitAll feeds collected entries to fn. Rows are collected before fn runs
// so callbacks may use the repository again without holding a cursor open.
func visitAll(entries []entry, fn VisitFunc) error {
	for _, e := range entries {
		cont, err := fn(e.key, e.value)
		if err != nil {
			return err
		}
		if !cont {
			return nil
		}
	}
	return nil
}

// likePrefix turns prefix into a LIKE pattern matching it literally.
// Key prefixes contain '_', which is a LIKE wildcard.
func likePrefix(prefix string) string {
	out := make([]byte, 0, len(prefix)+4)
	for i := 0; i < len(prefix); i++ {
		switch c := prefix[i]; c {
		case '\\', '%', '_':
			out = append(out, '\\', c)
		default:
			out = append(out, c)
		}
	}
	return string(append(out, '%'))
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}

var (
	_ Repository = (*MemoryRepository)(nil)
	_ Repository = (*SQLiteRepository)(nil)
	_ Repository = (*PostgresRepository)(nil)
	_ Repository = (*RedisRepository)(nil)
)

package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendRedis    = "redis"
)

// DefaultRedisNamespace prefixes every key stored by the Redis backend.
const DefaultRedisNamespace = "retailmedia:"

var ErrUnknownBackend = errors.New("unknown storage backend")

// Open returns a repository for the named backend. dsn is a file path for
// SQLite, a connection string for PostgreSQL and an address or redis:// URL
// for Redis; it is ignored for memory.
func Open(ctx context.Context, backend, dsn string) (Repository, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendMemory:
		return NewMemoryRepository(), nil
	case BackendSQLite, "":
		return OpenSQLite(ctx, dsn)
	case BackendPostgres, "postgresql", "pg":
		return OpenPostgres(ctx, dsn)
	case BackendRedis:
		return OpenRedis(ctx, dsn, DefaultRedisNamespace)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}

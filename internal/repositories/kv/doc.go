// Package kv provides the flat key-value persistence layer underneath the
// profile store.
//
// # Overview
//
// Every RetailMediaAI record (auth records, profiles, phone index, creatives,
// autosave drafts, usage counters, welcome flags) is a JSON document stored
// under a string key in one namespace. The Repository interface hides where
// that namespace lives so the same profile store runs against a local SQLite
// file, a shared PostgreSQL database, Redis, or an in-memory map in tests.
//
// # Ordering
//
// Iterate visits keys in insertion order for the memory, SQLite and
// PostgreSQL backends (overwriting a key keeps its position). Redis visits
// keys in SCAN order, which is unspecified.
//
// # Concurrency
//
// All implementations are safe for concurrent use. Update is an atomic
// read-modify-write of a single key; there is no multi-key transaction.
// The Redis implementation retries Update on WATCH conflicts, so the update
// function may run more than once and must not have side effects.
//
// Key Types
//
//   - Repository: interface used by the profile store
//   - MemoryRepository: map-backed, for tests and ephemeral sessions
//   - SQLiteRepository: modernc SQLite, the default client store
//   - PostgresRepository: pgx-backed shared store
//   - RedisRepository: go-redis-backed shared store
//
// Typical Usage
//
//	repo, err := kv.OpenSQLite(ctx, "retailmedia.db")
//	_ = repo.Set(ctx, "user_auth_a@x.com", []byte(`{"password":"pw"}`))
//	v, err := repo.Get(ctx, "user_auth_a@x.com")
//	err = repo.Update(ctx, "usage_stats_a@x.com", func(cur []byte) ([]byte, error) { ... })
package kv

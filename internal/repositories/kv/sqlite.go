package kv

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/retailmedia/internal/repositories/kv/migrations"
	_ "modernc.org/sqlite"
)

var sqliteQueries = sqlQueries{
	get:     `SELECT value FROM kv WHERE key = ?`,
	lockGet: `SELECT value FROM kv WHERE key = ?`,
	set: `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET value = excluded.value`,
	del:     `DELETE FROM kv WHERE key = ?`,
	iterate: `SELECT key, value FROM kv WHERE key LIKE ? ESCAPE '\' ORDER BY seq`,
}

// SQLiteRepository stores entries in a single SQLite table.
type SQLiteRepository struct {
	sqlRepository
}

// NewSQLiteRepository wraps an already migrated database. The caller keeps
// ownership of db.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{sqlRepository{db: db, q: sqliteQueries}}
}

// MigrateSQLite applies the embedded schema migrations.
func MigrateSQLite(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, "sqlite3", migrations.SQLiteDir)
}

// OpenSQLite opens (creating if needed) the database at dsn, migrates it and
// returns a repository that owns the connection.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", sqliteDSN(dsn))
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// One writer at a time; also keeps ":memory:" on a single database.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := MigrateSQLite(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	r := NewSQLiteRepository(db)
	r.owned = true
	return r, nil
}

func sqliteDSN(dsn string) string {
	if dsn == ":memory:" || strings.Contains(dsn, "_pragma=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_txlock=immediate"
}

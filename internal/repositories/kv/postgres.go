package kv

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/retailmedia/internal/repositories/kv/migrations"
	_ "github.com/jackc/pgx/v5/stdlib"
)

var postgresQueries = sqlQueries{
	get:     `SELECT value FROM kv WHERE key = $1`,
	lockGet: `SELECT value FROM kv WHERE key = $1 FOR UPDATE`,
	set: `INSERT INTO kv (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
	del:     `DELETE FROM kv WHERE key = $1`,
	iterate: `SELECT key, value FROM kv WHERE key LIKE $1 ESCAPE '\' ORDER BY seq`,
}

// PostgresRepository stores entries in a PostgreSQL table. Update locks the
// row with SELECT ... FOR UPDATE; a key that does not exist yet is not
// locked, so two first writers race and the last one wins.
type PostgresRepository struct {
	sqlRepository
}

// NewPostgresRepository wraps an already migrated database. The caller keeps
// ownership of db.
func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{sqlRepository{db: db, q: postgresQueries}}
}

// MigratePostgres applies the embedded schema migrations.
func MigratePostgres(ctx context.Context, db *sql.DB) error {
	return runMigrations(ctx, db, "pgx", migrations.PostgresDir)
}

// OpenPostgres connects through the pgx stdlib driver, migrates the schema
// and returns a repository that owns the connection pool.
func OpenPostgres(ctx context.Context, dsn string) (*PostgresRepository, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := MigratePostgres(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	r := NewPostgresRepository(db)
	r.owned = true
	return r, nil
}

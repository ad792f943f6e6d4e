package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/retailmedia/internal/common"
	"github.com/dmitrijs2005/retailmedia/internal/dbx"
	"github.com/dmitrijs2005/retailmedia/internal/repositories/kv/migrations"
	"github.com/pressly/goose/v3"
)

// sqlQueries holds the dialect-specific statements of a SQL backend.
type sqlQueries struct {
	get     string
	lockGet string
	set     string
	del     string
	iterate string
}

// sqlRepository implements Repository on top of database/sql. The SQLite and
// PostgreSQL repositories differ only in their statements.
type sqlRepository struct {
	db    *sql.DB
	q     sqlQueries
	owned bool
}

func (r *sqlRepository) Get(ctx context.Context, key string) ([]byte, error) {
	return getValue(ctx, r.db, r.q.get, key)
}

func (r *sqlRepository) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if _, err := r.db.ExecContext(ctx, r.q.set, key, value); err != nil {
		return fmt.Errorf("failed to set %q: %w", key, err)
	}
	return nil
}

func (r *sqlRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, r.q.del, key); err != nil {
		return fmt.Errorf("failed to delete %q: %w", key, err)
	}
	return nil
}

func (r *sqlRepository) Iterate(ctx context.Context, prefix string, fn VisitFunc) error {
	rows, err := r.db.QueryContext(ctx, r.q.iterate, likePrefix(prefix))
	if err != nil {
		return fmt.Errorf("failed to select keys: %w", err)
	}
	defer rows.Close()

	var entries []entry
	for rows.Next() {
		var e entry
		if err := rows.Scan(&e.key, &e.value); err != nil {
			return err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	return visitAll(entries, fn)
}

func (r *sqlRepository) Update(ctx context.Context, key string, fn UpdateFunc) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		current, err := getValue(ctx, tx, r.q.lockGet, key)
		if err != nil && !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		if next == nil {
			_, err = tx.ExecContext(ctx, r.q.del, key)
		} else {
			_, err = tx.ExecContext(ctx, r.q.set, key, next)
		}
		if err != nil {
			return fmt.Errorf("failed to update %q: %w", key, err)
		}
		return nil
	})
}

// Close closes the database only when the repository opened it.
func (r *sqlRepository) Close() error {
	if r.owned {
		return r.db.Close()
	}
	return nil
}

func getValue(ctx context.Context, db dbx.DBTX, query, key string) ([]byte, error) {
	var value []byte
	err := db.QueryRowContext(ctx, query, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %q: %w", key, err)
	}
	if value == nil {
		value = []byte{}
	}
	return value, nil
}

// goose keeps its base FS and dialect in package globals.
var gooseMu sync.Mutex

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

func runMigrations(ctx context.Context, db *sql.DB, dialect, dir string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect(dialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, db, dir); err != nil {
		return fmt.Errorf("migrations failed: %w", err)
	}
	return nil
}

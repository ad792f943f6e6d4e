package profilestore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/retailmedia/internal/common"
	"github.com/dmitrijs2005/retailmedia/internal/logging"
	"github.com/dmitrijs2005/retailmedia/internal/repositories/kv"
)

// Store is the profile store. It is safe for concurrent use when the
// underlying repository is.
type Store struct {
	repo   kv.Repository
	logger logging.Logger
	now    func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock replaces time.Now, used for usage dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New returns a Store over repo. A nil logger discards output.
func New(repo kv.Repository, logger logging.Logger, opts ...Option) *Store {
	if logger == nil {
		logger = logging.Nop()
	}
	s := &Store{
		repo:   repo,
		logger: logger.With("component", "profilestore"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// exists reports whether key is present.
func (s *Store) exists(ctx context.Context, key string) (bool, error) {
	_, err := s.repo.Get(ctx, key)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// getJSON decodes the value at key into dest. It returns false when the key
// is missing.
func (s *Store) getJSON(ctx context.Context, key string, dest any) (bool, error) {
	b, err := s.repo.Get(ctx, key)
	if errors.Is(err, common.ErrorNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return s.repo.Set(ctx, key, b)
}

// updateJSON atomically decodes the value at key into a T (the zero value
// when missing), lets fn modify it and stores the result.
func updateJSON[T any](ctx context.Context, repo kv.Repository, key string, fn func(v *T) error) error {
	return repo.Update(ctx, key, func(current []byte) ([]byte, error) {
		var v T
		if current != nil {
			if err := json.Unmarshal(current, &v); err != nil {
				return nil, fmt.Errorf("decode %s: %w", key, err)
			}
		}
		if err := fn(&v); err != nil {
			return nil, err
		}
		return json.Marshal(v)
	})
}

package kv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/retailmedia/internal/common"
	"github.com/redis/go-redis/v9"
)

const (
	redisScanCount     = 200
	redisUpdateRetries = 16
)

// RedisRepository stores every entry as a plain Redis string. An optional
// namespace is prepended to each key so several stores can share a server.
type RedisRepository struct {
	client    redis.UniversalClient
	namespace string
}

// NewRedisRepository wraps client. Close closes the client.
func NewRedisRepository(client redis.UniversalClient, namespace string) *RedisRepository {
	return &RedisRepository{client: client, namespace: namespace}
}

// OpenRedis connects to addr (host:port or a redis:// URL) and pings it.
func OpenRedis(ctx context.Context, addr, namespace string) (*RedisRepository, error) {
	var opts *redis.Options
	if strings.HasPrefix(addr, "redis://") || strings.HasPrefix(addr, "rediss://") {
		parsed, err := redis.ParseURL(addr)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr}
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return NewRedisRepository(client, namespace), nil
}

func (r *RedisRepository) Get(ctx context.Context, key string) ([]byte, error) {
	v, err := r.client.Get(ctx, r.namespace+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis get %q: %w", key, err)
	}
	return v, nil
}

func (r *RedisRepository) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	if err := r.client.Set(ctx, r.namespace+key, value, 0).Err(); err != nil {
		return fmt.Errorf("redis set %q: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) Delete(ctx context.Context, key string) error {
	if err := r.client.Del(ctx, r.namespace+key).Err(); err != nil {
		return fmt.Errorf("redis del %q: %w", key, err)
	}
	return nil
}

func (r *RedisRepository) Iterate(ctx context.Context, prefix string, fn VisitFunc) error {
	match := globEscape(r.namespace+prefix) + "*"

	var keys []string
	iter := r.client.Scan(ctx, 0, match, redisScanCount).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("redis scan: %w", err)
	}

	entries := make([]entry, 0, len(keys))
	for _, k := range keys {
		v, err := r.client.Get(ctx, k).Bytes()
		if errors.Is(err, redis.Nil) {
			continue // deleted since the scan
		}
		if err != nil {
			return fmt.Errorf("redis get %q: %w", k, err)
		}
		entries = append(entries, entry{key: strings.TrimPrefix(k, r.namespace), value: v})
	}

	return visitAll(entries, fn)
}

// Update runs fn inside a WATCH/MULTI transaction and retries when another
// client modifies the key first.
func (r *RedisRepository) Update(ctx context.Context, key string, fn UpdateFunc) error {
	full := r.namespace + key

	txf := func(tx *redis.Tx) error {
		current, err := tx.Get(ctx, full).Bytes()
		if errors.Is(err, redis.Nil) {
			current = nil
		} else if err != nil {
			return err
		}

		next, err := fn(current)
		if err != nil {
			return err
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			if next == nil {
				pipe.Del(ctx, full)
			} else {
				pipe.Set(ctx, full, next, 0)
			}
			return nil
		})
		return err
	}

	for i := 0; i < redisUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, full)
		if err == nil {
			return nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return ErrConflict
}

func (r *RedisRepository) Close() error {
	return r.client.Close()
}

// globEscape quotes the characters SCAN MATCH treats as patterns.
func globEscape(s string) string {
	var b strings.Builder
	for _, c := range s {
		switch c {
		case '*', '?', '[', ']', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	return b.String()
}

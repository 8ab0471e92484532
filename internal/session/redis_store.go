package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists session records in Redis. Keys carry a Redis TTL of
// twice the idle window as garbage collection; the authoritative deadline is
// the one inside the record, checked by the Manager, so an expiry can still
// be observed and reported once before Redis evicts the key.
type RedisStore struct {
	rdb   *redis.Client
	gcTTL time.Duration
}

// NewRedisStore creates a RedisStore. idleTTL is the Manager's idle window.
func NewRedisStore(rdb *redis.Client, idleTTL time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, gcTTL: 2 * idleTTL}
}

func (s *RedisStore) Put(ctx context.Context, key string, rec Record) error {
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.rdb.Set(ctx, key, raw, s.gcTTL).Err(); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}

func (s *RedisStore) Get(ctx context.Context, key string) (Record, bool, error) {
	raw, err := s.rdb.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("load session: %w", err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return Record{}, false, fmt.Errorf("decode session: %w", err)
	}
	return rec, true, nil
}

func (s *RedisStore) Del(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}

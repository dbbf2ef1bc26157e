package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the distributed Store backend. Redis's native INCR and
// millisecond expiry provide the atomicity the abuse counters rely on; no
// value ever round-trips through the client for modification.
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore wraps an already-connected client. The client is shared
// process-wide; see the redis package for construction.
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (rs *RedisStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	raw, err := rs.client.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, errors.Join(ErrStoreUnavailable, err)
	}

	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("kvstore: decode value at %q: %w", key, err)
	}
	return true, nil
}

func (rs *RedisStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kvstore: encode value for %q: %w", key, err)
	}

	if ttl <= 0 {
		ttl = 0 // no expiry
	}
	if err := rs.client.Set(ctx, key, raw, ttl).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

// Increment relies on Redis INCR for atomicity across instances. The expiry
// is attached only when the increment created the key (count == 1) so later
// increments never stretch the window.
func (rs *RedisStore) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	count, err := rs.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, errors.Join(ErrStoreUnavailable, err)
	}

	if count == 1 && ttl > 0 {
		if err := rs.client.PExpire(ctx, key, ttl).Err(); err != nil {
			return 0, errors.Join(ErrStoreUnavailable, err)
		}
	}
	return count, nil
}

func (rs *RedisStore) Delete(ctx context.Context, key string) error {
	if err := rs.client.Del(ctx, key).Err(); err != nil {
		return errors.Join(ErrStoreUnavailable, err)
	}
	return nil
}

func (rs *RedisStore) Exists(ctx context.Context, key string) (bool, error) {
	n, err := rs.client.Exists(ctx, key).Result()
	if err != nil {
		return false, errors.Join(ErrStoreUnavailable, err)
	}
	return n > 0, nil
}

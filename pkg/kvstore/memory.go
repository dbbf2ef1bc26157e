package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"
)

// entry mirrors the Redis value model: everything is a string, counters are
// decimal integer strings. A zero expiresAt means no expiry.
type entry struct {
	raw       string
	expiresAt time.Time
}

func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// MemoryStore is the single-process Store backend: a mutex-guarded map with
// a background sweep removing expired entries.
//
// It is explicitly NOT safe across independent processes. In a horizontally
// scaled deployment every instance would count separately, so rate limits
// and lockouts would be multiplied by the instance count; use the Redis
// backend there.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]*entry

	sweepInterval time.Duration
	stopSweep     chan struct{}
	closeOnce     sync.Once
}

// MemoryStoreOption configures a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithSweepInterval sets how often expired entries are removed. A
// non-positive interval disables the background sweep; expired entries are
// then only dropped lazily on access.
func WithSweepInterval(interval time.Duration) MemoryStoreOption {
	return func(ms *MemoryStore) {
		ms.sweepInterval = interval
	}
}

// NewMemoryStore creates an in-memory store sweeping expired entries every
// minute by default.
func NewMemoryStore(opts ...MemoryStoreOption) *MemoryStore {
	ms := &MemoryStore{
		entries:       make(map[string]*entry),
		sweepInterval: time.Minute,
		stopSweep:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(ms)
	}

	if ms.sweepInterval > 0 {
		go ms.sweep()
	}

	return ms
}

func (ms *MemoryStore) Get(ctx context.Context, key string, dest any) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	e, ok := ms.entries[key]
	if !ok {
		return false, nil
	}
	if e.expired(time.Now()) {
		delete(ms.entries, key)
		return false, nil
	}

	if err := json.Unmarshal([]byte(e.raw), dest); err != nil {
		return false, fmt.Errorf("kvstore: decode value at %q: %w", key, err)
	}
	return true, nil
}

func (ms *MemoryStore) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("kvstore: encode value for %q: %w", key, err)
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()

	e := &entry{raw: string(raw)}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	ms.entries[key] = e
	return nil
}

// Increment serializes access through the store mutex even though callers in
// a single process are often already serialized, because the sweep goroutine
// can interleave with reads at the same logical moment.
func (ms *MemoryStore) Increment(ctx context.Context, key string, ttl time.Duration) (int64, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	e, ok := ms.entries[key]
	if !ok || e.expired(now) {
		e = &entry{raw: "1"}
		if ttl > 0 {
			e.expiresAt = now.Add(ttl)
		}
		ms.entries[key] = e
		return 1, nil
	}

	count, err := strconv.ParseInt(e.raw, 10, 64)
	if err != nil {
		return 0, errors.Join(ErrNotAnInteger, err)
	}
	count++
	// Expiry is deliberately left untouched: the window was fixed when the
	// counter was created.
	e.raw = strconv.FormatInt(count, 10)
	return count, nil
}

func (ms *MemoryStore) Delete(ctx context.Context, key string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.entries, key)
	return nil
}

func (ms *MemoryStore) Exists(ctx context.Context, key string) (bool, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	e, ok := ms.entries[key]
	if !ok {
		return false, nil
	}
	if e.expired(time.Now()) {
		delete(ms.entries, key)
		return false, nil
	}
	return true, nil
}

func (ms *MemoryStore) sweep() {
	ticker := time.NewTicker(ms.sweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			ms.removeExpired()
		case <-ms.stopSweep:
			return
		}
	}
}

func (ms *MemoryStore) removeExpired() {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	now := time.Now()
	for key, e := range ms.entries {
		if e.expired(now) {
			delete(ms.entries, key)
		}
	}
}

// Close stops the sweep goroutine. Safe to call multiple times.
func (ms *MemoryStore) Close() {
	ms.closeOnce.Do(func() {
		close(ms.stopSweep)
	})
}

package kvstore

import (
	"context"
	"log/slog"
	"time"

	redispkg "github.com/tallyfort/guardkit/pkg/redis"
)

// Store is a keyed value store with per-key TTL and atomic increments. It
// backs the rate limiter and the lockout engine; neither performs
// client-side read-modify-write on counters, the store's Increment is the
// sole source of truth for counts.
//
// Values are JSON-encoded on write and decoded into the caller's destination
// on read, so both backends agree byte-for-byte on representation. A Get on
// an expired key reports absence; callers may assume the key was deleted.
type Store interface {
	// Get decodes the value at key into dest, reporting whether the key
	// existed. Missing and expired keys return (false, nil).
	Get(ctx context.Context, key string, dest any) (bool, error)

	// Set stores value at key. A non-positive ttl means no expiry.
	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Increment atomically increments the counter at key and returns the new
	// count. The ttl is applied only when this increment creates the key,
	// so the window is never reset by subsequent increments.
	Increment(ctx context.Context, key string, ttl time.Duration) (int64, error)

	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Exists reports whether the key is present and unexpired.
	Exists(ctx context.Context, key string) (bool, error)
}

// Config selects the store backend for the process. Backend selection
// happens once at startup; the result is injected into every component that
// counts anything.
type Config struct {
	// RedisURL selects the distributed backend when non-empty.
	RedisURL string `env:"COUNTER_REDIS_URL"`
	// MultiInstance declares that the deployment runs more than one process.
	MultiInstance bool `env:"MULTI_INSTANCE" envDefault:"false"`
	// SweepInterval controls how often the in-memory backend drops expired
	// entries.
	SweepInterval time.Duration `env:"COUNTER_SWEEP_INTERVAL" envDefault:"60s"`
}

// New constructs the process-wide store from configuration. With a Redis URL
// it connects the shared client and returns the distributed backend;
// otherwise it returns the in-memory backend.
//
// Running multiple instances against the in-memory backend silently splits
// every counter per process, which defeats rate limiting and lockout. That
// misconfiguration is surfaced as an error-level startup log rather than a
// crash, matching the advisory nature of the MultiInstance flag.
func New(ctx context.Context, cfg Config, log *slog.Logger) (Store, error) {
	if log == nil {
		log = slog.Default()
	}

	if cfg.RedisURL != "" {
		client, err := redispkg.Connect(ctx, redispkg.Config{
			ConnectionURL:  cfg.RedisURL,
			RetryAttempts:  3,
			RetryInterval:  time.Second,
			ConnectTimeout: 10 * time.Second,
		})
		if err != nil {
			return nil, err
		}
		return NewRedisStore(client), nil
	}

	if cfg.MultiInstance {
		log.ErrorContext(ctx, "in-memory counter store selected in a multi-instance deployment; "+
			"rate limits and lockouts will not be shared across instances, set COUNTER_REDIS_URL")
	}

	return NewMemoryStore(WithSweepInterval(cfg.SweepInterval)), nil
}

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/tallyfort/guardkit/pkg/kvstore"
)

// Limiter throttles requests with fixed-window counting on top of the keyed
// counter store. Fixed windows accept the well-known boundary bias (up to
// twice the limit across a window edge) in exchange for O(1) storage and a
// single atomic store operation per check. This trade-off is intentional;
// do not swap in a sliding window without a product decision.
type Limiter struct {
	store kvstore.Store
	now   func() time.Time
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(l *Limiter) {
		if now != nil {
			l.now = now
		}
	}
}

// New creates a Limiter over the given store. The store is the shared
// process-wide instance; the limiter never talks to the network directly.
func New(store kvstore.Store, opts ...Option) (*Limiter, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	l := &Limiter{store: store, now: time.Now}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Check counts one request against the policy's window for the given key and
// reports whether it is allowed. Store errors propagate unchanged: the
// limiter takes no fail-open or fail-closed stance, that sensitivity
// decision belongs to the caller.
func (l *Limiter) Check(ctx context.Context, key string, policy Policy) (Result, error) {
	if err := policy.validate(); err != nil {
		return Result{}, err
	}

	bucket := fmt.Sprintf("ratelimit:%s:%s", policy.Name, key)
	count, err := l.store.Increment(ctx, bucket, policy.Window)
	if err != nil {
		return Result{}, err
	}

	return Result{
		Allowed:   count <= policy.Limit,
		Limit:     policy.Limit,
		Remaining: max(0, policy.Limit-count),
		ResetAt:   l.now().Add(policy.Window),
	}, nil
}

// Reset clears the current window for key under the policy.
func (l *Limiter) Reset(ctx context.Context, key string, policy Policy) error {
	if err := policy.validate(); err != nil {
		return err
	}
	return l.store.Delete(ctx, fmt.Sprintf("ratelimit:%s:%s", policy.Name, key))
}

func (p Policy) validate() error {
	if p.Name == "" {
		return fmt.Errorf("%w: policy name is required", ErrInvalidPolicy)
	}
	if p.Limit <= 0 {
		return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidPolicy, p.Limit)
	}
	if p.Window <= 0 {
		return fmt.Errorf("%w: window must be positive, got %v", ErrInvalidPolicy, p.Window)
	}
	return nil
}

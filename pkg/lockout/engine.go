package lockout

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/tallyfort/guardkit/pkg/audit"
	"github.com/tallyfort/guardkit/pkg/kvstore"
)

const (
	// MaxFailedAttempts is the failure count that triggers a lock.
	MaxFailedAttempts = 5
	// LockoutDuration is how long a triggered lock holds.
	LockoutDuration = 15 * time.Minute
	// AttemptWindow is how far back failures count; older failures are
	// forgiven.
	AttemptWindow = time.Hour

	// lockTTLBuffer pads the lock record's TTL past the lock expiry so lazy
	// expiry still observes the record under modest clock skew.
	lockTTLBuffer = time.Minute
)

// Record is the persisted per-identifier failure state. Timestamps are unix
// milliseconds.
type Record struct {
	FailedAttempts int   `json:"failedAttempts"`
	LastAttempt    int64 `json:"lastAttempt"`
	LockedUntil    int64 `json:"lockedUntil,omitempty"`
}

// Status reports whether an identifier is currently locked.
type Status struct {
	Locked    bool
	Remaining time.Duration
	// Reason is a generic human-readable message safe to show to the
	// client; it never reveals whether the identifier exists.
	Reason string
}

// FailureResult is the outcome of recording one failed attempt.
type FailureResult struct {
	Locked            bool
	AttemptsRemaining int
}

// Engine is the account lockout state machine. All state lives in the
// counter store under "lockout:<normalized id>"; the engine itself is
// stateless and safe for concurrent use.
type Engine struct {
	store   kvstore.Store
	auditor *audit.Logger
	now     func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithAudit routes security events (lock triggered, admin unlock) through
// the given audit logger.
func WithAudit(auditor *audit.Logger) Option {
	return func(e *Engine) { e.auditor = auditor }
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates a lockout engine over the shared counter store.
func NewEngine(store kvstore.Store, opts ...Option) (*Engine, error) {
	if store == nil {
		return nil, ErrNilStore
	}
	e := &Engine{
		store:   store,
		auditor: audit.NewLogger(nil),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// storageKey lowercases the identifier so the same account cannot be probed
// under differing email casing.
func storageKey(id string) string {
	return "lockout:" + strings.ToLower(strings.TrimSpace(id))
}

// IsLocked reports the lock state for the identifier. A lock whose expiry
// has passed is removed on the spot (lazy expiry) and reported as unlocked.
func (e *Engine) IsLocked(ctx context.Context, id string) (Status, error) {
	key := storageKey(id)

	var rec Record
	found, err := e.store.Get(ctx, key, &rec)
	if err != nil {
		return Status{}, err
	}
	if !found || rec.LockedUntil == 0 {
		return Status{}, nil
	}

	now := e.now().UnixMilli()
	if rec.LockedUntil <= now {
		if err := e.store.Delete(ctx, key); err != nil {
			return Status{}, err
		}
		return Status{}, nil
	}

	remaining := time.Duration(rec.LockedUntil-now) * time.Millisecond
	return Status{
		Locked:    true,
		Remaining: remaining,
		Reason:    lockMessage(remaining),
	}, nil
}

// RecordFailure registers one failed authentication attempt. Failures
// older than the attempt window are forgiven before counting. The call that
// reaches MaxFailedAttempts lays the lock and emits a security audit event;
// attempts recorded while already locked do not extend the lock.
func (e *Engine) RecordFailure(ctx context.Context, id string) (FailureResult, error) {
	key := storageKey(id)
	now := e.now().UnixMilli()

	var rec Record
	found, err := e.store.Get(ctx, key, &rec)
	if err != nil {
		return FailureResult{}, err
	}
	if !found {
		rec = Record{}
	}

	if rec.LastAttempt > 0 && now-rec.LastAttempt > AttemptWindow.Milliseconds() {
		rec.FailedAttempts = 0
		rec.LockedUntil = 0
	}

	rec.FailedAttempts++
	rec.LastAttempt = now

	if rec.FailedAttempts >= MaxFailedAttempts {
		// An active lock is never extended by further attempts; an expired
		// one may have a fresh lock laid over it.
		if rec.LockedUntil == 0 || rec.LockedUntil <= now {
			rec.LockedUntil = now + LockoutDuration.Milliseconds()
			_ = e.auditor.Log(ctx, "account_locked",
				audit.WithIdentifier(strings.ToLower(strings.TrimSpace(id))),
				audit.WithResult(audit.ResultFailure),
				audit.WithMetadata(map[string]any{
					"failed_attempts": rec.FailedAttempts,
					"locked_until":    rec.LockedUntil,
				}),
			)
		}
		if err := e.store.Set(ctx, key, rec, LockoutDuration+lockTTLBuffer); err != nil {
			return FailureResult{}, err
		}
		return FailureResult{Locked: true, AttemptsRemaining: 0}, nil
	}

	if err := e.store.Set(ctx, key, rec, AttemptWindow); err != nil {
		return FailureResult{}, err
	}
	return FailureResult{
		AttemptsRemaining: MaxFailedAttempts - rec.FailedAttempts,
	}, nil
}

// Clear removes the failure record unconditionally. Call on successful
// authentication.
func (e *Engine) Clear(ctx context.Context, id string) error {
	return e.store.Delete(ctx, storageKey(id))
}

// AdminUnlock removes the failure record on behalf of an administrator,
// recording who did it. Returns false when no record existed.
func (e *Engine) AdminUnlock(ctx context.Context, id, actor string) (bool, error) {
	key := storageKey(id)

	exists, err := e.store.Exists(ctx, key)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	if err := e.store.Delete(ctx, key); err != nil {
		return false, err
	}
	_ = e.auditor.Log(ctx, "admin_unlock",
		audit.WithIdentifier(strings.ToLower(strings.TrimSpace(id))),
		audit.WithActor(actor),
	)
	return true, nil
}

// lockMessage formats the generic rejection shown to clients. Minutes are
// rounded up so the message never promises an earlier retry than the lock
// allows.
func lockMessage(remaining time.Duration) string {
	minutes := int(math.Ceil(remaining.Minutes()))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("Too many failed attempts. Try again in %d minutes.", minutes)
}

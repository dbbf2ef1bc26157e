package lockout_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyfort/guardkit/pkg/kvstore"
	"github.com/tallyfort/guardkit/pkg/lockout"
)

// fakeClock lets tests advance time without sleeping.
type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time          { return c.now }
func (c *fakeClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

func newEngine(t *testing.T) (*lockout.Engine, *fakeClock) {
	t.Helper()
	store := kvstore.NewMemoryStore(kvstore.WithSweepInterval(0))
	t.Cleanup(store.Close)

	clock := &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	engine, err := lockout.NewEngine(store, lockout.WithClock(clock.Now))
	require.NoError(t, err)
	return engine, clock
}

func TestFreshIdentifierUnlocked(t *testing.T) {
	t.Parallel()
	engine, _ := newEngine(t)

	status, err := engine.IsLocked(context.Background(), "user@example.com")
	require.NoError(t, err)
	assert.False(t, status.Locked)
}

func TestFifthFailureLocks(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newEngine(t)

	for i := 1; i <= 4; i++ {
		result, err := engine.RecordFailure(ctx, "user@example.com")
		require.NoError(t, err)
		assert.False(t, result.Locked)
		assert.Equal(t, 5-i, result.AttemptsRemaining)
	}

	result, err := engine.RecordFailure(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, result.Locked)
	assert.Zero(t, result.AttemptsRemaining)

	status, err := engine.IsLocked(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, status.Locked)
	assert.InDelta(t, lockout.LockoutDuration, status.Remaining, float64(time.Second))
	assert.Contains(t, status.Reason, "Too many failed attempts")
}

func TestSixthFailureDoesNotExtendLock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, clock := newEngine(t)

	for range 5 {
		_, err := engine.RecordFailure(ctx, "user@example.com")
		require.NoError(t, err)
	}

	clock.Advance(5 * time.Minute)

	result, err := engine.RecordFailure(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, result.Locked)

	status, err := engine.IsLocked(ctx, "user@example.com")
	require.NoError(t, err)
	require.True(t, status.Locked)
	// 10 minutes remain of the original lock; the 6th failure added nothing.
	assert.InDelta(t, 10*time.Minute, status.Remaining, float64(time.Second))
}

func TestLockExpiresLazily(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, clock := newEngine(t)

	for range 5 {
		_, err := engine.RecordFailure(ctx, "user@example.com")
		require.NoError(t, err)
	}

	clock.Advance(lockout.LockoutDuration + time.Second)

	status, err := engine.IsLocked(ctx, "user@example.com")
	require.NoError(t, err)
	assert.False(t, status.Locked)

	// The expired record was deleted; a new failure starts from scratch.
	result, err := engine.RecordFailure(ctx, "user@example.com")
	require.NoError(t, err)
	assert.False(t, result.Locked)
	assert.Equal(t, 4, result.AttemptsRemaining)
}

func TestStaleWindowForgiveness(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, clock := newEngine(t)

	for range 4 {
		_, err := engine.RecordFailure(ctx, "user@example.com")
		require.NoError(t, err)
	}

	clock.Advance(lockout.AttemptWindow + time.Minute)

	result, err := engine.RecordFailure(ctx, "user@example.com")
	require.NoError(t, err)
	assert.False(t, result.Locked, "stale failures must be forgiven, not accumulated")
	assert.Equal(t, 4, result.AttemptsRemaining)
}

func TestClearOnSuccess(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newEngine(t)

	for range 3 {
		_, err := engine.RecordFailure(ctx, "user@example.com")
		require.NoError(t, err)
	}

	require.NoError(t, engine.Clear(ctx, "user@example.com"))

	result, err := engine.RecordFailure(ctx, "user@example.com")
	require.NoError(t, err)
	assert.Equal(t, 4, result.AttemptsRemaining, "cleared record must restart the count")
}

func TestIdentifierCaseNormalization(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newEngine(t)

	for range 5 {
		_, err := engine.RecordFailure(ctx, "User@Example.COM")
		require.NoError(t, err)
	}

	status, err := engine.IsLocked(ctx, "user@example.com")
	require.NoError(t, err)
	assert.True(t, status.Locked, "casing variants must map to the same record")
}

func TestAdminUnlock(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, _ := newEngine(t)

	unlocked, err := engine.AdminUnlock(ctx, "user@example.com", "admin@example.com")
	require.NoError(t, err)
	assert.False(t, unlocked, "no record means nothing to unlock")

	for range 5 {
		_, err := engine.RecordFailure(ctx, "user@example.com")
		require.NoError(t, err)
	}

	unlocked, err = engine.AdminUnlock(ctx, "user@example.com", "admin@example.com")
	require.NoError(t, err)
	assert.True(t, unlocked)

	status, err := engine.IsLocked(ctx, "user@example.com")
	require.NoError(t, err)
	assert.False(t, status.Locked)
}

// Scenario from the authentication flow: lock out after five failures, wait
// out the lock, then succeed and clear.
func TestLockoutLifecycle(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	engine, clock := newEngine(t)

	for range 5 {
		_, err := engine.RecordFailure(ctx, "user@example.com")
		require.NoError(t, err)
	}

	status, err := engine.IsLocked(ctx, "user@example.com")
	require.NoError(t, err)
	require.True(t, status.Locked)

	clock.Advance(15*time.Minute + time.Second)

	status, err = engine.IsLocked(ctx, "user@example.com")
	require.NoError(t, err)
	require.False(t, status.Locked)

	// Correct password now: caller clears the record.
	require.NoError(t, engine.Clear(ctx, "user@example.com"))
	status, err = engine.IsLocked(ctx, "user@example.com")
	require.NoError(t, err)
	assert.False(t, status.Locked)
}

package kvstore_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyfort/guardkit/pkg/kvstore"
)

func newMemory(t *testing.T) *kvstore.MemoryStore {
	t.Helper()
	ms := kvstore.NewMemoryStore(kvstore.WithSweepInterval(0))
	t.Cleanup(ms.Close)
	return ms
}

func TestMemorySetGetRoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ms := newMemory(t)

	type record struct {
		Count int    `json:"count"`
		Note  string `json:"note"`
	}

	require.NoError(t, ms.Set(ctx, "k", record{Count: 3, Note: "hi"}, 0))

	var got record
	found, err := ms.Get(ctx, "k", &got)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, record{Count: 3, Note: "hi"}, got)
}

func TestMemoryGetMissing(t *testing.T) {
	t.Parallel()
	ms := newMemory(t)

	var dest string
	found, err := ms.Get(context.Background(), "nope", &dest)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryExpiry(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ms := newMemory(t)

	require.NoError(t, ms.Set(ctx, "k", "v", 20*time.Millisecond))

	exists, err := ms.Exists(ctx, "k")
	require.NoError(t, err)
	assert.True(t, exists)

	time.Sleep(30 * time.Millisecond)

	var dest string
	found, err := ms.Get(ctx, "k", &dest)
	require.NoError(t, err)
	assert.False(t, found, "expired key must read as absent")

	exists, err = ms.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemoryIncrement(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ms := newMemory(t)

	for want := int64(1); want <= 3; want++ {
		got, err := ms.Increment(ctx, "counter", time.Minute)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	var count int64
	found, err := ms.Get(ctx, "counter", &count)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(3), count)
}

func TestMemoryIncrementExpiredRestarts(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ms := newMemory(t)

	_, err := ms.Increment(ctx, "counter", 20*time.Millisecond)
	require.NoError(t, err)

	time.Sleep(30 * time.Millisecond)

	got, err := ms.Increment(ctx, "counter", 20*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got, "expired counter must restart at 1")
}

func TestMemoryIncrementNonNumeric(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ms := newMemory(t)

	require.NoError(t, ms.Set(ctx, "k", "not a number", 0))

	_, err := ms.Increment(ctx, "k", 0)
	require.ErrorIs(t, err, kvstore.ErrNotAnInteger)
}

func TestMemoryIncrementConcurrent(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ms := newMemory(t)

	const goroutines = 50
	const perGoroutine = 20

	var wg sync.WaitGroup
	for range goroutines {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range perGoroutine {
				_, err := ms.Increment(ctx, "counter", time.Minute)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	var count int64
	found, err := ms.Get(ctx, "counter", &count)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, int64(goroutines*perGoroutine), count, "no increment may be lost")
}

func TestMemoryDelete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	ms := newMemory(t)

	require.NoError(t, ms.Set(ctx, "k", "v", 0))
	require.NoError(t, ms.Delete(ctx, "k"))
	require.NoError(t, ms.Delete(ctx, "k"), "double delete is not an error")

	exists, err := ms.Exists(ctx, "k")
	require.NoError(t, err)
	assert.False(t, exists)
}

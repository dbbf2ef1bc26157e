package timingsafe

import (
	"context"
	"crypto/subtle"
	"math/rand/v2"
	"time"
)

const (
	// DefaultFloor is the minimum response time enforced on sensitive
	// operations.
	DefaultFloor = 200 * time.Millisecond
	// DefaultJitter is the maximum random addition to the floor, breaking
	// up the otherwise-constant response time signature.
	DefaultJitter = 50 * time.Millisecond

	// padByte fills the shorter input during comparison so the byte loop
	// always runs over equal-length buffers.
	padByte = 0x00
)

// Compare reports whether a and b are equal without leaking where they
// differ or how long they are. Both strings are padded to a common length
// before the constant-time byte comparison, and the original lengths are
// checked independently, so neither content position nor length shows up in
// timing.
func Compare(a, b string) bool {
	maxLen := max(len(a), len(b))

	paddedA := make([]byte, maxLen)
	paddedB := make([]byte, maxLen)
	for i := range maxLen {
		paddedA[i] = padByte
		paddedB[i] = padByte
	}
	copy(paddedA, a)
	copy(paddedB, b)

	contentEqual := subtle.ConstantTimeCompare(paddedA, paddedB)
	lengthEqual := subtle.ConstantTimeEq(int32(len(a)), int32(len(b)))

	return contentEqual&lengthEqual == 1
}

// EnsureMinimum blocks until at least floor plus a random jitter has passed
// since start. Call at the end of a sensitive operation so fast paths (user
// not found, malformed input) take as long as slow ones. Returns early with
// the context error if the context is cancelled while waiting.
func EnsureMinimum(ctx context.Context, start time.Time, floor, jitter time.Duration) error {
	if floor <= 0 {
		floor = DefaultFloor
	}
	if jitter < 0 {
		jitter = DefaultJitter
	}

	target := floor
	if jitter > 0 {
		target += rand.N(jitter)
	}

	remaining := target - time.Since(start)
	if remaining <= 0 {
		return nil
	}
	return sleep(ctx, remaining)
}

// Do runs fn and delays both its success and failure paths to the same
// floor, so an observer cannot distinguish outcomes by response latency.
// The fn error is returned after the delay; a cancelled context surfaces as
// the context error.
func Do[T any](ctx context.Context, floor time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	start := time.Now()
	result, err := fn(ctx)

	if delayErr := EnsureMinimum(ctx, start, floor, DefaultJitter); delayErr != nil {
		var zero T
		return zero, delayErr
	}
	return result, err
}

// SimulateLookup sleeps 50–150ms, the latency profile of a typical indexed
// database lookup. Use on not-found branches that would otherwise return
// near-instantly, so existence checks are indistinguishable from real
// lookups.
func SimulateLookup(ctx context.Context) error {
	return sleep(ctx, 50*time.Millisecond+rand.N(100*time.Millisecond))
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

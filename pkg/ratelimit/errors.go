package ratelimit

import "errors"

var (
	// ErrInvalidPolicy indicates a policy with a missing name or
	// non-positive limit or window.
	ErrInvalidPolicy = errors.New("invalid rate limit policy")

	// ErrNilStore indicates the limiter was constructed without a store.
	ErrNilStore = errors.New("nil counter store")
)

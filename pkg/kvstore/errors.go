package kvstore

import "errors"

var (
	// ErrStoreUnavailable wraps transport failures against the distributed
	// backend. It propagates to callers, who decide fail-open versus
	// fail-closed per operation; authentication-adjacent checks should
	// prefer fail-closed.
	ErrStoreUnavailable = errors.New("counter store unavailable")

	// ErrNotAnInteger is returned when Increment targets a key holding a
	// non-numeric value.
	ErrNotAnInteger = errors.New("value at key is not an integer")
)

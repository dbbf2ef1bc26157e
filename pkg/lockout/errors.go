package lockout

import "errors"

var (
	// ErrNilStore indicates the engine was constructed without a store.
	ErrNilStore = errors.New("nil counter store")
)

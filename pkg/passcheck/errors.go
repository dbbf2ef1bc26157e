package passcheck

import "errors"

var (
	// ErrBreachCheckFailed wraps transport-level failures against the
	// breach range API. The caller decides whether to block or degrade.
	ErrBreachCheckFailed = errors.New("password breach check failed")
)

package ratelimit

import "time"

// Policy is a named fixed-window limit. Callers select a preset rather than
// passing raw numbers so tuning stays consistent across call sites.
type Policy struct {
	Name   string
	Limit  int64
	Window time.Duration
}

// Preset policies. Authentication and token-validation traffic gets tight
// limits; read-only traffic is looser.
var (
	PolicyAuth            = Policy{Name: "auth", Limit: 10, Window: 15 * time.Minute}
	PolicyTokenValidation = Policy{Name: "token-validation", Limit: 30, Window: time.Minute}
	PolicyAPIRead         = Policy{Name: "api-read", Limit: 300, Window: time.Minute}
	PolicyAPIWrite        = Policy{Name: "api-write", Limit: 60, Window: time.Minute}
)

// Result describes the outcome of a rate limit check.
type Result struct {
	Allowed   bool
	Limit     int64
	Remaining int64
	ResetAt   time.Time
}

// RetryAfter returns how long the client should wait before retrying.
// Returns 0 when the request was allowed.
func (r Result) RetryAfter() time.Duration {
	if r.Allowed {
		return 0
	}
	return time.Until(r.ResetAt)
}

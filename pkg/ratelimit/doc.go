// Package ratelimit implements fixed-window request throttling on top of the
// keyed counter store.
//
// Each check is one atomic increment on a bucket keyed by
// "ratelimit:<policy>:<key>" with the policy window as TTL; a request is
// allowed while the count stays within the policy limit. Policies are named
// presets (PolicyAuth, PolicyTokenValidation, PolicyAPIRead, PolicyAPIWrite)
// so tuning lives in one place.
//
// The fixed window admits up to twice the limit across a window boundary.
// That bias is accepted intentionally for O(1) storage and single-operation
// atomicity.
//
// Middleware adapts a Limiter to net/http, emitting X-RateLimit-Limit,
// X-RateLimit-Remaining and X-RateLimit-Reset headers and answering
// over-limit requests with 429 plus Retry-After. Key functions compose via
// Composite; ByClientIP keys anonymous traffic using the trusted
// forwarded-header chain.
package ratelimit

package ratelimit

import (
	"net/http"
	"strconv"
)

// Middleware enforces the policy per request key, emitting the conventional
// X-RateLimit headers and rejecting over-limit traffic with 429 and a
// Retry-After hint. The rejection body is deliberately generic so it reveals
// nothing about the keyed identity.
//
// A store failure surfaces as 500: the middleware fails closed. Callers
// preferring fail-open should wrap the limiter themselves instead of using
// this middleware.
func Middleware(limiter *Limiter, policy Policy, keyFunc KeyFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result, err := limiter.Check(r.Context(), keyFunc(r), policy)
			if err != nil {
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			w.Header().Set("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
			w.Header().Set("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
			w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))

			if !result.Allowed {
				if retryAfter := int(result.RetryAfter().Seconds()); retryAfter > 0 {
					w.Header().Set("Retry-After", strconv.Itoa(retryAfter))
				}
				http.Error(w, "Too Many Requests", http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

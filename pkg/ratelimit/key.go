package ratelimit

import (
	"hash/fnv"
	"net/http"
	"strconv"
	"strings"

	"github.com/tallyfort/guardkit/pkg/clientip"
)

// maxKeyLength bounds storage key size; longer composites are hashed.
const maxKeyLength = 64

// KeyFunc extracts a rate limit key from the request.
type KeyFunc func(r *http.Request) string

// ByClientIP keys anonymous traffic by the originating client IP taken from
// the trusted forwarded-header chain.
func ByClientIP(r *http.Request) string {
	return clientip.GetIP(r)
}

// ByHeader returns a KeyFunc keying on a request header, e.g. an API key.
func ByHeader(name string) KeyFunc {
	return func(r *http.Request) string {
		return r.Header.Get(name)
	}
}

// Composite combines multiple key functions into one. Long keys are hashed
// with FNV-1a to keep store keys compact.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}

		if len(parts) == 0 {
			return ""
		}
		if len(parts) == 1 && len(parts[0]) <= maxKeyLength {
			return parts[0]
		}

		combined := strings.Join(parts, ":")
		if len(combined) > maxKeyLength {
			h := fnv.New64a()
			h.Write([]byte(combined))
			return strconv.FormatUint(h.Sum64(), 36)
		}
		return combined
	}
}

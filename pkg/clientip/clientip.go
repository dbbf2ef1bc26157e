package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Header priority reflects what the edge proxy is trusted to sanitize:
// Cloudflare sets CF-Connecting-IP, conventional reverse proxies append to
// X-Forwarded-For, nginx sets X-Real-IP. Only deploy this behind a proxy
// that strips client-supplied copies of these headers.
var trustedHeaders = []string{
	"CF-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP returns the client's IP address for the request, walking the trusted
// forwarded-header chain in priority order and falling back to RemoteAddr.
// X-Forwarded-For may carry a comma-separated chain; the first valid entry is
// the originating client.
func GetIP(r *http.Request) string {
	for _, header := range trustedHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}
		for part := range strings.SplitSeq(value, ",") {
			if ip := normalizeIP(part); ip != "" {
				return ip
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		// RemoteAddr without a port, assume it is already a bare IP.
		return normalizeIP(r.RemoteAddr)
	}
	return normalizeIP(host)
}

// normalizeIP validates and canonicalizes an IP address string, returning
// empty for anything net.ParseIP rejects.
func normalizeIP(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	ip := net.ParseIP(s)
	if ip == nil {
		return ""
	}
	return ip.String()
}

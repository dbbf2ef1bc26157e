// Package clientip extracts the originating client IP from HTTP requests
// behind trusted reverse proxies.
//
// Resolution order: CF-Connecting-IP, X-Forwarded-For (first valid entry in
// the chain), X-Real-IP, then the connection's RemoteAddr. Every candidate is
// validated and normalized with net.ParseIP so spoofed garbage never becomes
// a rate-limit key. The header chain is only trustworthy when the edge proxy
// overwrites or strips client-supplied values; see GetIP.
package clientip

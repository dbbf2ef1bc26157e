// Package redis wires up the shared go-redis client used by the distributed
// counter store.
//
// Connect parses a redis:// URL from configuration and retries until the
// server answers PING or the connect timeout elapses. The resulting client
// is constructed once per process and injected wherever a distributed
// backend is required; no other package opens network connections to Redis
// directly. Healthcheck exposes a readiness probe over the same client.
package redis

// Package kvstore provides the keyed counter store backing the rate limiter
// and the account lockout engine: a key/value store with per-key TTL and
// atomic increments.
//
// Two backends implement the Store interface. MemoryStore is a mutex-guarded
// map with a background sweep, suitable only for a single process.
// RedisStore delegates counting to Redis INCR and millisecond expiry
// (PEXPIRE / SET PX), which makes concurrent increments from independent
// instances lose no updates. In both backends the TTL is fixed when a
// counter is created and never reset by later increments, so a counting
// window cannot be stretched by traffic.
//
// The backend is chosen once at process startup by New, driven by the
// COUNTER_REDIS_URL environment variable, and injected into consumers.
// Selecting the in-memory backend while MULTI_INSTANCE is set logs a loud
// startup error because split counters silently weaken every limit.
package kvstore

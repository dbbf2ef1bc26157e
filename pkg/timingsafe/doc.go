// Package timingsafe defends authentication code paths against timing
// side channels.
//
// Compare is a constant-time string equality check that leaks neither the
// position of the first differing byte nor the length difference.
// EnsureMinimum and Do enforce a minimum response time (with jitter) on
// sensitive operations so that success and failure paths are
// latency-indistinguishable, and SimulateLookup pads not-found branches
// with a realistic database-lookup delay to defeat account enumeration.
//
// All waits are context-aware and return the context error on cancellation.
package timingsafe

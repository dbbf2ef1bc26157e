// Package lockout implements escalating account lockout against brute-force
// authentication attempts.
//
// Each identifier (normalized to lowercase before keying) moves through
// three states: fresh, accumulating failures, and locked. Five failures
// inside a one-hour window lock the account for fifteen minutes; failures
// older than the window are forgiven. Locks expire lazily: the next status
// check past the expiry deletes the record. A successful authentication
// clears the record unconditionally, and administrators can unlock early
// with an audited AdminUnlock.
//
// State is persisted through the keyed counter store, so the engine shares
// lock decisions across instances when the distributed backend is
// configured. Store errors propagate to the caller; authentication-adjacent
// callers should treat them as fail-closed.
//
// Lock messages are generic ("Too many failed attempts…") and never reveal
// whether the identifier corresponds to a real account.
package lockout

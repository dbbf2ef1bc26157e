// Package statetoken issues tamper-proof, short-lived opaque tokens for
// CSRF-resistant redirect flows, typically the OAuth state parameter.
//
// A token is base64url(JSON payload) + "." + base64url(HMAC-SHA256
// signature), where the payload embeds the caller's string map, a
// millisecond timestamp, and a random 16-byte nonce. Tokens are stateless:
// nothing is persisted server-side, and verification relies only on the
// signature and the embedded timestamp. Verify checks the signature in
// constant time before touching the payload, then enforces the 10-minute
// default lifetime and rejects future-dated timestamps.
//
// The component keeps no replay cache. Tokens are single-purpose per call
// site; callers needing strict one-time use must track nonces themselves.
package statetoken

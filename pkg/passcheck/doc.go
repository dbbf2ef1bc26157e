// Package passcheck evaluates candidate passwords with two independent
// signals: pattern-based strength heuristics and a privacy-preserving
// breach-corpus lookup.
//
// ValidateStrength applies local rules (minimum length, common-password
// list, sequential and repeated character runs). BreachClient performs a
// k-anonymity range query against a haveibeenpwned-compatible API: the
// password is SHA-1 hashed, only the first five hex characters are sent,
// and the returned SUFFIX:COUNT lines are matched locally, so neither the
// password nor its full hash ever leaves the process.
//
// The two signals are combined by the caller; a breach API outage
// propagates as an error rather than silently passing the password.
package passcheck

package passcheck

import "strings"

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// StrengthResult lists the heuristic failures for a candidate password.
// An empty Issues slice means the password passed every pattern check;
// callers combine this with the breach verdict from CheckBreached.
type StrengthResult struct {
	Valid  bool
	Issues []string
}

// commonPasswords is a lowercase subset of frequently breached passwords.
// The breach API covers the long tail; this list catches the worst
// offenders without a network round-trip.
var commonPasswords = map[string]struct{}{
	"password": {}, "123456": {}, "12345678": {}, "123456789": {},
	"qwerty": {}, "abc123": {}, "letmein": {}, "monkey": {},
	"dragon": {}, "iloveyou": {}, "trustno1": {}, "sunshine": {},
	"master": {}, "welcome": {}, "welcome1": {}, "shadow": {},
	"admin": {}, "login": {}, "passw0rd": {}, "password1": {},
	"password123": {}, "p@ssword": {}, "p@ssw0rd": {}, "changeme": {},
	"qwerty123": {}, "football": {}, "baseball": {}, "superman": {},
}

// ValidateStrength runs the pattern-based heuristics: minimum length,
// common-password lookup, and rejection of sequential or repeating
// character runs. It is one signal among several; the breach check is the
// other.
func ValidateStrength(password string) StrengthResult {
	var issues []string

	if len(password) < MinPasswordLength {
		issues = append(issues, "password must be at least 8 characters")
	}

	if _, ok := commonPasswords[strings.ToLower(password)]; ok {
		issues = append(issues, "password is too common")
	}

	if hasSequentialRun(password, 4) {
		issues = append(issues, "password contains a sequential character run")
	}

	if hasRepeatingRun(password, 4) {
		issues = append(issues, "password contains a repeated character run")
	}

	return StrengthResult{Valid: len(issues) == 0, Issues: issues}
}

// hasSequentialRun reports an ascending or descending run of at least n
// consecutive characters, like "abcd" or "4321".
func hasSequentialRun(s string, n int) bool {
	if len(s) < n {
		return false
	}

	ascending, descending := 1, 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1]+1 {
			ascending++
		} else {
			ascending = 1
		}
		if s[i] == s[i-1]-1 {
			descending++
		} else {
			descending = 1
		}
		if ascending >= n || descending >= n {
			return true
		}
	}
	return false
}

// hasRepeatingRun reports n or more of the same character in a row, like
// "aaaa".
func hasRepeatingRun(s string, n int) bool {
	if len(s) < n {
		return false
	}

	run := 1
	for i := 1; i < len(s); i++ {
		if s[i] == s[i-1] {
			run++
			if run >= n {
				return true
			}
		} else {
			run = 1
		}
	}
	return false
}

package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

// BackupCodeCount is the fixed number of codes issued per enrollment.
const BackupCodeCount = 10

// GenerateBackupCodes creates the fixed set of single-use backup codes,
// each 8 independently random hex characters formatted as XXXX-XXXX.
// Callers store only the hashes (HashBackupCode) and must track per-index
// consumption themselves.
func GenerateBackupCodes() ([]string, error) {
	codes := make([]string, BackupCodeCount)
	for i := range codes {
		raw := make([]byte, 4)
		if _, err := rand.Read(raw); err != nil {
			return nil, errors.Join(ErrFailedToGenerateBackupCode, err)
		}
		code := fmt.Sprintf("%08X", raw)
		codes[i] = code[:4] + "-" + code[4:]
	}
	return codes, nil
}

// HashBackupCode returns the hex HMAC-SHA256 of the normalized code under
// the server secret. Normalization strips hyphens and uppercases, so
// user-typed variants of a valid code hash identically.
func HashBackupCode(code string, secret []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(normalizeBackupCode(code)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifyBackupCode hashes the supplied code and scans hashedCodes for a
// match, returning the matched index so the caller can mark that specific
// code consumed, or -1 when nothing matches. Every entry is compared in
// constant time and the scan never exits early, keeping verification
// latency independent of match position.
func VerifyBackupCode(code string, secret []byte, hashedCodes []string) int {
	candidate := []byte(HashBackupCode(code, secret))

	matched := -1
	for i, stored := range hashedCodes {
		if subtle.ConstantTimeCompare(candidate, []byte(stored)) == 1 && matched == -1 {
			matched = i
		}
	}
	return matched
}

func normalizeBackupCode(code string) string {
	code = strings.ReplaceAll(code, "-", "")
	code = strings.ReplaceAll(code, " ", "")
	return strings.ToUpper(code)
}

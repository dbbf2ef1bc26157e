package statetoken

import "errors"

var (
	// ErrWeakSecret indicates the signing secret is missing or shorter than
	// MinSecretLength bytes.
	ErrWeakSecret = errors.New("state token secret must be at least 32 bytes")

	// ErrFailedToCreateToken wraps unexpected failures during token
	// creation.
	ErrFailedToCreateToken = errors.New("failed to create state token")

	// ErrMalformedToken indicates the token does not have the expected
	// two-segment structure or carries an undecodable payload.
	ErrMalformedToken = errors.New("malformed state token")

	// ErrBadSignature indicates the signature does not match the payload.
	ErrBadSignature = errors.New("state token signature mismatch")

	// ErrTokenExpired indicates the token is older than the allowed age.
	ErrTokenExpired = errors.New("state token expired")

	// ErrTokenFromFuture indicates the token's timestamp is ahead of the
	// server clock, a sign of tampering.
	ErrTokenFromFuture = errors.New("state token timestamp is in the future")
)

package statetoken

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

const (
	// MinSecretLength is the minimum signing secret size in bytes. Anything
	// shorter makes the HMAC brute-forceable and is rejected at
	// construction time so the process fails closed on misconfiguration.
	MinSecretLength = 32

	// DefaultMaxAge bounds how long a token verifies after creation.
	DefaultMaxAge = 10 * time.Minute

	nonceLength = 16
)

// Config carries the signing secret, loaded once at process start.
type Config struct {
	Secret string `env:"STATE_TOKEN_SECRET,required"`
}

// payload is the signed token body. The nonce makes otherwise-identical
// data maps produce distinct tokens; the timestamp bounds token lifetime.
// Security rests entirely on the signature and this embedded timestamp, no
// server-side state is kept.
type payload struct {
	Data      map[string]string `json:"data"`
	Timestamp int64             `json:"timestamp"`
	Nonce     string            `json:"nonce"`
}

// Verification is the typed outcome of Verify. Invalid tokens are an
// expected input class, not an exceptional one: Err carries one of the
// sentinel errors and Valid stays false.
type Verification struct {
	Valid bool
	Data  map[string]string
	Err   error
}

// Signer creates and verifies HMAC-signed state tokens for CSRF-resistant
// redirect flows (OAuth state parameters and similar).
type Signer struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// Option configures a Signer.
type Option func(*Signer)

// WithMaxAge overrides the default 10-minute token lifetime.
func WithMaxAge(maxAge time.Duration) Option {
	return func(s *Signer) {
		if maxAge > 0 {
			s.maxAge = maxAge
		}
	}
}

// WithClock overrides the time source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Signer) {
		if now != nil {
			s.now = now
		}
	}
}

// NewSigner creates a Signer from configuration. A missing or short secret
// is a configuration error: verification must never silently accept
// unsigned state, so construction fails instead.
func NewSigner(cfg Config, opts ...Option) (*Signer, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, ErrWeakSecret
	}
	s := &Signer{
		secret: []byte(cfg.Secret),
		maxAge: DefaultMaxAge,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Create builds a signed token embedding the data map, the current
// timestamp in milliseconds, and a random nonce. The result is
// base64url(payload) + "." + base64url(signature): opaque, URL-safe, and
// self-contained.
func (s *Signer) Create(data map[string]string) (string, error) {
	nonce := make([]byte, nonceLength)
	if _, err := rand.Read(nonce); err != nil {
		return "", errors.Join(ErrFailedToCreateToken, err)
	}

	if data == nil {
		data = map[string]string{}
	}
	body, err := json.Marshal(payload{
		Data:      data,
		Timestamp: s.now().UnixMilli(),
		Nonce:     hex.EncodeToString(nonce),
	})
	if err != nil {
		return "", errors.Join(ErrFailedToCreateToken, err)
	}

	payloadEnc := base64.RawURLEncoding.EncodeToString(body)
	return payloadEnc + "." + base64.RawURLEncoding.EncodeToString(s.sign(payloadEnc)), nil
}

// Verify checks the token's signature and freshness, returning the embedded
// data on success. The signature is verified before the payload is decoded
// or parsed, with a constant-time comparison that rejects length mismatches
// up front. Tokens older than the max age or timestamped in the future
// (clock tampering) are rejected.
func (s *Signer) Verify(token string) Verification {
	parts := strings.Split(token, ".")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return Verification{Err: ErrMalformedToken}
	}

	sig, err := base64.RawURLEncoding.DecodeString(parts[1])
	if err != nil {
		return Verification{Err: ErrMalformedToken}
	}

	expected := s.sign(parts[0])
	if len(sig) != len(expected) || !hmac.Equal(sig, expected) {
		return Verification{Err: ErrBadSignature}
	}

	body, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return Verification{Err: ErrMalformedToken}
	}
	var p payload
	if err := json.Unmarshal(body, &p); err != nil {
		return Verification{Err: ErrMalformedToken}
	}
	if p.Timestamp <= 0 || len(p.Nonce) != nonceLength*2 {
		return Verification{Err: ErrMalformedToken}
	}

	now := s.now().UnixMilli()
	if p.Timestamp > now {
		return Verification{Err: ErrTokenFromFuture}
	}
	if now-p.Timestamp > s.maxAge.Milliseconds() {
		return Verification{Err: ErrTokenExpired}
	}

	return Verification{Valid: true, Data: p.Data}
}

func (s *Signer) sign(payloadEnc string) []byte {
	h := hmac.New(sha256.New, s.secret)
	h.Write([]byte(payloadEnc))
	return h.Sum(nil)
}

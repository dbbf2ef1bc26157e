package totp

import "errors"

var (
	ErrFailedToGenerateSecretKey  = errors.New("failed to generate TOTP secret key")
	ErrMissingSecret              = errors.New("missing secret")
	ErrInvalidSecret              = errors.New("invalid secret")
	ErrMissingAccountName         = errors.New("missing account name")
	ErrMissingIssuer              = errors.New("missing issuer")
	ErrInvalidOTP                 = errors.New("invalid OTP format")
	ErrFailedToGenerateBackupCode = errors.New("failed to generate backup code")
	ErrWeakEncryptionSecret       = errors.New("TOTP encryption secret must be at least 32 bytes")
	ErrFailedToDeriveKey          = errors.New("failed to derive TOTP storage key")
	ErrInvalidEncryptionKeyLength = errors.New("invalid encryption key length")
	ErrFailedToEncryptSecret      = errors.New("failed to encrypt TOTP secret")
	ErrFailedToDecryptSecret      = errors.New("failed to decrypt TOTP secret")
	ErrMalformedCiphertext        = errors.New("malformed ciphertext")
)

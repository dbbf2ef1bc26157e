// Package totp provides RFC 4226/6238-compliant one-time password
// generation and verification plus the supporting pieces a two-factor
// enrollment flow needs: secret generation, provisioning URIs, single-use
// backup codes, and encryption of secrets at rest.
//
// # Architecture
//
//   - otp.go — secret key generation (GenerateSecretKey), HOTP/TOTP code
//     calculation (GenerateHOTP, GenerateTOTP, ValidateTOTP with a drift
//     window), and otpauth:// URI construction (GetTOTPURI) for
//     authenticator apps. The URI is consumed by an external QR renderer.
//
//   - backup.go — ten independently random XXXX-XXXX codes per enrollment,
//     stored only as keyed HMAC-SHA256 hashes; verification returns the
//     matched index so the caller can mark that code consumed.
//
//   - storage.go — AES-256-GCM encryption of the base32 secret serialized
//     as iv:authTag:ciphertext hex. The key is derived via HKDF-SHA256 from
//     the TOTP_ENCRYPTION_SECRET environment value and never persisted.
//
// Secrets are decrypted transiently to generate or verify codes and must
// never be stored or logged in plaintext. All code and hash comparisons are
// constant-time.
package totp

package totp

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"strings"

	"golang.org/x/crypto/hkdf"
)

const (
	// KeySize is the AES-256 key size in bytes.
	KeySize = 32

	gcmTagSize = 16

	// keyDerivationInfo provides domain separation so the same environment
	// secret can safely derive keys for other purposes elsewhere.
	keyDerivationInfo = "guardkit-totp-secret-storage-v1"
)

// DeriveStorageKey derives the AES-256 key for secret-at-rest encryption
// from the environment secret via HKDF-SHA256 (HMAC-based extract-and-
// expand). The derived key is used transiently and never stored alongside
// ciphertext.
func DeriveStorageKey(envSecret string) ([]byte, error) {
	if len(envSecret) < KeySize {
		return nil, ErrWeakEncryptionSecret
	}

	key := make([]byte, KeySize)
	kdf := hkdf.New(sha256.New, []byte(envSecret), nil, []byte(keyDerivationInfo))
	if _, err := io.ReadFull(kdf, key); err != nil {
		return nil, errors.Join(ErrFailedToDeriveKey, err)
	}
	return key, nil
}

// EncryptSecret encrypts a TOTP secret with AES-256-GCM under a fresh
// random 96-bit IV. The result is serialized as "iv:authTag:ciphertext" in
// hex so each component is independently inspectable in storage.
func EncryptSecret(plainText string, key []byte) (string, error) {
	aesGCM, err := newGCM(key, ErrFailedToEncryptSecret)
	if err != nil {
		return "", err
	}

	iv := make([]byte, aesGCM.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return "", errors.Join(ErrFailedToEncryptSecret, err)
	}

	sealed := aesGCM.Seal(nil, iv, []byte(plainText), nil)
	cipherText, tag := sealed[:len(sealed)-gcmTagSize], sealed[len(sealed)-gcmTagSize:]

	return hex.EncodeToString(iv) + ":" + hex.EncodeToString(tag) + ":" + hex.EncodeToString(cipherText), nil
}

// DecryptSecret reverses EncryptSecret. Any tampering with the IV, auth tag
// or ciphertext makes GCM authentication fail; corrupted plaintext is never
// returned.
func DecryptSecret(encrypted string, key []byte) (string, error) {
	parts := strings.Split(encrypted, ":")
	if len(parts) != 3 {
		return "", errors.Join(ErrFailedToDecryptSecret, ErrMalformedCiphertext)
	}

	iv, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptSecret, ErrMalformedCiphertext)
	}
	tag, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptSecret, ErrMalformedCiphertext)
	}
	cipherText, err := hex.DecodeString(parts[2])
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptSecret, ErrMalformedCiphertext)
	}

	aesGCM, err := newGCM(key, ErrFailedToDecryptSecret)
	if err != nil {
		return "", err
	}
	if len(iv) != aesGCM.NonceSize() || len(tag) != gcmTagSize {
		return "", errors.Join(ErrFailedToDecryptSecret, ErrMalformedCiphertext)
	}

	plainText, err := aesGCM.Open(nil, iv, append(cipherText, tag...), nil)
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptSecret, err)
	}
	return string(plainText), nil
}

func newGCM(key []byte, wrap error) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, errors.Join(wrap, ErrInvalidEncryptionKeyLength)
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, errors.Join(wrap, err)
	}
	aesGCM, err := cipher.NewGCM(block)
	if err != nil {
		return nil, errors.Join(wrap, err)
	}
	return aesGCM, nil
}

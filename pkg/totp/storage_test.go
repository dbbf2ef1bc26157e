package totp_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tallyfort/guardkit/pkg/totp"
)

const envSecret = "an-environment-secret-of-sufficient-length"

func storageKey(t *testing.T) []byte {
	t.Helper()
	key, err := totp.DeriveStorageKey(envSecret)
	require.NoError(t, err)
	return key
}

func TestDeriveStorageKey(t *testing.T) {
	t.Parallel()

	key := storageKey(t)
	assert.Len(t, key, totp.KeySize)

	// Derivation is deterministic for a given environment secret.
	again, err := totp.DeriveStorageKey(envSecret)
	require.NoError(t, err)
	assert.Equal(t, key, again)

	other, err := totp.DeriveStorageKey(strings.Repeat("z", 40))
	require.NoError(t, err)
	assert.NotEqual(t, key, other)
}

func TestDeriveStorageKeyWeakSecret(t *testing.T) {
	t.Parallel()

	_, err := totp.DeriveStorageKey("short")
	require.ErrorIs(t, err, totp.ErrWeakEncryptionSecret)
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	t.Parallel()
	key := storageKey(t)

	for _, plain := range []string{
		"",
		"JBSWY3DPEHPK3PXP",
		"unicode ünïcödé 密码",
		strings.Repeat("A", 1024),
	} {
		encrypted, err := totp.EncryptSecret(plain, key)
		require.NoError(t, err)

		parts := strings.Split(encrypted, ":")
		require.Len(t, parts, 3, "format must be iv:authTag:ciphertext")
		assert.Len(t, parts[0], 24, "96-bit IV as hex")
		assert.Len(t, parts[1], 32, "128-bit auth tag as hex")

		decrypted, err := totp.DecryptSecret(encrypted, key)
		require.NoError(t, err)
		assert.Equal(t, plain, decrypted)
	}
}

func TestEncryptProducesFreshIVs(t *testing.T) {
	t.Parallel()
	key := storageKey(t)

	a, err := totp.EncryptSecret("JBSWY3DPEHPK3PXP", key)
	require.NoError(t, err)
	b, err := totp.EncryptSecret("JBSWY3DPEHPK3PXP", key)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	t.Parallel()
	key := storageKey(t)

	encrypted, err := totp.EncryptSecret("JBSWY3DPEHPK3PXP", key)
	require.NoError(t, err)

	// Flip one hex digit in each segment; authentication must fail rather
	// than return corrupted plaintext.
	parts := strings.Split(encrypted, ":")
	for i := range parts {
		mutated := make([]string, 3)
		copy(mutated, parts)
		seg := []byte(mutated[i])
		if seg[0] == '0' {
			seg[0] = '1'
		} else {
			seg[0] = '0'
		}
		mutated[i] = string(seg)

		_, err := totp.DecryptSecret(strings.Join(mutated, ":"), key)
		assert.ErrorIs(t, err, totp.ErrFailedToDecryptSecret, "segment %d", i)
	}
}

func TestDecryptMalformed(t *testing.T) {
	t.Parallel()
	key := storageKey(t)

	for _, encrypted := range []string{
		"",
		"onlyonepart",
		"two:parts",
		"zz:zz:zz", // invalid hex
		"abcd:abcd:abcd",
	} {
		_, err := totp.DecryptSecret(encrypted, key)
		assert.Error(t, err, "input %q", encrypted)
	}
}

func TestDecryptWrongKey(t *testing.T) {
	t.Parallel()

	encrypted, err := totp.EncryptSecret("JBSWY3DPEHPK3PXP", storageKey(t))
	require.NoError(t, err)

	otherKey, err := totp.DeriveStorageKey(strings.Repeat("q", 40))
	require.NoError(t, err)

	_, err = totp.DecryptSecret(encrypted, otherKey)
	require.ErrorIs(t, err, totp.ErrFailedToDecryptSecret)
}

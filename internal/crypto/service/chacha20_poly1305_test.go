package service

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cryptoDomain "github.com/allisson/secretstore/internal/crypto/domain"
)

func randomKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, cryptoDomain.KeySize)
	_, err := rand.Read(key)
	require.NoError(t, err)
	return key
}

func TestNewChaCha20Poly1305(t *testing.T) {
	t.Run("ValidKey", func(t *testing.T) {
		cipher, err := NewChaCha20Poly1305(randomKey(t))
		assert.NoError(t, err)
		assert.NotNil(t, cipher)
	})

	t.Run("InvalidKeySize", func(t *testing.T) {
		_, err := NewChaCha20Poly1305(make([]byte, 16))
		assert.ErrorIs(t, err, cryptoDomain.ErrInvalidKeySize)
	})
}

func TestChaCha20Poly1305_RoundTrip(t *testing.T) {
	cipher, err := NewChaCha20Poly1305(randomKey(t))
	require.NoError(t, err)

	plaintext := []byte("secret123")

	combined, err := cipher.Encrypt(plaintext)
	require.NoError(t, err)
	assert.NotEqual(t, plaintext, combined)

	decrypted, err := cipher.Decrypt(combined)
	require.NoError(t, err)
	assert.Equal(t, plaintext, decrypted)
}

func TestChaCha20Poly1305_NonceUniqueness(t *testing.T) {
	cipher, err := NewChaCha20Poly1305(randomKey(t))
	require.NoError(t, err)

	plaintext := []byte("same plaintext")

	first, err := cipher.Encrypt(plaintext)
	require.NoError(t, err)
	second, err := cipher.Encrypt(plaintext)
	require.NoError(t, err)

	// Fresh nonce per call: same input, different output bytes.
	assert.NotEqual(t, first, second)

	p1, err := cipher.Decrypt(first)
	require.NoError(t, err)
	p2, err := cipher.Decrypt(second)
	require.NoError(t, err)
	assert.Equal(t, p1, p2)
}

func TestChaCha20Poly1305_Decrypt(t *testing.T) {
	cipher, err := NewChaCha20Poly1305(randomKey(t))
	require.NoError(t, err)

	t.Run("TamperedCiphertext", func(t *testing.T) {
		combined, err := cipher.Encrypt([]byte("payload"))
		require.NoError(t, err)

		combined[len(combined)-1] ^= 0xff
		_, err = cipher.Decrypt(combined)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("TamperedNonce", func(t *testing.T) {
		combined, err := cipher.Encrypt([]byte("payload"))
		require.NoError(t, err)

		combined[0] ^= 0xff
		_, err = cipher.Decrypt(combined)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("TooShort", func(t *testing.T) {
		_, err := cipher.Decrypt([]byte("short"))
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})

	t.Run("WrongKey", func(t *testing.T) {
		combined, err := cipher.Encrypt([]byte("payload"))
		require.NoError(t, err)

		other, err := NewChaCha20Poly1305(randomKey(t))
		require.NoError(t, err)

		_, err = other.Decrypt(combined)
		assert.ErrorIs(t, err, cryptoDomain.ErrDecryptionFailed)
	})
}

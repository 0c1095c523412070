package service

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/chacha20poly1305"

	cryptoDomain "github.com/allisson/secretstore/internal/crypto/domain"
)

// ChaCha20Poly1305Cipher implements the AEAD interface using ChaCha20-Poly1305
// with the nonce embedded in the output.
//
// ChaCha20-Poly1305 combines the ChaCha20 stream cipher with the Poly1305 MAC,
// providing authenticated encryption with constant-time software performance.
// A fresh random 12-byte nonce is generated for each Encrypt call and
// prepended to the ciphertext, so two encryptions of the same plaintext under
// the same key never produce the same bytes.
type ChaCha20Poly1305Cipher struct {
	aead cipher.AEAD
}

// NewChaCha20Poly1305 creates a new cipher instance for the given 32-byte key.
func NewChaCha20Poly1305(key []byte) (*ChaCha20Poly1305Cipher, error) {
	if len(key) != cryptoDomain.KeySize {
		return nil, cryptoDomain.ErrInvalidKeySize
	}

	aead, err := chacha20poly1305.New(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create ChaCha20-Poly1305 cipher: %w", err)
	}

	return &ChaCha20Poly1305Cipher{aead: aead}, nil
}

// Encrypt encrypts plaintext and returns nonce||ciphertext. The ciphertext
// includes the Poly1305 authentication tag.
func (c *ChaCha20Poly1305Cipher) Encrypt(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("failed to generate nonce: %w", err)
	}

	// Seal appends to the nonce slice, producing the combined output directly.
	return c.aead.Seal(nonce, nonce, plaintext, nil), nil
}

// Decrypt splits the embedded nonce off the input and decrypts the remainder.
// Returns ErrDecryptionFailed when the input is too short or the
// authentication tag does not verify (tampered or corrupt data).
func (c *ChaCha20Poly1305Cipher) Decrypt(combined []byte) ([]byte, error) {
	nonceSize := c.aead.NonceSize()
	if len(combined) < nonceSize+c.aead.Overhead() {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	nonce, ciphertext := combined[:nonceSize], combined[nonceSize:]
	plaintext, err := c.aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return nil, cryptoDomain.ErrDecryptionFailed
	}

	return plaintext, nil
}

// Package service provides the cryptographic services backing secret storage.
// Private parts are encrypted with ChaCha20-Poly1305 under a named key from a
// keyring that is unsealed exactly once at process start.
package service

import (
	"context"
)

// AEAD defines authenticated encryption with an embedded nonce: the nonce is
// generated per Encrypt call and prepended to the ciphertext, so decryption
// is self-describing given the key.
type AEAD interface {
	// Encrypt encrypts plaintext and returns nonce||ciphertext.
	Encrypt(plaintext []byte) ([]byte, error)

	// Decrypt splits the embedded nonce off the input and decrypts the rest,
	// verifying the authentication tag.
	Decrypt(combined []byte) ([]byte, error)
}

// EncryptionEngine encrypts and decrypts payloads under named keys.
//
// The engine starts sealed: the configured key material is encrypted at rest
// and must be unsealed exactly once (Unseal or UnsealWithKeeper) before
// Encrypt/Decrypt can be used. Unsealing twice, or unsealing an engine that
// was constructed with no key material, is a fatal configuration error.
type EncryptionEngine interface {
	// Encrypt encrypts plaintext under the named key. Returns
	// domain.ErrKeyNotFound if the key ID is unknown or the engine is sealed.
	Encrypt(plaintext []byte, keyID string) ([]byte, error)

	// Decrypt decrypts ciphertext produced by Encrypt under the named key.
	// Returns domain.ErrDecryptionFailed on tag mismatch or corrupt data.
	Decrypt(ciphertext []byte, keyID string) ([]byte, error)

	// Unseal decrypts the configured key material using the base64-encoded
	// master passphrase. One-time process-lifetime operation.
	Unseal(passphrase string) error

	// UnsealWithKeeper decrypts the configured key material using a KMS
	// keeper instead of the local passphrase. One-time, mutually exclusive
	// with Unseal.
	UnsealWithKeeper(ctx context.Context, keeper Keeper) error

	// HasKey reports whether the unsealed keyring contains the key ID.
	HasKey(keyID string) bool

	// Close zeroes the unsealed key material.
	Close()
}

// Keeper decrypts sealed key material through an external KMS.
// *secrets.Keeper from gocloud.dev satisfies this interface.
type Keeper interface {
	Decrypt(ctx context.Context, ciphertext []byte) ([]byte, error)
}

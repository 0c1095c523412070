package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"sync"

	cryptoDomain "github.com/allisson/secretstore/internal/crypto/domain"
	apperrors "github.com/allisson/secretstore/internal/errors"
)

// encryptionEngine implements EncryptionEngine over a sealed key set.
//
// The sealed entries come from configuration; Unseal (or UnsealWithKeeper)
// turns them into an immutable keyring. The unseal transition is guarded by a
// mutex; after it completes the keyring is only ever read, so Encrypt and
// Decrypt need no locking.
type encryptionEngine struct {
	mu       sync.Mutex
	sealed   []cryptoDomain.SealedKey
	keyring  *cryptoDomain.Keyring
	unsealed bool
}

// NewEncryptionEngine creates a sealed engine from parsed key material.
// The engine is unusable until Unseal or UnsealWithKeeper succeeds.
func NewEncryptionEngine(sealed []cryptoDomain.SealedKey) EncryptionEngine {
	return &encryptionEngine{sealed: sealed}
}

// Unseal decrypts the configured key material using the base64-encoded
// 32-byte master passphrase. Returns ErrAlreadyUnsealed on a second call and
// ErrNoKeyMaterial when the engine was constructed with an empty key set;
// both are fatal deployment errors.
func (e *encryptionEngine) Unseal(passphrase string) error {
	masterKey, err := base64.StdEncoding.DecodeString(passphrase)
	if err != nil {
		return fmt.Errorf("%w: master passphrase is not valid base64", apperrors.ErrInvalidInput)
	}
	defer cryptoDomain.Zero(masterKey)

	if len(masterKey) != cryptoDomain.KeySize {
		return fmt.Errorf(
			"%w: master passphrase must decode to %d bytes, got %d",
			cryptoDomain.ErrInvalidKeySize,
			cryptoDomain.KeySize,
			len(masterKey),
		)
	}

	cipher, err := NewChaCha20Poly1305(masterKey)
	if err != nil {
		return err
	}

	return e.unseal(cipher.Decrypt)
}

// UnsealWithKeeper decrypts the configured key material using an external KMS
// keeper. Same one-time semantics as Unseal.
func (e *encryptionEngine) UnsealWithKeeper(ctx context.Context, keeper Keeper) error {
	return e.unseal(func(sealed []byte) ([]byte, error) {
		plaintext, err := keeper.Decrypt(ctx, sealed)
		if err != nil {
			return nil, cryptoDomain.ErrDecryptionFailed
		}
		return plaintext, nil
	})
}

// unseal performs the guarded one-time transition from sealed entries to an
// immutable keyring using the provided decrypt function.
func (e *encryptionEngine) unseal(decrypt func([]byte) ([]byte, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.unsealed {
		return cryptoDomain.ErrAlreadyUnsealed
	}
	if len(e.sealed) == 0 {
		return cryptoDomain.ErrNoKeyMaterial
	}

	keys := make(map[string][]byte, len(e.sealed))
	for _, entry := range e.sealed {
		key, err := decrypt(entry.Sealed)
		if err != nil {
			zeroAll(keys)
			return fmt.Errorf("failed to unseal key %s: %w", entry.ID, err)
		}
		if len(key) != cryptoDomain.KeySize {
			cryptoDomain.Zero(key)
			zeroAll(keys)
			return fmt.Errorf(
				"%w: key %s must be %d bytes, got %d",
				cryptoDomain.ErrInvalidKeySize,
				entry.ID,
				cryptoDomain.KeySize,
				len(key),
			)
		}
		keys[entry.ID] = key
	}

	e.keyring = cryptoDomain.NewKeyring(keys)
	e.sealed = nil
	e.unsealed = true
	return nil
}

// Encrypt encrypts plaintext under the named key with a fresh random nonce.
func (e *encryptionEngine) Encrypt(plaintext []byte, keyID string) ([]byte, error) {
	cipher, err := e.cipherFor(keyID)
	if err != nil {
		return nil, err
	}
	return cipher.Encrypt(plaintext)
}

// Decrypt decrypts ciphertext produced by Encrypt under the named key.
func (e *encryptionEngine) Decrypt(ciphertext []byte, keyID string) ([]byte, error) {
	cipher, err := e.cipherFor(keyID)
	if err != nil {
		return nil, err
	}
	return cipher.Decrypt(ciphertext)
}

// HasKey reports whether the unsealed keyring contains the key ID.
func (e *encryptionEngine) HasKey(keyID string) bool {
	keyring := e.currentKeyring()
	return keyring != nil && keyring.Has(keyID)
}

// Close zeroes the unsealed key material.
func (e *encryptionEngine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.keyring != nil {
		e.keyring.Close()
	}
}

// cipherFor resolves the key ID against the keyring and builds its cipher.
func (e *encryptionEngine) cipherFor(keyID string) (AEAD, error) {
	keyring := e.currentKeyring()
	if keyring == nil {
		return nil, fmt.Errorf("%w: engine is sealed", cryptoDomain.ErrKeyNotFound)
	}

	key, ok := keyring.Get(keyID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", cryptoDomain.ErrKeyNotFound, keyID)
	}

	return NewChaCha20Poly1305(key)
}

// currentKeyring reads the keyring pointer under the unseal lock. The keyring
// itself is immutable once published.
func (e *encryptionEngine) currentKeyring() *cryptoDomain.Keyring {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.keyring
}

func zeroAll(keys map[string][]byte) {
	for _, key := range keys {
		cryptoDomain.Zero(key)
	}
}

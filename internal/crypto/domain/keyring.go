// Package domain defines the key-material domain model for envelope encryption.
//
// Key material arrives sealed: each named key is stored encrypted under a
// master passphrase (or a KMS keeper) and is only usable after a one-time
// unseal step at process start. After unsealing the key set is immutable for
// the process lifetime and safe for concurrent reads.
package domain

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// KeySize is the required size in bytes of every key in the keyring (256 bits).
const KeySize = 32

// SealedKey is one configured key: an identifier plus its ciphertext
// (encrypted under the master passphrase, nonce embedded).
type SealedKey struct {
	ID     string
	Sealed []byte
}

// Keyring holds the unsealed working key set, keyed by key ID.
// Built exactly once by the encryption engine's unseal step; never mutated
// afterwards, so concurrent reads need no synchronization.
type Keyring struct {
	keys map[string][]byte
}

// NewKeyring creates an immutable keyring from unsealed key material.
func NewKeyring(keys map[string][]byte) *Keyring {
	return &Keyring{keys: keys}
}

// Get retrieves a key by its ID.
func (k *Keyring) Get(id string) ([]byte, bool) {
	key, ok := k.keys[id]
	return key, ok
}

// Has reports whether the keyring contains the given key ID.
func (k *Keyring) Has(id string) bool {
	_, ok := k.keys[id]
	return ok
}

// Len returns the number of keys in the keyring.
func (k *Keyring) Len() int {
	return len(k.keys)
}

// Close zeroes all key material. The keyring must not be used afterwards.
func (k *Keyring) Close() {
	for id, key := range k.keys {
		Zero(key)
		delete(k.keys, id)
	}
}

// ParseSealedKeyMaterial parses the configured key material string in
// "keyId:base64,keyId:base64" format into sealed key entries. The base64
// payload is the key encrypted under the master passphrase.
func ParseSealedKeyMaterial(raw string) ([]SealedKey, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var sealed []SealedKey
	for part := range strings.SplitSeq(raw, ",") {
		p := strings.SplitN(strings.TrimSpace(part), ":", 2)
		if len(p) != 2 || p[0] == "" {
			return nil, fmt.Errorf("%w: %q", ErrInvalidKeyMaterialFormat, part)
		}
		payload, err := base64.StdEncoding.DecodeString(p[1])
		if err != nil {
			return nil, fmt.Errorf("%w for %s: %v", ErrInvalidKeyMaterialBase64, p[0], err)
		}
		sealed = append(sealed, SealedKey{ID: p[0], Sealed: payload})
	}

	return sealed, nil
}

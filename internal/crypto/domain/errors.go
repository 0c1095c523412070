package domain

import (
	"github.com/allisson/secretstore/internal/errors"
)

// Cryptographic operation error definitions.
var (
	// ErrKeyNotFound indicates the requested key ID is not present in the
	// keyring. Fatal for the calling operation, never silently skipped.
	ErrKeyNotFound = errors.Wrap(errors.ErrEncryption, "unknown key id")

	// ErrDecryptionFailed indicates a decryption operation failed: wrong key,
	// tampered ciphertext (authentication tag mismatch), or corrupt data.
	// The specific cause is not disclosed to avoid aiding attackers.
	ErrDecryptionFailed = errors.Wrap(errors.ErrEncryption, "decryption failed")

	// ErrInvalidKeySize indicates a key is not exactly KeySize bytes.
	ErrInvalidKeySize = errors.Wrap(errors.ErrInvalidInput, "invalid key size")

	// ErrInvalidKeyMaterialFormat indicates the KEY_MATERIAL entry is not in
	// "keyId:base64" format.
	ErrInvalidKeyMaterialFormat = errors.Wrap(errors.ErrInvalidInput, "invalid key material format")

	// ErrInvalidKeyMaterialBase64 indicates a KEY_MATERIAL payload is not valid base64.
	ErrInvalidKeyMaterialBase64 = errors.Wrap(errors.ErrInvalidInput, "invalid key material base64")

	// ErrAlreadyUnsealed indicates the one-time unseal step ran twice on the
	// same engine. This is a deployment/programming error and must stop the
	// process rather than proceed with an undefined key set.
	ErrAlreadyUnsealed = errors.New("key material already unsealed")

	// ErrNoKeyMaterial indicates unsealing was attempted with an empty
	// configured key set. Also fatal: the deployment is misconfigured.
	ErrNoKeyMaterial = errors.New("no key material configured")
)

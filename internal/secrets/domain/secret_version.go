package domain

import (
	"time"

	"github.com/google/uuid"
)

// SecretVersion is one immutable version of a secret's payload. For a given
// secret, data versions form a contiguous sequence starting at 1; exactly one
// version matches the secret's CurrentVersion at any time.
type SecretVersion struct {
	SecretID uuid.UUID
	// DataVersion is 1-based, strictly increasing, never reused.
	DataVersion int64
	// PublicPart is the plaintext half of the payload (e.g., a username).
	PublicPart string
	// EncryptedPrivatePart is the AEAD output with the nonce prepended; opaque
	// outside the encryption engine.
	EncryptedPrivatePart []byte
	// KMSKeyID identifies which key encrypted this version.
	KMSKeyID  string
	CreatedAt time.Time
}

// NewSecretVersion creates a version row for the given secret.
func NewSecretVersion(secretID uuid.UUID, dataVersion int64, publicPart string, encryptedPrivatePart []byte, kmsKeyID string) *SecretVersion {
	return &SecretVersion{
		SecretID:             secretID,
		DataVersion:          dataVersion,
		PublicPart:           publicPart,
		EncryptedPrivatePart: encryptedPrivatePart,
		KMSKeyID:             kmsKeyID,
		CreatedAt:            time.Now().UTC(),
	}
}
